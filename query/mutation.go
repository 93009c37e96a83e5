package query

import (
	"context"
	"sync"
	"time"
)

// Status of a mutation.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// MutationState is a snapshot of the last mutation run.
type MutationState[Out any] struct {
	Status    Status
	Data      Out
	Err       error
	UpdatedAt time.Time
}

// Mutation runs Fn and reports the outcome through OnSuccess and OnError.
// A failing OnSuccess fails the mutation.
type Mutation[In, Out any] struct {
	Key       Key
	Fn        func(ctx context.Context, in In) (Out, error)
	OnSuccess func(ctx context.Context, out Out) error
	OnError   func(ctx context.Context, err error)

	mu    sync.Mutex
	state MutationState[Out]
}

// Run executes the mutation. On a failing OnSuccess the output of Fn is
// still returned alongside the error.
func (m *Mutation[In, Out]) Run(ctx context.Context, in In) (Out, error) {
	var zero Out
	m.setState(MutationState[Out]{Status: StatusPending})

	out, err := m.Fn(ctx, in)
	if err != nil {
		m.fail(ctx, zero, err)
		return zero, err
	}

	if m.OnSuccess != nil {
		if err := m.OnSuccess(ctx, out); err != nil {
			m.fail(ctx, out, err)
			return out, err
		}
	}

	m.setState(MutationState[Out]{Status: StatusSuccess, Data: out})
	return out, nil
}

// State returns the current state.
func (m *Mutation[In, Out]) State() MutationState[Out] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mutation[In, Out]) fail(ctx context.Context, out Out, err error) {
	m.setState(MutationState[Out]{Status: StatusError, Data: out, Err: err})
	if m.OnError != nil {
		m.OnError(ctx, err)
	}
}

func (m *Mutation[In, Out]) setState(s MutationState[Out]) {
	if s.Status != StatusIdle {
		s.UpdatedAt = time.Now()
	}
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}
