package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutation_Success(t *testing.T) {
	var succeeded string
	m := &Mutation[int, string]{
		Key: Key{"test", "double"},
		Fn: func(_ context.Context, in int) (string, error) {
			return "ok", nil
		},
		OnSuccess: func(_ context.Context, out string) error {
			succeeded = out
			return nil
		},
		OnError: func(context.Context, error) {
			t.Fatal("OnError must not be called")
		},
	}
	assert.Equal(t, StatusIdle, m.State().Status)

	out, err := m.Run(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, "ok", succeeded)

	state := m.State()
	assert.Equal(t, StatusSuccess, state.Status)
	assert.Equal(t, "ok", state.Data)
	assert.False(t, state.UpdatedAt.IsZero())
}

func TestMutation_FnError(t *testing.T) {
	boom := errors.New("boom")
	var reported error
	m := &Mutation[int, string]{
		Fn: func(context.Context, int) (string, error) { return "", boom },
		OnSuccess: func(context.Context, string) error {
			t.Fatal("OnSuccess must not be called")
			return nil
		},
		OnError: func(_ context.Context, err error) { reported = err },
	}

	_, err := m.Run(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, reported, boom)
	assert.Equal(t, StatusError, m.State().Status)
	assert.ErrorIs(t, m.State().Err, boom)
}

func TestMutation_OnSuccessError(t *testing.T) {
	refetchFailed := errors.New("refetch failed")
	m := &Mutation[int, string]{
		Fn:        func(context.Context, int) (string, error) { return "sig", nil },
		OnSuccess: func(context.Context, string) error { return refetchFailed },
	}

	out, err := m.Run(context.Background(), 1)
	assert.Equal(t, "sig", out)
	assert.ErrorIs(t, err, refetchFailed)
	assert.Equal(t, StatusError, m.State().Status)
	assert.Equal(t, "sig", m.State().Data)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "error", StatusError.String())
}
