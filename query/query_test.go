package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(Config{StaleTime: time.Minute})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestKeyString(t *testing.T) {
	k := Key{"pubkey-profile", "fetchProfile", map[string]string{"profilePda": "abc", "cluster": "devnet"}}
	assert.Equal(t, `["pubkey-profile","fetchProfile",{"cluster":"devnet","profilePda":"abc"}]`, k.String())

	assert.NotEqual(t, Key{"a", 1}.String(), Key{"a", "1"}.String())
}

func TestFetch_CachesValue(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	key := Key{"profile", "alice"}

	var calls int32
	fn := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "alice", nil
	}

	v, err := Fetch(ctx, c, key, fn)
	require.NoError(t, err)
	assert.Equal(t, "alice", v)

	v, err = Fetch(ctx, c, key, fn)
	require.NoError(t, err)
	assert.Equal(t, "alice", v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	cached, ok := Peek[string](c, key)
	assert.True(t, ok)
	assert.Equal(t, "alice", cached)
}

func TestFetch_ErrorsAreNotCached(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	key := Key{"profile", "bob"}
	boom := errors.New("boom")

	_, err := Fetch(ctx, c, key, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	_, ok := Peek[int](c, key)
	assert.False(t, ok)

	v, err := Fetch(ctx, c, key, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestFetch_DeduplicatesConcurrentCalls(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	key := Key{"profile", "carol"}

	release := make(chan struct{})
	var calls int32
	fn := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 42, nil
	}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]int, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Fetch(ctx, c, key, fn)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}

func TestRefetch_Invalidates(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	key := Key{"profile", "dave"}

	var n int32
	fn := func(context.Context) (int32, error) {
		return atomic.AddInt32(&n, 1), nil
	}

	v, err := Fetch(ctx, c, key, fn)
	require.NoError(t, err)
	assert.Equal(t, int32(1), v)

	v, err = Refetch(ctx, c, key, fn)
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)

	c.Invalidate(key)
	_, ok := Peek[int32](c, key)
	assert.False(t, ok)
}

func TestPeek_WrongType(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	key := Key{"typed"}

	_, err := Fetch(ctx, c, key, func(context.Context) (string, error) { return "x", nil })
	require.NoError(t, err)

	_, ok := Peek[int](c, key)
	assert.False(t, ok)
}

func TestRefetch_DiscardsInFlightResult(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	key := Key{"profile", "erin"}

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan string)
	go func() {
		v, err := Fetch(ctx, c, key, func(context.Context) (string, error) {
			close(started)
			<-release
			return "old", nil
		})
		assert.NoError(t, err)
		done <- v
	}()
	<-started

	v, err := Refetch(ctx, c, key, func(context.Context) (string, error) { return "new", nil })
	require.NoError(t, err)
	assert.Equal(t, "new", v)

	close(release)
	assert.Equal(t, "old", <-done)

	cached, ok := Peek[string](c, key)
	require.True(t, ok)
	assert.Equal(t, "new", cached)
}

func TestFetch_CallerCancelDoesNotFailSharedCall(t *testing.T) {
	c := newTestClient(t)
	key := Key{"profile", "frank"}

	started := make(chan struct{})
	release := make(chan struct{})
	fnErr := make(chan error, 1)
	fn := func(ctx context.Context) (string, error) {
		close(started)
		<-release
		fnErr <- ctx.Err()
		return "frank", nil
	}

	cancelCtx, cancel := context.WithCancel(context.Background())
	cancelled := make(chan error)
	go func() {
		_, err := Fetch(cancelCtx, c, key, fn)
		cancelled <- err
	}()
	<-started

	cancel()
	assert.ErrorIs(t, <-cancelled, context.Canceled)

	close(release)
	assert.NoError(t, <-fnErr)

	v, err := Fetch(context.Background(), c, key, func(context.Context) (string, error) {
		return "frank", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "frank", v)
}
