package pool

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newExecutor(t *testing.T, workers int) *Executor {
	t.Helper()
	e, err := NewExecutor(workers)
	require.NoError(t, err)
	return e
}

func TestExecutor_RunsAllTasksBeforeClose(t *testing.T) {
	e := newExecutor(t, 3)
	var n atomic.Int64
	for i := 0; i < 50; i++ {
		require.NoError(t, e.Submit(context.Background(), func() { n.Add(1) }))
	}
	e.Close()
	require.Equal(t, int64(50), n.Load())

	require.ErrorIs(t, e.Submit(context.Background(), func() {}), ErrClosed)
	e.Close() // idempotent
}

func TestExecutor_OneShotHandOff(t *testing.T) {
	e := newExecutor(t, 1)
	defer e.Close()

	done := make(chan error, 1)
	require.NoError(t, e.Submit(context.Background(), func() { done <- nil }))
	require.NoError(t, <-done)
}

func TestExecutor_SubmitHonoursContext(t *testing.T) {
	e := newExecutor(t, 1)
	defer e.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, e.Submit(context.Background(), func() {
		close(started)
		<-release
	}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	ran := false
	err := e.Submit(ctx, func() { ran = true })
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	done := make(chan struct{})
	require.NoError(t, e.Submit(context.Background(), func() { close(done) }))
	<-done
	require.False(t, ran)
}

func TestExecutor_BoundsConcurrency(t *testing.T) {
	e := newExecutor(t, 2)
	var running, peak atomic.Int64
	for i := 0; i < 20; i++ {
		require.NoError(t, e.Submit(context.Background(), func() {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			running.Add(-1)
		}))
	}
	e.Close()
	require.LessOrEqual(t, peak.Load(), int64(2))
}

func TestShared_IsSingleton(t *testing.T) {
	require.Same(t, Shared(), Shared())
}

func TestByteBufferPool_DropsOversized(t *testing.T) {
	p := NewByteBufferPool(4, 8)

	bb := p.Get()
	_, _ = bb.Write([]byte("abc"))
	c := bb.Clone()
	p.Put(bb)
	require.Equal(t, []byte("abc"), c)

	got := p.Get()
	require.Equal(t, 0, got.Len())

	big := NewByteBuffer(64)
	p.Put(big) // above threshold, silently discarded
	p.Put(nil)
}
