package pool

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("pool: executor closed")

// Executor is a bounded pool for short blocking work such as a single file
// write. At most workers tasks are admitted at a time; Submit waits for a
// free slot and gives up when its context is done.
type Executor struct {
	pool  *ants.Pool
	slots chan struct{}

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewExecutor creates a pool of workers goroutines (runtime.NumCPU when
// workers <= 0).
func NewExecutor(workers int) (*Executor, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	return &Executor{pool: p, slots: make(chan struct{}, workers)}, nil
}

// Submit runs task on the pool. It blocks until a worker slot is free, ctx is
// done or the executor is closed.
func (e *Executor) Submit(ctx context.Context, task func()) error {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return ErrClosed
	}
	e.wg.Add(1)
	e.mu.RUnlock()

	select {
	case e.slots <- struct{}{}:
	case <-ctx.Done():
		e.wg.Done()
		return ctx.Err()
	}
	err := e.pool.Submit(func() {
		defer e.wg.Done()
		defer func() { <-e.slots }()
		task()
	})
	if err != nil {
		<-e.slots
		e.wg.Done()
		if errors.Is(err, ants.ErrPoolClosed) {
			return ErrClosed
		}
		return err
	}
	return nil
}

// Close stops accepting tasks, waits for admitted ones and releases the
// workers.
func (e *Executor) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.mu.Unlock()
	e.wg.Wait()
	e.pool.Release()
}

var (
	sharedOnce sync.Once
	shared     *Executor
)

// Shared returns the process-wide executor used by forms that were not given
// one explicitly. It is never closed.
func Shared() *Executor {
	sharedOnce.Do(func() {
		e, err := NewExecutor(runtime.NumCPU())
		if err != nil {
			panic(err)
		}
		shared = e
	})
	return shared
}
