// Package task runs fire-and-forget work outside the request lifecycle.
package task

import (
	"context"
	"log"
	"sync"

	"quiz-platform/internal/domain"
)

// Runner executes detached tasks in their own goroutines. A panic inside a
// task is recovered and logged so it can never reach the serving loop.
type Runner struct {
	mu     sync.Mutex
	wg     sync.WaitGroup
	closed bool
}

func NewRunner() *Runner {
	return &Runner{}
}

// Go starts fn on its own goroutine with a fresh background context; the
// task outlives the request that spawned it. Returns ErrShuttingDown if the
// runner no longer accepts work, which callers must surface synchronously.
func (r *Runner) Go(name string, fn func(ctx context.Context)) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return domain.ErrShuttingDown
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("task %s panicked: %v", name, rec)
			}
		}()
		fn(context.Background())
	}()
	return nil
}

// Shutdown stops accepting new tasks and waits for in-flight ones to finish
// or for ctx to expire, whichever comes first.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
