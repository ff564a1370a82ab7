package resilience

import (
	"context"
	"sync"
)

// SingleFlight collapses concurrent calls that share a key into one
// execution. Callers that joined an in-flight call get shared=true.
type SingleFlight[T any] struct {
	mu    sync.Mutex
	calls map[string]*flight[T]
}

type flight[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func (g *SingleFlight[T]) Do(key string, fn func() (T, error)) (val T, err error, shared bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*flight[T])
	}
	if f, ok := g.calls[key]; ok {
		g.mu.Unlock()
		<-f.done
		return f.val, f.err, true
	}

	f := &flight[T]{done: make(chan struct{})}
	g.calls[key] = f
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.calls, key)
		g.mu.Unlock()
		close(f.done)
	}()

	f.val, f.err = fn()
	return f.val, f.err, false
}

// DoContext is Do for callers that must be able to give up. fn runs
// detached from the caller's cancellation so one joined caller going away
// does not fail the others; a caller whose ctx ends stops waiting and
// gets ctx.Err().
func (g *SingleFlight[T]) DoContext(ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error, bool) {
	type result struct {
		val    T
		err    error
		shared bool
	}
	detached := context.WithoutCancel(ctx)
	ch := make(chan result, 1)
	go func() {
		val, err, shared := g.Do(key, func() (T, error) { return fn(detached) })
		ch <- result{val: val, err: err, shared: shared}
	}()

	select {
	case r := <-ch:
		return r.val, r.err, r.shared
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err(), false
	}
}
