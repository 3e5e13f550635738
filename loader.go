package showcase

import (
	"context"
	"errors"
)

// LoadState is the state of a Loader.
type LoadState uint8

const (
	LoadIdle    LoadState = iota // nothing requested yet
	LoadLoading                  // an attempt is in flight
	LoadReady                    // the last attempt succeeded
	LoadError                    // the last attempt failed
)

func (s LoadState) String() string {
	switch s {
	case LoadLoading:
		return "loading"
	case LoadReady:
		return "ready"
	case LoadError:
		return "error"
	default:
		return "idle"
	}
}

// LoadFunc produces a value, honoring ctx cancellation.
type LoadFunc[T any] func(ctx context.Context) (T, error)

type loadResult[T any] struct {
	token uint64
	value T
	err   error
}

// Loader runs a LoadFunc on a goroutine and hands the result back to the
// frame thread through Poll. Starting a new attempt cancels the previous one;
// results carrying a stale token are discarded.
type Loader[T any] struct {
	load    LoadFunc[T]
	parent  context.Context
	state   LoadState
	value   T
	err     error
	token   uint64
	cancel  context.CancelFunc
	results chan loadResult[T]
	done    chan struct{}
	closed  bool

	// OnReady runs on the frame thread inside Poll when a load succeeds.
	OnReady func(T)
	// OnError runs inside Poll when a load fails for a reason other than
	// cancellation.
	OnError func(error)
}

// NewLoader creates an idle loader. Attempts derive their context from parent.
func NewLoader[T any](parent context.Context, load LoadFunc[T]) *Loader[T] {
	if parent == nil {
		parent = context.Background()
	}
	return &Loader[T]{
		load:    load,
		parent:  parent,
		results: make(chan loadResult[T], 4),
		done:    make(chan struct{}),
	}
}

// State returns the current state.
func (l *Loader[T]) State() LoadState { return l.state }

// Value returns the last successfully loaded value.
func (l *Loader[T]) Value() T { return l.value }

// Err returns the error of the last failed attempt.
func (l *Loader[T]) Err() error { return l.err }

// Start begins a new attempt, canceling any attempt in flight. It is a no-op
// once the loader is ready or closed.
func (l *Loader[T]) Start() {
	if l.closed || l.state == LoadReady {
		return
	}
	l.abort()
	l.token++
	token := l.token
	ctx, cancel := context.WithCancel(l.parent)
	l.cancel = cancel
	l.state = LoadLoading
	l.err = nil

	go func() {
		v, err := l.load(ctx)
		if err == nil && ctx.Err() != nil {
			err = ctx.Err()
		}
		select {
		case l.results <- loadResult[T]{token: token, value: v, err: err}:
		case <-l.done:
		}
	}()
}

// Retry restarts a failed load. It does nothing in other states.
func (l *Loader[T]) Retry() {
	if l.state == LoadError {
		l.Start()
	}
}

// Poll commits any finished attempt. Results from superseded attempts and
// cancellations are dropped. It never blocks.
func (l *Loader[T]) Poll() {
	for {
		select {
		case r := <-l.results:
			l.commit(r)
		default:
			return
		}
	}
}

// Wait blocks until the current attempt finishes or ctx is done, then commits
// it. Intended for tools and tests that have no frame loop.
func (l *Loader[T]) Wait(ctx context.Context) error {
	for l.state == LoadLoading {
		select {
		case r := <-l.results:
			l.commit(r)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (l *Loader[T]) commit(r loadResult[T]) {
	if l.closed || r.token != l.token || l.state != LoadLoading {
		return
	}
	if errors.Is(r.err, context.Canceled) {
		return
	}
	l.cancel = nil
	if r.err != nil {
		l.state = LoadError
		l.err = r.err
		debugf("load failed: %v", r.err)
		if l.OnError != nil {
			l.OnError(r.err)
		}
		return
	}
	l.state = LoadReady
	l.value = r.value
	if l.OnReady != nil {
		l.OnReady(r.value)
	}
}

// Cancel aborts the attempt in flight and returns the loader to idle.
func (l *Loader[T]) Cancel() {
	if l.state != LoadLoading {
		return
	}
	l.abort()
	l.token++
	l.state = LoadIdle
}

// Close cancels any attempt and makes further Starts no-ops.
func (l *Loader[T]) Close() {
	if l.closed {
		return
	}
	l.abort()
	l.closed = true
	if l.state == LoadLoading {
		l.state = LoadIdle
	}
	close(l.done)
}

func (l *Loader[T]) abort() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
