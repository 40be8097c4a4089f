// File: future.go
// Title: Deferred Values
// Description: Future is a value that settles later, exactly once, with a
//              value or an error. Functions return a *Future to produce a
//              value asynchronously; callbacks registered with Then run on
//              their own goroutine after settlement.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package value

import (
	"context"
	"fmt"
	"sync"
)

// Future is a deferred value
type Future struct {
	mu        sync.Mutex
	done      chan struct{}
	settled   bool
	value     Value
	err       error
	callbacks []func(Value, error)
}

// NewFuture creates an unsettled future
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved creates a future already settled with v
func Resolved(v Value) *Future {
	f := NewFuture()
	f.Resolve(v)
	return f
}

// Rejected creates a future already settled with err
func Rejected(err error) *Future {
	f := NewFuture()
	f.Reject(err)
	return f
}

// Go runs fn on a new goroutine and settles the returned future with its
// result. A panic in fn rejects the future.
func Go(ctx context.Context, fn func(ctx context.Context) (Value, error)) *Future {
	f := NewFuture()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				f.Reject(fmt.Errorf("panic in deferred function: %v", r))
			}
		}()
		v, err := fn(ctx)
		if err != nil {
			f.Reject(err)
			return
		}
		f.Resolve(v)
	}()
	return f
}

// Resolve settles the future with v. A *Future argument is chained. It
// reports false when the future had already settled.
func (f *Future) Resolve(v Value) bool {
	if inner, ok := v.(*Future); ok {
		if inner == f {
			return f.settle(nil, fmt.Errorf("future resolved with itself"))
		}
		inner.Then(func(v Value, err error) {
			f.settle(v, err)
		})
		return true
	}
	return f.settle(Normalize(v), nil)
}

// Reject settles the future with err
func (f *Future) Reject(err error) bool {
	if err == nil {
		err = fmt.Errorf("future rejected without error")
	}
	return f.settle(nil, err)
}

func (f *Future) settle(v Value, err error) bool {
	f.mu.Lock()
	if f.settled {
		f.mu.Unlock()
		return false
	}
	f.settled = true
	f.value = v
	f.err = err
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, cb := range callbacks {
		go cb(v, err)
	}
	return true
}

// Then registers fn to run once the future settles. fn always runs on a new
// goroutine, also when the future has already settled.
func (f *Future) Then(fn func(Value, error)) {
	f.mu.Lock()
	if !f.settled {
		f.callbacks = append(f.callbacks, fn)
		f.mu.Unlock()
		return
	}
	v, err := f.value, f.err
	f.mu.Unlock()
	go fn(v, err)
}

// Poll returns the outcome without blocking; settled is false while the
// value is outstanding.
func (f *Future) Poll() (Value, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.settled, f.err
}

// IsSettled reports whether the future has a value or an error
func (f *Future) IsSettled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settled
}

// Done is closed when the future settles
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future settles or ctx is done
func (f *Future) Wait(ctx context.Context) (Value, error) {
	select {
	case <-f.done:
		v, _, err := f.Poll()
		return v, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// String describes the state of the future
func (f *Future) String() string {
	v, settled, err := f.Poll()
	switch {
	case !settled:
		return "<pending>"
	case err != nil:
		return "<rejected: " + err.Error() + ">"
	default:
		return "<resolved: " + Format(v) + ">"
	}
}
