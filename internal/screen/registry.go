package screen

import (
	"context"
	"fmt"
	"sync"
)

// Registry holds the state of one kind of screen for every device.
type Registry[T any] struct {
	mu     sync.Mutex
	states map[string]State[T]
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{states: make(map[string]State[T])}
}

func (r *Registry[T]) Get(device string) State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(device)
}

func (r *Registry[T]) get(device string) State[T] {
	s, ok := r.states[device]
	if !ok {
		return State[T]{Items: []T{}}
	}
	return s
}

// Apply runs a reducer against the device's state and stores the result.
func (r *Registry[T]) Apply(device string, reduce func(State[T]) State[T]) State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := reduce(r.get(device))
	r.states[device] = s
	return s
}

// Mutation performs the remote call of a submission. On success it returns
// the reducer that merges the result into the list.
type Mutation[T any] func(ctx context.Context) (func(State[T]) State[T], error)

// Submit runs one guarded submission: Begin, the call, then either the
// success reducer or Fail. A second Submit while the first is in flight
// returns ErrSubmitting without invoking call. A panicking call leaves the
// screen out of Submitting before the panic continues.
func (r *Registry[T]) Submit(ctx context.Context, device string, call Mutation[T]) (State[T], error) {
	r.mu.Lock()
	started, err := Begin(r.get(device))
	if err != nil {
		r.mu.Unlock()
		return started, err
	}
	r.states[device] = started
	r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			r.Apply(device, func(s State[T]) State[T] { return Fail(s, fmt.Errorf("submission aborted: %v", p)) })
			panic(p)
		}
	}()

	apply, err := call(ctx)
	if err != nil {
		return r.Apply(device, func(s State[T]) State[T] { return Fail(s, err) }), err
	}
	return r.Apply(device, apply), nil
}
