// Package screen models one entity-management screen (a list plus its
// add/edit modal) as an immutable value updated by pure reducers.
package screen

import (
	"errors"
	"slices"
)

// ErrSubmitting is returned when a submission is attempted while another
// one is still in flight on the same screen.
var ErrSubmitting = errors.New("a submission is already in progress")

type Mode int

const (
	Viewing Mode = iota
	Editing
	Submitting
)

func (m Mode) String() string {
	switch m {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	default:
		return "viewing"
	}
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Identified records can be replaced or removed by id.
type Identified interface {
	RecordID() string
}

// State is never mutated in place; every reducer returns a new value with
// its own Items slice.
type State[T any] struct {
	Mode  Mode   `json:"mode"`
	Items []T    `json:"items"`
	Error string `json:"error,omitempty"`

	// resume is the mode Begin left; Fail returns to it.
	resume Mode
}

// Open shows the modal. It does nothing while a submission is running.
func Open[T any](s State[T]) State[T] {
	if s.Mode == Submitting {
		return s
	}
	s.Items = slices.Clone(s.Items)
	s.Mode = Editing
	s.Error = ""
	return s
}

// Close hides the modal without touching the list.
func Close[T any](s State[T]) State[T] {
	if s.Mode == Submitting {
		return s
	}
	s.Items = slices.Clone(s.Items)
	s.Mode = Viewing
	s.Error = ""
	return s
}

// Begin enters Submitting, or fails with ErrSubmitting if already there.
func Begin[T any](s State[T]) (State[T], error) {
	if s.Mode == Submitting {
		return s, ErrSubmitting
	}
	s.Items = slices.Clone(s.Items)
	s.resume = s.Mode
	s.Mode = Submitting
	s.Error = ""
	return s, nil
}

// Fail returns to the mode the screen had before Begin, so an open modal
// stays open and a list-level delete stays on the list. The list is untouched.
func Fail[T any](s State[T], err error) State[T] {
	s.Items = slices.Clone(s.Items)
	s.Mode = s.resume
	if s.Mode == Submitting {
		s.Mode = Editing
	}
	s.Error = "Something went wrong"
	if err != nil {
		s.Error = err.Error()
	}
	return s
}

// Loaded replaces the list wholesale after a refetch.
func Loaded[T any](s State[T], items []T) State[T] {
	s.Items = slices.Clone(items)
	if s.Items == nil {
		s.Items = []T{}
	}
	return s
}

// Added prepends a created record and closes the modal.
func Added[T any](s State[T], item T) State[T] {
	items := make([]T, 0, len(s.Items)+1)
	items = append(items, item)
	items = append(items, s.Items...)
	return State[T]{Mode: Viewing, Items: items}
}

// Edited replaces the record with the same id in place and closes the modal.
func Edited[T Identified](s State[T], item T) State[T] {
	items := slices.Clone(s.Items)
	for i := range items {
		if items[i].RecordID() == item.RecordID() {
			items[i] = item
		}
	}
	return State[T]{Mode: Viewing, Items: items}
}

// Deleted drops every record with id and closes the modal.
func Deleted[T Identified](s State[T], id string) State[T] {
	items := make([]T, 0, len(s.Items))
	for _, it := range s.Items {
		if it.RecordID() != id {
			items = append(items, it)
		}
	}
	return State[T]{Mode: Viewing, Items: items}
}
