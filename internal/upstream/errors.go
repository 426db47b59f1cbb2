package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrFetchFailed    = errors.New("fetch failed")
	ErrMutationFailed = errors.New("mutation failed")
	ErrUnauthorized   = errors.New("unauthorized")
)

// StatusError is a non-2xx answer from the upstream API.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Message)
}

func (e *StatusError) unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// FetchError reports a failed collection or record read.
type FetchError struct {
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() []error { return []error{ErrFetchFailed, e.Err} }

// MutationError reports a failed create, update or delete. Message is what
// the server said, or a generic fallback.
type MutationError struct {
	Op      string
	Message string
	Err     error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("failed to %s: %s", e.Op, e.Message)
}

func (e *MutationError) Unwrap() []error { return []error{ErrMutationFailed, e.Err} }

func fetchFailure(resource string, err error) error {
	var se *StatusError
	if errors.As(err, &se) && se.unauthorized() {
		return fmt.Errorf("fetch %s: %w", resource, ErrUnauthorized)
	}
	return &FetchError{Resource: resource, Err: err}
}

func mutationFailure(op string, err error) error {
	var se *StatusError
	if errors.As(err, &se) {
		if se.unauthorized() {
			return fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
		return &MutationError{Op: op, Message: se.Message, Err: err}
	}
	return &MutationError{Op: op, Message: "Could not reach the server, please try again", Err: err}
}
