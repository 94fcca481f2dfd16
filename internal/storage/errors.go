package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested symbol doesn't exist
	ErrNotFound = errors.New("not found")
)

// StoreError wraps a driver diagnostic with the error kind and the operation
// that produced it. Both the kind (types.ErrWrite, types.ErrRead, ...) and the
// driver error are reachable through errors.Is and errors.As.
type StoreError struct {
	Kind error
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func storeError(kind error, op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Kind: kind, Op: op, Err: err}
}
