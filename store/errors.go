package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no package row exists for the identifier.
	ErrNotFound = errors.New("store: package not found")
	// ErrDuplicatePackage signals a state_code/state_number collision on insert.
	ErrDuplicatePackage = errors.New("store: package already exists for state and number")
	// ErrConflict signals that the ledger changed between the caller's read
	// and its write: the targeted revision is no longer current, or no
	// longer in the state the operation requires. Callers re-read and retry.
	ErrConflict = errors.New("store: package ledger changed concurrently")
)

// ConnectionError wraps a failure to reach the database. It is passed
// through to callers unchanged; only the storage layer knows the root
// cause, so nothing here re-interprets it.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("store: connection failure: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// StoreError wraps a query or transaction failure on an otherwise live
// connection.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
