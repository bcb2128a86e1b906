package provider

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrUnsupportedResource means the resource did not classify into a shape
// the requested operation supports. This is always a caller bug; there is
// nothing to retry.
var ErrUnsupportedResource = errors.New("unsupported resource")

// StoreError wraps a failure from the underlying database, preserving the
// driver error so callers can tell a constraint violation from an
// infrastructure failure.
type StoreError struct {
	// Op names the failed operation ("insert", "query", "update", "delete").
	Op string

	// Err is the driver error, unmodified.
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Constraint reports whether the failure was a constraint violation, as
// opposed to an I/O or availability problem.
func (e *StoreError) Constraint() bool {
	var sqliteErr sqlite3.Error
	if errors.As(e.Err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
