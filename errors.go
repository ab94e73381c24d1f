package vlist

import (
	"errors"
	"fmt"
)

// ErrStaleLedger is returned by SwapLedger when the ledger was built for a
// different row count than the source currently reports.
var ErrStaleLedger = errors.New("vlist: ledger row count does not match source")

// ErrInvalidHeight is returned by PatchHeight for a height that is not positive.
var ErrInvalidHeight = errors.New("vlist: row height must be positive")

// OutOfRangeError reports a row index outside [0, Count).
type OutOfRangeError struct {
	Op    string
	Row   int
	Count int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("vlist: %s: row %d out of range [0, %d)", e.Op, e.Row, e.Count)
}

// InvariantViolationError reports a tracking bug: a resource deposited twice,
// or one resource bound to two rows at once. The pass that hit it is aborted;
// the ledger is left intact and the next Reload recovers.
type InvariantViolationError struct {
	Op     string
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("vlist: %s: invariant violated: %s", e.Op, e.Detail)
}

// IsOutOfRange reports whether err is or wraps an *OutOfRangeError.
func IsOutOfRange(err error) bool {
	var oe *OutOfRangeError
	return errors.As(err, &oe)
}

// IsInvariantViolation reports whether err is or wraps an *InvariantViolationError.
func IsInvariantViolation(err error) bool {
	var ie *InvariantViolationError
	return errors.As(err, &ie)
}
