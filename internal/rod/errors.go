package rod

import (
	"errors"
	"fmt"
)

// Domain errors for trace generation.
var (
	// ErrInvalidInput is matched by every *InvalidInputError.
	ErrInvalidInput = errors.New("rod: invalid input")

	// ErrInconsistentCuts indicates a cut array whose decomposition walk
	// does not terminate cleanly at zero.
	ErrInconsistentCuts = errors.New("rod: inconsistent cut array")
)

// InvalidInputError reports why a (prices, n) pair was rejected. It is
// returned before any step is produced.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// CutError describes where a decomposition walk over s went wrong.
type CutError struct {
	Length    int
	Remaining int
	Cut       int
}

func (e *CutError) Error() string {
	return fmt.Sprintf("rod: s[%d] = %d does not fit remaining length %d (walk from %d)",
		e.Remaining, e.Cut, e.Remaining, e.Length)
}

func (e *CutError) Unwrap() error {
	return ErrInconsistentCuts
}
