package ulid

import (
	"errors"
	"fmt"
)

var (
	// ErrNotBase32 reports a character outside the ULID alphabet.
	ErrNotBase32 = errors.New("not a ulid base32 string")

	// ErrSequenceExhausted reports that the 16 character random part was
	// already at its maximum value when an increment was requested. A
	// monotonic generator hits this only after 2^80 identifiers within a
	// single millisecond.
	ErrSequenceExhausted = errors.New("ulid sequence exhausted within millisecond")
)

// InvalidTimestampError reports a timestamp that cannot be encoded,
// carrying the constraint that was violated.
type InvalidTimestampError struct {
	Time       int64
	Constraint string
}

func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("invalid ulid timestamp %d: %s", e.Time, e.Constraint)
}
