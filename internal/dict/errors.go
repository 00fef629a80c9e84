package dict

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord indicates a dictionary line that violates the record format.
var ErrMalformedRecord = errors.New("malformed dictionary record")

// ErrCustomFold is returned when persisting an index built with a caller-supplied fold.
var ErrCustomFold = errors.New("index uses a custom fold function")

// MalformedRecordError reports the offending line (1-based) and token.
type MalformedRecordError struct {
	Line   int
	Token  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Token)
}

// Is lets errors.Is match ErrMalformedRecord.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}
