package country

import (
	"errors"
	"fmt"
)

// ErrUnknownCountry indicates an identifier that is neither a table entry nor an ISO-3166 code.
var ErrUnknownCountry = errors.New("unknown country")

// UnknownError carries the offending input.
type UnknownError struct {
	Input string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("no such country: %q", e.Input)
}

// Is lets errors.Is match ErrUnknownCountry.
func (e *UnknownError) Is(target error) bool {
	return target == ErrUnknownCountry
}
