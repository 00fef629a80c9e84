package dict

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FoldFunc maps a name to its case-insensitive key.
type FoldFunc func(string) string

// DefaultFold lower-cases s with Unicode rules. A Caser is not safe for
// concurrent use, so one is created per call.
func DefaultFold(s string) string {
	return cases.Lower(language.Und).String(s)
}
