package dict

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field returns the characters of column col for the given field width.
// Columns past the end of the row are blank.
func (r Row) Field(col, width int) string {
	s := string(r)
	start := col * width
	for i := 0; i < start; i++ {
		if s == "" {
			return ""
		}
		_, n := utf8.DecodeRuneInString(s)
		s = s[n:]
	}
	end := 0
	for i := 0; i < width && end < len(s); i++ {
		_, n := utf8.DecodeRuneInString(s[end:])
		end += n
	}
	return s[:end]
}

// Frequency decodes a country field: its hex value over MaxCount, rounded to
// two decimals. ok is false for blank fields and fields that are not hex.
func Frequency(field string) (freq float64, ok bool) {
	f := strings.TrimSpace(field)
	if f == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(f, 16, 32)
	if err != nil {
		return 0, false
	}
	return math.Round(float64(v)/MaxCount*100) / 100, true
}
