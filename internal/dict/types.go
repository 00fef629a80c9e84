package dict

import (
	"golang.org/x/text/unicode/norm"

	"github.com/kamusis/gendex/internal/gender"
)

// RowOffset is the character column where the country fields begin.
const RowOffset = 30

// MaxCount is the largest frequency class the dictionary encodes (hex D).
const MaxCount = 13.0

// DefaultEncoding is the character set of the reference nam_dict.txt.
const DefaultEncoding = "ISO-8859-1"

// Options controls how a dictionary is parsed and how names are keyed.
type Options struct {
	CaseSensitive bool
	// Fold is applied to names when CaseSensitive is false. nil selects DefaultFold.
	Fold FoldFunc
	// Encoding is an IANA character set name. Empty selects DefaultEncoding.
	Encoding string
	// FieldWidth is the number of characters per country field. 0 selects 1.
	FieldWidth int
}

func (o Options) withDefaults() Options {
	if o.Fold == nil {
		o.Fold = DefaultFold
	}
	if o.Encoding == "" {
		o.Encoding = DefaultEncoding
	}
	if o.FieldWidth <= 0 {
		o.FieldWidth = 1
	}
	return o
}

// Row holds the country fields of one (name, gender) record, in table order.
type Row string

type slot struct {
	gender gender.Gender
	row    Row
}

// Entry is the set of rows stored for one name, in first-insertion order.
type Entry struct {
	slots []slot
}

// Len is the number of genders recorded for the name.
func (e Entry) Len() int { return len(e.slots) }

// At returns the i-th (gender, row) pair.
func (e Entry) At(i int) (gender.Gender, Row) {
	s := e.slots[i]
	return s.gender, s.row
}

// Index maps names to entries. It is immutable once returned by Parse or LoadSnapshot.
type Index struct {
	names         map[string][]slot
	caseSensitive bool
	fold          FoldFunc
	customFold    bool
	encoding      string
	fieldWidth    int
	records       int
}

func newIndex(opts Options, customFold bool) *Index {
	return &Index{
		names:         make(map[string][]slot),
		caseSensitive: opts.CaseSensitive,
		fold:          opts.Fold,
		customFold:    customFold,
		encoding:      opts.Encoding,
		fieldWidth:    opts.FieldWidth,
	}
}

// Key returns the form under which name is stored.
func (x *Index) Key(name string) string {
	k := norm.NFC.String(name)
	if !x.caseSensitive {
		k = x.fold(k)
	}
	return k
}

// Lookup returns the entry for name, applying the index's folding rule.
func (x *Index) Lookup(name string) (Entry, bool) {
	s, ok := x.names[x.Key(name)]
	if !ok {
		return Entry{}, false
	}
	return Entry{slots: s}, true
}

// Contains reports whether name is in the index.
func (x *Index) Contains(name string) bool {
	_, ok := x.names[x.Key(name)]
	return ok
}

// Len is the number of distinct keys, counting each '+' variant.
func (x *Index) Len() int { return len(x.names) }

// Records is the number of dictionary lines that produced entries.
func (x *Index) Records() int { return x.records }

func (x *Index) CaseSensitive() bool { return x.caseSensitive }
func (x *Index) FieldWidth() int     { return x.fieldWidth }
func (x *Index) Encoding() string    { return x.encoding }

func (x *Index) set(key string, g gender.Gender, row Row) {
	slots := x.names[key]
	for i := range slots {
		if slots[i].gender == g {
			slots[i].row = row
			return
		}
	}
	x.names[key] = append(slots, slot{gender: g, row: row})
}
