// Package country holds the fixed country table of the name dictionary and
// the ISO-3166 alpha-2 codes that map onto it.
package country

import (
	"sort"
	"strings"
)

// Country identifies one frequency column of the dictionary.
type Country string

// table is ordered: position i is the column of country i in every record.
var table = []Country{
	"great_britain", "ireland", "usa", "italy", "malta", "portugal",
	"spain", "france", "belgium", "luxembourg", "the_netherlands",
	"east_frisia", "germany", "austria", "swiss", "iceland", "denmark",
	"norway", "sweden", "finland", "estonia", "latvia", "lithuania",
	"poland", "czech_republic", "slovakia", "hungary", "romania",
	"bulgaria", "bosniaand", "croatia", "kosovo", "macedonia",
	"montenegro", "serbia", "slovenia", "albania", "greece", "russia",
	"belarus", "moldova", "ukraine", "armenia", "azerbaijan", "georgia",
	"the_stans", "turkey", "arabia", "israel", "china", "india", "japan",
	"korea", "vietnam", "other_countries",
}

// ISO maps ISO-3166 alpha-2 codes to table entries. Several codes share a
// column where the dictionary groups countries together.
var ISO = map[string]Country{
	"AE": "arabia", "AL": "albania", "AM": "armenia", "AT": "austria",
	"AU": "usa", "AZ": "azerbaijan", "BA": "bosniaand", "BE": "belgium",
	"BG": "bulgaria", "BH": "arabia", "BY": "belarus", "CA": "usa",
	"CH": "swiss", "CN": "china", "CZ": "czech_republic", "DE": "germany",
	"DK": "denmark", "EE": "estonia", "EG": "arabia", "ES": "spain",
	"FI": "finland", "FR": "france", "GB": "great_britain", "GE": "georgia",
	"GR": "greece", "HK": "china", "HR": "croatia", "HU": "hungary",
	"IE": "ireland", "IL": "israel", "IN": "india", "IS": "iceland",
	"IT": "italy", "JP": "japan", "KP": "korea", "KR": "korea",
	"KZ": "the_stans", "LT": "lithuania", "LU": "luxembourg",
	"LV": "latvia", "MD": "moldova", "ME": "montenegro", "MK": "macedonia",
	"MT": "malta", "NL": "the_netherlands", "NO": "norway", "PL": "poland",
	"PT": "portugal", "QA": "arabia", "RO": "romania", "RS": "serbia",
	"RU": "russia", "SA": "arabia", "SE": "sweden", "SI": "slovenia",
	"SK": "slovakia", "TR": "turkey", "TW": "china", "UA": "ukraine",
	"US": "usa", "UZ": "the_stans", "VN": "vietnam",
}

var columns = func() map[Country]int {
	m := make(map[Country]int, len(table))
	for i, c := range table {
		m[c] = i
	}
	return m
}()

// Table returns a copy of the ordered country table.
func Table() []Country {
	out := make([]Country, len(table))
	copy(out, table)
	return out
}

// Len is the number of columns in a dictionary record.
func Len() int { return len(table) }

// At returns the country of column i.
func At(i int) Country { return table[i] }

// Column returns the record position of c.
func Column(c Country) (int, bool) {
	i, ok := columns[c]
	return i, ok
}

// Resolve turns a table identifier or an ISO-3166 code into a Country.
// An empty input means no country filter and resolves to "".
func Resolve(input string) (Country, error) {
	if input == "" {
		return "", nil
	}
	if _, ok := columns[Country(input)]; ok {
		return Country(input), nil
	}
	if c, ok := ISO[strings.ToUpper(input)]; ok {
		return c, nil
	}
	return "", &UnknownError{Input: input}
}

// Known reports whether input names a country.
func Known(input string) bool {
	if input == "" {
		return false
	}
	_, err := Resolve(input)
	return err == nil
}

// Codes returns the ISO codes mapped onto c, sorted.
func Codes(c Country) []string {
	var out []string
	for code, mapped := range ISO {
		if mapped == c {
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return out
}
