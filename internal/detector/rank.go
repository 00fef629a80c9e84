package detector

import (
	"sort"

	"github.com/kamusis/gendex/internal/country"
	"github.com/kamusis/gendex/internal/dict"
)

// Rank lists the observations recorded for name, most frequent first.
// found is false when the name is not in the index. When filter is set only
// that country's column is consulted.
//
// Observations with equal frequency keep enumeration order: genders in
// entry order, then countries in table order.
func Rank(idx *dict.Index, name string, filter country.Country) (obs []Observation, found bool) {
	entry, ok := idx.Lookup(name)
	if !ok {
		return nil, false
	}
	width := idx.FieldWidth()

	obs = []Observation{}
	filterCol, filterOK := country.Column(filter)
	for i := 0; i < entry.Len(); i++ {
		g, row := entry.At(i)
		if filter != "" {
			if !filterOK {
				continue
			}
			if f, ok := dict.Frequency(row.Field(filterCol, width)); ok {
				obs = append(obs, Observation{Gender: g, Country: filter, Frequency: f})
			}
			continue
		}
		for col := 0; col < country.Len(); col++ {
			if f, ok := dict.Frequency(row.Field(col, width)); ok {
				obs = append(obs, Observation{Gender: g, Country: country.At(col), Frequency: f})
			}
		}
	}

	sort.SliceStable(obs, func(i, j int) bool {
		return obs[i].Frequency > obs[j].Frequency
	})
	return obs, true
}
