// Package detector answers gender queries against a parsed name dictionary.
package detector

import (
	"fmt"

	"github.com/kamusis/gendex/internal/country"
	"github.com/kamusis/gendex/internal/dict"
	"github.com/kamusis/gendex/internal/gender"
)

// Detector is safe for concurrent use; it never modifies its index.
type Detector struct {
	idx     *dict.Index
	unknown gender.Gender
	info    LoadInfo
}

// Option configures a Detector.
type Option func(*Detector)

// WithUnknownValue sets the value returned in place of gender.Unknown and for
// names missing from the dictionary.
func WithUnknownValue(g gender.Gender) Option {
	return func(d *Detector) {
		if g != "" {
			d.unknown = g
		}
	}
}

// WithSource records where the index came from, for display only.
func WithSource(source string) Option {
	return func(d *Detector) { d.info.Source = source }
}

// New wraps an already parsed index.
func New(idx *dict.Index, opts ...Option) *Detector {
	d := &Detector{idx: idx, unknown: gender.Unknown}
	for _, o := range opts {
		o(d)
	}
	return d
}

// KnowsCountry reports whether idOrCode is a table identifier or an ISO-3166 code.
func (d *Detector) KnowsCountry(idOrCode string) bool {
	return country.Known(idOrCode)
}

// NameKnown reports whether name is in the dictionary.
func (d *Detector) NameKnown(name string) bool {
	return d.idx.Contains(name)
}

// GenderOf returns the most frequent gender for name, optionally restricted
// to one country (table identifier or ISO code, "" for none).
func (d *Detector) GenderOf(name, countryFilter string) (gender.Gender, error) {
	c, err := country.Resolve(countryFilter)
	if err != nil {
		return "", err
	}
	obs, found := Rank(d.idx, name, c)
	if !found || len(obs) == 0 {
		return d.unknown, nil
	}
	return obs[0].Gender.Or(d.unknown), nil
}

// GenderDetailOf returns every observation for name, most frequent first.
// A name missing from the dictionary yields a single observation carrying
// the unknown value with frequency 1.0.
func (d *Detector) GenderDetailOf(name, countryFilter string) ([]Observation, error) {
	c, err := country.Resolve(countryFilter)
	if err != nil {
		return nil, err
	}
	obs, found := Rank(d.idx, name, c)
	if !found {
		return []Observation{{Gender: d.unknown, Frequency: 1.0}}, nil
	}
	for i := range obs {
		obs[i].Gender = obs[i].Gender.Or(d.unknown)
	}
	return obs, nil
}

func (d *Detector) Index() *dict.Index           { return d.idx }
func (d *Detector) UnknownValue() gender.Gender { return d.unknown }
func (d *Detector) CaseSensitive() bool         { return d.idx.CaseSensitive() }
func (d *Detector) Source() string              { return d.info.Source }

// LoadInfo describes how the detector's index was obtained.
func (d *Detector) LoadInfo() LoadInfo { return d.info }

func (d *Detector) String() string {
	return fmt.Sprintf("detector{source=%q case_sensitive=%t unknown_value=%s}",
		d.info.Source, d.idx.CaseSensitive(), d.unknown)
}
