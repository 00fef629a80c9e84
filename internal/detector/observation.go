package detector

import (
	"github.com/kamusis/gendex/internal/country"
	"github.com/kamusis/gendex/internal/gender"
)

// Observation is one ranked (gender, country, frequency) result.
type Observation struct {
	Gender    gender.Gender   `json:"gender" yaml:"gender"`
	Country   country.Country `json:"country,omitempty" yaml:"country,omitempty"`
	Frequency float64         `json:"frequency" yaml:"frequency"`
}
