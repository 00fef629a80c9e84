// Package gender defines the gender classes found in the name dictionary.
package gender

import "fmt"

// Gender is one classification class. It is a string so that callers may
// configure any symbolic value as the "no data" sentinel.
type Gender string

const (
	Male         Gender = "male"
	MostlyMale   Gender = "mostly_male"
	Female       Gender = "female"
	MostlyFemale Gender = "mostly_female"
	// Unknown is the dataset's ambiguous ("andy") marker.
	Unknown Gender = "unknown"
)

// ParseCode maps a dictionary gender token to a Gender.
func ParseCode(token string) (Gender, error) {
	switch token {
	case "M":
		return Male, nil
	case "1M", "?M":
		return MostlyMale, nil
	case "F":
		return Female, nil
	case "1F", "?F":
		return MostlyFemale, nil
	case "?":
		return Unknown, nil
	default:
		return "", fmt.Errorf("unrecognized gender code %q", token)
	}
}

// Or returns sentinel when g is Unknown, g otherwise.
func (g Gender) Or(sentinel Gender) Gender {
	if g == Unknown {
		return sentinel
	}
	return g
}

func (g Gender) String() string { return string(g) }
