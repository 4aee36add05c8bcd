package healthcalc

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownGender = errors.New("unknown gender")

// Gender selects the coefficients of the gender-specific formulas.
// The calculators themselves treat everything that does not match the
// male aliases as female; strict validation happens via ParseGender
// at the request boundary.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender accepts "male"/"m" and "female"/"f", case-insensitive.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale, nil
	case "female", "f":
		return GenderFemale, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGender, s)
}

func (g Gender) IsMale() bool {
	switch strings.ToLower(strings.TrimSpace(string(g))) {
	case "male", "m":
		return true
	}
	return false
}
