package healthcalc

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrUnknownActivityLevel = errors.New("unknown activity level")

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "Sedentary"
	ActivityLight      ActivityLevel = "Light"
	ActivityModerate   ActivityLevel = "Moderate"
	ActivityActive     ActivityLevel = "Active"
	ActivityVeryActive ActivityLevel = "Very Active"
)

// activityMultipliers is a fixed ordered table, matched top-down.
var activityMultipliers = []struct {
	level      ActivityLevel
	multiplier float64
}{
	{ActivitySedentary, 1.2},
	{ActivityLight, 1.375},
	{ActivityModerate, 1.55},
	{ActivityActive, 1.725},
	{ActivityVeryActive, 1.9},
}

// ParseActivityLevel matches the five known levels case-insensitively.
// A frequency suffix is tolerated, e.g. "Light (1-3 days/week)".
func ParseActivityLevel(s string) (ActivityLevel, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if i := strings.Index(normalized, "("); i >= 0 {
		normalized = strings.TrimSpace(normalized[:i])
	}
	for _, am := range activityMultipliers {
		if normalized == strings.ToLower(string(am.level)) {
			return am.level, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownActivityLevel, s)
}

// CalculateBMR estimates the basal metabolic rate with the Mifflin-St Jeor
// equation, rounded to the nearest whole kcal (half away from zero).
func CalculateBMR(gender Gender, ageYears int, weightKg, heightCm float64) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if gender.IsMale() {
		bmr += 5
	} else {
		bmr -= 161
	}
	return math.Round(bmr)
}

// TDEE scales a BMR by the activity level multiplier, rounded to whole kcal.
func TDEE(bmr float64, level ActivityLevel) (float64, error) {
	for _, am := range activityMultipliers {
		if am.level == level {
			return math.Round(bmr * am.multiplier), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownActivityLevel, level)
}
