package healthcalc

import (
	"errors"
	"math"
)

var ErrInvalidHeight = errors.New("height must be positive")

const (
	BMICategoryInvalid     = "Invalid"
	BMICategoryUnderweight = "Underweight"
	BMICategoryNormal      = "Normal"
	BMICategoryOverweight  = "Overweight"
	BMICategoryObese       = "Obese"
)

// bmiCategories is evaluated top-down, the first upper bound
// greater than the value wins. Lower edges are inclusive.
var bmiCategories = []struct {
	upTo  float64
	label string
}{
	{18.5, BMICategoryUnderweight},
	{25, BMICategoryNormal},
	{30, BMICategoryOverweight},
	{math.Inf(1), BMICategoryObese},
}

// CalculateBMI returns weightKg / (heightCm/100)^2, rounded to 2 decimals.
func CalculateBMI(weightKg, heightCm float64) (float64, error) {
	if heightCm <= 0 {
		return 0, ErrInvalidHeight
	}
	heightM := heightCm / 100
	return roundTo(weightKg/(heightM*heightM), 2), nil
}

func BMICategory(bmi float64) string {
	if math.IsNaN(bmi) || bmi <= 0 {
		return BMICategoryInvalid
	}
	for _, c := range bmiCategories {
		if bmi < c.upTo {
			return c.label
		}
	}
	return BMICategoryObese
}

// BMIAdvice returns the short guidance line shown next to a BMI result.
func BMIAdvice(category string) string {
	switch category {
	case BMICategoryNormal:
		return "Great — keep a balanced diet and regular activity! 🥦🏃"
	case BMICategoryUnderweight:
		return "You are underweight. Consider increasing calorie intake and strength training."
	case BMICategoryOverweight, BMICategoryObese:
		return "Work on a mix of cardio and strength training; watch portion sizes."
	default:
		return "Please enter valid height and weight."
	}
}
