package healthcalc

// IdealWeightDevine returns the Devine estimate in kg, 1 decimal:
// 50.0 kg (male) or 45.5 kg (female) at 152.4 cm, plus 2.3 kg per
// inch of height over that.
func IdealWeightDevine(gender Gender, heightCm float64) float64 {
	base := 45.5
	if gender.IsMale() {
		base = 50.0
	}
	return roundTo(base+2.3*extraInchesOverFiveFeet(heightCm), 1)
}

// IdealWeightHamwi returns the Hamwi estimate in kg, 1 decimal:
// base 48.0 kg with 2.7 kg per extra inch for males, 45.5 kg with
// 2.3 kg per extra inch for females.
func IdealWeightHamwi(gender Gender, heightCm float64) float64 {
	base, perInch := 45.5, 2.3
	if gender.IsMale() {
		base, perInch = 48.0, 2.7
	}
	return roundTo(base+perInch*extraInchesOverFiveFeet(heightCm), 1)
}

// IdealWeightRange widens the two estimates into a +-5% band:
// lower = 0.95 x min, upper = 1.05 x max, 1 decimal each.
func IdealWeightRange(devine, hamwi float64) (lower, upper float64) {
	lower = roundTo(0.95*min(devine, hamwi), 1)
	upper = roundTo(1.05*max(devine, hamwi), 1)
	return lower, upper
}

func extraInchesOverFiveFeet(heightCm float64) float64 {
	return max(0, heightCm/cmPerInch-fiveFeetIn)
}
