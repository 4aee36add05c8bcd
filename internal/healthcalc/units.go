package healthcalc

const (
	cmPerInch  = 2.54
	kgPerLb    = 0.45359237
	inchPerFt  = 12
	fiveFeetIn = 60
)

// CmToFeetInches splits a height in centimeters into whole feet and the
// remaining inches. Callers must bound the input, cm <= 0 is undefined.
func CmToFeetInches(cm float64) (feet int, inches float64) {
	totalInches := cm / cmPerInch
	feet = int(totalInches / inchPerFt)
	inches = totalInches - float64(feet)*inchPerFt
	return feet, inches
}

// FeetInchesToCm converts a feet+inches height to centimeters.
// No input validation, negative inputs produce negative output.
func FeetInchesToCm(feet int, inches float64) float64 {
	return (float64(feet)*inchPerFt + inches) * cmPerInch
}

func LbsToKg(lbs float64) float64 {
	return lbs * kgPerLb
}

func KgToLbs(kg float64) float64 {
	return kg / kgPerLb
}
