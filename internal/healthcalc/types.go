package healthcalc

import "errors"

// accepted measurement ranges, requests outside of them are rejected
const (
	MinHeightCm = 50.0
	MaxHeightCm = 300.0
	MinWeightKg = 20.0
	MaxWeightKg = 400.0
	MinAgeYears = 10
	MaxAgeYears = 120
	MinNeckCm   = 20.0
	MaxNeckCm   = 60.0
	MinWaistCm  = 40.0
	MaxWaistCm  = 200.0
	MinHipCm    = 60.0
	MaxHipCm    = 200.0
)

var (
	errHeightRange = errors.New("error, height must be between 50 and 300 cm")
	errWeightRange = errors.New("error, weight must be between 20 and 400 kg")
	errAgeRange    = errors.New("error, age must be between 10 and 120 years")
	errNeckRange   = errors.New("error, neck must be between 20 and 60 cm")
	errWaistRange  = errors.New("error, waist must be between 40 and 200 cm")
	errHipRange    = errors.New("error, hip must be between 60 and 200 cm")
)

// BMIRequest takes height as either cm or feet and inches,
// and weight as either kg or lbs. Metric wins if both are set.
type BMIRequest struct {
	HeightCm     float64 `json:"heightCm"`
	HeightFeet   int     `json:"heightFeet"`
	HeightInches float64 `json:"heightInches"`
	WeightKg     float64 `json:"weightKg"`
	WeightLbs    float64 `json:"weightLbs"`
}

type BMIResponse struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
	Advice   string  `json:"advice"`
}

type BMRRequest struct {
	Gender        string  `json:"gender"`
	AgeYears      int     `json:"ageYears"`
	HeightCm      float64 `json:"heightCm"`
	HeightFeet    int     `json:"heightFeet"`
	HeightInches  float64 `json:"heightInches"`
	WeightKg      float64 `json:"weightKg"`
	WeightLbs     float64 `json:"weightLbs"`
	ActivityLevel string  `json:"activityLevel"`
}

type BMRResponse struct {
	BMR           float64 `json:"bmr"`
	TDEE          float64 `json:"tdee"`
	ActivityLevel string  `json:"activityLevel"`
}

type BodyFatRequest struct {
	Gender       string  `json:"gender"`
	HeightCm     float64 `json:"heightCm"`
	HeightFeet   int     `json:"heightFeet"`
	HeightInches float64 `json:"heightInches"`
	WaistCm      float64 `json:"waistCm"`
	NeckCm       float64 `json:"neckCm"`
	HipCm        float64 `json:"hipCm"`
}

type BodyFatResponse struct {
	BodyFatPercent float64 `json:"bodyFatPercent"`
	Interpretation string  `json:"interpretation"`
}

type IdealWeightRequest struct {
	Gender       string  `json:"gender"`
	HeightCm     float64 `json:"heightCm"`
	HeightFeet   int     `json:"heightFeet"`
	HeightInches float64 `json:"heightInches"`
}

type IdealWeightResponse struct {
	DevineKg    float64 `json:"devineKg"`
	HamwiKg     float64 `json:"hamwiKg"`
	RangeLowKg  float64 `json:"rangeLowKg"`
	RangeHighKg float64 `json:"rangeHighKg"`
}

type HeightConversionResponse struct {
	Cm     float64 `json:"cm"`
	Feet   int     `json:"feet"`
	Inches float64 `json:"inches"`
}

type WeightConversionResponse struct {
	Kg  float64 `json:"kg"`
	Lbs float64 `json:"lbs"`
}

// ResolveHeightCm returns the height in cm from either metric or
// imperial input, metric wins when both are given.
func ResolveHeightCm(cm float64, feet int, inches float64) (float64, error) {
	heightCm := cm
	if heightCm == 0 && (feet != 0 || inches != 0) {
		heightCm = FeetInchesToCm(feet, inches)
	}
	if heightCm < MinHeightCm || heightCm > MaxHeightCm {
		return 0, errHeightRange
	}
	return heightCm, nil
}

func ResolveWeightKg(kg, lbs float64) (float64, error) {
	weightKg := kg
	if weightKg == 0 && lbs != 0 {
		weightKg = LbsToKg(lbs)
	}
	if weightKg < MinWeightKg || weightKg > MaxWeightKg {
		return 0, errWeightRange
	}
	return weightKg, nil
}

func ValidateAge(ageYears int) error {
	if ageYears < MinAgeYears || ageYears > MaxAgeYears {
		return errAgeRange
	}
	return nil
}

func ValidateTape(waistCm, neckCm, hipCm float64, hipRequired bool) error {
	if neckCm < MinNeckCm || neckCm > MaxNeckCm {
		return errNeckRange
	}
	if waistCm < MinWaistCm || waistCm > MaxWaistCm {
		return errWaistRange
	}
	if hipRequired || hipCm != 0 {
		if hipCm < MinHipCm || hipCm > MaxHipCm {
			return errHipRange
		}
	}
	return nil
}
