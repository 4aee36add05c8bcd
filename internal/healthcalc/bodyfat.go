package healthcalc

import (
	"errors"
	"math"
)

var (
	ErrInvalidGeometry = errors.New("invalid measurements")
	ErrHipRequired     = errors.New("hip circumference is required")
)

const BodyFatInvalid = "Invalid"

type bodyFatBucket struct {
	upTo  float64
	label string
}

// Interpretation buckets, per gender, evaluated top-down.
var (
	bodyFatBucketsMale = []bodyFatBucket{
		{6, "Essential fat"},
		{14, "Athlete"},
		{18, "Fit"},
		{25, "Average"},
		{math.Inf(1), "Obese"},
	}
	bodyFatBucketsFemale = []bodyFatBucket{
		{14, "Essential fat"},
		{21, "Athlete"},
		{25, "Fit"},
		{32, "Average"},
		{math.Inf(1), "Obese"},
	}
)

// BodyFatNavy estimates the body fat percentage from circumference
// measurements via the US Navy method, rounded to 1 decimal. The log
// domain is guarded up front: males need waist > neck, females need a
// positive hip circumference and waist+hip > neck. hipCm is ignored
// for males.
func BodyFatNavy(gender Gender, waistCm, neckCm, heightCm, hipCm float64) (float64, error) {
	if heightCm <= 0 {
		return 0, ErrInvalidGeometry
	}

	var val float64
	if gender.IsMale() {
		if waistCm <= neckCm {
			return 0, ErrInvalidGeometry
		}
		val = 1.0324 - 0.19077*math.Log10(waistCm-neckCm) + 0.15456*math.Log10(heightCm)
	} else {
		if hipCm <= 0 {
			return 0, ErrHipRequired
		}
		if waistCm+hipCm <= neckCm {
			return 0, ErrInvalidGeometry
		}
		val = 1.29579 - 0.35004*math.Log10(waistCm+hipCm-neckCm) + 0.22100*math.Log10(heightCm)
	}

	if val == 0 {
		return 0, ErrInvalidGeometry
	}

	return roundTo(495/val-450, 1), nil
}

// BodyFatInterpretation buckets an estimate into a fitness label.
// A negative estimate still lands in the leanest bucket, the Navy
// formula can produce one for very lean bodies.
func BodyFatInterpretation(gender Gender, bf float64) string {
	if math.IsNaN(bf) {
		return BodyFatInvalid
	}

	buckets := bodyFatBucketsFemale
	if gender.IsMale() {
		buckets = bodyFatBucketsMale
	}
	for _, b := range buckets {
		if bf < b.upTo {
			return b.label
		}
	}
	return buckets[len(buckets)-1].label
}
