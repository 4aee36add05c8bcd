package mcp

import (
	"context"

	"github.com/2beens/healthmetrics/internal/healthcalc"
)

// tipProvider serves health tips (for dependency injection and testing).
type tipProvider interface {
	RandomTip() string
}

// calcService provides the health calculators and tips to the MCP tools.
// Used by Handler for testability.
type calcService interface {
	BMI(ctx context.Context, req healthcalc.BMIRequest) (healthcalc.BMIResponse, error)
	BMR(ctx context.Context, req healthcalc.BMRRequest) (healthcalc.BMRResponse, error)
	BodyFat(ctx context.Context, req healthcalc.BodyFatRequest) (healthcalc.BodyFatResponse, error)
	IdealWeight(ctx context.Context, req healthcalc.IdealWeightRequest) (healthcalc.IdealWeightResponse, error)
	HealthTip(ctx context.Context) string
}

// CalcService implements the health calculators on top of the healthcalc
// package, plus a random tip from the tips list.
type CalcService struct {
	tips tipProvider
}

// NewCalcService builds a CalcService with the given tip provider.
func NewCalcService(tips tipProvider) *CalcService {
	return &CalcService{
		tips: tips,
	}
}

// BMI computes the body mass index with its category and advice.
func (s *CalcService) BMI(_ context.Context, req healthcalc.BMIRequest) (healthcalc.BMIResponse, error) {
	heightCm, err := healthcalc.ResolveHeightCm(req.HeightCm, req.HeightFeet, req.HeightInches)
	if err != nil {
		return healthcalc.BMIResponse{}, err
	}
	weightKg, err := healthcalc.ResolveWeightKg(req.WeightKg, req.WeightLbs)
	if err != nil {
		return healthcalc.BMIResponse{}, err
	}

	bmi, err := healthcalc.CalculateBMI(weightKg, heightCm)
	if err != nil {
		return healthcalc.BMIResponse{}, err
	}

	category := healthcalc.BMICategory(bmi)
	return healthcalc.BMIResponse{
		BMI:      bmi,
		Category: category,
		Advice:   healthcalc.BMIAdvice(category),
	}, nil
}

// BMR computes the basal metabolic rate (Mifflin St Jeor) and the daily
// energy expenditure for the given activity level.
func (s *CalcService) BMR(_ context.Context, req healthcalc.BMRRequest) (healthcalc.BMRResponse, error) {
	gender, err := healthcalc.ParseGender(req.Gender)
	if err != nil {
		return healthcalc.BMRResponse{}, err
	}
	if err := healthcalc.ValidateAge(req.AgeYears); err != nil {
		return healthcalc.BMRResponse{}, err
	}
	heightCm, err := healthcalc.ResolveHeightCm(req.HeightCm, req.HeightFeet, req.HeightInches)
	if err != nil {
		return healthcalc.BMRResponse{}, err
	}
	weightKg, err := healthcalc.ResolveWeightKg(req.WeightKg, req.WeightLbs)
	if err != nil {
		return healthcalc.BMRResponse{}, err
	}
	level, err := healthcalc.ParseActivityLevel(req.ActivityLevel)
	if err != nil {
		return healthcalc.BMRResponse{}, err
	}

	bmr := healthcalc.CalculateBMR(gender, req.AgeYears, weightKg, heightCm)
	tdee, err := healthcalc.TDEE(bmr, level)
	if err != nil {
		return healthcalc.BMRResponse{}, err
	}

	return healthcalc.BMRResponse{
		BMR:           bmr,
		TDEE:          tdee,
		ActivityLevel: string(level),
	}, nil
}

// BodyFat estimates the body fat percentage with the US Navy tape method.
func (s *CalcService) BodyFat(_ context.Context, req healthcalc.BodyFatRequest) (healthcalc.BodyFatResponse, error) {
	gender, err := healthcalc.ParseGender(req.Gender)
	if err != nil {
		return healthcalc.BodyFatResponse{}, err
	}
	heightCm, err := healthcalc.ResolveHeightCm(req.HeightCm, req.HeightFeet, req.HeightInches)
	if err != nil {
		return healthcalc.BodyFatResponse{}, err
	}
	if err := healthcalc.ValidateTape(req.WaistCm, req.NeckCm, req.HipCm, !gender.IsMale()); err != nil {
		return healthcalc.BodyFatResponse{}, err
	}

	bf, err := healthcalc.BodyFatNavy(gender, req.WaistCm, req.NeckCm, heightCm, req.HipCm)
	if err != nil {
		return healthcalc.BodyFatResponse{}, err
	}

	return healthcalc.BodyFatResponse{
		BodyFatPercent: bf,
		Interpretation: healthcalc.BodyFatInterpretation(gender, bf),
	}, nil
}

// IdealWeight computes the Devine and Hamwi ideal weights and the
// healthy range around them.
func (s *CalcService) IdealWeight(_ context.Context, req healthcalc.IdealWeightRequest) (healthcalc.IdealWeightResponse, error) {
	gender, err := healthcalc.ParseGender(req.Gender)
	if err != nil {
		return healthcalc.IdealWeightResponse{}, err
	}
	heightCm, err := healthcalc.ResolveHeightCm(req.HeightCm, req.HeightFeet, req.HeightInches)
	if err != nil {
		return healthcalc.IdealWeightResponse{}, err
	}

	devine := healthcalc.IdealWeightDevine(gender, heightCm)
	hamwi := healthcalc.IdealWeightHamwi(gender, heightCm)
	lower, upper := healthcalc.IdealWeightRange(devine, hamwi)

	return healthcalc.IdealWeightResponse{
		DevineKg:    devine,
		HamwiKg:     hamwi,
		RangeLowKg:  lower,
		RangeHighKg: upper,
	}, nil
}

// HealthTip returns one random tip from the tips list.
func (s *CalcService) HealthTip(_ context.Context) string {
	return s.tips.RandomTip()
}
