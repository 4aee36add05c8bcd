package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2beens/healthmetrics/internal/healthcalc"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service calcService
}

// NewHandler builds a handler with the given service.
func NewHandler(service calcService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}, nil
}

// BMIInput is the input for calculate_bmi.
type BMIInput struct {
	HeightCm     float64 `json:"height_cm,omitempty" jsonschema:"Height in centimeters (alternative: height_feet and height_inches)"`
	HeightFeet   int     `json:"height_feet,omitempty" jsonschema:"Height, feet part (used when height_cm not given)"`
	HeightInches float64 `json:"height_inches,omitempty" jsonschema:"Height, inches part (used when height_cm not given)"`
	WeightKg     float64 `json:"weight_kg,omitempty" jsonschema:"Weight in kilograms (alternative: weight_lbs)"`
	WeightLbs    float64 `json:"weight_lbs,omitempty" jsonschema:"Weight in pounds (used when weight_kg not given)"`
}

// CalculateBMITool returns the MCP tool handler for calculate_bmi.
func (h *Handler) CalculateBMITool() func(context.Context, *mcp.CallToolRequest, BMIInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in BMIInput) (*mcp.CallToolResult, any, error) {
		resp, err := h.service.BMI(ctx, healthcalc.BMIRequest{
			HeightCm:     in.HeightCm,
			HeightFeet:   in.HeightFeet,
			HeightInches: in.HeightInches,
			WeightKg:     in.WeightKg,
			WeightLbs:    in.WeightLbs,
		})
		if err != nil {
			return errorResult("Error calculating BMI: " + err.Error()), nil, nil
		}
		res, err := jsonResult(resp)
		if err != nil {
			return errorResult("Error encoding response: " + err.Error()), nil, nil
		}
		return res, nil, nil
	}
}

// BMRInput is the input for calculate_bmr_tdee.
type BMRInput struct {
	Gender        string  `json:"gender" jsonschema:"Gender: male or female"`
	AgeYears      int     `json:"age_years" jsonschema:"Age in years (10-120)"`
	HeightCm      float64 `json:"height_cm,omitempty" jsonschema:"Height in centimeters (alternative: height_feet and height_inches)"`
	HeightFeet    int     `json:"height_feet,omitempty" jsonschema:"Height, feet part (used when height_cm not given)"`
	HeightInches  float64 `json:"height_inches,omitempty" jsonschema:"Height, inches part (used when height_cm not given)"`
	WeightKg      float64 `json:"weight_kg,omitempty" jsonschema:"Weight in kilograms (alternative: weight_lbs)"`
	WeightLbs     float64 `json:"weight_lbs,omitempty" jsonschema:"Weight in pounds (used when weight_kg not given)"`
	ActivityLevel string  `json:"activity_level" jsonschema:"Activity level: sedentary, light, moderate, active or very active"`
}

// CalculateBMRTool returns the MCP tool handler for calculate_bmr_tdee.
func (h *Handler) CalculateBMRTool() func(context.Context, *mcp.CallToolRequest, BMRInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in BMRInput) (*mcp.CallToolResult, any, error) {
		resp, err := h.service.BMR(ctx, healthcalc.BMRRequest{
			Gender:        in.Gender,
			AgeYears:      in.AgeYears,
			HeightCm:      in.HeightCm,
			HeightFeet:    in.HeightFeet,
			HeightInches:  in.HeightInches,
			WeightKg:      in.WeightKg,
			WeightLbs:     in.WeightLbs,
			ActivityLevel: in.ActivityLevel,
		})
		if err != nil {
			return errorResult("Error calculating BMR: " + err.Error()), nil, nil
		}
		res, err := jsonResult(resp)
		if err != nil {
			return errorResult("Error encoding response: " + err.Error()), nil, nil
		}
		return res, nil, nil
	}
}

// BodyFatInput is the input for estimate_body_fat.
type BodyFatInput struct {
	Gender       string  `json:"gender" jsonschema:"Gender: male or female"`
	HeightCm     float64 `json:"height_cm,omitempty" jsonschema:"Height in centimeters (alternative: height_feet and height_inches)"`
	HeightFeet   int     `json:"height_feet,omitempty" jsonschema:"Height, feet part (used when height_cm not given)"`
	HeightInches float64 `json:"height_inches,omitempty" jsonschema:"Height, inches part (used when height_cm not given)"`
	WaistCm      float64 `json:"waist_cm" jsonschema:"Waist circumference in centimeters"`
	NeckCm       float64 `json:"neck_cm" jsonschema:"Neck circumference in centimeters"`
	HipCm        float64 `json:"hip_cm,omitempty" jsonschema:"Hip circumference in centimeters (required for female)"`
}

// EstimateBodyFatTool returns the MCP tool handler for estimate_body_fat.
func (h *Handler) EstimateBodyFatTool() func(context.Context, *mcp.CallToolRequest, BodyFatInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in BodyFatInput) (*mcp.CallToolResult, any, error) {
		resp, err := h.service.BodyFat(ctx, healthcalc.BodyFatRequest{
			Gender:       in.Gender,
			HeightCm:     in.HeightCm,
			HeightFeet:   in.HeightFeet,
			HeightInches: in.HeightInches,
			WaistCm:      in.WaistCm,
			NeckCm:       in.NeckCm,
			HipCm:        in.HipCm,
		})
		if err != nil {
			return errorResult("Error estimating body fat: " + err.Error()), nil, nil
		}
		res, err := jsonResult(resp)
		if err != nil {
			return errorResult("Error encoding response: " + err.Error()), nil, nil
		}
		return res, nil, nil
	}
}

// IdealWeightInput is the input for ideal_weight_range.
type IdealWeightInput struct {
	Gender       string  `json:"gender" jsonschema:"Gender: male or female"`
	HeightCm     float64 `json:"height_cm,omitempty" jsonschema:"Height in centimeters (alternative: height_feet and height_inches)"`
	HeightFeet   int     `json:"height_feet,omitempty" jsonschema:"Height, feet part (used when height_cm not given)"`
	HeightInches float64 `json:"height_inches,omitempty" jsonschema:"Height, inches part (used when height_cm not given)"`
}

// IdealWeightRangeTool returns the MCP tool handler for ideal_weight_range.
func (h *Handler) IdealWeightRangeTool() func(context.Context, *mcp.CallToolRequest, IdealWeightInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in IdealWeightInput) (*mcp.CallToolResult, any, error) {
		resp, err := h.service.IdealWeight(ctx, healthcalc.IdealWeightRequest{
			Gender:       in.Gender,
			HeightCm:     in.HeightCm,
			HeightFeet:   in.HeightFeet,
			HeightInches: in.HeightInches,
		})
		if err != nil {
			return errorResult("Error calculating ideal weight: " + err.Error()), nil, nil
		}
		res, err := jsonResult(resp)
		if err != nil {
			return errorResult("Error encoding response: " + err.Error()), nil, nil
		}
		return res, nil, nil
	}
}

// GetHealthTipTool returns the MCP tool handler for get_health_tip.
func (h *Handler) GetHealthTipTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: h.service.HealthTip(ctx)}},
		}, nil, nil
	}
}
