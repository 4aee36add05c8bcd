package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2beens/healthmetrics/internal/tips"
)

// NewServer builds an MCP server with the health calculator tools: BMI,
// BMR/TDEE, body fat, ideal weight range, plus a random health tip.
// Used by the main backend when mounting MCP at /mcp (internal/server).
func NewServer(tipsManager *tips.Manager) *mcp.Server {
	svc := NewCalcService(tipsManager)
	h := NewHandler(svc)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "healthmetrics",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "calculate_bmi",
		Description: "Calculates the body mass index from height and weight, with the category (Underweight, Normal, Overweight, Obese) and a short advice. Height: height_cm, or height_feet + height_inches. Weight: weight_kg, or weight_lbs.",
	}, h.CalculateBMITool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "calculate_bmr_tdee",
		Description: "Calculates the basal metabolic rate (Mifflin St Jeor) and the total daily energy expenditure for an activity level (sedentary, light, moderate, active, very active). Args: gender, age_years, height, weight, activity_level.",
	}, h.CalculateBMRTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "estimate_body_fat",
		Description: "Estimates the body fat percentage with the US Navy tape method, with an interpretation (Essential fat, Athlete, Fit, Average, Obese). Args: gender, height, waist_cm, neck_cm; hip_cm (required for female).",
	}, h.EstimateBodyFatTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "ideal_weight_range",
		Description: "Calculates the ideal body weight by the Devine and Hamwi formulas and a healthy range around them. Args: gender, height.",
	}, h.IdealWeightRangeTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_health_tip",
		Description: "Returns one random tip from the health tips list.",
	}, h.GetHealthTipTool())

	return s
}
