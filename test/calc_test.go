package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/healthmetrics/internal/healthcalc"
)

func (s *IntegrationTestSuite) postCalc(ctx context.Context, t *testing.T, path string, body any) *http.Response {
	reqJson, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "POST", serverEndpoint+path, bytes.NewBuffer(reqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	return resp
}

func (s *IntegrationTestSuite) TestCalcBMI() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("metric units", func(t *testing.T) {
		resp := s.postCalc(ctx, t, "/calc/bmi", healthcalc.BMIRequest{
			HeightCm: 170,
			WeightKg: 70,
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var bmiResp healthcalc.BMIResponse
		require.NoError(t, json.Unmarshal(respBytes, &bmiResp))
		assert.Equal(t, 24.22, bmiResp.BMI)
		assert.Equal(t, "Normal", bmiResp.Category)
		assert.NotEmpty(t, bmiResp.Advice)
	})

	t.Run("imperial units", func(t *testing.T) {
		resp := s.postCalc(ctx, t, "/calc/bmi", healthcalc.BMIRequest{
			HeightFeet:   5,
			HeightInches: 7,
			WeightLbs:    154,
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var bmiResp healthcalc.BMIResponse
		require.NoError(t, json.Unmarshal(respBytes, &bmiResp))
		assert.Equal(t, 24.12, bmiResp.BMI)
		assert.Equal(t, "Normal", bmiResp.Category)
	})

	t.Run("height out of range", func(t *testing.T) {
		resp := s.postCalc(ctx, t, "/calc/bmi", healthcalc.BMIRequest{
			HeightCm: 30,
			WeightKg: 70,
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "error, height must be between 50 and 300 cm", strings.TrimSpace(string(respBytes)))
	})
}

func (s *IntegrationTestSuite) TestCalcBMR() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("male, moderate activity", func(t *testing.T) {
		resp := s.postCalc(ctx, t, "/calc/bmr", healthcalc.BMRRequest{
			Gender:        "male",
			AgeYears:      30,
			HeightCm:      170,
			WeightKg:      70,
			ActivityLevel: "moderate",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var bmrResp healthcalc.BMRResponse
		require.NoError(t, json.Unmarshal(respBytes, &bmrResp))
		assert.Equal(t, float64(1618), bmrResp.BMR)
		assert.Equal(t, float64(2508), bmrResp.TDEE)
		assert.Equal(t, "Moderate", bmrResp.ActivityLevel)
	})

	t.Run("unknown activity level", func(t *testing.T) {
		resp := s.postCalc(ctx, t, "/calc/bmr", healthcalc.BMRRequest{
			Gender:        "male",
			AgeYears:      30,
			HeightCm:      170,
			WeightKg:      70,
			ActivityLevel: "couch surfing",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func (s *IntegrationTestSuite) TestCalcBodyFat() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("male", func(t *testing.T) {
		resp := s.postCalc(ctx, t, "/calc/bodyfat", healthcalc.BodyFatRequest{
			Gender:   "male",
			HeightCm: 170,
			WaistCm:  80,
			NeckCm:   37,
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var bfResp healthcalc.BodyFatResponse
		require.NoError(t, json.Unmarshal(respBytes, &bfResp))
		assert.Equal(t, 14.6, bfResp.BodyFatPercent)
		assert.Equal(t, "Fit", bfResp.Interpretation)
	})

	t.Run("female", func(t *testing.T) {
		resp := s.postCalc(ctx, t, "/calc/bodyfat", healthcalc.BodyFatRequest{
			Gender:   "female",
			HeightCm: 170,
			WaistCm:  80,
			NeckCm:   37,
			HipCm:    95,
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var bfResp healthcalc.BodyFatResponse
		require.NoError(t, json.Unmarshal(respBytes, &bfResp))
		assert.Equal(t, 26.1, bfResp.BodyFatPercent)
		assert.Equal(t, "Average", bfResp.Interpretation)
	})

	t.Run("waist not larger than neck", func(t *testing.T) {
		resp := s.postCalc(ctx, t, "/calc/bodyfat", healthcalc.BodyFatRequest{
			Gender:   "male",
			HeightCm: 170,
			WaistCm:  41,
			NeckCm:   47,
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func (s *IntegrationTestSuite) TestCalcIdealWeight() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("male", func(t *testing.T) {
		resp := s.postCalc(ctx, t, "/calc/idealweight", healthcalc.IdealWeightRequest{
			Gender:   "male",
			HeightCm: 170,
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var iwResp healthcalc.IdealWeightResponse
		require.NoError(t, json.Unmarshal(respBytes, &iwResp))
		assert.Equal(t, 65.9, iwResp.DevineKg)
		assert.Equal(t, 66.7, iwResp.HamwiKg)
		assert.Equal(t, 62.6, iwResp.RangeLowKg)
		assert.Equal(t, 70.0, iwResp.RangeHighKg)
	})

	t.Run("unknown gender", func(t *testing.T) {
		resp := s.postCalc(ctx, t, "/calc/idealweight", healthcalc.IdealWeightRequest{
			Gender:   "dunno",
			HeightCm: 170,
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func (s *IntegrationTestSuite) TestConverters() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	get := func(t *testing.T, path string) *http.Response {
		req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+path, nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("height cm to feet and inches", func(t *testing.T) {
		resp := get(t, "/convert/height?cm=170")
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var hResp healthcalc.HeightConversionResponse
		require.NoError(t, json.Unmarshal(respBytes, &hResp))
		assert.Equal(t, 5, hResp.Feet)
		assert.InDelta(t, 6.929, hResp.Inches, 0.001)
	})

	t.Run("height feet and inches to cm", func(t *testing.T) {
		resp := get(t, "/convert/height?feet=5&inches=7")
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var hResp healthcalc.HeightConversionResponse
		require.NoError(t, json.Unmarshal(respBytes, &hResp))
		assert.InDelta(t, 170.18, hResp.Cm, 0.001)
	})

	t.Run("weight kg to lbs", func(t *testing.T) {
		resp := get(t, "/convert/weight?kg=70")
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var wResp healthcalc.WeightConversionResponse
		require.NoError(t, json.Unmarshal(respBytes, &wResp))
		assert.InDelta(t, 154.324, wResp.Lbs, 0.001)
	})

	t.Run("weight lbs to kg", func(t *testing.T) {
		resp := get(t, "/convert/weight?lbs=154")
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var wResp healthcalc.WeightConversionResponse
		require.NoError(t, json.Unmarshal(respBytes, &wResp))
		assert.InDelta(t, 69.853, wResp.Kg, 0.001)
	})

	t.Run("no params", func(t *testing.T) {
		resp := get(t, "/convert/weight")
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func (s *IntegrationTestSuite) TestCalcRateLimiting() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// other tests in the suite spend the per-minute calc allowance too, start from a clean slate
	require.NoError(t, s.redisDataCleanup(ctx))

	bmiReq := healthcalc.BMIRequest{HeightCm: 170, WeightKg: 70}
	for i := 1; i <= calcRateLimitPerMin+5; i++ {
		resp := s.postCalc(ctx, t, "/calc/bmi", bmiReq)

		if i <= calcRateLimitPerMin {
			require.Equal(t, http.StatusOK, resp.StatusCode, "iteration: %d", i)
			assert.Empty(t, resp.Header.Get("Retry-After"), "iteration: %d", i)
		} else {
			require.Equal(t, http.StatusTooManyRequests, resp.StatusCode, "iteration: %d", i)
			retryAfter, err := strconv.ParseFloat(resp.Header.Get("Retry-After"), 64)
			require.NoError(t, err, "iteration: %d", i)
			assert.True(t, retryAfter > 0, "iteration: %d", i)
		}

		assert.NoError(t, resp.Body.Close())
	}

	// converters are not rate limited
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/convert/weight?kg=70", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, resp.Body.Close())

	require.NoError(t, s.redisDataCleanup(ctx))
}
