package healthcalc

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/healthmetrics/internal/middleware"
	"github.com/2beens/healthmetrics/internal/telemetry/metrics"
	"github.com/2beens/healthmetrics/internal/telemetry/tracing"
	"github.com/2beens/healthmetrics/pkg"
)

type Handler struct {
	metrics *metrics.Manager
}

func NewHandler(metricsManager *metrics.Manager) *Handler {
	return &Handler{
		metrics: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	calcRateLimitAllowedPerMin int,
) {
	calcRouter := mainRouter.PathPrefix("/calc").Subrouter()
	calcRouter.HandleFunc("/bmi", handler.handleBMI).Methods("POST", "OPTIONS").Name("calc-bmi")
	calcRouter.HandleFunc("/bmr", handler.handleBMR).Methods("POST", "OPTIONS").Name("calc-bmr")
	calcRouter.HandleFunc("/bodyfat", handler.handleBodyFat).Methods("POST", "OPTIONS").Name("calc-bodyfat")
	calcRouter.HandleFunc("/idealweight", handler.handleIdealWeight).Methods("POST", "OPTIONS").Name("calc-idealweight")
	calcRouter.Use(middleware.RateLimit(rateLimiter, "calc", calcRateLimitAllowedPerMin, metricsManager))

	convertRouter := mainRouter.PathPrefix("/convert").Subrouter()
	convertRouter.HandleFunc("/height", handler.handleConvertHeight).Methods("GET").Name("convert-height")
	convertRouter.HandleFunc("/weight", handler.handleConvertWeight).Methods("GET").Name("convert-weight")
}

func (handler *Handler) invalidInput(w http.ResponseWriter, calculator string, err error) {
	handler.metrics.CounterInvalidInput.WithLabelValues(calculator).Inc()
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func (handler *Handler) writeCalcResponse(w http.ResponseWriter, calculator string, resp any) {
	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("calc %s, marshal response: %s", calculator, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	handler.metrics.CounterCalculations.WithLabelValues(calculator).Inc()
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) handleBMI(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "healthcalcHandler.bmi")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req BMIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("calc bmi, unmarshal json params: %s", err)
		http.Error(w, "error, invalid request json", http.StatusBadRequest)
		return
	}

	heightCm, err := ResolveHeightCm(req.HeightCm, req.HeightFeet, req.HeightInches)
	if err != nil {
		handler.invalidInput(w, "bmi", err)
		return
	}
	weightKg, err := ResolveWeightKg(req.WeightKg, req.WeightLbs)
	if err != nil {
		handler.invalidInput(w, "bmi", err)
		return
	}

	bmi, err := CalculateBMI(weightKg, heightCm)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.invalidInput(w, "bmi", err)
		return
	}

	category := BMICategory(bmi)
	span.SetAttributes(attribute.String("bmi.category", category))

	handler.writeCalcResponse(w, "bmi", BMIResponse{
		BMI:      bmi,
		Category: category,
		Advice:   BMIAdvice(category),
	})
}

func (handler *Handler) handleBMR(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "healthcalcHandler.bmr")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req BMRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("calc bmr, unmarshal json params: %s", err)
		http.Error(w, "error, invalid request json", http.StatusBadRequest)
		return
	}

	gender, err := ParseGender(req.Gender)
	if err != nil {
		handler.invalidInput(w, "bmr", err)
		return
	}
	if err := ValidateAge(req.AgeYears); err != nil {
		handler.invalidInput(w, "bmr", err)
		return
	}
	heightCm, err := ResolveHeightCm(req.HeightCm, req.HeightFeet, req.HeightInches)
	if err != nil {
		handler.invalidInput(w, "bmr", err)
		return
	}
	weightKg, err := ResolveWeightKg(req.WeightKg, req.WeightLbs)
	if err != nil {
		handler.invalidInput(w, "bmr", err)
		return
	}
	level, err := ParseActivityLevel(req.ActivityLevel)
	if err != nil {
		handler.invalidInput(w, "bmr", err)
		return
	}

	bmr := CalculateBMR(gender, req.AgeYears, weightKg, heightCm)
	tdee, err := TDEE(bmr, level)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.invalidInput(w, "bmr", err)
		return
	}

	span.SetAttributes(attribute.String("bmr.activityLevel", string(level)))

	handler.writeCalcResponse(w, "bmr", BMRResponse{
		BMR:           bmr,
		TDEE:          tdee,
		ActivityLevel: string(level),
	})
}

func (handler *Handler) handleBodyFat(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "healthcalcHandler.bodyfat")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req BodyFatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("calc bodyfat, unmarshal json params: %s", err)
		http.Error(w, "error, invalid request json", http.StatusBadRequest)
		return
	}

	gender, err := ParseGender(req.Gender)
	if err != nil {
		handler.invalidInput(w, "bodyfat", err)
		return
	}
	heightCm, err := ResolveHeightCm(req.HeightCm, req.HeightFeet, req.HeightInches)
	if err != nil {
		handler.invalidInput(w, "bodyfat", err)
		return
	}
	if err := ValidateTape(req.WaistCm, req.NeckCm, req.HipCm, !gender.IsMale()); err != nil {
		handler.invalidInput(w, "bodyfat", err)
		return
	}

	bf, err := BodyFatNavy(gender, req.WaistCm, req.NeckCm, heightCm, req.HipCm)
	if errors.Is(err, ErrInvalidGeometry) || errors.Is(err, ErrHipRequired) {
		span.SetStatus(codes.Error, err.Error())
		handler.metrics.CounterInvalidInput.WithLabelValues("bodyfat").Inc()
		http.Error(
			w,
			"error, invalid measurements, check that waist is larger than neck and inputs are realistic",
			http.StatusUnprocessableEntity,
		)
		return
	} else if err != nil {
		log.Errorf("calc bodyfat [%s]: %s", gender, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	interpretation := BodyFatInterpretation(gender, bf)
	span.SetAttributes(attribute.String("bodyfat.interpretation", interpretation))

	handler.writeCalcResponse(w, "bodyfat", BodyFatResponse{
		BodyFatPercent: bf,
		Interpretation: interpretation,
	})
}

func (handler *Handler) handleIdealWeight(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "healthcalcHandler.idealweight")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req IdealWeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("calc idealweight, unmarshal json params: %s", err)
		http.Error(w, "error, invalid request json", http.StatusBadRequest)
		return
	}

	gender, err := ParseGender(req.Gender)
	if err != nil {
		handler.invalidInput(w, "idealweight", err)
		return
	}
	heightCm, err := ResolveHeightCm(req.HeightCm, req.HeightFeet, req.HeightInches)
	if err != nil {
		handler.invalidInput(w, "idealweight", err)
		return
	}

	devine := IdealWeightDevine(gender, heightCm)
	hamwi := IdealWeightHamwi(gender, heightCm)
	lower, upper := IdealWeightRange(devine, hamwi)

	handler.writeCalcResponse(w, "idealweight", IdealWeightResponse{
		DevineKg:    devine,
		HamwiKg:     hamwi,
		RangeLowKg:  lower,
		RangeHighKg: upper,
	})
}

func (handler *Handler) handleConvertHeight(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "healthcalcHandler.convertHeight")
	defer span.End()

	query := r.URL.Query()
	if cmParam := query.Get("cm"); cmParam != "" {
		cm, err := strconv.ParseFloat(cmParam, 64)
		if err != nil || cm <= 0 {
			handler.invalidInput(w, "convert-height", errors.New("error, cm must be a positive number"))
			return
		}
		feet, inches := CmToFeetInches(cm)
		handler.writeCalcResponse(w, "convert-height", HeightConversionResponse{
			Cm:     cm,
			Feet:   feet,
			Inches: inches,
		})
		return
	}

	feetParam, inchesParam := query.Get("feet"), query.Get("inches")
	if feetParam == "" && inchesParam == "" {
		handler.invalidInput(w, "convert-height", errors.New("error, provide cm, or feet and inches"))
		return
	}

	var feet int
	if feetParam != "" {
		parsed, err := strconv.Atoi(feetParam)
		if err != nil || parsed < 0 {
			handler.invalidInput(w, "convert-height", errors.New("error, feet must be a non-negative number"))
			return
		}
		feet = parsed
	}
	var inches float64
	if inchesParam != "" {
		parsed, err := strconv.ParseFloat(inchesParam, 64)
		if err != nil || parsed < 0 {
			handler.invalidInput(w, "convert-height", errors.New("error, inches must be a non-negative number"))
			return
		}
		inches = parsed
	}
	if feet == 0 && inches == 0 {
		handler.invalidInput(w, "convert-height", errors.New("error, height must be positive"))
		return
	}

	handler.writeCalcResponse(w, "convert-height", HeightConversionResponse{
		Cm:     FeetInchesToCm(feet, inches),
		Feet:   feet,
		Inches: inches,
	})
}

func (handler *Handler) handleConvertWeight(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "healthcalcHandler.convertWeight")
	defer span.End()

	query := r.URL.Query()
	kgParam, lbsParam := query.Get("kg"), query.Get("lbs")

	switch {
	case kgParam != "":
		kg, err := strconv.ParseFloat(kgParam, 64)
		if err != nil || kg <= 0 {
			handler.invalidInput(w, "convert-weight", errors.New("error, kg must be a positive number"))
			return
		}
		handler.writeCalcResponse(w, "convert-weight", WeightConversionResponse{
			Kg:  kg,
			Lbs: KgToLbs(kg),
		})
	case lbsParam != "":
		lbs, err := strconv.ParseFloat(lbsParam, 64)
		if err != nil || lbs <= 0 {
			handler.invalidInput(w, "convert-weight", errors.New("error, lbs must be a positive number"))
			return
		}
		handler.writeCalcResponse(w, "convert-weight", WeightConversionResponse{
			Kg:  LbsToKg(lbs),
			Lbs: lbs,
		})
	default:
		handler.invalidInput(w, "convert-weight", errors.New("error, provide kg or lbs"))
	}
}
