package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/fitfriend/internal/health"
)

type bmiRequest struct {
	WeightKg float64       `json:"weight"`
	HeightCm float64       `json:"height"`
	Gender   health.Gender `json:"gender"`
}

func (s *Server) handleBMI(w http.ResponseWriter, r *http.Request) {
	var req bmiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	result, err := health.BMI(req.WeightKg, req.HeightCm, req.Gender)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type tdeeRequest struct {
	WeightKg      float64              `json:"weight"`
	HeightCm      float64              `json:"height"`
	Age           int                  `json:"age"`
	Gender        health.Gender        `json:"gender"`
	ActivityLevel health.ActivityLevel `json:"activityLevel"`
}

func (s *Server) handleTDEE(w http.ResponseWriter, r *http.Request) {
	var req tdeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	result, err := health.TDEE(req.WeightKg, req.HeightCm, req.Age, req.Gender, req.ActivityLevel)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type bodyFatRequest struct {
	Gender   health.Gender `json:"gender"`
	HeightCm float64       `json:"height"`
	WeightKg float64       `json:"weight"`
	NeckCm   float64       `json:"neck"`
	WaistCm  float64       `json:"waist"`
	HipCm    float64       `json:"hip"`
}

func (s *Server) handleBodyFat(w http.ResponseWriter, r *http.Request) {
	var req bodyFatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	result, err := health.BodyFat(req.Gender, req.HeightCm, req.WeightKg, req.NeckCm, req.WaistCm, req.HipCm)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}
