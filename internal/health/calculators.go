// Package health implements the BMI, TDEE, and body-fat calculators.
package health

import (
	"fmt"
	"math"
)

// Gender selects between the male and female variants of each formula.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// BMIResult is the output of the BMI calculator.
type BMIResult struct {
	BMI           float64 `json:"bmi"`
	Category      string  `json:"category"`
	HealthRisk    string  `json:"healthRisk"`
	IdealWeightKg float64 `json:"idealWeight"`
}

// BMI computes body-mass index with category, risk band, and the Devine
// ideal weight for the given height.
func BMI(weightKg, heightCm float64, gender Gender) (*BMIResult, error) {
	if weightKg <= 0 || heightCm <= 0 {
		return nil, fmt.Errorf("weight and height must be positive")
	}

	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)

	var category, risk string
	switch {
	case bmi < 18.5:
		category = "Underweight"
		risk = "Risk of nutritional deficiency and osteoporosis"
	case bmi <= 24.9:
		category = "Normal weight"
		risk = "Low risk"
	case bmi <= 29.9:
		category = "Overweight"
		risk = "Moderate risk of developing heart disease, high blood pressure, stroke, diabetes"
	default:
		category = "Obese"
		risk = "High risk of developing heart disease, high blood pressure, stroke, diabetes"
	}

	// Devine formula, height converted from cm over the 5-foot baseline.
	var ideal float64
	if gender == Male {
		ideal = 50 + 2.3*((heightCm-152.4)/2.54)
	} else {
		ideal = 45.5 + 2.3*((heightCm-152.4)/2.54)
	}

	return &BMIResult{
		BMI:           round1(bmi),
		Category:      category,
		HealthRisk:    risk,
		IdealWeightKg: round1(ideal),
	}, nil
}

// ActivityLevel scales BMR to total daily energy expenditure.
type ActivityLevel string

const (
	Sedentary  ActivityLevel = "sedentary"
	Light      ActivityLevel = "light"
	Moderate   ActivityLevel = "moderate"
	Active     ActivityLevel = "active"
	VeryActive ActivityLevel = "veryActive"
)

// TDEEResult is the output of the TDEE calculator.
type TDEEResult struct {
	BMR                 int `json:"bmr"`
	TDEE                int `json:"tdee"`
	MaintenanceCalories int `json:"maintenanceCalories"`
	WeightLossCalories  int `json:"weightLossCalories"`
	WeightGainCalories  int `json:"weightGainCalories"`
}

// TDEE computes daily energy expenditure from the Mifflin-St Jeor BMR and an
// activity multiplier. Weight-loss target is a 20% deficit, weight-gain a 15%
// surplus.
func TDEE(weightKg, heightCm float64, age int, gender Gender, level ActivityLevel) (*TDEEResult, error) {
	if weightKg <= 0 || heightCm <= 0 || age <= 0 {
		return nil, fmt.Errorf("weight, height, and age must be positive")
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == Male {
		bmr += 5
	} else {
		bmr -= 161
	}

	var multiplier float64
	switch level {
	case Sedentary:
		multiplier = 1.2
	case Light:
		multiplier = 1.375
	case Moderate:
		multiplier = 1.55
	case Active:
		multiplier = 1.725
	case VeryActive:
		multiplier = 1.9
	default:
		multiplier = 1.55
	}

	tdee := bmr * multiplier
	return &TDEEResult{
		BMR:                 int(math.Round(bmr)),
		TDEE:                int(math.Round(tdee)),
		MaintenanceCalories: int(math.Round(tdee)),
		WeightLossCalories:  int(math.Round(tdee * 0.8)),
		WeightGainCalories:  int(math.Round(tdee * 1.15)),
	}, nil
}

// BodyFatResult is the output of the body-fat calculator.
type BodyFatResult struct {
	BodyFatPercentage float64 `json:"bodyFatPercentage"`
	FatMassKg         float64 `json:"fatMass"`
	LeanMassKg        float64 `json:"leanMass"`
	Category          string  `json:"category"`
}

// BodyFat estimates body-fat percentage with the US Navy circumference
// method. Hip is only used for the female formula. The estimate is clamped
// to [3, 70] percent.
func BodyFat(gender Gender, heightCm, weightKg, neckCm, waistCm, hipCm float64) (*BodyFatResult, error) {
	if heightCm <= 0 || weightKg <= 0 || neckCm <= 0 || waistCm <= 0 {
		return nil, fmt.Errorf("height, weight, neck, and waist must be positive")
	}

	var pct float64
	if gender == Male {
		if waistCm <= neckCm {
			return nil, fmt.Errorf("waist must be larger than neck")
		}
		pct = 495/(1.0324-0.19077*math.Log10(waistCm-neckCm)+0.15456*math.Log10(heightCm)) - 450
	} else {
		if hipCm <= 0 {
			return nil, fmt.Errorf("hip must be positive")
		}
		if waistCm+hipCm <= neckCm {
			return nil, fmt.Errorf("waist plus hip must be larger than neck")
		}
		pct = 495/(1.29579-0.35004*math.Log10(waistCm+hipCm-neckCm)+0.22100*math.Log10(heightCm)) - 450
	}

	pct = math.Max(3, math.Min(pct, 70))

	fatMass := pct / 100 * weightKg
	return &BodyFatResult{
		BodyFatPercentage: round1(pct),
		FatMassKg:         round1(fatMass),
		LeanMassKg:        round1(weightKg - fatMass),
		Category:          bodyFatCategory(gender, pct),
	}, nil
}

func bodyFatCategory(gender Gender, pct float64) string {
	if gender == Male {
		switch {
		case pct < 6:
			return "Essential fat"
		case pct < 14:
			return "Athletic"
		case pct < 18:
			return "Fitness"
		case pct < 25:
			return "Average"
		default:
			return "Obese"
		}
	}
	switch {
	case pct < 14:
		return "Essential fat"
	case pct < 21:
		return "Athletic"
	case pct < 25:
		return "Fitness"
	case pct < 32:
		return "Average"
	default:
		return "Obese"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
