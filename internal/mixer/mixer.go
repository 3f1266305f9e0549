// Package mixer splits a calorie target between Soylent and HLTH Code and
// works out how much water brings each portion into the requested size range.
package mixer

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/RadixSeven/MealPortionCalculator/internal/models"
)

var (
	ErrInvalidRequest        = errors.New("invalid request")
	ErrInfeasibleBounds      = errors.New("infeasible portion bounds")
	ErrUnreachableMaxPortion = errors.New("unreachable max portion")
)

// calorieTolerance is how far the achieved calories may drift from the
// target before a warning is raised.
const calorieTolerance = 0.5

type Mixer struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Mixer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mixer{logger: logger}
}

// Mix computes the recipe for req. Soylent is used first, as far as its caps
// and the calorie target allow; HLTH Code covers the rest.
// Water is the only slack: it is added to reach the minimum portion size and
// removed, never below zero, to respect the maximum.
func (m *Mixer) Mix(req models.MixRequest) (*models.MixResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	soy, hlth := models.Soylent, models.HLTHCode
	portions := float64(req.FinalPortions)

	soyPortions := math.Min(
		req.MaxSoylent/soy.DryGrams,
		math.Min(
			req.MaxCarbsPerPortion*portions/soy.Carbs,
			float64(req.TotalCalories)/soy.Calories,
		),
	)
	remaining := float64(req.TotalCalories) - soyPortions*soy.Calories
	hlthPortions := math.Min(remaining/hlth.Calories, req.MaxHLTHCode/hlth.DryGrams)

	m.logger.Debug("Split calories",
		zap.Float64("soylent_portions", soyPortions),
		zap.Float64("hlth_code_portions", hlthPortions),
		zap.Float64("remaining_calories", remaining))

	result := &models.MixResult{
		SoylentPortions:  soyPortions,
		HLTHCodePortions: hlthPortions,
	}

	achieved := soyPortions*soy.Calories + hlthPortions*hlth.Calories
	if math.Abs(achieved-float64(req.TotalCalories)) > calorieTolerance {
		msg := fmt.Sprintf("ingredient caps limit the mix to %.1f kcal instead of %d kcal",
			achieved, req.TotalCalories)
		m.logger.Debug("Calorie target not reached",
			zap.Float64("achieved", achieved),
			zap.Int("target", req.TotalCalories))
		result.Warnings = append(result.Warnings, msg)
	}

	// Rounded before summing: that is the precision the scale gives us.
	result.SoylentDryMass = round(soyPortions * soy.DryGrams)
	result.HLTHCodeDryMass = round(hlthPortions * hlth.DryGrams)
	waterFlOz := soyPortions*soy.WaterFlOz + hlthPortions*hlth.WaterFlOz
	requiredWater := round(waterFlOz * models.FlOzToGrams)

	dryMass := result.SoylentDryMass + result.HLTHCodeDryMass
	requiredTotal := dryMass + requiredWater

	targetMax := requiredTotal
	if req.MaxPortion != nil {
		targetMax = *req.MaxPortion * req.FinalPortions
		if targetMax < dryMass {
			return nil, fmt.Errorf("%w: %d portions of at most %d g hold %d g but the dry mix alone is %d g",
				ErrUnreachableMaxPortion, req.FinalPortions, *req.MaxPortion, targetMax, dryMass)
		}
	}
	extraForMin := max(req.MinPortion*req.FinalPortions-requiredTotal, 0)
	toRemove := max(requiredTotal-targetMax, 0)

	result.WaterMass = requiredWater + extraForMin - toRemove
	result.TotalMass = requiredTotal + extraForMin - toRemove
	result.MassPerPortion = round(float64(result.TotalMass) / portions)

	totalCarbs := soyPortions*soy.Carbs + hlthPortions*hlth.Carbs
	result.CarbsPerPortion = roundTenth(totalCarbs / portions)

	if result.CarbsPerPortion > 0 {
		level := math.Floor(result.CarbsPerPortion) + 0.5
		mass := round(float64(result.MassPerPortion) * level / result.CarbsPerPortion)
		result.NextCarbLevel = &level
		result.NextCarbLevelMass = &mass
	}

	result.TotalCalories = round(achieved)

	m.logger.Debug("Mixed portions",
		zap.Int("total_mass", result.TotalMass),
		zap.Int("mass_per_portion", result.MassPerPortion),
		zap.Int("water_added", extraForMin),
		zap.Int("water_removed", toRemove))

	return result, nil
}

func validate(req models.MixRequest) error {
	if req.MaxPortion != nil && req.MinPortion > *req.MaxPortion {
		return fmt.Errorf("%w: min portion %d g exceeds max portion %d g",
			ErrInfeasibleBounds, req.MinPortion, *req.MaxPortion)
	}
	if req.TotalCalories < 0 {
		return fmt.Errorf("%w: total calories must not be negative, got %d", ErrInvalidRequest, req.TotalCalories)
	}
	if req.FinalPortions < 1 {
		return fmt.Errorf("%w: final portions must be at least 1, got %d", ErrInvalidRequest, req.FinalPortions)
	}
	if req.MinPortion < 0 {
		return fmt.Errorf("%w: min portion must not be negative, got %d", ErrInvalidRequest, req.MinPortion)
	}
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"max soylent", req.MaxSoylent},
		{"max HLTH Code", req.MaxHLTHCode},
		{"max carbs per portion", req.MaxCarbsPerPortion},
	} {
		if math.IsNaN(c.value) || c.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidRequest, c.name, c.value)
		}
	}
	return nil
}

// round rounds half to even, matching how the recipe has always been rounded.
func round(x float64) int {
	return int(math.RoundToEven(x))
}

func roundTenth(x float64) float64 {
	return math.RoundToEven(x*10) / 10
}
