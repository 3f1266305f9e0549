// internal/models/mix.go
package models

import (
	"math"
)

// DefaultMinPortion is the smallest portion, in grams, produced unless the
// caller asks otherwise.
const DefaultMinPortion = 270

// MixRequest describes one mixing job. Caps that are not set are +Inf.
type MixRequest struct {
	TotalCalories      int
	FinalPortions      int
	MinPortion         int  // grams; 0 disables the floor
	MaxPortion         *int // grams; nil means no ceiling
	MaxSoylent         float64
	MaxHLTHCode        float64
	MaxCarbsPerPortion float64
}

// DefaultMixRequest returns a request with every optional field at its default.
func DefaultMixRequest(totalCalories, finalPortions int) MixRequest {
	return MixRequest{
		TotalCalories:      totalCalories,
		FinalPortions:      finalPortions,
		MinPortion:         DefaultMinPortion,
		MaxSoylent:         math.Inf(1),
		MaxHLTHCode:        math.Inf(1),
		MaxCarbsPerPortion: Soylent.Carbs,
	}
}

type MixResult struct {
	SoylentPortions   float64  `json:"soylent_portions"`
	HLTHCodePortions  float64  `json:"hlth_code_portions"`
	SoylentDryMass    int      `json:"soylent_dry_mass"`
	HLTHCodeDryMass   int      `json:"hlth_code_dry_mass"`
	WaterMass         int      `json:"water_mass"`
	TotalMass         int      `json:"total_mass"`
	MassPerPortion    int      `json:"mass_per_portion"`
	CarbsPerPortion   float64  `json:"carbs_per_portion"`
	NextCarbLevel     *float64 `json:"next_carb_level,omitempty"`      // nil when there are no carbs
	NextCarbLevelMass *int     `json:"next_carb_level_mass,omitempty"` // nil when there are no carbs
	TotalCalories     int      `json:"total_calories"`
	Warnings          []string `json:"warnings,omitempty"`
}
