// internal/models/ingredient.go
package models

// FlOzToGrams converts a fluid ounce of water to grams.
const FlOzToGrams = 28.3495231

// Ingredient holds the label data for one portion of a powdered product.
type Ingredient struct {
	Name      string  `json:"name"`
	Calories  float64 `json:"calories"`
	DryGrams  float64 `json:"dry_grams"`
	WaterFlOz float64 `json:"water_fl_oz"`
	Carbs     float64 `json:"carbs"`
}

// Soylent values are one ninth of a 1200 kcal batch.
var Soylent = Ingredient{
	Name:      "Soylent",
	Calories:  1200.0 / 9,
	DryGrams:  270.0 / 9,
	WaterFlOz: 36.0 / 9,
	Carbs:     108.0 / 9,
}

// HLTHCode is carb free.
var HLTHCode = Ingredient{
	Name:      "HLTH Code",
	Calories:  800.0 / 9,
	DryGrams:  156.0 / 9,
	WaterFlOz: 16.0 / 9,
	Carbs:     0,
}

// Ingredients returns the profiles in mixing preference order.
func Ingredients() []Ingredient {
	return []Ingredient{Soylent, HLTHCode}
}
