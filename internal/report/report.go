// Package report renders mix results for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/RadixSeven/MealPortionCalculator/internal/models"
)

// WriteText writes one labeled line per result value, always in the same order.
func WriteText(w io.Writer, r *models.MixResult) error {
	nextLevel := "Min mass for next carb level: n/a"
	if r.NextCarbLevel != nil && r.NextCarbLevelMass != nil {
		nextLevel = fmt.Sprintf("Min mass for next carb level (%.1f g): %d g", *r.NextCarbLevel, *r.NextCarbLevelMass)
	}

	lines := []string{
		fmt.Sprintf("Soylent dry mass: %d g", r.SoylentDryMass),
		fmt.Sprintf("HLTH Code dry mass: %d g", r.HLTHCodeDryMass),
		fmt.Sprintf("Total water mass: %d g", r.WaterMass),
		fmt.Sprintf("Total mass: %d g", r.TotalMass),
		fmt.Sprintf("Mass per portion: %d g", r.MassPerPortion),
		fmt.Sprintf("Carbs per portion: %.1f g", r.CarbsPerPortion),
		nextLevel,
		fmt.Sprintf("Total calories: %d kcal", r.TotalCalories),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	return nil
}

// WriteJSON writes the result as indented JSON.
func WriteJSON(w io.Writer, r *models.MixResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// WriteIngredients prints the per-portion profile of each ingredient.
func WriteIngredients(w io.Writer, ingredients []models.Ingredient) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INGREDIENT\tKCAL\tDRY (g)\tWATER (fl oz)\tCARBS (g)")
	for _, ing := range ingredients {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.1f\n", ing.Name, ing.Calories, ing.DryGrams, ing.WaterFlOz, ing.Carbs)
	}
	fmt.Fprintf(tw, "\nWater is weighed at %g g per fl oz.\n", models.FlOzToGrams)
	return tw.Flush()
}
