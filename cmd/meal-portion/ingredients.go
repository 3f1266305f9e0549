package main

import (
	"github.com/spf13/cobra"

	"github.com/RadixSeven/MealPortionCalculator/internal/models"
	"github.com/RadixSeven/MealPortionCalculator/internal/report"
)

func newIngredientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingredients",
		Short: "Show the per-portion profile of each ingredient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return report.WriteIngredients(cmd.OutOrStdout(), models.Ingredients())
		},
	}
}
