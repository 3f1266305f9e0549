// cmd/meal-portion/main.go
package main

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/RadixSeven/MealPortionCalculator/internal/config"
	"github.com/RadixSeven/MealPortionCalculator/internal/logger"
	"github.com/RadixSeven/MealPortionCalculator/internal/mixer"
	"github.com/RadixSeven/MealPortionCalculator/internal/models"
	"github.com/RadixSeven/MealPortionCalculator/internal/report"
)

const version = "1.0.0"

// app carries what PersistentPreRunE sets up for the subcommands.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

type mixFlags struct {
	minPortion         int
	maxPortion         int
	maxSoylent         float64
	maxHLTHCode        float64
	maxCarbsPerPortion float64
	jsonOutput         bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	f := &mixFlags{}

	rootCmd := &cobra.Command{
		Use:   "meal-portion TOTAL_CALORIES FINAL_PORTIONS",
		Short: "Calculate portions of Soylent and HLTH Code",
		Long: `Splits a calorie target between Soylent and HLTH Code, then adds water
so every portion lands between the minimum and maximum portion size.

Soylent is used first, limited by its mass cap, the carb cap per portion and
the calorie target. HLTH Code supplies the remaining calories.

Example:
  meal-portion 2000 4
  meal-portion 900 3 --max-carbs-per-portion 6 --max-portion 350`,
		Version:       version,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMix(cmd, args, f)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	flags := rootCmd.Flags()
	flags.IntVar(&f.minPortion, "min-portion", models.DefaultMinPortion, "Minimum grams per portion (0 disables)")
	flags.IntVar(&f.maxPortion, "max-portion", 0, "Maximum grams per portion (default none)")
	flags.Float64Var(&f.maxSoylent, "max-soylent", math.Inf(1), "Maximum grams of Soylent powder")
	flags.Float64Var(&f.maxHLTHCode, "max-hlth-code", math.Inf(1), "Maximum grams of HLTH Code powder")
	flags.Float64Var(&f.maxCarbsPerPortion, "max-carbs-per-portion", models.Soylent.Carbs, "Maximum grams of carbohydrate per portion")
	flags.BoolVar(&f.jsonOutput, "json", false, "Print the result as JSON")

	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newIngredientsCmd())

	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.New(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = log
	return nil
}

func (a *app) runMix(cmd *cobra.Command, args []string, f *mixFlags) error {
	totalCalories, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid TOTAL_CALORIES %q: must be an integer", args[0])
	}
	finalPortions, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid FINAL_PORTIONS %q: must be an integer", args[1])
	}

	req := a.cfg.Defaults.Request(totalCalories, finalPortions)
	flags := cmd.Flags()
	if flags.Changed("min-portion") {
		req.MinPortion = f.minPortion
	}
	if flags.Changed("max-portion") {
		maxPortion := f.maxPortion
		req.MaxPortion = &maxPortion
	}
	if flags.Changed("max-soylent") {
		req.MaxSoylent = f.maxSoylent
	}
	if flags.Changed("max-hlth-code") {
		req.MaxHLTHCode = f.maxHLTHCode
	}
	if flags.Changed("max-carbs-per-portion") {
		req.MaxCarbsPerPortion = f.maxCarbsPerPortion
	}

	a.logger.Debug("Mixing",
		zap.Int("total_calories", req.TotalCalories),
		zap.Int("final_portions", req.FinalPortions),
		zap.Int("min_portion", req.MinPortion))

	result, err := mixer.New(a.logger.Named("mixer")).Mix(req)
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", warning)
	}

	if f.jsonOutput {
		return report.WriteJSON(cmd.OutOrStdout(), result)
	}
	return report.WriteText(cmd.OutOrStdout(), result)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
