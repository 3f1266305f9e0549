// internal/server/tools.go
package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"go.uber.org/zap"

	"github.com/RadixSeven/MealPortionCalculator/internal/models"
)

var errInvalidParams = errors.New("invalid parameters")

// MixPortionsParams mirrors the command line. Unset fields take the
// configured defaults.
type MixPortionsParams struct {
	TotalCalories      *int     `json:"total_calories" description:"Target calories for the whole mix"`
	FinalPortions      *int     `json:"final_portions" description:"Number of portions to divide the mix into"`
	MinPortion         *int     `json:"min_portion,omitempty" description:"Minimum grams per portion, 0 disables"`
	MaxPortion         *int     `json:"max_portion,omitempty" description:"Maximum grams per portion"`
	MaxSoylent         *float64 `json:"max_soylent,omitempty" description:"Cap on total Soylent dry mass in grams"`
	MaxHLTHCode        *float64 `json:"max_hlth_code,omitempty" description:"Cap on total HLTH Code dry mass in grams"`
	MaxCarbsPerPortion *float64 `json:"max_carbs_per_portion,omitempty" description:"Cap on carbohydrate grams per portion"`
}

type IngredientsResponse struct {
	Ingredients []models.Ingredient `json:"ingredients"`
	FlOzToGrams float64             `json:"fl_oz_to_grams"`
}

// extractParams safely extracts parameters from the request arguments
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}

	return nil
}

// request applies the params on top of the server defaults.
func (s *MixServer) request(params MixPortionsParams) (models.MixRequest, error) {
	if params.TotalCalories == nil {
		return models.MixRequest{}, fmt.Errorf("%w: total_calories is required", errInvalidParams)
	}
	if params.FinalPortions == nil {
		return models.MixRequest{}, fmt.Errorf("%w: final_portions is required", errInvalidParams)
	}

	req := s.defaults.Request(*params.TotalCalories, *params.FinalPortions)
	if params.MinPortion != nil {
		req.MinPortion = *params.MinPortion
	}
	if params.MaxPortion != nil {
		req.MaxPortion = params.MaxPortion
	}
	if params.MaxSoylent != nil {
		req.MaxSoylent = *params.MaxSoylent
	}
	if params.MaxHLTHCode != nil {
		req.MaxHLTHCode = *params.MaxHLTHCode
	}
	if params.MaxCarbsPerPortion != nil {
		req.MaxCarbsPerPortion = *params.MaxCarbsPerPortion
	}
	return req, nil
}

// handleMixPortions runs the mixer for one request
func (s *MixServer) handleMixPortions(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params MixPortionsParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	mixReq, err := s.request(params)
	if err != nil {
		return nil, err
	}

	result, err := s.mixer.Mix(mixReq)
	if err != nil {
		return nil, fmt.Errorf("failed to mix portions: %w", err)
	}

	for _, warning := range result.Warnings {
		s.logger.Warn("Mix warning", zap.String("warning", warning))
	}

	return s.createJSONResponse(result)
}

func (s *MixServer) handleListIngredients(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	return s.createJSONResponse(IngredientsResponse{
		Ingredients: models.Ingredients(),
		FlOzToGrams: models.FlOzToGrams,
	})
}

func (s *MixServer) registerTools() error {
	s.tools = map[string]toolHandler{
		"mix_portions":     s.handleMixPortions,
		"list_ingredients": s.handleListIngredients,
	}

	for name := range s.tools {
		s.logger.Debug("Registered tool", zap.String("name", name))
	}

	return nil
}
