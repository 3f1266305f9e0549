// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"go.uber.org/zap"

	"github.com/RadixSeven/MealPortionCalculator/internal/config"
	"github.com/RadixSeven/MealPortionCalculator/internal/mixer"
)

type toolHandler func(*protocol.CallToolRequest) (*protocol.CallToolResult, error)

// MixServer answers MCP tool calls over plain HTTP POST.
type MixServer struct {
	httpServer *http.Server
	mixer      *mixer.Mixer
	defaults   config.DefaultsConfig
	logger     *zap.Logger
	tools      map[string]toolHandler
}

func NewMixServer(cfg *config.Config, logger *zap.Logger) (*MixServer, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mixServer := &MixServer{
		mixer:    mixer.New(logger.Named("mixer")),
		defaults: cfg.Defaults,
		logger:   logger,
	}

	if err := mixServer.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", mixServer.handleHTTP)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	mixServer.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return mixServer, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (s *MixServer) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *MixServer) handleHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	handler, ok := s.tools[request.Name]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown tool: %s", request.Name), http.StatusNotFound)
		return
	}

	result, err := handler(&request)
	if err != nil {
		status := statusFor(err)
		s.logger.Info("Tool call failed",
			zap.String("tool", request.Name),
			zap.Int("status", status),
			zap.Error(err))
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidParams):
		return http.StatusBadRequest
	case errors.Is(err, mixer.ErrInvalidRequest),
		errors.Is(err, mixer.ErrInfeasibleBounds),
		errors.Is(err, mixer.ErrUnreachableMaxPortion):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *MixServer) Start(ctx context.Context) error {
	s.logger.Info("Starting meal portion server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *MixServer) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

func (s *MixServer) createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
