package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"net/http"
	"polymer/internal/app"
	"polymer/internal/config"
)

type ReduceHandler struct {
	cfg    *config.Config
	logger *zap.Logger
	extra  []app.Option
}

func NewReduceHandler(cfg *config.Config, logger *zap.Logger) *ReduceHandler {
	return &ReduceHandler{
		cfg:    cfg,
		logger: logger,
	}
}

type ReduceRequest struct {
	Polymer  string `json:"polymer"`
	Strategy string `json:"strategy,omitempty"`
}

type ReduceResponse struct {
	Polymer   string `json:"polymer"`
	InputLen  int    `json:"input_len"`
	OutputLen int    `json:"output_len"`
	Reactions int    `json:"reactions"`
	Strategy  string `json:"strategy"`
}

// Reduce handles POST /reduce.
func (h *ReduceHandler) Reduce(w http.ResponseWriter, r *http.Request) {
	var req ReduceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		writeError(w, "bad reduce request", http.StatusBadRequest)
		return
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = h.cfg.Strategy
	}
	s, err := app.ParseStrategy(strategy)
	if err != nil {
		errParser(w, h.logger, err, err.Error())
		return
	}
	if len(req.Polymer) > h.cfg.MaxLineLength {
		err := fmt.Errorf("%w: %d chars, limit %d", app.ErrLineTooLong, len(req.Polymer), h.cfg.MaxLineLength)
		errParser(w, h.logger, err, err.Error())
		return
	}

	res, err := s.Reduce(app.Polymer(req.Polymer), h.extra...)
	if err != nil {
		errParser(w, h.logger, err, "reduction failed")
		return
	}
	h.logger.Info("polymer reduced",
		zap.Int("input_len", res.InputLen),
		zap.Int("output_len", res.OutputLen),
		zap.Int("reactions", res.Reactions),
	)
	writeJson(w, ReduceResponse{
		Polymer:   res.Polymer.String(),
		InputLen:  res.InputLen,
		OutputLen: res.OutputLen,
		Reactions: res.Reactions,
		Strategy:  string(res.Strategy),
	})
}

func (h *ReduceHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func errParser(w http.ResponseWriter, logger *zap.Logger, err error, msg string) {
	logger.Debug("reduce request failed", zap.Error(err))
	switch {
	case errors.Is(err, app.ErrInvalidInput), errors.Is(err, app.ErrLineTooLong):
		writeError(w, msg, http.StatusBadRequest)
	case errors.Is(err, app.ErrInvariantViolation):
		logger.Error("internal invariant violated", zap.Error(err))
		writeError(w, msg, http.StatusInternalServerError)
	default:
		writeError(w, msg, http.StatusInternalServerError)
	}
}

func writeJson(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]any{"result": payload}); err != nil {
		writeError(w, "failed to encode response", http.StatusInternalServerError)
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
