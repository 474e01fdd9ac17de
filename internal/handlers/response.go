package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"hf-council/internal/contextutil"
	"hf-council/internal/service"
)

// ErrorResponse represents an error response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// VerdictResponse is one model's outcome.
//
// swagger:model VerdictResponse
type VerdictResponse struct {
	// Model identifier that was queried
	Model string `json:"model"`

	// Role of the returned message, usually "assistant"
	Role string `json:"role,omitempty"`

	// Answer text, trimmed. Empty when the model failed.
	Answer string `json:"answer,omitempty"`

	// Error describes the failure. Empty when the model answered.
	Error string `json:"error,omitempty"`

	// Raw is the response body as received for failed calls, when one was received.
	Raw string `json:"raw,omitempty"`
}

// SessionResponse is one ask or council run.
//
// swagger:model SessionResponse
type SessionResponse struct {
	// RunID is empty when history is disabled
	RunID     string            `json:"run_id,omitempty"`
	Kind      string            `json:"kind"`
	Prompt    string            `json:"prompt"`
	CreatedAt string            `json:"created_at"`
	Verdicts  []VerdictResponse `json:"verdicts"`
}

func toVerdictResponse(v service.Verdict) VerdictResponse {
	return VerdictResponse{
		Model:  v.Model,
		Role:   v.Role,
		Answer: v.Answer,
		Error:  v.Failure,
		Raw:    v.Raw,
	}
}

func toSessionResponse(s service.Session) SessionResponse {
	resp := SessionResponse{
		RunID:     s.RunID,
		Kind:      s.Kind,
		Prompt:    s.Prompt,
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
		Verdicts:  make([]VerdictResponse, 0, len(s.Verdicts)),
	}
	for _, v := range s.Verdicts {
		resp.Verdicts = append(resp.Verdicts, toVerdictResponse(v))
	}
	return resp
}

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, ctx context.Context, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

// handleServiceError maps service errors to appropriate HTTP status codes and responses.
func handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "service error", "error", err)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	if errors.Is(err, service.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Resource not found")
		return
	}

	if errors.Is(err, service.ErrHistoryDisabled) {
		writeError(w, http.StatusServiceUnavailable, "History is disabled")
		return
	}

	if errors.Is(err, service.ErrExternalService) {
		writeError(w, http.StatusBadGateway, "External service error")
		return
	}

	writeError(w, http.StatusInternalServerError, defaultMsg)
}

func isNotFound(err error) bool {
	return errors.Is(err, service.ErrNotFound)
}

func isHistoryDisabled(err error) bool {
	return errors.Is(err, service.ErrHistoryDisabled)
}
