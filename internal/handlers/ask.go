package handlers

import (
	"encoding/json"
	"net/http"

	"hf-council/internal/contextutil"
	"hf-council/internal/service"
)

// AskHandler handles HTTP requests for single-model queries.
type AskHandler struct {
	councilService service.CouncilService
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(councilService service.CouncilService) *AskHandler {
	return &AskHandler{
		councilService: councilService,
	}
}

// AskRequest represents the HTTP request payload for a single-model query.
//
// swagger:model AskRequest
type AskRequest struct {
	// The question to send
	Prompt string `json:"prompt"`

	// Model identifier; the configured default is used when empty
	Model string `json:"model,omitempty"`
}

// ServeHTTP handles HTTP requests for single-model queries.
//
// A model that fails to answer yields 502 with the failed verdict in the body.
//
// swagger:route POST /api/ask ask
//
// # Ask one model
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: The model answered
//	  schema:
//	    "$ref": "#/definitions/SessionResponse"
//	'400':
//	  description: Invalid request
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'502':
//	  description: The model call failed
//	  schema:
//	    "$ref": "#/definitions/SessionResponse"
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.councilService.Ask(ctx, service.AskRequest{
		Prompt: req.Prompt,
		Model:  req.Model,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to process ask request")
		return
	}

	status := http.StatusOK
	if session.Failures() > 0 {
		status = http.StatusBadGateway
	}
	writeJSON(w, ctx, status, toSessionResponse(session))
}
