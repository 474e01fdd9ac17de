package handlers

import (
	"encoding/json"
	"net/http"

	"hf-council/internal/contextutil"
	"hf-council/internal/service"
)

// CouncilHandler handles HTTP requests that convene the council.
type CouncilHandler struct {
	councilService service.CouncilService
}

// NewCouncilHandler creates a new CouncilHandler.
func NewCouncilHandler(councilService service.CouncilService) *CouncilHandler {
	return &CouncilHandler{
		councilService: councilService,
	}
}

// CouncilRequest represents the HTTP request payload for a council run.
//
// swagger:model CouncilRequest
type CouncilRequest struct {
	// The question every member answers
	Prompt string `json:"prompt"`

	// Members overrides the configured council for this run
	Members []string `json:"members,omitempty"`
}

// ServeHTTP handles HTTP requests that convene the council.
//
// Member failures are reported per verdict; the run itself still returns 200.
//
// swagger:route POST /api/council council
//
// # Convene the council
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Every member was asked
//	  schema:
//	    "$ref": "#/definitions/SessionResponse"
//	'400':
//	  description: Invalid request
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *CouncilHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req CouncilRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.councilService.Convene(ctx, service.ConveneRequest{
		Prompt:  req.Prompt,
		Members: req.Members,
	}, nil)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to convene council")
		return
	}

	logger.InfoContext(ctx, "council run served", "run_id", session.RunID, "failures", session.Failures())
	writeJSON(w, ctx, http.StatusOK, toSessionResponse(session))
}
