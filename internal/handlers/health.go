package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"hf-council/internal/contextutil"
	"hf-council/internal/service"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	councilService     service.CouncilService
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(councilService service.CouncilService) *HealthHandler {
	return &HealthHandler{
		councilService:     councilService,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
//
// swagger:model HealthResponse
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// The inference endpoint is not probed.
//
// swagger:route GET /api/health healthCheck
//
// # Health check endpoint
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: System is healthy
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
//	'503':
//	  description: System is unhealthy
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	members := h.councilService.Members()
	checks := map[string]string{
		"council_members": strconv.Itoa(len(members)),
	}
	var issues []string

	if len(members) == 0 {
		issues = append(issues, "council_empty")
	}

	_, err := h.councilService.History(checkCtx, 1)
	switch {
	case err == nil:
		checks["history"] = "ok"
	case isHistoryDisabled(err):
		checks["history"] = "disabled"
	default:
		logger.WarnContext(ctx, "history health check failed", "error", err)
		checks["history"] = "error"
		issues = append(issues, "history_unavailable")
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, ctx, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	})
}
