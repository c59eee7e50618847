package handler

import (
	"net/http"

	"github.com/vexlane/rosterd/internal/api/response"
)

// HealthHandler handles the GET /health endpoint. The body shape is
// fixed at {"ok": true} for compatibility with existing pollers.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response.Raw(w, http.StatusOK, map[string]bool{"ok": true})
}
