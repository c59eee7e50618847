package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vexlane/rosterd/internal/api/middleware"
	"github.com/vexlane/rosterd/internal/api/response"
	"github.com/vexlane/rosterd/internal/api/validation"
	"github.com/vexlane/rosterd/internal/identity"
	"github.com/vexlane/rosterd/internal/player"
	"github.com/vexlane/rosterd/internal/roster"
)

// AssignmentService is the slice of the registry service the assignment
// endpoints need.
type AssignmentService interface {
	Assign(ctx context.Context, username, teamName, rank string) (*roster.AssignResult, error)
	Unassign(ctx context.Context, username string) (*player.Player, error)
}

type assignRequest struct {
	Username string `json:"username"`
	Team     string `json:"team"`
	Rank     string `json:"rank"`
}

type assignmentResponse struct {
	Outcome      string  `json:"outcome"`
	UserID       int64   `json:"userId"`
	Username     string  `json:"username"`
	Team         string  `json:"team"`
	PreviousTeam *string `json:"previousTeam"`
	Rank         string  `json:"rank"`
	UpdatedAt    string  `json:"updatedAt"`
	Logo         *string `json:"logo"`
}

// AssignmentHandler handles the player assignment endpoints.
type AssignmentHandler struct {
	service AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(service AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

// Assign handles PUT /assignments: put a player on a team with a rank.
func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateAssignRequest(validation.AssignRequest{
		Username: req.Username,
		Team:     req.Team,
		Rank:     req.Rank,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	result, err := h.service.Assign(r.Context(), req.Username, req.Team, req.Rank)
	if err != nil {
		if errors.Is(err, roster.ErrReservedTeam) {
			response.Err(w, http.StatusForbidden, "RESERVED_TEAM", "Use unassignment to move a player to the free-agent pool", requestID)
			return
		}
		if errors.Is(err, identity.ErrIdentityNotFound) {
			response.Err(w, http.StatusNotFound, "IDENTITY_NOT_FOUND", fmt.Sprintf("No user named %q exists", req.Username), requestID)
			return
		}
		if errors.Is(err, player.ErrUnknownTeam) {
			response.Err(w, http.StatusUnprocessableEntity, "UNKNOWN_TEAM", fmt.Sprintf("Team %q does not exist. Create it first.", req.Team), requestID)
			return
		}
		slog.Error("failed to assign player", "error", err, "username", req.Username, "team", req.Team)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to assign player", requestID)
		return
	}

	response.Success(w, http.StatusOK, assignmentResponse{
		Outcome:      string(result.Outcome),
		UserID:       result.Player.UserID,
		Username:     result.Player.Username,
		Team:         result.Team.Name,
		PreviousTeam: result.PreviousTeam,
		Rank:         result.Player.Rank.Label,
		UpdatedAt:    result.Player.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Logo:         result.Team.LogoThumbnail(),
	}, requestID)
}

// Unassign handles DELETE /assignments/{username}: move a player to the
// free-agent team. The player row is kept.
func (h *AssignmentHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	username := chi.URLParam(r, "username")

	p, err := h.service.Unassign(r.Context(), username)
	if err != nil {
		if errors.Is(err, identity.ErrIdentityNotFound) {
			response.Err(w, http.StatusNotFound, "IDENTITY_NOT_FOUND", fmt.Sprintf("No user named %q exists", username), requestID)
			return
		}
		slog.Error("failed to unassign player", "error", err, "username", username)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to unassign player", requestID)
		return
	}

	response.Success(w, http.StatusOK, assignmentResponse{
		Outcome:   "unassigned",
		UserID:    p.UserID,
		Username:  p.Username,
		Team:      p.TeamName,
		Rank:      p.Rank.Label,
		UpdatedAt: p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}, requestID)
}
