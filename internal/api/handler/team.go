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
	"github.com/vexlane/rosterd/internal/roster"
	"github.com/vexlane/rosterd/internal/team"
)

// TeamService is the slice of the registry service the team endpoints need.
type TeamService interface {
	SetTeam(ctx context.Context, in roster.TeamInput) (*team.Team, error)
	DeleteTeam(ctx context.Context, name string) error
	TeamView(ctx context.Context, name string) (*roster.TeamView, error)
	SearchTeams(ctx context.Context, pattern string, includeFreeAgents bool) ([]string, error)
}

type setTeamRequest struct {
	Name        string  `json:"name"`
	Owner       string  `json:"owner"`
	Manager     *string `json:"manager"`
	LogoAssetID *int64  `json:"logoAssetId"`
	Division    *string `json:"division"`
}

type teamResponse struct {
	Name        string  `json:"name"`
	Owner       *string `json:"owner"`
	Manager     *string `json:"manager"`
	LogoAssetID *int64  `json:"logoAssetId"`
	Division    *string `json:"division"`
	Logo        *string `json:"logo"`
}

func toTeamResponse(t *team.Team) teamResponse {
	return teamResponse{
		Name:        t.Name,
		Owner:       t.Owner,
		Manager:     t.Manager,
		LogoAssetID: t.LogoAssetID,
		Division:    t.Division,
		Logo:        t.LogoThumbnail(),
	}
}

type rosterEntryResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Rank     string `json:"rank"`
}

type teamViewResponse struct {
	teamResponse
	PlayerCount int                   `json:"playerCount"`
	Players     []rosterEntryResponse `json:"players"`
}

// TeamHandler handles the team endpoints.
type TeamHandler struct {
	service TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(service TeamService) *TeamHandler {
	return &TeamHandler{service: service}
}

// Set handles PUT /teams: create or fully overwrite a team.
func (h *TeamHandler) Set(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req setTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateSetTeamRequest(validation.SetTeamRequest{
		Name:        req.Name,
		Owner:       req.Owner,
		LogoAssetID: req.LogoAssetID,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	t, err := h.service.SetTeam(r.Context(), roster.TeamInput{
		Name:        req.Name,
		Owner:       req.Owner,
		Manager:     req.Manager,
		LogoAssetID: req.LogoAssetID,
		Division:    req.Division,
	})
	if err != nil {
		if errors.Is(err, roster.ErrReservedTeam) {
			response.Err(w, http.StatusForbidden, "RESERVED_TEAM", fmt.Sprintf("%q is reserved and cannot be modified", team.FreeAgents), requestID)
			return
		}
		slog.Error("failed to upsert team", "error", err, "team", req.Name)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save team", requestID)
		return
	}

	response.Success(w, http.StatusOK, toTeamResponse(t), requestID)
}

// Delete handles DELETE /teams/{name}.
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	name := chi.URLParam(r, "name")

	if err := h.service.DeleteTeam(r.Context(), name); err != nil {
		if errors.Is(err, roster.ErrReservedTeam) {
			response.Err(w, http.StatusForbidden, "RESERVED_TEAM", fmt.Sprintf("%q is reserved and cannot be deleted", team.FreeAgents), requestID)
			return
		}
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
			return
		}
		if errors.Is(err, team.ErrTeamHasPlayers) {
			response.Err(w, http.StatusConflict, "TEAM_HAS_PLAYERS", "Cannot delete a team that still has players", requestID)
			return
		}
		slog.Error("failed to delete team", "error", err, "team", name)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete team", requestID)
		return
	}

	response.NoContent(w)
}

// View handles GET /teams/{name}: team attributes plus full roster.
func (h *TeamHandler) View(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	name := chi.URLParam(r, "name")

	view, err := h.service.TeamView(r.Context(), name)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
			return
		}
		slog.Error("failed to load team view", "error", err, "team", name)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load team", requestID)
		return
	}

	players := make([]rosterEntryResponse, 0, len(view.Players))
	for _, p := range view.Players {
		players = append(players, rosterEntryResponse{
			UserID:   p.UserID,
			Username: p.Username,
			Rank:     p.Rank.Label,
		})
	}

	response.Success(w, http.StatusOK, teamViewResponse{
		teamResponse: toTeamResponse(&view.Team),
		PlayerCount:  len(players),
		Players:      players,
	}, requestID)
}

// Search handles GET /teams?q=: autocomplete over team names. The
// free-agent team is included only when includeFreeAgents=true.
func (h *TeamHandler) Search(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	pattern := r.URL.Query().Get("q")
	includeFreeAgents := r.URL.Query().Get("includeFreeAgents") == "true"

	names, err := h.service.SearchTeams(r.Context(), pattern, includeFreeAgents)
	if err != nil {
		slog.Error("failed to search teams", "error", err, "pattern", pattern)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to search teams", requestID)
		return
	}

	response.Success(w, http.StatusOK, names, requestID)
}
