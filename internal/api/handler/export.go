package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vexlane/rosterd/internal/api/response"
	"github.com/vexlane/rosterd/internal/player"
	"github.com/vexlane/rosterd/internal/roster"
	"github.com/vexlane/rosterd/internal/team"
)

// ExportService is the read-side surface the export endpoints need.
type ExportService interface {
	Leaderboard(ctx context.Context) ([]player.LeaderboardEntry, error)
	PlayerInfo(ctx context.Context, handle string) (*roster.PlayerInfo, error)
}

// ExportHandler serves the read-only polling API. Both endpoints keep
// their legacy unenveloped wire shapes.
type ExportHandler struct {
	service ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(service ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

type leaderboardEntryResponse struct {
	UserID   int64   `json:"userId"`
	Username string  `json:"username"`
	Team     string  `json:"team"`
	Logo     *string `json:"logo"`
}

// Leaderboard handles GET /leaderboard: the full player list joined
// with team and logo, as a bare JSON array.
func (h *ExportHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Leaderboard(r.Context())
	if err != nil {
		slog.Error("failed to export leaderboard", "error", err)
		response.Raw(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	items := make([]leaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		item := leaderboardEntryResponse{
			UserID:   e.UserID,
			Username: e.Username,
			Team:     e.TeamName,
		}
		if e.LogoAssetID != nil {
			logo := team.LogoURL(*e.LogoAssetID)
			item.Logo = &logo
		}
		items = append(items, item)
	}

	response.Raw(w, http.StatusOK, items)
}

type playerDetailResponse struct {
	Found       bool    `json:"found"`
	UserID      int64   `json:"userId"`
	Username    string  `json:"username"`
	Team        string  `json:"team"`
	Rank        string  `json:"rank"`
	UpdatedAt   string  `json:"updatedAt"`
	TeamOwner   *string `json:"teamOwner"`
	TeamManager *string `json:"teamManager"`
	Logo        *string `json:"logo"`
	IsOwner     bool    `json:"isOwner"`
	IsManager   bool    `json:"isManager"`
	IsStaff     bool    `json:"isStaff"`
}

// Player handles GET /player/{handle}: player detail joined with team
// attributes, or 404 {"found": false}.
func (h *ExportHandler) Player(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	info, err := h.service.PlayerInfo(r.Context(), handle)
	if err != nil {
		if errors.Is(err, player.ErrPlayerNotFound) {
			response.Raw(w, http.StatusNotFound, map[string]bool{"found": false})
			return
		}
		slog.Error("failed to load player detail", "error", err, "handle", handle)
		response.Raw(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	response.Raw(w, http.StatusOK, playerDetailResponse{
		Found:       true,
		UserID:      info.Player.UserID,
		Username:    info.Player.Username,
		Team:        info.Player.TeamName,
		Rank:        info.Player.Rank.Label,
		UpdatedAt:   info.Player.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		TeamOwner:   info.Team.Owner,
		TeamManager: info.Team.Manager,
		Logo:        info.Team.LogoThumbnail(),
		IsOwner:     info.IsOwner,
		IsManager:   info.IsManager,
		IsStaff:     info.IsStaff,
	})
}
