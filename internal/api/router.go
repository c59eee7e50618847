package api

import (
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"

	"github.com/vexlane/rosterd/internal/api/handler"
	"github.com/vexlane/rosterd/internal/api/middleware"
	"github.com/vexlane/rosterd/internal/auth"
	"github.com/vexlane/rosterd/internal/roster"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Roster *roster.Service
	Auth   *auth.Service
}

// NewRouter creates and configures a Chi router with all middleware and
// routes. Read endpoints are open; mutations sit behind the operator
// key check.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler()
	exportHandler := handler.NewExportHandler(deps.Roster)
	teamHandler := handler.NewTeamHandler(deps.Roster)
	assignmentHandler := handler.NewAssignmentHandler(deps.Roster)

	r.Get("/health", healthHandler.ServeHTTP)
	r.Get("/leaderboard", exportHandler.Leaderboard)
	r.Get("/player/{handle}", exportHandler.Player)

	r.Route("/teams", func(r chi.Router) {
		r.Get("/", teamHandler.Search)
		r.Get("/{name}", teamHandler.View)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Auth))
			r.Put("/", teamHandler.Set)
			r.Delete("/{name}", teamHandler.Delete)
		})
	})

	r.Route("/assignments", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Auth))
		r.Put("/", assignmentHandler.Assign)
		r.Delete("/{username}", assignmentHandler.Unassign)
	})

	return r
}
