package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vexlane/rosterd/internal/api"
	"github.com/vexlane/rosterd/internal/auth"
	"github.com/vexlane/rosterd/internal/config"
	"github.com/vexlane/rosterd/internal/database"
	"github.com/vexlane/rosterd/internal/identity"
	"github.com/vexlane/rosterd/internal/player"
	"github.com/vexlane/rosterd/internal/roster"
	"github.com/vexlane/rosterd/internal/team"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	teamRepo := team.NewRepository(db.Pool())
	playerRepo := player.NewRepository(db.Pool())
	resolver := identity.NewRobloxResolver(identity.WithBaseURL(cfg.RobloxUsersURL))
	registry := roster.NewService(teamRepo, playerRepo, resolver)

	if err := registry.EnsureFreeAgents(ctx); err != nil {
		slog.Error("failed to bootstrap free-agent team", "error", err)
		os.Exit(1)
	}

	authService := auth.NewService(cfg.AdminHashes(), cfg.BcryptCost)
	if len(cfg.AdminHashes()) == 0 {
		slog.Warn("no operator key hashes configured; mutation endpoints will reject every request")
	}

	router := api.NewRouter(api.RouterDeps{
		Roster: registry,
		Auth:   authService,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting rosterd server", "port", cfg.Port, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
