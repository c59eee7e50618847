package database

import (
	"context"
	"fmt"
)

// schema is applied in order at startup. Statements are idempotent so a
// restart against an existing database is a no-op.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		name TEXT PRIMARY KEY,
		owner TEXT,
		manager TEXT,
		logo_asset_id BIGINT,
		division TEXT
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS teams_name_lower_idx
		ON teams (lower(name))`,
	`CREATE TABLE IF NOT EXISTS players (
		user_id BIGINT PRIMARY KEY,
		username TEXT NOT NULL,
		team_name TEXT NOT NULL REFERENCES teams (name) ON DELETE RESTRICT,
		rank TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS players_team_name_idx
		ON players (team_name)`,
	`CREATE INDEX IF NOT EXISTS players_username_lower_idx
		ON players (lower(username))`,
}

// Migrate creates the registry schema if it does not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
