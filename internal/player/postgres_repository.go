package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Upsert inserts or fully overwrites a player record. The foreign key on
// team_name turns writes against a missing team into ErrUnknownTeam.
func (r *PostgresRepository) Upsert(ctx context.Context, p *Player) error {
	query := `
		INSERT INTO players (user_id, username, team_name, rank, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			team_name = EXCLUDED.team_name,
			rank = EXCLUDED.rank,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		p.UserID, p.Username, p.TeamName, p.Rank.Label, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrUnknownTeam
		}
		return fmt.Errorf("upserting player: %w", err)
	}

	return nil
}

// GetByUserID retrieves a single player by stable identity.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID int64) (*Player, error) {
	query := `
		SELECT user_id, username, team_name, rank, updated_at
		FROM players
		WHERE user_id = $1`

	return r.scanOne(r.pool.QueryRow(ctx, query, userID))
}

// GetByUsername retrieves a single player by display handle, ignoring
// case. Handles can go stale after a rename, so when two rows carry the
// same handle the most recent write wins.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*Player, error) {
	query := `
		SELECT user_id, username, team_name, rank, updated_at
		FROM players
		WHERE lower(username) = lower($1)
		ORDER BY updated_at DESC
		LIMIT 1`

	return r.scanOne(r.pool.QueryRow(ctx, query, username))
}

func (r *PostgresRepository) scanOne(row pgx.Row) (*Player, error) {
	var p Player
	var rankLabel string
	err := row.Scan(&p.UserID, &p.Username, &p.TeamName, &rankLabel, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("querying player: %w", err)
	}
	p.Rank = ParseRank(rankLabel)

	return &p, nil
}

// ListByTeam returns a team's roster ordered by username, ignoring case.
func (r *PostgresRepository) ListByTeam(ctx context.Context, teamName string) ([]Player, error) {
	query := `
		SELECT user_id, username, team_name, rank, updated_at
		FROM players
		WHERE lower(team_name) = lower($1)
		ORDER BY lower(username) ASC`

	rows, err := r.pool.Query(ctx, query, teamName)
	if err != nil {
		return nil, fmt.Errorf("listing players by team: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		var rankLabel string
		err := rows.Scan(&p.UserID, &p.Username, &p.TeamName, &rankLabel, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning player row: %w", err)
		}
		p.Rank = ParseRank(rankLabel)
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating player rows: %w", err)
	}

	if players == nil {
		players = []Player{}
	}

	return players, nil
}

// ListAll returns every player joined with team name and logo for the
// bulk export, ordered by username ignoring case.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]LeaderboardEntry, error) {
	query := `
		SELECT p.user_id, p.username, p.team_name, t.logo_asset_id
		FROM players p
		JOIN teams t ON t.name = p.team_name
		ORDER BY lower(p.username) ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		err := rows.Scan(&e.UserID, &e.Username, &e.TeamName, &e.LogoAssetID)
		if err != nil {
			return nil, fmt.Errorf("scanning leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating leaderboard rows: %w", err)
	}

	if entries == nil {
		entries = []LeaderboardEntry{}
	}

	return entries, nil
}
