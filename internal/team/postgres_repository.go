package team

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

// Upsert inserts or fully overwrites a team record. The conflict target is
// the unique index on lower(name), so "Red" and "red" address the same row;
// the casing of the first insert is preserved and returned in t.Name.
func (r *PostgresRepository) Upsert(ctx context.Context, t *Team) error {
	query := `
		INSERT INTO teams (name, owner, manager, logo_asset_id, division)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (lower(name)) DO UPDATE SET
			owner = EXCLUDED.owner,
			manager = EXCLUDED.manager,
			logo_asset_id = EXCLUDED.logo_asset_id,
			division = EXCLUDED.division
		RETURNING name`

	err := r.pool.QueryRow(ctx, query,
		t.Name, t.Owner, t.Manager, t.LogoAssetID, t.Division,
	).Scan(&t.Name)
	if err != nil {
		return fmt.Errorf("upserting team: %w", err)
	}

	return nil
}

// GetByName retrieves a single team by name, ignoring case.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*Team, error) {
	query := `
		SELECT name, owner, manager, logo_asset_id, division
		FROM teams
		WHERE lower(name) = lower($1)`

	var t Team
	err := r.pool.QueryRow(ctx, query, name).Scan(
		&t.Name, &t.Owner, &t.Manager, &t.LogoAssetID, &t.Division,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return &t, nil
}

// likeEscaper neutralizes LIKE metacharacters in user-supplied patterns.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search returns team names containing pattern, ignoring case, ordered
// lexicographically and capped at SearchLimit.
func (r *PostgresRepository) Search(ctx context.Context, pattern string, includeFreeAgents bool) ([]string, error) {
	query := `
		SELECT name
		FROM teams
		WHERE name ILIKE '%' || $1 || '%'
		  AND ($2 OR lower(name) <> lower($3))
		ORDER BY name ASC
		LIMIT $4`

	rows, err := r.pool.Query(ctx, query,
		likeEscaper.Replace(pattern), includeFreeAgents, FreeAgents, SearchLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching teams: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning team name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team names: %w", err)
	}

	if names == nil {
		names = []string{}
	}

	return names, nil
}

// Delete removes a team by name. Returns ErrTeamHasPlayers if players
// still reference it (FK RESTRICT) and ErrTeamNotFound on zero rows.
func (r *PostgresRepository) Delete(ctx context.Context, name string) error {
	query := `DELETE FROM teams WHERE lower(name) = lower($1)`

	result, err := r.pool.Exec(ctx, query, name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrTeamHasPlayers
		}
		return fmt.Errorf("deleting team: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTeamNotFound
	}

	return nil
}

// EnsureFreeAgents creates the free-agent team if absent. An existing row
// is never modified, so repeated bootstraps are safe.
func (r *PostgresRepository) EnsureFreeAgents(ctx context.Context) error {
	query := `
		INSERT INTO teams (name)
		VALUES ($1)
		ON CONFLICT (lower(name)) DO NOTHING`

	if _, err := r.pool.Exec(ctx, query, FreeAgents); err != nil {
		return fmt.Errorf("ensuring free-agent team: %w", err)
	}

	return nil
}
