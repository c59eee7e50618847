package player

import (
	"context"
	"errors"
)

// ErrPlayerNotFound is returned when a player record is not found.
var ErrPlayerNotFound = errors.New("player not found")

// ErrUnknownTeam is returned when a write references a team that does
// not exist.
var ErrUnknownTeam = errors.New("unknown team")

// Repository provides operations on the players table.
type Repository interface {
	// Upsert inserts or fully overwrites the row keyed by p.UserID.
	// Returns ErrUnknownTeam when p.TeamName has no matching team.
	Upsert(ctx context.Context, p *Player) error

	// GetByUserID retrieves a player by stable identity.
	GetByUserID(ctx context.Context, userID int64) (*Player, error)

	// GetByUsername retrieves a player by display handle, ignoring
	// case. When stale handles collide the most recently updated row
	// wins.
	GetByUsername(ctx context.Context, username string) (*Player, error)

	// ListByTeam returns the roster of a team ordered by username,
	// ignoring case.
	ListByTeam(ctx context.Context, teamName string) ([]Player, error)

	// ListAll returns every player joined with team name and logo,
	// ordered by username ignoring case.
	ListAll(ctx context.Context) ([]LeaderboardEntry, error)
}
