package team

import (
	"context"
	"errors"
)

// ErrTeamNotFound is returned when a team record is not found.
var ErrTeamNotFound = errors.New("team not found")

// ErrTeamHasPlayers is returned when attempting to delete a team that
// still has players assigned to it.
var ErrTeamHasPlayers = errors.New("team has players")

// SearchLimit caps the number of names returned by Search.
const SearchLimit = 25

// Repository provides operations on the teams table.
type Repository interface {
	// Upsert inserts or fully overwrites the team matched
	// case-insensitively by name. The stored canonical name is written
	// back to t.Name.
	Upsert(ctx context.Context, t *Team) error

	// GetByName retrieves a team by name, ignoring case.
	GetByName(ctx context.Context, name string) (*Team, error)

	// Search returns up to SearchLimit team names containing pattern,
	// ignoring case, in lexicographic order. The free-agent team is
	// omitted unless includeFreeAgents is set.
	Search(ctx context.Context, pattern string, includeFreeAgents bool) ([]string, error)

	// Delete removes a team by name. Returns ErrTeamHasPlayers when
	// players still reference it and ErrTeamNotFound when it does not
	// exist.
	Delete(ctx context.Context, name string) error

	// EnsureFreeAgents creates the free-agent team if it is missing.
	// An existing row is left untouched.
	EnsureFreeAgents(ctx context.Context) error
}
