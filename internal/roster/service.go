package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vexlane/rosterd/internal/identity"
	"github.com/vexlane/rosterd/internal/player"
	"github.com/vexlane/rosterd/internal/team"
)

// ErrReservedTeam is returned when a mutation targets the free-agent
// team through a path that must not touch it.
var ErrReservedTeam = errors.New("reserved team")

// Outcome describes what an assignment did to the player row.
type Outcome string

const (
	// OutcomeAdded means the player had no row before.
	OutcomeAdded Outcome = "added"
	// OutcomeMoved means the player changed teams.
	OutcomeMoved Outcome = "moved"
	// OutcomeUpdated means the player stayed on the same team.
	OutcomeUpdated Outcome = "updated"
)

// AssignResult reports an assignment back to the caller: the written
// player row, the canonical team (with logo) and the previous team, if
// any, so the front end can render added vs moved vs updated.
type AssignResult struct {
	Outcome      Outcome
	Player       player.Player
	Team         team.Team
	PreviousTeam *string
}

// Service orchestrates the identity resolver and the registry store for
// every mutation, and serves the read-side queries. It is the only
// writer of registry state.
type Service struct {
	teams    team.Repository
	players  player.Repository
	resolver identity.Resolver
	now      func() time.Time
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithClock overrides the timestamp source, mainly for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new registry Service.
func NewService(teams team.Repository, players player.Repository, resolver identity.Resolver, opts ...ServiceOption) *Service {
	s := &Service{
		teams:    teams,
		players:  players,
		resolver: resolver,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Assign puts a player on a team with a rank, creating the player row on
// first contact and overwriting it afterwards. The target team must
// already exist; assigning to the free-agent team is rejected so that
// unassignment always goes through Unassign.
func (s *Service) Assign(ctx context.Context, username, teamName, rankLabel string) (*AssignResult, error) {
	if team.IsReserved(teamName) {
		return nil, ErrReservedTeam
	}

	id, err := s.resolver.Resolve(ctx, username)
	if err != nil {
		return nil, err
	}

	t, err := s.teams.GetByName(ctx, teamName)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			return nil, player.ErrUnknownTeam
		}
		return nil, fmt.Errorf("verifying team: %w", err)
	}

	var previousTeam *string
	prev, err := s.players.GetByUserID(ctx, id.ID)
	switch {
	case err == nil:
		previousTeam = &prev.TeamName
	case errors.Is(err, player.ErrPlayerNotFound):
		// first assignment
	default:
		return nil, fmt.Errorf("reading previous assignment: %w", err)
	}

	p := player.Player{
		UserID:    id.ID,
		Username:  id.Username,
		TeamName:  t.Name,
		Rank:      player.ParseRank(rankLabel),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.players.Upsert(ctx, &p); err != nil {
		return nil, err
	}

	outcome := OutcomeAdded
	if previousTeam != nil {
		if strings.EqualFold(*previousTeam, t.Name) {
			outcome = OutcomeUpdated
		} else {
			outcome = OutcomeMoved
		}
	}

	return &AssignResult{
		Outcome:      outcome,
		Player:       p,
		Team:         *t,
		PreviousTeam: previousTeam,
	}, nil
}

// Unassign moves a player to the free-agent team. Player rows are never
// deleted; release is modeled as reassignment to the sentinel.
func (s *Service) Unassign(ctx context.Context, username string) (*player.Player, error) {
	id, err := s.resolver.Resolve(ctx, username)
	if err != nil {
		return nil, err
	}

	fa, err := s.teams.GetByName(ctx, team.FreeAgents)
	if err != nil {
		return nil, fmt.Errorf("reading free-agent team: %w", err)
	}

	p := player.Player{
		UserID:    id.ID,
		Username:  id.Username,
		TeamName:  fa.Name,
		Rank:      player.FreeAgentRank(),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.players.Upsert(ctx, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// TeamInput carries the fields of a team upsert.
type TeamInput struct {
	Name        string
	Owner       string
	Manager     *string
	LogoAssetID *int64
	Division    *string
}

// SetTeam creates or fully overwrites a team. The free-agent team is
// protected, matched case-insensitively.
func (s *Service) SetTeam(ctx context.Context, in TeamInput) (*team.Team, error) {
	if team.IsReserved(in.Name) {
		return nil, ErrReservedTeam
	}

	t := team.Team{
		Name:        in.Name,
		Owner:       &in.Owner,
		Manager:     in.Manager,
		LogoAssetID: in.LogoAssetID,
		Division:    in.Division,
	}
	if err := s.teams.Upsert(ctx, &t); err != nil {
		return nil, err
	}

	return &t, nil
}

// DeleteTeam removes a team. The free-agent team is protected; a team
// with players on it surfaces team.ErrTeamHasPlayers untouched.
func (s *Service) DeleteTeam(ctx context.Context, name string) error {
	if team.IsReserved(name) {
		return ErrReservedTeam
	}
	return s.teams.Delete(ctx, name)
}

// EnsureFreeAgents bootstraps the free-agent team. Safe to call on
// every startup.
func (s *Service) EnsureFreeAgents(ctx context.Context) error {
	return s.teams.EnsureFreeAgents(ctx)
}
