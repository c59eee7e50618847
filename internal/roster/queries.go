package roster

import (
	"context"
	"strconv"

	"github.com/vexlane/rosterd/internal/player"
	"github.com/vexlane/rosterd/internal/team"
)

// TeamView is a team with its full roster.
type TeamView struct {
	Team    team.Team
	Players []player.Player
}

// PlayerInfo is a player joined with the attributes of their team, plus
// the role booleans derived from the rank variant.
type PlayerInfo struct {
	Player    player.Player
	Team      team.Team
	IsOwner   bool
	IsManager bool
	IsStaff   bool
}

// TeamView returns a team's attributes and roster, or
// team.ErrTeamNotFound.
func (s *Service) TeamView(ctx context.Context, name string) (*TeamView, error) {
	t, err := s.teams.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	players, err := s.players.ListByTeam(ctx, t.Name)
	if err != nil {
		return nil, err
	}

	return &TeamView{Team: *t, Players: players}, nil
}

// PlayerInfo returns a player's attributes joined with their team, or
// player.ErrPlayerNotFound. Reads never touch the resolver: handle
// lookups go against the stored display name, and an all-digits handle
// is also tried as a stable user id.
func (s *Service) PlayerInfo(ctx context.Context, handle string) (*PlayerInfo, error) {
	p, err := s.lookupPlayer(ctx, handle)
	if err != nil {
		return nil, err
	}

	t, err := s.teams.GetByName(ctx, p.TeamName)
	if err != nil {
		return nil, err
	}

	return &PlayerInfo{
		Player:    *p,
		Team:      *t,
		IsOwner:   p.Rank.IsOwner(),
		IsManager: p.Rank.IsManager(),
		IsStaff:   p.Rank.IsStaff(),
	}, nil
}

func (s *Service) lookupPlayer(ctx context.Context, handle string) (*player.Player, error) {
	if userID, err := strconv.ParseInt(handle, 10, 64); err == nil {
		if p, err := s.players.GetByUserID(ctx, userID); err == nil {
			return p, nil
		}
	}
	return s.players.GetByUsername(ctx, handle)
}

// SearchTeams returns team names matching pattern for autocomplete,
// capped and ordered as in team.Repository.Search.
func (s *Service) SearchTeams(ctx context.Context, pattern string, includeFreeAgents bool) ([]string, error) {
	return s.teams.Search(ctx, pattern, includeFreeAgents)
}

// Leaderboard returns the full player export joined with team and logo.
func (s *Service) Leaderboard(ctx context.Context) ([]player.LeaderboardEntry, error) {
	return s.players.ListAll(ctx)
}
