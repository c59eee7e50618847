package roster_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexlane/rosterd/internal/identity"
	"github.com/vexlane/rosterd/internal/player"
	"github.com/vexlane/rosterd/internal/roster"
	"github.com/vexlane/rosterd/internal/team"
)

// --- In-memory fakes ---

// fakeTeamRepo mirrors the Postgres repository's contract: names are
// matched case-insensitively and deletes are blocked while players
// reference the team.
type fakeTeamRepo struct {
	teams   map[string]team.Team // keyed by lower(name)
	players *fakePlayerRepo
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: map[string]team.Team{}}
}

func (r *fakeTeamRepo) Upsert(_ context.Context, t *team.Team) error {
	key := strings.ToLower(t.Name)
	if existing, ok := r.teams[key]; ok {
		t.Name = existing.Name // casing of first insert wins
	}
	r.teams[key] = *t
	return nil
}

func (r *fakeTeamRepo) GetByName(_ context.Context, name string) (*team.Team, error) {
	t, ok := r.teams[strings.ToLower(name)]
	if !ok {
		return nil, team.ErrTeamNotFound
	}
	return &t, nil
}

func (r *fakeTeamRepo) Search(_ context.Context, pattern string, includeFreeAgents bool) ([]string, error) {
	names := []string{}
	for _, t := range r.teams {
		if !strings.Contains(strings.ToLower(t.Name), strings.ToLower(pattern)) {
			continue
		}
		if !includeFreeAgents && team.IsReserved(t.Name) {
			continue
		}
		names = append(names, t.Name)
	}
	return names, nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, name string) error {
	key := strings.ToLower(name)
	t, ok := r.teams[key]
	if !ok {
		return team.ErrTeamNotFound
	}
	if r.players != nil {
		for _, p := range r.players.players {
			if strings.EqualFold(p.TeamName, t.Name) {
				return team.ErrTeamHasPlayers
			}
		}
	}
	delete(r.teams, key)
	return nil
}

func (r *fakeTeamRepo) EnsureFreeAgents(_ context.Context) error {
	key := strings.ToLower(team.FreeAgents)
	if _, ok := r.teams[key]; !ok {
		r.teams[key] = team.Team{Name: team.FreeAgents}
	}
	return nil
}

type fakePlayerRepo struct {
	teams   *fakeTeamRepo
	players map[int64]player.Player
}

func newFakePlayerRepo(teams *fakeTeamRepo) *fakePlayerRepo {
	r := &fakePlayerRepo{teams: teams, players: map[int64]player.Player{}}
	teams.players = r
	return r
}

func (r *fakePlayerRepo) Upsert(_ context.Context, p *player.Player) error {
	if _, ok := r.teams.teams[strings.ToLower(p.TeamName)]; !ok {
		return player.ErrUnknownTeam
	}
	r.players[p.UserID] = *p
	return nil
}

func (r *fakePlayerRepo) GetByUserID(_ context.Context, userID int64) (*player.Player, error) {
	p, ok := r.players[userID]
	if !ok {
		return nil, player.ErrPlayerNotFound
	}
	return &p, nil
}

func (r *fakePlayerRepo) GetByUsername(_ context.Context, username string) (*player.Player, error) {
	var best *player.Player
	for id := range r.players {
		p := r.players[id]
		if !strings.EqualFold(p.Username, username) {
			continue
		}
		if best == nil || p.UpdatedAt.After(best.UpdatedAt) {
			best = &p
		}
	}
	if best == nil {
		return nil, player.ErrPlayerNotFound
	}
	return best, nil
}

func (r *fakePlayerRepo) ListByTeam(_ context.Context, teamName string) ([]player.Player, error) {
	out := []player.Player{}
	for _, p := range r.players {
		if strings.EqualFold(p.TeamName, teamName) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) ListAll(_ context.Context) ([]player.LeaderboardEntry, error) {
	out := []player.LeaderboardEntry{}
	for _, p := range r.players {
		t, _ := r.teams.GetByName(context.Background(), p.TeamName)
		e := player.LeaderboardEntry{UserID: p.UserID, Username: p.Username, TeamName: p.TeamName}
		if t != nil {
			e.LogoAssetID = t.LogoAssetID
		}
		out = append(out, e)
	}
	return out, nil
}

// --- Helpers ---

type fixture struct {
	service *roster.Service
	teams   *fakeTeamRepo
	players *fakePlayerRepo
	clock   *fakeClock
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func setup(t *testing.T, ids ...identity.Identity) *fixture {
	t.Helper()

	teams := newFakeTeamRepo()
	players := newFakePlayerRepo(teams)
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	svc := roster.NewService(teams, players, identity.NewStaticResolver(ids...),
		roster.WithClock(clock.Now))

	require.NoError(t, svc.EnsureFreeAgents(context.Background()))

	return &fixture{service: svc, teams: teams, players: players, clock: clock}
}

func (f *fixture) mustSetTeam(t *testing.T, name string) *team.Team {
	t.Helper()
	tm, err := f.service.SetTeam(context.Background(), roster.TeamInput{Name: name, Owner: "builderman"})
	require.NoError(t, err)
	return tm
}

var alice = identity.Identity{ID: 1001, Username: "alice"}
var bob = identity.Identity{ID: 1002, Username: "bob"}

// --- Assign ---

func TestAssign_Added(t *testing.T) {
	f := setup(t, alice)
	f.mustSetTeam(t, "Red")

	result, err := f.service.Assign(context.Background(), "alice", "Red", "Player")
	require.NoError(t, err)

	assert.Equal(t, roster.OutcomeAdded, result.Outcome)
	assert.Nil(t, result.PreviousTeam)
	assert.Equal(t, "Red", result.Player.TeamName)
	assert.Equal(t, player.RankPlayer, result.Player.Rank.Kind)
	assert.Equal(t, int64(1001), result.Player.UserID)
}

func TestAssign_Moved(t *testing.T) {
	f := setup(t, alice)
	f.mustSetTeam(t, "Red")
	f.mustSetTeam(t, "Blue")

	_, err := f.service.Assign(context.Background(), "alice", "Red", "Player")
	require.NoError(t, err)

	result, err := f.service.Assign(context.Background(), "alice", "Blue", "Player")
	require.NoError(t, err)

	assert.Equal(t, roster.OutcomeMoved, result.Outcome)
	require.NotNil(t, result.PreviousTeam)
	assert.Equal(t, "Red", *result.PreviousTeam)
	assert.Equal(t, "Blue", result.Player.TeamName)
}

func TestAssign_Updated_SameTeamDifferentRank(t *testing.T) {
	f := setup(t, alice)
	f.mustSetTeam(t, "Red")

	_, err := f.service.Assign(context.Background(), "alice", "Red", "Player")
	require.NoError(t, err)

	result, err := f.service.Assign(context.Background(), "alice", "Red", "Manager")
	require.NoError(t, err)

	assert.Equal(t, roster.OutcomeUpdated, result.Outcome)
	assert.Equal(t, player.RankManager, result.Player.Rank.Kind)
}

func TestAssign_Updated_TeamNameCaseDiffers(t *testing.T) {
	f := setup(t, alice)
	f.mustSetTeam(t, "Red")

	_, err := f.service.Assign(context.Background(), "alice", "Red", "Player")
	require.NoError(t, err)

	// same team addressed with different casing is an update, not a move
	result, err := f.service.Assign(context.Background(), "alice", "RED", "Player")
	require.NoError(t, err)

	assert.Equal(t, roster.OutcomeUpdated, result.Outcome)
}

func TestAssign_Idempotent(t *testing.T) {
	f := setup(t, alice)
	f.mustSetTeam(t, "Red")

	first, err := f.service.Assign(context.Background(), "alice", "Red", "Player")
	require.NoError(t, err)

	f.clock.Advance(time.Minute)

	second, err := f.service.Assign(context.Background(), "alice", "Red", "Player")
	require.NoError(t, err)

	assert.Equal(t, first.Player.TeamName, second.Player.TeamName)
	assert.Equal(t, first.Player.Rank, second.Player.Rank)
	assert.True(t, second.Player.UpdatedAt.After(first.Player.UpdatedAt),
		"updated_at should advance on re-assignment")
}

func TestAssign_UnknownTeam_NoMutation(t *testing.T) {
	f := setup(t, alice)

	_, err := f.service.Assign(context.Background(), "alice", "Ghosts", "Player")
	assert.ErrorIs(t, err, player.ErrUnknownTeam)

	_, err = f.players.GetByUserID(context.Background(), alice.ID)
	assert.ErrorIs(t, err, player.ErrPlayerNotFound, "failed assignment must not create a player row")
}

func TestAssign_ReservedTeamRejected(t *testing.T) {
	f := setup(t, alice)

	for _, name := range []string{"Free Agent", "free agent", "FREE AGENT"} {
		_, err := f.service.Assign(context.Background(), "alice", name, "Player")
		assert.ErrorIs(t, err, roster.ErrReservedTeam, "assigning to %q should be rejected", name)
	}
}

func TestAssign_IdentityNotFound(t *testing.T) {
	f := setup(t) // empty resolver
	f.mustSetTeam(t, "Red")

	_, err := f.service.Assign(context.Background(), "nobody", "Red", "Player")
	assert.ErrorIs(t, err, identity.ErrIdentityNotFound)
}

func TestAssign_UsesCanonicalHandleCasing(t *testing.T) {
	f := setup(t, identity.Identity{ID: 42, Username: "CoolVibes99"})
	f.mustSetTeam(t, "Red")

	result, err := f.service.Assign(context.Background(), "coolvibes99", "Red", "Player")
	require.NoError(t, err)

	assert.Equal(t, "CoolVibes99", result.Player.Username,
		"stored handle should carry the directory's canonical casing")
}

// --- Unassign ---

func TestUnassign_MovesToFreeAgents(t *testing.T) {
	f := setup(t, alice)
	f.mustSetTeam(t, "Red")

	_, err := f.service.Assign(context.Background(), "alice", "Red", "Player")
	require.NoError(t, err)

	p, err := f.service.Unassign(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, team.FreeAgents, p.TeamName)
	assert.Equal(t, player.RankFreeAgent, p.Rank.Kind)
}

func TestUnassign_NeverAssignedPlayer(t *testing.T) {
	f := setup(t, bob)

	p, err := f.service.Unassign(context.Background(), "bob")
	require.NoError(t, err)

	assert.Equal(t, team.FreeAgents, p.TeamName)
}

func TestUnassign_RoundTrip(t *testing.T) {
	f := setup(t, alice)
	f.mustSetTeam(t, "Red")

	_, err := f.service.Assign(context.Background(), "alice", "Red", "Player")
	require.NoError(t, err)

	info, err := f.service.PlayerInfo(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Red", info.Player.TeamName)
	assert.Equal(t, "Player", info.Player.Rank.Label)

	_, err = f.service.Unassign(context.Background(), "alice")
	require.NoError(t, err)

	info, err = f.service.PlayerInfo(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, team.FreeAgents, info.Player.TeamName)
}

// --- Team mutations ---

func TestSetTeam_ReservedNameRejected(t *testing.T) {
	f := setup(t)

	for _, name := range []string{"Free Agent", "free AGENT", " Free Agent "} {
		_, err := f.service.SetTeam(context.Background(), roster.TeamInput{Name: name, Owner: "x"})
		assert.ErrorIs(t, err, roster.ErrReservedTeam, "upserting %q should be rejected", name)
	}
}

func TestDeleteTeam_ReservedNameRejected(t *testing.T) {
	f := setup(t)

	err := f.service.DeleteTeam(context.Background(), "free agent")
	assert.ErrorIs(t, err, roster.ErrReservedTeam)
}

func TestDeleteTeam_BlockedWhileRosterNonEmpty(t *testing.T) {
	f := setup(t, alice)
	f.mustSetTeam(t, "Red")

	_, err := f.service.Assign(context.Background(), "alice", "Red", "Player")
	require.NoError(t, err)

	err = f.service.DeleteTeam(context.Background(), "Red")
	assert.ErrorIs(t, err, team.ErrTeamHasPlayers)

	// releasing the player unblocks the delete
	_, err = f.service.Unassign(context.Background(), "alice")
	require.NoError(t, err)

	err = f.service.DeleteTeam(context.Background(), "Red")
	assert.NoError(t, err)
}

func TestDeleteTeam_NotFound(t *testing.T) {
	f := setup(t)

	err := f.service.DeleteTeam(context.Background(), "Ghosts")
	assert.ErrorIs(t, err, team.ErrTeamNotFound)
}

// --- Bootstrap ---

func TestEnsureFreeAgents_Idempotent(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.service.EnsureFreeAgents(context.Background()))
	require.NoError(t, f.service.EnsureFreeAgents(context.Background()))

	fa, err := f.teams.GetByName(context.Background(), team.FreeAgents)
	require.NoError(t, err)
	assert.Equal(t, team.FreeAgents, fa.Name)
	assert.Len(t, f.teams.teams, 1)
}

// --- Queries ---

func TestTeamView_NotFound(t *testing.T) {
	f := setup(t)

	_, err := f.service.TeamView(context.Background(), "Ghosts")
	assert.ErrorIs(t, err, team.ErrTeamNotFound)
}

func TestTeamView_Roster(t *testing.T) {
	f := setup(t, alice, bob)
	f.mustSetTeam(t, "Red")

	_, err := f.service.Assign(context.Background(), "alice", "Red", "Owner")
	require.NoError(t, err)
	_, err = f.service.Assign(context.Background(), "bob", "Red", "Player")
	require.NoError(t, err)

	view, err := f.service.TeamView(context.Background(), "red")
	require.NoError(t, err)

	assert.Equal(t, "Red", view.Team.Name)
	assert.Len(t, view.Players, 2)
}

func TestPlayerInfo_RankBooleans(t *testing.T) {
	f := setup(t, alice, bob)
	f.mustSetTeam(t, "Red")

	_, err := f.service.Assign(context.Background(), "alice", "Red", "owner")
	require.NoError(t, err)

	info, err := f.service.PlayerInfo(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, info.IsOwner)
	assert.False(t, info.IsManager)
	assert.False(t, info.IsStaff)

	// unrecognized rank yields all-false, which is expected
	_, err = f.service.Assign(context.Background(), "bob", "Red", "Benchwarmer")
	require.NoError(t, err)

	info, err = f.service.PlayerInfo(context.Background(), "bob")
	require.NoError(t, err)
	assert.False(t, info.IsOwner)
	assert.False(t, info.IsManager)
	assert.False(t, info.IsStaff)
}

func TestPlayerInfo_ByUserID(t *testing.T) {
	f := setup(t, alice)
	f.mustSetTeam(t, "Red")

	_, err := f.service.Assign(context.Background(), "alice", "Red", "Player")
	require.NoError(t, err)

	info, err := f.service.PlayerInfo(context.Background(), "1001")
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Player.Username)
}

func TestPlayerInfo_NotFound(t *testing.T) {
	f := setup(t)

	_, err := f.service.PlayerInfo(context.Background(), "nobody")
	assert.ErrorIs(t, err, player.ErrPlayerNotFound)
}

func TestSearchTeams_ExcludesFreeAgentsByDefault(t *testing.T) {
	f := setup(t)
	f.mustSetTeam(t, "Red Dragons")
	f.mustSetTeam(t, "Blue Jays")

	names, err := f.service.SearchTeams(context.Background(), "e", false)
	require.NoError(t, err)
	assert.NotContains(t, names, team.FreeAgents)
	assert.Contains(t, names, "Red Dragons")
	assert.Contains(t, names, "Blue Jays")

	names, err = f.service.SearchTeams(context.Background(), "e", true)
	require.NoError(t, err)
	assert.Contains(t, names, team.FreeAgents)
}
