package player

import "strings"

// RankKind classifies a rank label into the small set of roles the
// registry recognizes. Labels outside the set are carried as RankOther;
// that is expected, not an error.
type RankKind int

const (
	RankOther RankKind = iota
	RankOwner
	RankManager
	RankPlayer
	RankStaff
	RankFreeAgent
)

// canonical labels, keyed by the kind they parse to.
var rankLabels = map[RankKind]string{
	RankOwner:     "Owner",
	RankManager:   "Manager",
	RankPlayer:    "Player",
	RankStaff:     "Staff",
	RankFreeAgent: "Free Agent",
}

// Rank is a player's role within a team: a closed enumeration plus the
// label as stored. For recognized kinds Label carries the canonical
// spelling; for RankOther it preserves the caller's free text.
type Rank struct {
	Kind  RankKind
	Label string
}

// ParseRank classifies a free-text rank label, ignoring case and
// surrounding whitespace.
func ParseRank(label string) Rank {
	trimmed := strings.TrimSpace(label)
	for kind, canonical := range rankLabels {
		if strings.EqualFold(trimmed, canonical) {
			return Rank{Kind: kind, Label: canonical}
		}
	}
	return Rank{Kind: RankOther, Label: trimmed}
}

// FreeAgentRank is the rank written on unassignment.
func FreeAgentRank() Rank {
	return Rank{Kind: RankFreeAgent, Label: rankLabels[RankFreeAgent]}
}

func (r Rank) IsOwner() bool   { return r.Kind == RankOwner }
func (r Rank) IsManager() bool { return r.Kind == RankManager }
func (r Rank) IsStaff() bool   { return r.Kind == RankStaff }

func (r Rank) String() string { return r.Label }
