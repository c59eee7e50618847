package player

import "time"

// Player represents a row in the players table. UserID is the immutable
// identity resolved from the directory service; Username is the display
// handle at the time of the last write and is overwritten on every upsert.
type Player struct {
	UserID    int64
	Username  string
	TeamName  string
	Rank      Rank
	UpdatedAt time.Time
}

// LeaderboardEntry is one row of the bulk export: a player joined with
// the team's canonical name and logo.
type LeaderboardEntry struct {
	UserID      int64
	Username    string
	TeamName    string
	LogoAssetID *int64
}
