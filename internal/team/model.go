package team

import (
	"fmt"
	"strings"
)

// FreeAgents is the reserved team that holds every player not currently
// assigned to a real team. It is created at startup and can never be
// edited or deleted through the normal mutation paths.
const FreeAgents = "Free Agent"

// Team represents a row in the teams table. Name is the primary key,
// stored case-preserved but matched case-insensitively.
type Team struct {
	Name        string
	Owner       *string
	Manager     *string
	LogoAssetID *int64
	Division    *string
}

// IsReserved reports whether name refers to the free-agent team,
// ignoring case.
func IsReserved(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), FreeAgents)
}

// LogoURL returns a direct thumbnail URL for a Roblox image asset id.
func LogoURL(assetID int64) string {
	return fmt.Sprintf(
		"https://www.roblox.com/asset-thumbnail/image?assetId=%d&width=420&height=420&format=png",
		assetID,
	)
}

// LogoThumbnail returns the team's logo thumbnail URL, or nil when the
// team has no logo asset configured.
func (t *Team) LogoThumbnail() *string {
	if t.LogoAssetID == nil {
		return nil
	}
	u := LogoURL(*t.LogoAssetID)
	return &u
}
