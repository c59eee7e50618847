package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL    string `envconfig:"DATABASE_URL" required:"true"`
	RobloxUsersURL string `envconfig:"ROBLOX_USERS_URL" default:"https://users.roblox.com"`
	AdminKeyHashes string `envconfig:"ADMIN_KEY_HASHES" default:""`
	BcryptCost     int    `envconfig:"BCRYPT_COST" default:"12"`
	Version        string `envconfig:"VERSION" default:"dev"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AdminHashes returns the configured operator key hashes as a slice.
// An empty setting disables the restricted API entirely.
func (c *Config) AdminHashes() []string {
	var hashes []string
	for _, h := range strings.Split(c.AdminKeyHashes, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hashes = append(hashes, h)
		}
	}
	return hashes
}
