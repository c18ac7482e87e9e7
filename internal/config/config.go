package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for our application
type Config struct {
	DiscordToken   string
	DatabaseDSN    string
	GuildID        string
	AdminRoleIDs   []string
	LedgerPath     string
	MutedChannelID string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// .env file is optional, continue with environment variables
	}

	config := &Config{
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),
		GuildID:        os.Getenv("GUILD_ID"),
		AdminRoleIDs:   splitList(os.Getenv("ADMIN_ROLE_IDS")),
		LedgerPath:     os.Getenv("LEDGER_PATH"),
		MutedChannelID: os.Getenv("MUTED_CHANNEL_ID"),
	}

	if config.LedgerPath == "" {
		config.LedgerPath = "users_data.json"
	}

	if config.DiscordToken == "" {
		return nil, &ConfigError{Field: "DISCORD_TOKEN", Message: "DISCORD_TOKEN is required"}
	}

	if config.DatabaseDSN == "" {
		return nil, &ConfigError{Field: "DATABASE_DSN", Message: "DATABASE_DSN is required"}
	}

	if config.GuildID == "" {
		return nil, &ConfigError{Field: "GUILD_ID", Message: "GUILD_ID is required"}
	}

	if len(config.AdminRoleIDs) == 0 {
		return nil, &ConfigError{Field: "ADMIN_ROLE_IDS", Message: "ADMIN_ROLE_IDS is required"}
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
