package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("DATABASE_DSN", "postgres://localhost/modstats")
	t.Setenv("GUILD_ID", "123")
	t.Setenv("ADMIN_ROLE_IDS", "100, 200")
	t.Setenv("LEDGER_PATH", "")
	t.Setenv("MUTED_CHANNEL_ID", "")
}

func TestLoadSuccess(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "test-token", cfg.DiscordToken)
	assert.Equal(t, "123", cfg.GuildID)
	assert.Equal(t, []string{"100", "200"}, cfg.AdminRoleIDs)
	assert.Equal(t, "users_data.json", cfg.LedgerPath)
}

func TestLoadMissingToken(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DISCORD_TOKEN", "")

	_, err := Load()

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "DISCORD_TOKEN", cfgErr.Field)
}

func TestLoadMissingAdminRoles(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_ROLE_IDS", " , ")

	_, err := Load()

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "ADMIN_ROLE_IDS", cfgErr.Field)
}

func TestLoadLedgerPathOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LEDGER_PATH", "/var/lib/modstats/users.json")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/var/lib/modstats/users.json", cfg.LedgerPath)
}
