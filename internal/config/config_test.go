package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/CoveoBlitz", cfg.Server.EntryPath)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, RosterSourceFile, cfg.Roster.Source)
	assert.Equal(t, "teamMember.json", cfg.Roster.File)
	assert.Equal(t, "Beautiful Brown", cfg.Roster.TeamName)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.UsesDatabase())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ROSTER_SOURCE", "postgres")
	t.Setenv("TEAM_NAME", "Other Team")
	t.Setenv("DB_HOST", "db")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.UsesDatabase())
	assert.Equal(t, "Other Team", cfg.Roster.TeamName)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "postgres://blitz:blitz_pass@db:5432/blitz?sslmode=disable", cfg.Database.DSN())
}

func TestLoad_InvalidRosterSource(t *testing.T) {
	t.Setenv("ROSTER_SOURCE", "s3")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown roster source")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{EntryPath: "/CoveoBlitz"},
			Roster: RosterConfig{Source: RosterSourceFile, File: "teamMember.json", TeamName: "Beautiful Brown"},
		}
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Roster.File = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Roster.TeamName = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Server.EntryPath = "CoveoBlitz"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Roster.Source = RosterSourcePostgres
	cfg.Roster.File = ""
	assert.NoError(t, cfg.Validate())
}
