package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[telegram]
token = "test-token"
admin_ids = [1, 2]

[database]
host = "localhost"
user = "bot"
password = "secret"
dbname = "barbershop"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.Telegram.Token)
	assert.Equal(t, []int64{1, 2}, cfg.Telegram.AdminIDs)

	// Дефолты применены
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 30, cfg.Session.TTLMinutes)
	assert.Equal(t, 60, cfg.Archive.SweepMinutes)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadMissingToken(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
dbname = "barbershop"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.toml")
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5432, User: "bot", Password: "secret",
		DBName: "barbershop", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=bot password=secret dbname=barbershop sslmode=disable", d.DSN())
}

func TestIsAdmin(t *testing.T) {
	tg := TelegramConfig{AdminIDs: []int64{10, 20}}
	assert.True(t, tg.IsAdmin(10))
	assert.False(t, tg.IsAdmin(30))
}
