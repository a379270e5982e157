package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "", cfg.Database.Host)
	assert.Equal(t, "admin", cfg.Auth.Username)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "Income_Backup", cfg.Sheets.IncomeSheet)
	assert.Equal(t, "Expenses_Backup", cfg.Sheets.ExpenseSheet)
	assert.Equal(t, "Cash_Backup", cfg.Sheets.CashSheet)
	assert.False(t, cfg.Email.Enabled)
}

func TestLoadConfig_ExternalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: ":9090"
auth:
  session_hours: 48
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, 48*time.Hour, cfg.Auth.SessionTTL)
	// Untouched keys keep their defaults.
	assert.Equal(t, "debug", cfg.Server.Mode)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("FINTRACK_SERVER_PORT", ":7070")
	t.Setenv("FINTRACK_AUTH_PASSWORD", "from-env")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Auth.Password)
}

func TestSafeErrorMessage(t *testing.T) {
	old := GlobalConfig
	defer func() { GlobalConfig = old }()

	err := errors.New("dial tcp 10.0.0.5:3306: connection refused")

	GlobalConfig = &Config{Server: ServerConfig{Mode: "debug"}}
	assert.Equal(t, err.Error(), SafeErrorMessage(err, "Something went wrong"))

	GlobalConfig = &Config{Server: ServerConfig{Mode: "release"}}
	assert.Equal(t, "Something went wrong", SafeErrorMessage(err, "Something went wrong"))

	assert.Equal(t, "Something went wrong", SafeErrorMessage(nil, "Something went wrong"))
}
