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
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "jwt_secret: s3cret\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "backups", cfg.BackupDir)
	assert.Contains(t, cfg.ResolveDSN(), "root:@tcp(127.0.0.1:3306)/metadots")
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
port: 8080
env: production
dsn: "user:pw@tcp(db:3306)/site?parseTime=True"
redis_url: "redis://localhost:6379/0"
jwt_secret: s3cret
allowed_origins:
  - metadots.com
  - "*.metadots.com"
backup_dir: /var/backups/metadots
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "user:pw@tcp(db:3306)/site?parseTime=True", cfg.ResolveDSN())
	assert.Equal(t, []string{"metadots.com", "*.metadots.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "/var/backups/metadots", cfg.BackupDir)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "prot: 8080\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	_, err := Load(writeConfig(t, "port: 99999\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "env: staging\n"))
	assert.Error(t, err)
}

func TestLoadMissingFileWithoutEnvFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadEnvOnlyMode(t *testing.T) {
	t.Setenv("METADOTS_DSN", "env:pw@tcp(envhost:3306)/envdb")
	t.Setenv("METADOTS_PORT", "9000")
	t.Setenv("METADOTS_ENV", "production")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "env:pw@tcp(envhost:3306)/envdb", cfg.ResolveDSN())
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("METADOTS_JWT_SECRET", "from-env")
	path := writeConfig(t, "jwt_secret: from-file\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWTSecret)
}
