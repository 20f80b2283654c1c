package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndValidation(t *testing.T) {
	// No secret anywhere: load must fail.
	_, err := Load("")
	require.Error(t, err)

	t.Setenv("FLEET_AUTH__JWT_SECRET", "sekrit")
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	require.Equal(t, 6, cfg.Auth.TokenTTLHours)
	require.Equal(t, "sekrit", cfg.Auth.JWTSecret)
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
http:
  addr: ":9090"
db:
  dsn: "postgres://fleet:fleet@db:5432/fleet?sslmode=disable"
auth:
  jwt_secret: "from-file"
  token_ttl_hours: 12
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("FLEET_HTTP__ADDR", ":7070")
	cfg, err := Load(path)
	require.NoError(t, err)

	// Env wins over file; untouched file values survive.
	require.Equal(t, ":7070", cfg.HTTP.Addr)
	require.Equal(t, "postgres://fleet:fleet@db:5432/fleet?sslmode=disable", cfg.DB.DSN)
	require.Equal(t, "from-file", cfg.Auth.JWTSecret)
	require.Equal(t, 12, cfg.Auth.TokenTTLHours)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("FLEET_AUTH__JWT_SECRET", "sekrit")
	_, err := Load("/does/not/exist.yaml")
	require.Error(t, err)
}
