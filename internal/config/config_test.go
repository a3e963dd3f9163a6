package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: bementor
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 5000, cfg.App.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "bementor", cfg.Mongo.Database)
	assert.Equal(t, 720*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
}

func TestLoadProductionRequiresSecret(t *testing.T) {
	path := writeConfig(t, `
app:
  env: production
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
}

func TestLoadProductionForbidsMemoryFallback(t *testing.T) {
	path := writeConfig(t, `
app:
  env: production
jwt:
  secret: super-secret
store:
  allow_memory_fallback: true
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allow_memory_fallback")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
