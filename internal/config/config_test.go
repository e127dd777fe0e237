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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
# local setup
database:
  host: db.local
  port: 5433
  user: delivery
  password: "secret"
  database: delivery
  max_conns: 20

rabbitmq:
  host: mq.local
  user: guest
  password: guest

redis:
  host: cache.local
  db: 2

server:
  port: 8080
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "delivery", cfg.Database.Name)
	assert.Equal(t, 20, cfg.Database.MaxConns)
	assert.Equal(t, "disable", cfg.Database.SSLMode) // default

	assert.Equal(t, "mq.local", cfg.Rabbit.Host)
	assert.Equal(t, 5672, cfg.Rabbit.Port) // default
	assert.Equal(t, "/", cfg.Rabbit.VHost) // default

	assert.Equal(t, "cache.local", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port) // default
	assert.Equal(t, 2, cfg.Redis.DB)

	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadIncomplete(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.local
rabbitmq:
  host: mq.local
  user: guest
redis:
  host: cache.local
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
