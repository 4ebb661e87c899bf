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

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.local
  user: dining
  password: secret
  database: dining
rabbitmq:
  host: mq.local
  user: guest
  password: guest
branch:
  id: branch-main
  name: "Main Street Branch"
  vat_number: "VAT-42"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port, "default port")
	assert.Equal(t, 5672, cfg.RabbitMQ.Port, "default port")
	assert.Equal(t, "/", cfg.RabbitMQ.VHost, "default vhost")
	assert.Equal(t, "Main Street Branch", cfg.Branch.Name)
	assert.Equal(t, "VAT-42", cfg.Branch.VATNumber)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.local
  port: 5433
  user: dining
  password: secret
  database: dining
rabbitmq:
  host: mq.local
  port: 5673
  user: guest
  password: guest
  vhost: /dining
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, 5673, cfg.RabbitMQ.Port)
	assert.Equal(t, "/dining", cfg.RabbitMQ.VHost)
}

func TestLoad_IncompleteSections(t *testing.T) {
	_, err := Load(writeConfig(t, "database:\n  host: db.local\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `
database:
  host: db.local
  user: dining
  database: dining
rabbitmq:
  port: 5672
`))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
