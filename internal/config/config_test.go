package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[database]
host = "localhost"
port = 5432
user = "padel"
password = "from-file"
dbname = "padel"
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(minimalConfig)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 4, cfg.Engine.DefaultTableCapacity)
	assert.Equal(t, 120, cfg.Engine.DefaultDurationMinutes)
	assert.Equal(t, 30, cfg.Engine.SlotDurationMinutes)
	assert.Equal(t, "12:00", cfg.Engine.FallbackTime)
	assert.Equal(t, "UTC", cfg.Engine.Timezone)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 10, cfg.Redis.LockTTL)
}

func TestParse_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("NATS_URL", "nats://nats:4222")

	cfg, err := Parse(minimalConfig)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "nats://nats:4222", cfg.NATS.URL)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing database", `[server]
http_port = 8080`},
		{"unknown driver", minimalConfig + `
[storage]
driver = "sqlite"`},
		{"mongo without uri", `[storage]
driver = "mongo"`},
		{"redis without addr", minimalConfig + `
[redis]
enabled = true`},
		{"bad open time", minimalConfig + `
[engine]
open_time = "noon"`},
		{"slot too short", minimalConfig + `
[engine]
slot_duration_minutes = 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse("[database\nhost=")
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(minimalConfig+`
[engine]
default_table_capacity = 6
require_specific_table = true
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Engine.DefaultTableCapacity)
	assert.True(t, cfg.Engine.RequireSpecificTable)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestEngineConfig_Settings(t *testing.T) {
	cfg, err := Parse(minimalConfig + `
[engine]
timezone = "America/Bogota"
open_time = "18:00"
close_time = "02:00"
`)
	require.NoError(t, err)

	settings := cfg.Engine.Settings()
	require.NoError(t, settings.Validate())
	assert.Equal(t, "America/Bogota", settings.Location.String())
	assert.Equal(t, "18:00", settings.OpenTime)
	assert.Equal(t, "02:00", settings.CloseTime)
	assert.Equal(t, 4, settings.DefaultTableCapacity)
}
