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
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9000

[database]
driver = "postgres"
host = "db"
dbname = "bookings"

[booking]
timezone = "Europe/Moscow"
lead_time_minutes = 30
default_horizon_days = 30
max_horizon_days = 180
`)
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "dbname=bookings")
	assert.Equal(t, "k1:9092,k2:9092", cfg.Kafka.Brokers)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 30, cfg.Booking.DefaultHorizonDays)
	assert.Equal(t, 5, cfg.Booking.ToleranceMinutes)
	assert.Equal(t, "30m0s", cfg.Booking.LeadTime().String())

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "8181")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 8181, cfg.Server.HTTPPort)
	assert.Equal(t, StorageDriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 90, cfg.Booking.DefaultHorizonDays)
	assert.Equal(t, 365, cfg.Booking.MaxHorizonDays)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad port", func(c *Config) { c.Server.HTTPPort = 0 }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }},
		{"bad timezone", func(c *Config) { c.Booking.Timezone = "Mars/Olympus" }},
		{"horizon above max", func(c *Config) { c.Booking.DefaultHorizonDays = 400 }},
		{"negative lead time", func(c *Config) { c.Booking.LeadTimeMinutes = -1 }},
		{"rate limit without limit", func(c *Config) {
			c.RateLimit.Enabled = true
			c.RateLimit.Limit = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	memory := defaults()
	memory.Database.Driver = StorageDriverMemory
	memory.Database.Host = ""
	assert.NoError(t, memory.Validate())
}
