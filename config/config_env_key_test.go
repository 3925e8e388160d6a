package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"session": map[string]any{
			"cookieName":    "campuseats.sid",
			"sweepSchedule": "@every 5m",
		},
		"orders": map[string]any{
			"verifyCatalogPrices": false,
		},
		"pubsub": map[string]any{
			"kafkaBrokers": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "SESSION_COOKIENAME", want: "session.cookieName"},
		{envKey: "SESSION_SWEEPSCHEDULE", want: "session.sweepSchedule"},
		{envKey: "ORDERS_VERIFYCATALOGPRICES", want: "orders.verifyCatalogPrices"},
		{envKey: "PUBSUB_KAFKABROKERS", want: "pubsub.kafkaBrokers"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "/api", cfg.HTTP.BasePath)
	assert.Equal(t, "100KB", cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "campuseats.sid", cfg.Session.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, "@every 5m", cfg.Session.SweepSchedule)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.Session.Secret = "0123456789abcdef"

		return cfg
	}

	t.Run("defaults with secret are valid", func(t *testing.T) {
		require.NoError(t, valid().validate())
	})

	t.Run("short secret", func(t *testing.T) {
		cfg := valid()
		cfg.Session.Secret = "short"
		assert.Error(t, cfg.validate())
	})

	t.Run("postgres driver without section", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.Driver = StoragePostgres
		assert.Error(t, cfg.validate())
	})

	t.Run("redis store without url", func(t *testing.T) {
		cfg := valid()
		cfg.Session.Store = SessionStoreRedis
		assert.Error(t, cfg.validate())

		cfg.Redis = &RedisConfig{URL: "redis://localhost:6379/0"}
		assert.NoError(t, cfg.validate())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.Driver = "sqlite"
		assert.Error(t, cfg.validate())
	})
}

func TestLoadWithEnv_OverridesFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir+"/config.yaml", `
env:
  serviceName: campuseats
http:
  port: 5000
session:
  cookieName: campuseats.sid
  ttl: 24h
  secret: file-secret-0123456789
`)
	t.Setenv("HTTP_PORT", "8088")
	t.Setenv("SESSION_TTL", "2h")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "campuseats", cfg.Env.ServiceName)
	assert.Equal(t, 8088, cfg.HTTP.Port)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "campuseats.sid", cfg.Session.CookieName)
}
