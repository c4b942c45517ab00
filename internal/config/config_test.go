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
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// An explicit empty file keeps the search paths out of the test.
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "user", cfg.Seed.Name)
	assert.Equal(t, "user", cfg.Seed.Password)
	assert.Equal(t, "user@example.com", cfg.Seed.Email)
	assert.Equal(t, CacheTypeMemory, cfg.Cache.Type)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
log_level: " DEBUG "
database:
  path: /tmp/shop.db
seed:
  name: tester
  password: secret
  email: tester@example.com
cache:
  type: redis
  redis_url: localhost:6379
  ttl: 30s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/shop.db", cfg.Database.Path)
	assert.Equal(t, "tester", cfg.Seed.Name)
	assert.Equal(t, "secret", cfg.Seed.Password)
	assert.Equal(t, "tester@example.com", cfg.Seed.Email)
	assert.Equal(t, CacheTypeRedis, cfg.Cache.Type)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisURL)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("STOREKEEP_DATABASE_PATH", "/var/lib/storekeep/store.db")
	t.Setenv("STOREKEEP_LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/storekeep/store.db", cfg.Database.Path)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			LogLevel: "info",
			Database: &DatabaseConfig{Path: "store.db"},
			Seed:     &SeedConfig{Name: "user", Password: "user", Email: "user@example.com"},
			Cache:    &CacheConfig{Type: CacheTypeMemory},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: true,
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: true,
		},
		{
			name:    "missing seed email",
			mutate:  func(c *Config) { c.Seed.Email = "" },
			wantErr: true,
		},
		{
			name:    "redis without url",
			mutate:  func(c *Config) { c.Cache.Type = CacheTypeRedis },
			wantErr: true,
		},
		{
			name:    "unknown cache type",
			mutate:  func(c *Config) { c.Cache.Type = "memcached" },
			wantErr: true,
		},
		{
			name:   "nil cache falls back to memory",
			mutate: func(c *Config) { c.Cache = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := validateConfig(c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c.Cache)
		})
	}
}
