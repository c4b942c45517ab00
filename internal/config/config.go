package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// DefaultDatabasePath is the store location used when nothing else is configured.
const DefaultDatabasePath = "src/database/database.db"

// Config holds the configuration for storekeep and its dependencies.
type Config struct {
	// LogLevel is the default log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Seed holds the test user inserted by init-db --add-user.
	Seed *SeedConfig `yaml:"seed" mapstructure:"seed"`
	// Cache holds the cache engine configuration for inventory lookups.
	Cache *CacheConfig `yaml:"cache" mapstructure:"cache"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the path to the database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// SeedConfig holds the fixed test user record.
type SeedConfig struct {
	Name     string `yaml:"name" mapstructure:"name"`
	Password string `yaml:"password" mapstructure:"password"`
	Email    string `yaml:"email" mapstructure:"email"`
}

// CacheConfig holds the configuration for the cache engine.
type CacheConfig struct {
	// Type is the type of cache engine to use (e.g., "memory", "redis").
	Type CacheType `yaml:"type" mapstructure:"type"`
	// RedisURL is the address of the Redis server if using Redis.
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
	// TTL is how long a cached inventory item stays valid.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
// A missing config file is not an error; defaults and environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("STOREKEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.storekeep")
		v.AddConfigPath("/etc/storekeep")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	sanitizeConfig(&c)

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	// Database defaults
	v.SetDefault("database.path", DefaultDatabasePath)

	// Seed user defaults
	v.SetDefault("seed.name", "user")
	v.SetDefault("seed.password", "user")
	v.SetDefault("seed.email", "user@example.com")

	// Cache defaults
	v.SetDefault("cache.type", CacheTypeMemory)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", 5*time.Minute)
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing storekeep config")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.Seed == nil {
		return fmt.Errorf("missing seed config")
	}
	if c.Seed.Name == "" || c.Seed.Password == "" || c.Seed.Email == "" {
		return fmt.Errorf("seed name, password and email are required")
	}

	if c.Cache != nil {
		if c.Cache.Type == "" {
			return fmt.Errorf("cache type is required when cache is enabled")
		}
		if c.Cache.Type != CacheTypeMemory && c.Cache.Type != CacheTypeRedis {
			return fmt.Errorf("unknown cache type %q", c.Cache.Type)
		}
		if c.Cache.Type == CacheTypeRedis && c.Cache.RedisURL == "" {
			return fmt.Errorf("Redis URL is required when Redis cache is enabled") //nolint:staticcheck
		}
		if c.Cache.TTL < 0 {
			return fmt.Errorf("cache ttl must not be negative")
		}
	} else {
		c.Cache = &CacheConfig{
			Type: CacheTypeMemory,
		}
	}

	return nil
}

// sanitizeConfig sanitizes the configuration values.
func sanitizeConfig(c *Config) {
	if c == nil {
		return
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if c.Database != nil {
		c.Database.Path = strings.TrimSpace(c.Database.Path)
	}

	if c.Seed != nil {
		c.Seed.Name = strings.TrimSpace(c.Seed.Name)
		c.Seed.Password = strings.TrimSpace(c.Seed.Password)
		c.Seed.Email = strings.TrimSpace(c.Seed.Email)
	}

	if c.Cache != nil {
		c.Cache.Type = CacheType(strings.ToLower(strings.TrimSpace(string(c.Cache.Type))))
		c.Cache.RedisURL = strings.TrimSpace(c.Cache.RedisURL)
	}
}
