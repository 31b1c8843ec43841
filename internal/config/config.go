// Package config loads service settings from an optional YAML file,
// a .env file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Link store backends.
const (
	LinkStoreMemory = "memory"
	LinkStoreRedis  = "redis"
)

// Config is shared by both services; each reads the keys it needs.
type Config struct {
	Port            int           `mapstructure:"port"`
	BaseURL         string        `mapstructure:"base_url"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	DBDriver   string `mapstructure:"db_driver"`
	DBDSN      string `mapstructure:"db_dsn"`
	BcryptCost int    `mapstructure:"bcrypt_cost"`

	LinkStore      string `mapstructure:"link_store"`
	CodeLength     int    `mapstructure:"code_length"`
	RedisAddr      string `mapstructure:"redis_addr"`
	RedisPassword  string `mapstructure:"redis_password"`
	RedisDB        int    `mapstructure:"redis_db"`
	RedisKeyPrefix string `mapstructure:"redis_key_prefix"`
}

func setDefaults(v *viper.Viper, port int) {
	v.SetDefault("port", port)
	v.SetDefault("base_url", "")
	v.SetDefault("shutdown_timeout", 30*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", "users.db")
	v.SetDefault("bcrypt_cost", 0)
	v.SetDefault("link_store", LinkStoreMemory)
	v.SetDefault("code_length", 6)
	v.SetDefault("redis_addr", "127.0.0.1:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_key_prefix", "shortener:")
}

// Load reads configuration. configFile may be empty, in which case a
// config.yaml in ./configs or the working directory is used if present.
// Environment variables use the upper-cased key, e.g. PORT or DB_DSN.
func Load(configFile string, defaultPort int) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, defaultPort)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.LinkStore {
	case LinkStoreMemory, LinkStoreRedis:
	default:
		return fmt.Errorf("unknown link_store %q", c.LinkStore)
	}
	if c.CodeLength < 4 {
		return fmt.Errorf("code_length must be at least 4, got %d", c.CodeLength)
	}
	return nil
}
