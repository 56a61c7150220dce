package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Env      string
	Log      LogConfig
	Database DatabaseConfig
	HTTP     HTTPConfig
	GRPC     GRPCConfig
	Auth     AuthConfig
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string // zerolog level name, e.g. "info"
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Driver string // "sqlite3" or "pgx"
	DSN    string // SQLite file path or Postgres connection string
}

// HTTPConfig contains HTTP API settings.
type HTTPConfig struct {
	Address            string
	CORSOrigin         string
	RateLimitPerMinute int
}

// GRPCConfig contains gRPC server settings.
type GRPCConfig struct {
	Address string // gRPC health listener (e.g., ":50051")
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

const devSecret = "dev-secret-change-me"

// newViper reads environment variables (and CONFIG_FILE, when set) over the defaults.
func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "sqlite3")
	v.SetDefault("DB_DSN", "app.db")
	v.SetDefault("HTTP_ADDRESS", ":5000")
	v.SetDefault("CORS_ORIGIN", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 200)
	v.SetDefault("GRPC_ADDRESS", ":50051")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "24h")
	v.AutomaticEnv()

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}
	return v, nil
}

func load(fallbackSecret string) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Env: v.GetString("APP_ENV"),
		Log: LogConfig{Level: v.GetString("LOG_LEVEL")},
		Database: DatabaseConfig{
			Driver: v.GetString("DB_DRIVER"),
			DSN:    v.GetString("DB_DSN"),
		},
		HTTP: HTTPConfig{
			Address:            v.GetString("HTTP_ADDRESS"),
			CORSOrigin:         v.GetString("CORS_ORIGIN"),
			RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		GRPC: GRPCConfig{
			Address: v.GetString("GRPC_ADDRESS"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			TokenTTL:  v.GetDuration("TOKEN_TTL"),
		},
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = fallbackSecret
	}
	if cfg.HTTP.RateLimitPerMinute <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be a positive integer")
	}
	if cfg.Auth.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be a positive duration")
	}
	return cfg, nil
}

// Load loads configuration from the environment. JWT_SECRET is required.
func Load() (*Config, error) {
	cfg, err := load("")
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses a fixed development JWT secret when none is set.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	return load(devSecret)
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{Env: %s, DB: %s, HTTP: %s, gRPC: %s, Auth: *** (masked) ***}",
		c.Env, c.Database.Driver, c.HTTP.Address, c.GRPC.Address)
}
