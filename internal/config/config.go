package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const insecureDefaultSecret = "change-me-in-production"

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Security   SecurityConfig
	CORS       CORSConfig
	Blockchain BlockchainConfig
	Seed       SeedConfig
}

type ServerConfig struct {
	Port     string `env:"PORT, default=5000"`
	GinMode  string `env:"GIN_MODE, default=debug"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// StatsInterval is how often the stats worker refreshes gauges. Zero disables it.
	StatsInterval time.Duration `env:"STATS_INTERVAL, default=30s"`
}

type DatabaseConfig struct {
	Driver   string        `env:"DB_DRIVER, default=sqlite"`
	Path     string        `env:"DB_PATH, default=db/healthcare_blockchain.db"`
	Host     string        `env:"DB_HOST, default=localhost"`
	Port     string        `env:"DB_PORT"`
	User     string        `env:"DB_USER, default=root"`
	Password string        `env:"DB_PASSWORD"`
	Name     string        `env:"DB_NAME, default=healthcare_admin"`
	SSLMode  string        `env:"DB_SSLMODE, default=disable"`
	Timeout  time.Duration `env:"DB_TIMEOUT, default=5s"`
}

type JWTConfig struct {
	Secret string `env:"JWT_SECRET, default=change-me-in-production"`
}

type SecurityConfig struct {
	BcryptCost int `env:"BCRYPT_COST, default=10"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS, default=http://localhost:3000,http://localhost:5173"`
}

type BlockchainConfig struct {
	NetworkName string `env:"BLOCKCHAIN_NETWORK_NAME, default=Healthcare Blockchain Network"`
	ChainID     string `env:"BLOCKCHAIN_CHAIN_ID, default=0x539"`
}

// SeedConfig describes the admin account created on an empty store.
type SeedConfig struct {
	AdminEmail     string `env:"DEFAULT_ADMIN_EMAIL, default=admin@example.com"`
	AdminPassword  string `env:"DEFAULT_ADMIN_PASSWORD, default=password"`
	AdminFirstName string `env:"DEFAULT_ADMIN_FIRST_NAME, default=Admin"`
	AdminLastName  string `env:"DEFAULT_ADMIN_LAST_NAME, default=User"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return load(context.Background(), envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	if cfg.Database.Port == "" {
		cfg.Database.Port = defaultPort(cfg.Database.Driver)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.Server.GinMode == "release" && c.JWT.Secret == insecureDefaultSecret {
		return errors.New("JWT_SECRET must be set in release mode")
	}
	if c.Database.Timeout <= 0 {
		return errors.New("DB_TIMEOUT must be positive")
	}
	return nil
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.Server.GinMode == "release"
}

func defaultPort(driver string) string {
	switch driver {
	case "mysql":
		return "3306"
	case "postgres":
		return "5432"
	default:
		return ""
	}
}
