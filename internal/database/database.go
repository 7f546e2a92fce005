package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"healthcare-admin-api/internal/config"
	"healthcare-admin-api/internal/models"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured store, applies pool settings and pings it.
func Connect(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	// Configure GORM logger
	gormLogLevel := logger.Info
	if cfg.IsRelease() {
		gormLogLevel = logger.Error
	}
	gormLogger := logger.New(gormWriter{log: log.With().Str("component", "gorm").Logger()}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormLogLevel,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Database.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}

	// Set connection pool settings
	if cfg.Database.Driver == "sqlite" {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY between
		// pooled connections.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.Timeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info().Str("driver", cfg.Database.Driver).Msg("connected to database")
	return db, nil
}

// Dialector builds the gorm dialector for the configured driver.
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		if cfg.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		busy := cfg.Timeout.Milliseconds()
		return sqlite.Open(fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=%d", cfg.Path, busy)), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Name,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.SSLMode,
		)
		return postgres.New(postgres.Config{DriverName: "postgres", DSN: dsn}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate creates or updates every table the API uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Hospital{},
		&models.User{},
		&models.BlockchainConnection{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Ping checks the store is reachable. Used by the health endpoint.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// gormWriter feeds gorm's logger into zerolog.
type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Debug().Msgf(format, args...)
}
