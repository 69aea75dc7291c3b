package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings required to open the relational store.
type Config struct {
	URL          string
	MaxOpenConns int
	Timeout      time.Duration
}

// Connect opens a GORM handle over pgx and verifies connectivity with a ping.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*gorm.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := Open(postgres.Open(cfg.URL), log)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return db, nil
}

// Open wraps gorm.Open with the service's logger and error translation.
func Open(dialector gorm.Dialector, log zerolog.Logger) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(log),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
}

// Migrate creates or updates the tables owned by this service.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&userRow{}, &propertyRow{}, &bookingRow{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Ping reports whether the database answers within ctx.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
