// Package postgres adapts the persistence ports onto a relational store via
// gorm, grounded in the same Store-wrapper shape used elsewhere in this
// project's lineage: open once at process start, hand out a *gorm.DB, close
// on shutdown.
package postgres

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store wraps a gorm connection to the durable store.
type Store struct {
	db *gorm.DB
}

// Config configures the durable-store connection.
type Config struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// Open establishes the connection, applies the pool settings, runs the
// schema migration for the three tables this core owns, and pings.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).AutoMigrate(
		&conversationTurnModel{},
		&userPreferencesModel{},
		&agentMetricsModel{},
	); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// DB exposes the underlying gorm handle for the repo adapters in this package.
func (s *Store) DB() *gorm.DB { return s.db }

// Pool exposes the underlying *sql.DB for health checks.
func (s *Store) Pool() (*sql.DB, error) { return s.db.DB() }

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
