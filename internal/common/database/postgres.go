// internal/common/database/postgres.go
// PostgreSQL connection and schema

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// PoolConfig holds connection pool settings
type PoolConfig struct {
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// DefaultPoolConfig mirrors the pool sizes used in production
var DefaultPoolConfig = PoolConfig{
	MaxOpenConns: 25,
	MaxIdleConns: 5,
	MaxLifetime:  5 * time.Minute,
}

// NewPostgresDBFromURL opens a pooled connection and pings it
func NewPostgresDBFromURL(databaseURL string, pool PoolConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.MaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(128) PRIMARY KEY,
		name VARCHAR(100) NOT NULL DEFAULT 'Soul',
		email VARCHAR(255),
		avatar TEXT,
		city VARCHAR(100),
		traumas TEXT[] NOT NULL DEFAULT '{}',
		positive TEXT[] NOT NULL DEFAULT '{}',
		interests TEXT[] NOT NULL DEFAULT '{}',
		intent VARCHAR(20) NOT NULL DEFAULT '',
		behavioral_profile JSONB,
		last_active TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id UUID PRIMARY KEY,
		user_id VARCHAR(128) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		matched_user_id VARCHAR(128) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		match_reason VARCHAR(255) NOT NULL,
		match_score INTEGER NOT NULL CHECK (match_score BETWEEN 0 AND 99),
		matched_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, matched_user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_user ON matches(user_id, matched_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_users_last_active ON users(last_active DESC)`,
}

// RunMigrations creates the tables this service owns
func RunMigrations(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
