// cmd/api/migrations.go
// Schema creation on startup. Tables are created only when missing, so
// restarts against a populated database are safe.

package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(64) PRIMARY KEY,
			display_name VARCHAR(100) NOT NULL,
			photo_url TEXT,
			city VARCHAR(120) NOT NULL DEFAULT '',
			themes TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS snapshots (
			id VARCHAR(64) PRIMARY KEY,
			user_id VARCHAR(64) NOT NULL REFERENCES users(id),
			media_type VARCHAR(16) NOT NULL,
			media_path TEXT NOT NULL,
			text TEXT NOT NULL DEFAULT '',
			themes TEXT[] NOT NULL DEFAULT '{}',
			locale VARCHAR(16) NOT NULL DEFAULT '',
			pending_match BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			like_count INTEGER NOT NULL DEFAULT 0,
			save_count INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE INDEX IF NOT EXISTS idx_snapshots_pending ON snapshots(pending_match, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_user ON snapshots(user_id)`,

		`CREATE TABLE IF NOT EXISTS bridges (
			id VARCHAR(64) PRIMARY KEY,
			left_snapshot_id VARCHAR(64) NOT NULL REFERENCES snapshots(id),
			right_snapshot_id VARCHAR(64) NOT NULL REFERENCES snapshots(id),
			themes TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			views INTEGER NOT NULL DEFAULT 0,
			likes INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS likes (
			id VARCHAR(64) PRIMARY KEY,
			user_id VARCHAR(64) NOT NULL REFERENCES users(id),
			target_type VARCHAR(16) NOT NULL,
			target_id VARCHAR(64) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, target_type, target_id)
		)`,

		`CREATE TABLE IF NOT EXISTS saves (
			id VARCHAR(64) PRIMARY KEY,
			user_id VARCHAR(64) NOT NULL REFERENCES users(id),
			target_type VARCHAR(16) NOT NULL,
			target_id VARCHAR(64) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, target_type, target_id)
		)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
