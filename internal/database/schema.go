package database

import (
	"context"
	"fmt"
)

// Unique constraints on users.email and profiles.handle back the duplicate
// checks done in the usecases, so concurrent creates cannot slip past them.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            uuid PRIMARY KEY,
		name          text NOT NULL,
		email         text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		avatar_url    text NOT NULL DEFAULT '',
		created_at    timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id              uuid PRIMARY KEY,
		user_id         uuid NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		handle          text NOT NULL UNIQUE,
		company         text NOT NULL DEFAULT '',
		website         text NOT NULL DEFAULT '',
		location        text NOT NULL DEFAULT '',
		bio             text NOT NULL DEFAULT '',
		status          text NOT NULL DEFAULT '',
		github_username text NOT NULL DEFAULT '',
		skills          text[] NOT NULL DEFAULT '{}',
		social          jsonb NOT NULL DEFAULT '{}',
		experience      jsonb NOT NULL DEFAULT '[]',
		education       jsonb NOT NULL DEFAULT '[]',
		created_at      timestamptz NOT NULL DEFAULT now(),
		updated_at      timestamptz NOT NULL DEFAULT now()
	)`,
}

func EnsureSchema(ctx context.Context, db DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
