package database

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order; each entry runs in its own transaction and
// is recorded in schema_migrations so restarts are idempotent.
var migrations = []string{
	`CREATE TABLE people (
		id            bigserial PRIMARY KEY,
		name          text NOT NULL,
		is_guest      boolean NOT NULL DEFAULT false,
		active        boolean NOT NULL DEFAULT true,
		total_beers   bigint NOT NULL DEFAULT 0,
		total_coffees bigint NOT NULL DEFAULT 0,
		created_at    timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE categories (
		id   bigserial PRIMARY KEY,
		name text NOT NULL
	)`,
	`CREATE TABLE items (
		id           bigserial PRIMARY KEY,
		name         text NOT NULL,
		category_id  bigint NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		price        numeric(8,3) NOT NULL DEFAULT 0,
		pricing_mode text NOT NULL DEFAULT 'per_unit'
			CHECK (pricing_mode IN ('per_unit', 'per_weight')),
		note         text,
		active       boolean NOT NULL DEFAULT true,
		created_at   timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE coffee_presets (
		id         bigserial PRIMARY KEY,
		label      text,
		g_min      numeric(8,3) NOT NULL DEFAULT 0,
		g_max      numeric(8,3) NOT NULL DEFAULT 0,
		extra      numeric(10,3) NOT NULL DEFAULT 0,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE sessions (
		id         bigserial PRIMARY KEY,
		started_at timestamptz NOT NULL DEFAULT now(),
		ended_at   timestamptz
	)`,
	// At most one session may be open at any time.
	`CREATE UNIQUE INDEX sessions_single_active ON sessions ((true)) WHERE ended_at IS NULL`,
	`CREATE TABLE transactions (
		id         bigserial PRIMARY KEY,
		session_id bigint NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		person_id  bigint NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		item_id    bigint NOT NULL REFERENCES items(id) ON DELETE CASCADE,
		quantity   numeric(8,3) NOT NULL DEFAULT 1.000,
		price      numeric(10,3) NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX transactions_session_person ON transactions (session_id, person_id)`,
	`CREATE TABLE reset_events (
		id         bigserial PRIMARY KEY,
		session_id bigint NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
}

// Migrate brings the schema up to date.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(
		`CREATE TABLE IF NOT EXISTS schema_migrations (version int PRIMARY KEY, applied_at timestamptz NOT NULL DEFAULT now())`,
	); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i, stmt := range migrations {
		version := i + 1
		if version <= current {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", version, err)
		}

		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}

		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}

	return nil
}
