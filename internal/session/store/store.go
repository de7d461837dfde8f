package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"bartab/internal/session"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindActive(ctx context.Context) (*session.Session, error) {
	var sess session.Session

	err := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, ended_at
		FROM sessions
		WHERE ended_at IS NULL
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&sess.ID, &sess.StartedAt, &sess.EndedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, session.ErrNoActive
		}

		return nil, fmt.Errorf("finding active session: %w", err)
	}

	return &sess, nil
}

// CreateSession opens a new session. The sessions_single_active partial unique
// index turns a concurrent double-create into a unique violation, reported as
// session.ErrConflict.
func (s *Store) CreateSession(ctx context.Context) (*session.Session, error) {
	var sess session.Session

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO sessions DEFAULT VALUES
		RETURNING id, started_at, ended_at
	`).Scan(&sess.ID, &sess.StartedAt, &sess.EndedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, session.ErrConflict
		}

		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &sess, nil
}

// CloseAndRotate closes the open session and opens its successor in a single
// database transaction, so a concurrent record lands in exactly one of the
// two. A reset_events audit row is written for the closed session. When no
// session is open, a zero-length closed session is synthesized, mirroring the
// close of a just-created session.
func (s *Store) CloseAndRotate(ctx context.Context) (*session.Session, *session.Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("beginning rotation: %w", err)
	}
	defer tx.Rollback()

	var closed session.Session

	err = tx.QueryRowContext(ctx, `
		UPDATE sessions
		SET ended_at = now()
		WHERE ended_at IS NULL
		RETURNING id, started_at, ended_at
	`).Scan(&closed.ID, &closed.StartedAt, &closed.EndedAt)
	if err == sql.ErrNoRows {
		err = tx.QueryRowContext(ctx, `
			INSERT INTO sessions (started_at, ended_at) VALUES (now(), now())
			RETURNING id, started_at, ended_at
		`).Scan(&closed.ID, &closed.StartedAt, &closed.EndedAt)
	}

	if err != nil {
		return nil, nil, fmt.Errorf("closing session: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO reset_events (session_id) VALUES ($1)`, closed.ID); err != nil {
		return nil, nil, fmt.Errorf("recording reset event: %w", err)
	}

	var fresh session.Session

	err = tx.QueryRowContext(ctx, `
		INSERT INTO sessions DEFAULT VALUES
		RETURNING id, started_at, ended_at
	`).Scan(&fresh.ID, &fresh.StartedAt, &fresh.EndedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("opening next session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("committing rotation: %w", err)
	}

	return &closed, &fresh, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
