// Package session tracks billing periods. Exactly one session is open at any
// time; transactions always land in the open one.
package session

import (
	"errors"
	"time"
)

// ErrNoActive is returned when no session is currently open.
var ErrNoActive = errors.New("no active session")

// ErrConflict signals that a concurrent caller opened a session first. The
// losing caller should re-read instead of surfacing the error.
var ErrConflict = errors.New("active session already exists")

type Session struct {
	ID        int64
	StartedAt time.Time
	EndedAt   *time.Time
}

// Active reports whether the session is still accepting transactions.
func (s *Session) Active() bool {
	return s.EndedAt == nil
}
