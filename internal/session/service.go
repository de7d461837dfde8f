package session

import (
	"context"
	"errors"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=session
type Repository interface {
	// FindActive returns the open session or ErrNoActive.
	FindActive(ctx context.Context) (*Session, error)
	// CreateSession opens a new session, or returns ErrConflict when another
	// open session already exists.
	CreateSession(ctx context.Context) (*Session, error)
	// CloseAndRotate atomically closes the open session and opens its
	// successor, leaving no gap in which no session is active.
	CloseAndRotate(ctx context.Context) (closed, fresh *Session, err error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Active returns the open session, creating one when none exists. Two
// concurrent callers racing on the create resolve through the store's
// uniqueness guarantee: the loser observes ErrConflict and adopts the
// winner's session.
func (s *Service) Active(ctx context.Context) (*Session, error) {
	cur, err := s.repo.FindActive(ctx)
	if err == nil {
		return cur, nil
	}

	if !errors.Is(err, ErrNoActive) {
		return nil, err
	}

	created, err := s.repo.CreateSession(ctx)
	if err == nil {
		return created, nil
	}

	if !errors.Is(err, ErrConflict) {
		return nil, err
	}

	return s.repo.FindActive(ctx)
}

// CloseAndRotate ends the current session and immediately opens a new one.
func (s *Service) CloseAndRotate(ctx context.Context) (closed, fresh *Session, err error) {
	return s.repo.CloseAndRotate(ctx)
}
