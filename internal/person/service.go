package person

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=person
type Repository interface {
	ListPeople(ctx context.Context) ([]*Person, error)
	GetPerson(ctx context.Context, id int64) (*Person, error)
	CreatePerson(ctx context.Context, p *Person) error
	UpdatePerson(ctx context.Context, p *Person) error
	DeactivatePerson(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Person, error) {
	return s.repo.ListPeople(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Person, error) {
	return s.repo.GetPerson(ctx, id)
}

func (s *Service) Create(ctx context.Context, name string, isGuest bool) (*Person, error) {
	if name == "" {
		return nil, fmt.Errorf("person name must not be empty")
	}

	p := &Person{Name: name, IsGuest: isGuest, Active: true}
	if err := s.repo.CreatePerson(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Update(ctx context.Context, p *Person) error {
	return s.repo.UpdatePerson(ctx, p)
}

// Deactivate marks a person inactive. People are never hard-deleted: their
// transactions and lifetime counters stay on record.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.repo.DeactivatePerson(ctx, id)
}
