package catalog

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id int64) (*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id int64) error

	ListItems(ctx context.Context, filter ItemFilter) ([]*Item, error)
	GetItem(ctx context.Context, id int64) (*Item, error)
	CreateItem(ctx context.Context, it *Item) error
	UpdateItem(ctx context.Context, it *Item) error
	DeleteItem(ctx context.Context, id int64) error

	ListCoffeePresets(ctx context.Context) ([]*CoffeePreset, error)
	GetCoffeePreset(ctx context.Context, id int64) (*CoffeePreset, error)
	CreateCoffeePreset(ctx context.Context, p *CoffeePreset) error
	UpdateCoffeePreset(ctx context.Context, p *CoffeePreset) error
	DeleteCoffeePreset(ctx context.Context, id int64) error
}

// ItemFilter narrows item listings. Category matches the category name
// case-insensitively and exactly.
type ItemFilter struct {
	Active   *bool
	Category string
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Categories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) Category(ctx context.Context, id int64) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name must not be empty")
	}

	c := &Category{Name: name}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, c *Category) error {
	return s.repo.UpdateCategory(ctx, c)
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *Service) Items(ctx context.Context, filter ItemFilter) ([]*Item, error) {
	return s.repo.ListItems(ctx, filter)
}

func (s *Service) Item(ctx context.Context, id int64) (*Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) CreateItem(ctx context.Context, it *Item) (*Item, error) {
	if it.PricingMode == "" {
		it.PricingMode = PricePerUnit
	}

	if !it.PricingMode.Valid() {
		return nil, fmt.Errorf("unknown pricing mode %q", it.PricingMode)
	}

	if _, err := s.repo.GetCategory(ctx, it.CategoryID); err != nil {
		return nil, fmt.Errorf("resolving category %d: %w", it.CategoryID, err)
	}

	if err := s.repo.CreateItem(ctx, it); err != nil {
		return nil, err
	}

	return s.repo.GetItem(ctx, it.ID)
}

func (s *Service) UpdateItem(ctx context.Context, it *Item) (*Item, error) {
	if !it.PricingMode.Valid() {
		return nil, fmt.Errorf("unknown pricing mode %q", it.PricingMode)
	}

	if err := s.repo.UpdateItem(ctx, it); err != nil {
		return nil, err
	}

	return s.repo.GetItem(ctx, it.ID)
}

func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	return s.repo.DeleteItem(ctx, id)
}

// CoffeePresets returns all surcharge bands ordered by (g_min, id), the
// lookup order used by the pricing engine.
func (s *Service) CoffeePresets(ctx context.Context) ([]*CoffeePreset, error) {
	return s.repo.ListCoffeePresets(ctx)
}

func (s *Service) CoffeePreset(ctx context.Context, id int64) (*CoffeePreset, error) {
	return s.repo.GetCoffeePreset(ctx, id)
}

func (s *Service) CreateCoffeePreset(ctx context.Context, p *CoffeePreset) (*CoffeePreset, error) {
	if p.GMax.LessThan(p.GMin) {
		return nil, fmt.Errorf("preset range inverted: g_max %s < g_min %s", p.GMax, p.GMin)
	}

	if err := s.repo.CreateCoffeePreset(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) UpdateCoffeePreset(ctx context.Context, p *CoffeePreset) error {
	if p.GMax.LessThan(p.GMin) {
		return fmt.Errorf("preset range inverted: g_max %s < g_min %s", p.GMax, p.GMin)
	}

	return s.repo.UpdateCoffeePreset(ctx, p)
}

func (s *Service) DeleteCoffeePreset(ctx context.Context, id int64) error {
	return s.repo.DeleteCoffeePreset(ctx, id)
}
