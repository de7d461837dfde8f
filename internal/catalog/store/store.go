package store

import (
	"context"
	"database/sql"
	"fmt"

	"bartab/internal/catalog"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// ---------------- Categories ----------------

func (s *Store) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var cats []*catalog.Category

	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		cats = append(cats, &c)
	}

	return cats, rows.Err()
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*catalog.Category, error) {
	var c catalog.Category

	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *catalog.Category) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`, c.Name,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *catalog.Category) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET name = $1 WHERE id = $2`, c.Name, c.ID)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	return requireRow(res)
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	return requireRow(res)
}

// ---------------- Items ----------------

const selectItemColumns = `
	i.id, i.name, i.category_id, c.name, i.price, i.pricing_mode, i.note, i.active, i.created_at
`

// scanItem reads an item row joined with its category.
func scanItem(s scanner) (*catalog.Item, error) {
	var (
		it      catalog.Item
		catName string
		mode    string
		note    sql.NullString
	)

	if err := s.Scan(
		&it.ID, &it.Name, &it.CategoryID, &catName, &it.Price, &mode,
		&note, &it.Active, &it.CreatedAt,
	); err != nil {
		return nil, err
	}

	it.PricingMode = catalog.PricingMode(mode)
	it.Note = note.String
	it.Category = &catalog.Category{ID: it.CategoryID, Name: catName}

	return &it, nil
}

func (s *Store) ListItems(ctx context.Context, filter catalog.ItemFilter) ([]*catalog.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM items i
		JOIN categories c ON i.category_id = c.id
		WHERE true`

	var args []any

	argIdx := 1

	if filter.Active != nil {
		query += fmt.Sprintf(" AND i.active = $%d", argIdx)

		args = append(args, *filter.Active)
		argIdx++
	}

	if filter.Category != "" {
		query += fmt.Sprintf(" AND lower(c.name) = $%d", argIdx)

		args = append(args, catalog.FoldName(filter.Category))
		argIdx++
	}

	query += " ORDER BY i.id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []*catalog.Item

	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		items = append(items, it)
	}

	return items, rows.Err()
}

func (s *Store) GetItem(ctx context.Context, id int64) (*catalog.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM items i
		JOIN categories c ON i.category_id = c.id
		WHERE i.id = $1`

	it, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting item: %w", err)
	}

	return it, nil
}

func (s *Store) CreateItem(ctx context.Context, it *catalog.Item) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO items (name, category_id, price, pricing_mode, note, active)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		RETURNING id, created_at
	`,
		it.Name, it.CategoryID, it.Price, it.PricingMode, it.Note, it.Active,
	).Scan(&it.ID, &it.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating item: %w", err)
	}

	return nil
}

func (s *Store) UpdateItem(ctx context.Context, it *catalog.Item) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE items
		SET name = $1, category_id = $2, price = $3, pricing_mode = $4,
			note = NULLIF($5, ''), active = $6
		WHERE id = $7
	`,
		it.Name, it.CategoryID, it.Price, it.PricingMode, it.Note, it.Active, it.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	return requireRow(res)
}

func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	return requireRow(res)
}

// ---------------- Coffee presets ----------------

// ListCoffeePresets returns presets in (g_min, id) order, which is the
// tie-break order for overlapping bands.
func (s *Store) ListCoffeePresets(ctx context.Context) ([]*catalog.CoffeePreset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, g_min, g_max, extra, created_at
		FROM coffee_presets
		ORDER BY g_min ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing coffee presets: %w", err)
	}
	defer rows.Close()

	var presets []*catalog.CoffeePreset

	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning coffee preset: %w", err)
		}

		presets = append(presets, p)
	}

	return presets, rows.Err()
}

func scanPreset(s scanner) (*catalog.CoffeePreset, error) {
	var (
		p     catalog.CoffeePreset
		label sql.NullString
	)

	if err := s.Scan(&p.ID, &label, &p.GMin, &p.GMax, &p.Extra, &p.CreatedAt); err != nil {
		return nil, err
	}

	p.Label = label.String

	return &p, nil
}

func (s *Store) GetCoffeePreset(ctx context.Context, id int64) (*catalog.CoffeePreset, error) {
	p, err := scanPreset(s.db.QueryRowContext(ctx, `
		SELECT id, label, g_min, g_max, extra, created_at
		FROM coffee_presets WHERE id = $1
	`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting coffee preset: %w", err)
	}

	return p, nil
}

func (s *Store) CreateCoffeePreset(ctx context.Context, p *catalog.CoffeePreset) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO coffee_presets (label, g_min, g_max, extra)
		VALUES (NULLIF($1, ''), $2, $3, $4)
		RETURNING id, created_at
	`,
		p.Label, p.GMin, p.GMax, p.Extra,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating coffee preset: %w", err)
	}

	return nil
}

func (s *Store) UpdateCoffeePreset(ctx context.Context, p *catalog.CoffeePreset) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE coffee_presets
		SET label = NULLIF($1, ''), g_min = $2, g_max = $3, extra = $4
		WHERE id = $5
	`,
		p.Label, p.GMin, p.GMax, p.Extra, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating coffee preset: %w", err)
	}

	return requireRow(res)
}

func (s *Store) DeleteCoffeePreset(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM coffee_presets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting coffee preset: %w", err)
	}

	return requireRow(res)
}

// requireRow maps "no rows affected" to ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}

	if n == 0 {
		return catalog.ErrNotFound
	}

	return nil
}
