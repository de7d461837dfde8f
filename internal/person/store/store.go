package store

import (
	"context"
	"database/sql"
	"fmt"

	"bartab/internal/person"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectPersonColumns = `
	id, name, is_guest, active, total_beers, total_coffees, created_at
`

type scanner interface {
	Scan(dest ...any) error
}

func scanPerson(s scanner) (*person.Person, error) {
	var p person.Person

	if err := s.Scan(
		&p.ID, &p.Name, &p.IsGuest, &p.Active, &p.TotalBeers, &p.TotalCoffees, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *Store) ListPeople(ctx context.Context) ([]*person.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectPersonColumns+` FROM people ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	defer rows.Close()

	var people []*person.Person

	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}

		people = append(people, p)
	}

	return people, rows.Err()
}

func (s *Store) GetPerson(ctx context.Context, id int64) (*person.Person, error) {
	p, err := scanPerson(s.db.QueryRowContext(ctx,
		`SELECT `+selectPersonColumns+` FROM people WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, person.ErrNotFound
		}

		return nil, fmt.Errorf("getting person: %w", err)
	}

	return p, nil
}

func (s *Store) CreatePerson(ctx context.Context, p *person.Person) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO people (name, is_guest, active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`,
		p.Name, p.IsGuest, p.Active,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating person: %w", err)
	}

	return nil
}

func (s *Store) UpdatePerson(ctx context.Context, p *person.Person) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE people
		SET name = $1, is_guest = $2, active = $3, total_beers = $4, total_coffees = $5
		WHERE id = $6
	`,
		p.Name, p.IsGuest, p.Active, p.TotalBeers, p.TotalCoffees, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating person: %w", err)
	}

	return requireRow(res)
}

func (s *Store) DeactivatePerson(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE people SET active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivating person: %w", err)
	}

	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}

	if n == 0 {
		return person.ErrNotFound
	}

	return nil
}
