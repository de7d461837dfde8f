package store

import (
	"context"
	"database/sql"
	"fmt"

	"bartab/internal/ledger"
	"bartab/internal/person"
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

const selectTransactionColumns = `
	t.id, t.session_id, t.person_id, p.name, t.item_id, i.name, t.quantity, t.price, t.created_at
`

const transactionJoins = `
	FROM transactions t
	JOIN people p ON t.person_id = p.id
	JOIN items i ON t.item_id = i.id
`

func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var t ledger.Transaction

	if err := s.Scan(
		&t.ID, &t.SessionID, &t.PersonID, &t.PersonName, &t.ItemID, &t.ItemName,
		&t.Quantity, &t.Price, &t.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &t, nil
}

// BeginRecord opens the transaction-plus-counters atomic unit.
func (s *Store) BeginRecord(ctx context.Context) (ledger.RecordTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning record: %w", err)
	}

	return &recordTx{tx: tx}, nil
}

type recordTx struct {
	tx *sql.Tx
}

func (r *recordTx) InsertTransaction(ctx context.Context, t *ledger.Transaction) error {
	err := r.tx.QueryRowContext(ctx, `
		INSERT INTO transactions (session_id, person_id, item_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`,
		t.SessionID, t.PersonID, t.ItemID, t.Quantity, t.Price,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}

	return nil
}

// AddCounters applies the lifetime counter increment as an in-database add,
// so concurrent records for the same person cannot lose updates.
func (r *recordTx) AddCounters(ctx context.Context, personID int64, d person.CounterDeltas) error {
	_, err := r.tx.ExecContext(ctx, `
		UPDATE people
		SET total_beers = total_beers + $1, total_coffees = total_coffees + $2
		WHERE id = $3
	`,
		d.Beers, d.Coffees, personID,
	)
	if err != nil {
		return fmt.Errorf("incrementing counters: %w", err)
	}

	return nil
}

func (r *recordTx) Commit() error {
	return r.tx.Commit()
}

func (r *recordTx) Rollback() error {
	return r.tx.Rollback()
}

func (s *Store) GetTransaction(ctx context.Context, id int64) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + transactionJoins + ` WHERE t.id = $1`

	t, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return t, nil
}

func (s *Store) ListTransactions(ctx context.Context, limit, offset int) ([]*ledger.Transaction, int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM transactions`).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("counting transactions: %w", err)
	}

	query := `SELECT ` + selectTransactionColumns + transactionJoins + `
		ORDER BY t.id DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, t)
	}

	return txs, count, rows.Err()
}

func (s *Store) UpdateTransaction(ctx context.Context, t *ledger.Transaction) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions SET quantity = $1, price = $2 WHERE id = $3
	`,
		t.Quantity, t.Price, t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	return requireRow(res)
}

func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return requireRow(res)
}

// DeleteLastByPerson removes the person's highest-id transaction in the
// session. Find and delete run in one transaction with the row locked, so two
// concurrent undos cannot both claim the same row.
func (s *Store) DeleteLastByPerson(ctx context.Context, sessionID, personID int64) (*ledger.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning undo: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + selectTransactionColumns + transactionJoins + `
		WHERE t.session_id = $1 AND t.person_id = $2
		ORDER BY t.id DESC
		LIMIT 1
		FOR UPDATE OF t`

	t, err := scanTransaction(tx.QueryRowContext(ctx, query, sessionID, personID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNothingToUndo
		}

		return nil, fmt.Errorf("finding last transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, t.ID); err != nil {
		return nil, fmt.Errorf("deleting transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing undo: %w", err)
	}

	return t, nil
}

func (s *Store) DeleteByPerson(ctx context.Context, sessionID, personID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE session_id = $1 AND person_id = $2`,
		sessionID, personID,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting person transactions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}

	return n, nil
}

func (s *Store) SummarizeSession(ctx context.Context, sessionID int64) ([]ledger.PersonTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.person_id, p.name, SUM(t.price), COUNT(t.id)
		FROM transactions t
		JOIN people p ON t.person_id = p.id
		WHERE t.session_id = $1
		GROUP BY t.person_id, p.name
		ORDER BY t.person_id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("summarizing session: %w", err)
	}
	defer rows.Close()

	var totals []ledger.PersonTotal

	for rows.Next() {
		var pt ledger.PersonTotal
		if err := rows.Scan(&pt.PersonID, &pt.Name, &pt.Total, &pt.Count); err != nil {
			return nil, fmt.Errorf("scanning person total: %w", err)
		}

		totals = append(totals, pt)
	}

	return totals, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}

	if n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}
