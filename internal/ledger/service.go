package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"bartab/internal/catalog"
	"bartab/internal/person"
	"bartab/internal/pricing"
	"bartab/internal/session"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=ledger

// SessionManager resolves the session new transactions land in.
type SessionManager interface {
	Active(ctx context.Context) (*session.Session, error)
}

// PersonDirectory resolves the person being charged.
type PersonDirectory interface {
	Get(ctx context.Context, id int64) (*person.Person, error)
}

// Catalog supplies the priced item and the coffee surcharge table.
type Catalog interface {
	Item(ctx context.Context, id int64) (*catalog.Item, error)
	CoffeePresets(ctx context.Context) ([]*catalog.CoffeePreset, error)
}

type Repository interface {
	BeginRecord(ctx context.Context) (RecordTx, error)

	GetTransaction(ctx context.Context, id int64) (*Transaction, error)
	ListTransactions(ctx context.Context, limit, offset int) ([]*Transaction, int64, error)
	UpdateTransaction(ctx context.Context, t *Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error

	// DeleteLastByPerson removes the person's highest-id transaction in the
	// session and returns its snapshot, or ErrNothingToUndo.
	DeleteLastByPerson(ctx context.Context, sessionID, personID int64) (*Transaction, error)
	// DeleteByPerson removes all of the person's transactions in the session.
	DeleteByPerson(ctx context.Context, sessionID, personID int64) (int64, error)

	SummarizeSession(ctx context.Context, sessionID int64) ([]PersonTotal, error)
}

// RecordTx is the atomic unit around recording one transaction: the insert and
// the lifetime counter increment commit together or not at all.
type RecordTx interface {
	InsertTransaction(ctx context.Context, t *Transaction) error
	AddCounters(ctx context.Context, personID int64, d person.CounterDeltas) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo     Repository
	sessions SessionManager
	people   PersonDirectory
	catalog  Catalog
}

func NewService(repo Repository, sessions SessionManager, people PersonDirectory, cat Catalog) *Service {
	return &Service{repo: repo, sessions: sessions, people: people, catalog: cat}
}

type RecordParams struct {
	PersonID int64
	ItemID   int64
	// Quantity is optional; per-unit items default to 1.000.
	Quantity *decimal.Decimal
}

// Record prices and stores one transaction in the active session, then bumps
// the person's lifetime counters for tracked categories, all in one database
// transaction.
func (s *Service) Record(ctx context.Context, params RecordParams) (*Transaction, error) {
	sess, err := s.sessions.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving active session: %w", err)
	}

	p, err := s.people.Get(ctx, params.PersonID)
	if err != nil {
		return nil, err
	}

	it, err := s.catalog.Item(ctx, params.ItemID)
	if err != nil {
		return nil, err
	}

	qty := pricing.DefaultQuantity
	if params.Quantity != nil {
		qty = *params.Quantity
	}

	var presets []*catalog.CoffeePreset
	if it.PricingMode == catalog.PricePerWeight && catalog.FoldName(it.CategoryName()) == catalog.Coffee {
		presets, err = s.catalog.CoffeePresets(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading coffee presets: %w", err)
		}
	}

	price, err := pricing.Price(it, qty, presets)
	if err != nil {
		return nil, err
	}

	t := &Transaction{
		SessionID:  sess.ID,
		PersonID:   p.ID,
		PersonName: p.Name,
		ItemID:     it.ID,
		ItemName:   it.Name,
		Quantity:   qty,
		Price:      price,
	}

	itx, err := s.repo.BeginRecord(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin record: %w", err)
	}
	defer itx.Rollback()

	if err := itx.InsertTransaction(ctx, t); err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	if deltas := person.DeltasFor(it.CategoryName(), qty); !deltas.IsZero() {
		if err := itx.AddCounters(ctx, p.ID, deltas); err != nil {
			return nil, fmt.Errorf("add counters: %w", err)
		}
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit record: %w", err)
	}

	return t, nil
}

// UndoLast deletes the person's most recent transaction in the active session
// and returns its snapshot. Lifetime counters are left as-is: they count
// drinks ever served, not the current bill.
func (s *Service) UndoLast(ctx context.Context, personID int64) (*Transaction, error) {
	sess, err := s.sessions.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving active session: %w", err)
	}

	if _, err := s.people.Get(ctx, personID); err != nil {
		return nil, err
	}

	return s.repo.DeleteLastByPerson(ctx, sess.ID, personID)
}

// ResetDebt deletes all of the person's transactions in the active session.
// As with UndoLast, lifetime counters are not reversed.
func (s *Service) ResetDebt(ctx context.Context, personID int64) error {
	sess, err := s.sessions.Active(ctx)
	if err != nil {
		return fmt.Errorf("resolving active session: %w", err)
	}

	if _, err := s.people.Get(ctx, personID); err != nil {
		return err
	}

	_, err = s.repo.DeleteByPerson(ctx, sess.ID, personID)

	return err
}

// ActiveSummary groups the active session's transactions by person (ascending
// person id) and totals them.
func (s *Service) ActiveSummary(ctx context.Context) (*Summary, error) {
	sess, err := s.sessions.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving active session: %w", err)
	}

	perPerson, err := s.repo.SummarizeSession(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("summarizing session: %w", err)
	}

	total := decimal.Zero
	for _, pt := range perPerson {
		total = total.Add(pt.Total)
	}

	return &Summary{Session: sess, PerPerson: perPerson, Total: total}, nil
}

// PersonDebt returns one person's outstanding total in the active session.
func (s *Service) PersonDebt(ctx context.Context, personID int64) (decimal.Decimal, error) {
	if _, err := s.people.Get(ctx, personID); err != nil {
		return decimal.Decimal{}, err
	}

	summary, err := s.ActiveSummary(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}

	for _, pt := range summary.PerPerson {
		if pt.PersonID == personID {
			return pt.Total, nil
		}
	}

	return decimal.Zero, nil
}

// List returns transactions newest-first with the total row count, for
// paginated history views.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Transaction, int64, error) {
	if limit <= 0 {
		limit = 20
	}

	if offset < 0 {
		offset = 0
	}

	return s.repo.ListTransactions(ctx, limit, offset)
}

func (s *Service) Get(ctx context.Context, id int64) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

// Update rewrites a transaction's stored quantity and price snapshot. This is
// an administrative correction: nothing is re-priced and counters do not move.
func (s *Service) Update(ctx context.Context, t *Transaction) error {
	return s.repo.UpdateTransaction(ctx, t)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteTransaction(ctx, id)
}
