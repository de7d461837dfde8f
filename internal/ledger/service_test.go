package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bartab/internal/catalog"
	"bartab/internal/ledger"
	"bartab/internal/person"
	"bartab/internal/pricing"
	"bartab/internal/session"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type mocks struct {
	repo     *ledger.MockRepository
	tx       *ledger.MockRecordTx
	sessions *ledger.MockSessionManager
	people   *ledger.MockPersonDirectory
	catalog  *ledger.MockCatalog
}

func newMocks(ctrl *gomock.Controller) *mocks {
	return &mocks{
		repo:     ledger.NewMockRepository(ctrl),
		tx:       ledger.NewMockRecordTx(ctrl),
		sessions: ledger.NewMockSessionManager(ctrl),
		people:   ledger.NewMockPersonDirectory(ctrl),
		catalog:  ledger.NewMockCatalog(ctrl),
	}
}

func newService(m *mocks) *ledger.Service {
	return ledger.NewService(m.repo, m.sessions, m.people, m.catalog)
}

var (
	activeSession = &session.Session{ID: 7, StartedAt: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	alice         = &person.Person{ID: 3, Name: "Alice", Active: true}

	beerItem = &catalog.Item{
		ID:          10,
		Name:        "Pilsner",
		Category:    &catalog.Category{ID: 1, Name: "Beer"},
		Price:       dec("1.5"),
		PricingMode: catalog.PricePerUnit,
		Active:      true,
	}
	coffeeItem = &catalog.Item{
		ID:          11,
		Name:        "House Blend",
		Category:    &catalog.Category{ID: 2, Name: "Coffee"},
		Price:       dec("0.020"),
		PricingMode: catalog.PricePerWeight,
		Active:      true,
	}
	snackItem = &catalog.Item{
		ID:          12,
		Name:        "Peanuts",
		Category:    &catalog.Category{ID: 3, Name: "Snacks"},
		Price:       dec("0.010"),
		PricingMode: catalog.PricePerWeight,
		Active:      true,
	}

	coffeePresets = []*catalog.CoffeePreset{
		{ID: 1, Label: "small", GMin: dec("10"), GMax: dec("20"), Extra: dec("0.200")},
	}
)

func TestService_Record(t *testing.T) {
	type testCase struct {
		name        string
		params      ledger.RecordParams
		setupMock   func(m *mocks)
		wantQty     string
		wantPrice   string
		wantErr     error
		wantSomeErr bool
	}

	tests := []testCase{
		{
			name:   "PerUnitBeerDefaultsQuantityAndBumpsCounter",
			params: ledger.RecordParams{PersonID: alice.ID, ItemID: beerItem.ID},
			setupMock: func(m *mocks) {
				m.sessions.EXPECT().Active(gomock.Any()).Return(activeSession, nil)
				m.people.EXPECT().Get(gomock.Any(), alice.ID).Return(alice, nil)
				m.catalog.EXPECT().Item(gomock.Any(), beerItem.ID).Return(beerItem, nil)
				m.repo.EXPECT().BeginRecord(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().
					InsertTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tr *ledger.Transaction) error {
						tr.ID = 100
						tr.CreatedAt = time.Now()
						return nil
					})
				m.tx.EXPECT().AddCounters(gomock.Any(), alice.ID, person.CounterDeltas{Beers: 1}).Return(nil)
				m.tx.EXPECT().Commit().Return(nil)
				m.tx.EXPECT().Rollback().Return(nil).AnyTimes()
			},
			wantQty:   "1.000",
			wantPrice: "1.500",
		},
		{
			name:   "PerWeightCoffeePricesBandAndCountsCups",
			params: ledger.RecordParams{PersonID: alice.ID, ItemID: coffeeItem.ID, Quantity: decPtr("15")},
			setupMock: func(m *mocks) {
				m.sessions.EXPECT().Active(gomock.Any()).Return(activeSession, nil)
				m.people.EXPECT().Get(gomock.Any(), alice.ID).Return(alice, nil)
				m.catalog.EXPECT().Item(gomock.Any(), coffeeItem.ID).Return(coffeeItem, nil)
				m.catalog.EXPECT().CoffeePresets(gomock.Any()).Return(coffeePresets, nil)
				m.repo.EXPECT().BeginRecord(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).Return(nil)
				m.tx.EXPECT().AddCounters(gomock.Any(), alice.ID, person.CounterDeltas{Coffees: 1}).Return(nil)
				m.tx.EXPECT().Commit().Return(nil)
				m.tx.EXPECT().Rollback().Return(nil).AnyTimes()
			},
			wantQty:   "15.000",
			wantPrice: "0.500",
		},
		{
			name:   "UntrackedCategorySkipsCounters",
			params: ledger.RecordParams{PersonID: alice.ID, ItemID: snackItem.ID, Quantity: decPtr("50")},
			setupMock: func(m *mocks) {
				m.sessions.EXPECT().Active(gomock.Any()).Return(activeSession, nil)
				m.people.EXPECT().Get(gomock.Any(), alice.ID).Return(alice, nil)
				m.catalog.EXPECT().Item(gomock.Any(), snackItem.ID).Return(snackItem, nil)
				m.repo.EXPECT().BeginRecord(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).Return(nil)
				m.tx.EXPECT().Commit().Return(nil)
				m.tx.EXPECT().Rollback().Return(nil).AnyTimes()
			},
			wantQty:   "50.000",
			wantPrice: "0.500",
		},
		{
			name:   "InsertFailureRollsBack",
			params: ledger.RecordParams{PersonID: alice.ID, ItemID: beerItem.ID},
			setupMock: func(m *mocks) {
				m.sessions.EXPECT().Active(gomock.Any()).Return(activeSession, nil)
				m.people.EXPECT().Get(gomock.Any(), alice.ID).Return(alice, nil)
				m.catalog.EXPECT().Item(gomock.Any(), beerItem.ID).Return(beerItem, nil)
				m.repo.EXPECT().BeginRecord(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantSomeErr: true,
		},
		{
			name:   "CounterFailureRollsBack",
			params: ledger.RecordParams{PersonID: alice.ID, ItemID: beerItem.ID},
			setupMock: func(m *mocks) {
				m.sessions.EXPECT().Active(gomock.Any()).Return(activeSession, nil)
				m.people.EXPECT().Get(gomock.Any(), alice.ID).Return(alice, nil)
				m.catalog.EXPECT().Item(gomock.Any(), beerItem.ID).Return(beerItem, nil)
				m.repo.EXPECT().BeginRecord(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).Return(nil)
				m.tx.EXPECT().AddCounters(gomock.Any(), alice.ID, gomock.Any()).Return(errors.New("db error"))
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantSomeErr: true,
		},
		{
			name:   "InvalidQuantityRejectedBeforeWriting",
			params: ledger.RecordParams{PersonID: alice.ID, ItemID: beerItem.ID, Quantity: decPtr("0")},
			setupMock: func(m *mocks) {
				m.sessions.EXPECT().Active(gomock.Any()).Return(activeSession, nil)
				m.people.EXPECT().Get(gomock.Any(), alice.ID).Return(alice, nil)
				m.catalog.EXPECT().Item(gomock.Any(), beerItem.ID).Return(beerItem, nil)
			},
			wantErr: pricing.ErrInvalidQuantity,
		},
		{
			name:   "UnknownPerson",
			params: ledger.RecordParams{PersonID: 99, ItemID: beerItem.ID},
			setupMock: func(m *mocks) {
				m.sessions.EXPECT().Active(gomock.Any()).Return(activeSession, nil)
				m.people.EXPECT().Get(gomock.Any(), int64(99)).Return(nil, person.ErrNotFound)
			},
			wantErr: person.ErrNotFound,
		},
		{
			name:   "SessionLookupFailure",
			params: ledger.RecordParams{PersonID: alice.ID, ItemID: beerItem.ID},
			setupMock: func(m *mocks) {
				m.sessions.EXPECT().Active(gomock.Any()).Return(nil, errors.New("db error"))
			},
			wantSomeErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newMocks(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			got, err := newService(m).Record(context.Background(), tt.params)

			if tt.wantErr != nil || tt.wantSomeErr {
				assert.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, activeSession.ID, got.SessionID)
			assert.Equal(t, alice.Name, got.PersonName)
			assert.Equal(t, tt.wantQty, got.Quantity.StringFixed(3))
			assert.Equal(t, tt.wantPrice, got.Price.StringFixed(3))
		})
	}
}

func TestService_UndoLast(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *mocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "DeletesMostRecent",
			setupMock: func(m *mocks) {
				m.sessions.EXPECT().Active(gomock.Any()).Return(activeSession, nil)
				m.people.EXPECT().Get(gomock.Any(), alice.ID).Return(alice, nil)
				m.repo.EXPECT().
					DeleteLastByPerson(gomock.Any(), activeSession.ID, alice.ID).
					Return(&ledger.Transaction{ID: 42, PersonID: alice.ID, Price: dec("1.500")}, nil)
			},
		},
		{
			name: "NothingToUndo",
			setupMock: func(m *mocks) {
				m.sessions.EXPECT().Active(gomock.Any()).Return(activeSession, nil)
				m.people.EXPECT().Get(gomock.Any(), alice.ID).Return(alice, nil)
				m.repo.EXPECT().
					DeleteLastByPerson(gomock.Any(), activeSession.ID, alice.ID).
					Return(nil, ledger.ErrNothingToUndo)
			},
			wantErr: ledger.ErrNothingToUndo,
		},
		{
			name: "UnknownPerson",
			setupMock: func(m *mocks) {
				m.sessions.EXPECT().Active(gomock.Any()).Return(activeSession, nil)
				m.people.EXPECT().Get(gomock.Any(), alice.ID).Return(nil, person.ErrNotFound)
			},
			wantErr: person.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newMocks(ctrl)
			tt.setupMock(m)

			got, err := newService(m).UndoLast(context.Background(), alice.ID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, int64(42), got.ID)
		})
	}
}

func TestService_ResetDebt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMocks(ctrl)
	m.sessions.EXPECT().Active(gomock.Any()).Return(activeSession, nil)
	m.people.EXPECT().Get(gomock.Any(), alice.ID).Return(alice, nil)
	m.repo.EXPECT().DeleteByPerson(gomock.Any(), activeSession.ID, alice.ID).Return(int64(3), nil)

	err := newService(m).ResetDebt(context.Background(), alice.ID)

	assert.NoError(t, err)
}

func TestService_ActiveSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMocks(ctrl)
	m.sessions.EXPECT().Active(gomock.Any()).Return(activeSession, nil)
	m.repo.EXPECT().SummarizeSession(gomock.Any(), activeSession.ID).Return([]ledger.PersonTotal{
		{PersonID: 1, Name: "Alice", Total: dec("1.000"), Count: 1},
		{PersonID: 2, Name: "Bob", Total: dec("2.500"), Count: 2},
	}, nil)

	got, err := newService(m).ActiveSummary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, activeSession, got.Session)
	assert.Len(t, got.PerPerson, 2)
	assert.Equal(t, "3.500", got.Total.StringFixed(3))
}

func TestService_PersonDebt(t *testing.T) {
	perPerson := []ledger.PersonTotal{
		{PersonID: alice.ID, Name: alice.Name, Total: dec("2.750"), Count: 3},
	}

	type testCase struct {
		name     string
		personID int64
		want     string
	}

	tests := []testCase{
		{name: "PersonWithDebt", personID: alice.ID, want: "2.750"},
		{name: "PersonWithCleanTab", personID: 8, want: "0.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newMocks(ctrl)
			m.people.EXPECT().
				Get(gomock.Any(), tt.personID).
				Return(&person.Person{ID: tt.personID}, nil)
			m.sessions.EXPECT().Active(gomock.Any()).Return(activeSession, nil)
			m.repo.EXPECT().SummarizeSession(gomock.Any(), activeSession.ID).Return(perPerson, nil)

			got, err := newService(m).PersonDebt(context.Background(), tt.personID)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(3))
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMocks(ctrl)
	// Non-positive limit and negative offset fall back to the defaults.
	m.repo.EXPECT().
		ListTransactions(gomock.Any(), 20, 0).
		Return([]*ledger.Transaction{{ID: 2}, {ID: 1}}, int64(2), nil)

	got, count, err := newService(m).List(context.Background(), 0, -5)

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Len(t, got, 2)
}
