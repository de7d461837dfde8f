package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bartab/internal/catalog"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	return d
}

func TestService_CreateItem(t *testing.T) {
	beer := &catalog.Category{ID: 1, Name: "Beer"}

	type testCase struct {
		name      string
		item      *catalog.Item
		setupMock func(m *catalog.MockRepository)
		wantMode  catalog.PricingMode
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "DefaultsToPerUnit",
			item: &catalog.Item{Name: "Pilsner", CategoryID: beer.ID, Price: dec("1.5")},
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), beer.ID).Return(beer, nil)
				m.EXPECT().
					CreateItem(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, it *catalog.Item) error {
						it.ID = 10
						return nil
					})
				m.EXPECT().
					GetItem(gomock.Any(), int64(10)).
					Return(&catalog.Item{ID: 10, Name: "Pilsner", CategoryID: beer.ID, Category: beer, Price: dec("1.5"), PricingMode: catalog.PricePerUnit}, nil)
			},
			wantMode: catalog.PricePerUnit,
		},
		{
			name: "KeepsExplicitPerWeight",
			item: &catalog.Item{Name: "Beans", CategoryID: beer.ID, Price: dec("0.020"), PricingMode: catalog.PricePerWeight},
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), beer.ID).Return(beer, nil)
				m.EXPECT().
					CreateItem(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, it *catalog.Item) error {
						it.ID = 11
						return nil
					})
				m.EXPECT().
					GetItem(gomock.Any(), int64(11)).
					Return(&catalog.Item{ID: 11, PricingMode: catalog.PricePerWeight}, nil)
			},
			wantMode: catalog.PricePerWeight,
		},
		{
			name:      "RejectsUnknownPricingMode",
			item:      &catalog.Item{Name: "Beans", CategoryID: beer.ID, PricingMode: "per_sip"},
			setupMock: func(m *catalog.MockRepository) {},
			wantErr:   true,
		},
		{
			name: "RejectsUnknownCategory",
			item: &catalog.Item{Name: "Beans", CategoryID: 99},
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), int64(99)).Return(nil, catalog.ErrNotFound)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := catalog.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := catalog.NewService(repo).CreateItem(context.Background(), tt.item)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantMode, got.PricingMode)
		})
	}
}

func TestService_CreateCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	svc := catalog.NewService(repo)

	_, err := svc.CreateCategory(context.Background(), "")
	assert.Error(t, err)

	repo.EXPECT().
		CreateCategory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *catalog.Category) error {
			c.ID = 3
			return nil
		})

	got, err := svc.CreateCategory(context.Background(), "Snacks")

	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, "Snacks", got.Name)
}

func TestService_CreateCoffeePreset(t *testing.T) {
	type testCase struct {
		name      string
		preset    *catalog.CoffeePreset
		setupMock func(m *catalog.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			preset: &catalog.CoffeePreset{Label: "small", GMin: dec("10"), GMax: dec("20"), Extra: dec("0.200")},
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().
					CreateCoffeePreset(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *catalog.CoffeePreset) error {
						p.ID = 1
						return nil
					})
			},
		},
		{
			name:   "SingleWeightBandAllowed",
			preset: &catalog.CoffeePreset{Label: "exact", GMin: dec("15"), GMax: dec("15"), Extra: dec("0.100")},
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().CreateCoffeePreset(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "RejectsInvertedRange",
			preset:    &catalog.CoffeePreset{Label: "backwards", GMin: dec("20"), GMax: dec("10")},
			setupMock: func(m *catalog.MockRepository) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := catalog.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := catalog.NewService(repo).CreateCoffeePreset(context.Background(), tt.preset)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, got)
		})
	}
}
