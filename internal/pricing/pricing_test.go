package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bartab/internal/catalog"
	"bartab/internal/pricing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	return d
}

func coffeeItem(price string) *catalog.Item {
	return &catalog.Item{
		ID:          1,
		Name:        "House Blend",
		Category:    &catalog.Category{ID: 1, Name: "Coffee"},
		Price:       dec(price),
		PricingMode: catalog.PricePerWeight,
	}
}

func TestPrice(t *testing.T) {
	presets := []*catalog.CoffeePreset{
		{ID: 1, Label: "small", GMin: dec("10"), GMax: dec("20"), Extra: dec("0.200")},
		{ID: 2, Label: "large", GMin: dec("21"), GMax: dec("40"), Extra: dec("0.350")},
	}

	type testCase struct {
		name    string
		item    *catalog.Item
		qty     decimal.Decimal
		presets []*catalog.CoffeePreset
		want    string
		wantErr error
	}

	tests := []testCase{
		{
			name: "PerUnitIgnoresQuantity",
			item: &catalog.Item{
				Name:        "Pilsner",
				Category:    &catalog.Category{Name: "Beer"},
				Price:       dec("1.5"),
				PricingMode: catalog.PricePerUnit,
			},
			qty:  dec("3"),
			want: "1.500",
		},
		{
			name:    "PerWeightCoffeeWithSurcharge",
			item:    coffeeItem("0.020"),
			qty:     dec("15"),
			presets: presets,
			want:    "0.500",
		},
		{
			name:    "PerWeightCoffeeBelowEveryBand",
			item:    coffeeItem("0.020"),
			qty:     dec("5"),
			presets: presets,
			want:    "0.100",
		},
		{
			name:    "PerWeightCoffeeBandLowerBoundInclusive",
			item:    coffeeItem("0.020"),
			qty:     dec("10"),
			presets: presets,
			want:    "0.400",
		},
		{
			name:    "PerWeightCoffeeBandUpperBoundInclusive",
			item:    coffeeItem("0.020"),
			qty:     dec("40"),
			presets: presets,
			want:    "1.150",
		},
		{
			name:    "PerWeightCoffeeCategoryCaseInsensitive",
			item:    &catalog.Item{Name: "Beans", Category: &catalog.Category{Name: "COFFEE"}, Price: dec("0.020"), PricingMode: catalog.PricePerWeight},
			qty:     dec("15"),
			presets: presets,
			want:    "0.500",
		},
		{
			name: "PerWeightNonCoffeeSkipsSurcharge",
			item: &catalog.Item{
				Name:        "Peanuts",
				Category:    &catalog.Category{Name: "Snacks"},
				Price:       dec("0.010"),
				PricingMode: catalog.PricePerWeight,
			},
			qty:     dec("15"),
			presets: presets,
			want:    "0.150",
		},
		{
			name: "PerWeightRoundsHalfUp",
			item: &catalog.Item{
				Name:        "Peanuts",
				Category:    &catalog.Category{Name: "Snacks"},
				Price:       dec("0.0015"),
				PricingMode: catalog.PricePerWeight,
			},
			qty:  dec("1"),
			want: "0.002",
		},
		{
			name:    "ZeroQuantityRejected",
			item:    coffeeItem("0.020"),
			qty:     dec("0"),
			wantErr: pricing.ErrInvalidQuantity,
		},
		{
			name:    "NegativeQuantityRejected",
			item:    coffeeItem("0.020"),
			qty:     dec("-3"),
			wantErr: pricing.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricing.Price(tt.item, tt.qty, tt.presets)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(3))
		})
	}
}

func TestFindSurcharge(t *testing.T) {
	// Presets come ordered by (g_min, id); overlap resolves to the first match.
	presets := []*catalog.CoffeePreset{
		{ID: 3, Label: "narrow", GMin: dec("10"), GMax: dec("15"), Extra: dec("0.100")},
		{ID: 5, Label: "wide", GMin: dec("10"), GMax: dec("30"), Extra: dec("0.999")},
		{ID: 4, Label: "large", GMin: dec("16"), GMax: dec("25"), Extra: dec("0.300")},
	}

	type testCase struct {
		name     string
		qty      string
		wantID   int64
		wantNone bool
	}

	tests := []testCase{
		{name: "OverlapPicksLowestBandThenID", qty: "12", wantID: 3},
		{name: "FallsThroughToWideBand", qty: "28", wantID: 5},
		{name: "SecondBandStart", qty: "16", wantID: 5},
		{name: "NoBandMatches", qty: "45", wantNone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.FindSurcharge(presets, dec(tt.qty))

			if tt.wantNone {
				assert.Nil(t, got)

				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}
