package person_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"bartab/internal/person"
)

func TestDeltasFor(t *testing.T) {
	type testCase struct {
		name     string
		category string
		qty      string
		want     person.CounterDeltas
	}

	tests := []testCase{
		{
			name:     "BeerCountsOnePerTransaction",
			category: "Beer",
			qty:      "1",
			want:     person.CounterDeltas{Beers: 1},
		},
		{
			name:     "BeerIgnoresQuantity",
			category: "beer",
			qty:      "4",
			want:     person.CounterDeltas{Beers: 1},
		},
		{
			name:     "CoffeeSmallWeightStillOneCup",
			category: "Coffee",
			qty:      "7",
			want:     person.CounterDeltas{Coffees: 1},
		},
		{
			name:     "CoffeeExactCupBoundary",
			category: "Coffee",
			qty:      "15",
			want:     person.CounterDeltas{Coffees: 1},
		},
		{
			name:     "CoffeeFloorsPartialCups",
			category: "Coffee",
			qty:      "44",
			want:     person.CounterDeltas{Coffees: 2},
		},
		{
			name:     "CoffeeThreeCups",
			category: "COFFEE",
			qty:      "45",
			want:     person.CounterDeltas{Coffees: 3},
		},
		{
			name:     "UntrackedCategoryLeavesCountersAlone",
			category: "Snacks",
			qty:      "100",
			want:     person.CounterDeltas{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qty, err := decimal.NewFromString(tt.qty)
			assert.NoError(t, err)

			got := person.DeltasFor(tt.category, qty)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.IsZero(), got.IsZero())
		})
	}
}
