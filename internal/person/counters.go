package person

import (
	"github.com/shopspring/decimal"

	"bartab/internal/catalog"
)

// CounterDeltas is the lifetime counter increment caused by one transaction.
type CounterDeltas struct {
	Beers   int64
	Coffees int64
}

func (d CounterDeltas) IsZero() bool {
	return d == CounterDeltas{}
}

// gramsPerCup converts a coffee weight into counted cups: every started 15 g
// counts, with a minimum of one cup per transaction.
var gramsPerCup = decimal.NewFromInt(15)

// counterRules maps a folded category name to the counter increment for a
// transaction of that category. Categories without a rule leave the counters
// untouched; new tracked categories only need an entry here.
var counterRules = map[string]func(qty decimal.Decimal) CounterDeltas{
	catalog.Beer: func(decimal.Decimal) CounterDeltas {
		return CounterDeltas{Beers: 1}
	},
	catalog.Coffee: func(qty decimal.Decimal) CounterDeltas {
		cups := qty.Div(gramsPerCup).Floor().IntPart()
		if cups < 1 {
			cups = 1
		}

		return CounterDeltas{Coffees: cups}
	},
}

// DeltasFor returns the counter increment for one transaction of the given
// category and quantity.
func DeltasFor(categoryName string, qty decimal.Decimal) CounterDeltas {
	rule, ok := counterRules[catalog.FoldName(categoryName)]
	if !ok {
		return CounterDeltas{}
	}

	return rule(qty)
}
