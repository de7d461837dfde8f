// Package pricing computes the charged price for a transaction from an item's
// pricing mode, the requested quantity, and the coffee surcharge bands.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"bartab/internal/catalog"
)

// ErrInvalidQuantity is returned when a quantity is zero or negative.
var ErrInvalidQuantity = errors.New("invalid quantity")

// DefaultQuantity is assumed when a per-unit transaction carries no quantity.
var DefaultQuantity = decimal.NewFromInt(1)

// places is the fixed-point scale used for every money value.
const places = 3

// Round normalizes a money value to three decimal places, half-up.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(places)
}

// Price computes the charged price for one transaction of the given item.
//
// Per-unit items charge the item price flat; the quantity is recorded but does
// not enter the price. Per-weight items charge price x quantity and, for items
// in the coffee category, add the first matching surcharge band. The result is
// always rounded to three decimal places.
func Price(item *catalog.Item, qty decimal.Decimal, presets []*catalog.CoffeePreset) (decimal.Decimal, error) {
	if qty.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrInvalidQuantity, qty)
	}

	switch item.PricingMode {
	case catalog.PricePerUnit:
		return Round(item.Price), nil

	case catalog.PricePerWeight:
		base := Round(item.Price.Mul(qty))

		if catalog.FoldName(item.CategoryName()) != catalog.Coffee {
			return base, nil
		}

		preset := FindSurcharge(presets, qty)
		if preset == nil {
			return base, nil
		}

		return Round(base.Add(preset.Extra)), nil

	default:
		return decimal.Decimal{}, fmt.Errorf("unknown pricing mode %q", item.PricingMode)
	}
}

// FindSurcharge returns the first preset whose band contains qty, or nil when
// none does. Presets must be ordered by (g_min, id); that ordering is the
// tie-break when bands overlap.
func FindSurcharge(presets []*catalog.CoffeePreset, qty decimal.Decimal) *catalog.CoffeePreset {
	for _, p := range presets {
		if p.Contains(qty) {
			return p
		}
	}

	return nil
}
