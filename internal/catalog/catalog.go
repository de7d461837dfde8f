package catalog

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

var ErrNotFound = errors.New("not found")

// PricingMode selects how an item's charged price is derived.
type PricingMode string

const (
	// PricePerUnit charges the item price flat, regardless of quantity.
	PricePerUnit PricingMode = "per_unit"
	// PricePerWeight charges price multiplied by quantity (typically grams).
	PricePerWeight PricingMode = "per_weight"
)

// Valid reports whether m is a known pricing mode.
func (m PricingMode) Valid() bool {
	return m == PricePerUnit || m == PricePerWeight
}

// Folded names of the categories with special pricing and counter rules.
const (
	Coffee = "coffee"
	Beer   = "beer"
)

// FoldName normalizes a category name for case-insensitive matching.
func FoldName(s string) string {
	return cases.Fold().String(s)
}

type Category struct {
	ID   int64
	Name string
}

type Item struct {
	ID          int64
	Name        string
	CategoryID  int64
	Category    *Category // Loaded via JOIN
	Price       decimal.Decimal
	PricingMode PricingMode
	Note        string
	Active      bool
	CreatedAt   time.Time
}

// CategoryName returns the item's category name, or "" when not loaded.
func (i *Item) CategoryName() string {
	if i.Category == nil {
		return ""
	}

	return i.Category.Name
}

// CoffeePreset adds a flat extra charge to per-weight coffee items whose
// quantity falls inside [GMin, GMax] (both bounds inclusive).
type CoffeePreset struct {
	ID        int64
	Label     string
	GMin      decimal.Decimal
	GMax      decimal.Decimal
	Extra     decimal.Decimal
	CreatedAt time.Time
}

// Contains reports whether qty falls inside the preset's weight band.
func (p *CoffeePreset) Contains(qty decimal.Decimal) bool {
	return qty.GreaterThanOrEqual(p.GMin) && qty.LessThanOrEqual(p.GMax)
}
