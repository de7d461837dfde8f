package person

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("person not found")

// Person is someone with a running tab. TotalBeers and TotalCoffees are
// lifetime tallies of drinks ever served; they only grow when transactions are
// recorded and are never decremented by undo or debt resets. Explicit values
// can be set through Update as an administrative correction.
type Person struct {
	ID           int64
	Name         string
	IsGuest      bool
	Active       bool
	TotalBeers   int64
	TotalCoffees int64
	CreatedAt    time.Time
}
