package cardset

import (
	"math/big"

	"github.com/arcanaland/loteria/internal/apperr"
)

// MinGridSide is the smallest number of columns or rows a game card can have.
const MinGridSide = 2

// Params describes one generation request.
type Params struct {
	CallingCards int // R, size of the catalog
	GameCards    int // G, number of sets to produce
	Columns      int
	Rows         int
}

// PerCard returns K, the number of calling cards on each game card.
func (p Params) PerCard() int {
	return p.Columns * p.Rows
}

// Validate checks that every value is positive and the grid is at least 2×2.
func (p Params) Validate() error {
	const op = "cardset.Params"
	if p.CallingCards < 1 {
		return apperr.Input(op, "calling card count must be positive, got %d", p.CallingCards)
	}
	if p.GameCards < 1 {
		return apperr.Input(op, "game card count must be positive, got %d", p.GameCards)
	}
	if p.Columns < MinGridSide {
		return apperr.Input(op, "need at least %d columns, got %d", MinGridSide, p.Columns)
	}
	if p.Rows < MinGridSide {
		return apperr.Input(op, "need at least %d rows, got %d", MinGridSide, p.Rows)
	}
	return nil
}

// Capacity returns C(r, k), the number of distinct k-subsets of r items.
// It is zero when k > r.
func Capacity(r, k int) *big.Int {
	if k < 0 || r < 0 || k > r {
		return new(big.Int)
	}
	return new(big.Int).Binomial(int64(r), int64(k))
}

// CheckCapacity fails with a CapacityError when the request can never be
// satisfied: more calling cards per game card than exist, or more game cards
// than there are distinct subsets.
func CheckCapacity(p Params) error {
	const op = "cardset.CheckCapacity"
	k := p.PerCard()
	if k > p.CallingCards {
		return apperr.Capacity(op, "game cards need more calling cards than the catalog holds", p.CallingCards, k)
	}
	c := Capacity(p.CallingCards, k)
	if c.Cmp(big.NewInt(int64(p.GameCards))) < 0 {
		// c < G fits in an int here.
		return apperr.Capacity(op, "not enough distinct calling card combinations for the requested game cards",
			int(c.Int64()), p.GameCards)
	}
	return nil
}
