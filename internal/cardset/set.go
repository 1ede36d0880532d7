package cardset

import (
	"slices"
	"strconv"
)

// Set is the ordered list of calling card indices (1-based) on one game card.
// The order is the sampling order and decides where each tile lands.
type Set []int

// Signature identifies a Set regardless of order. Two sets with the same
// signature hold the same calling cards.
type Signature string

// Signature returns the sorted value list of s encoded as a map key.
func (s Set) Signature() Signature {
	sorted := slices.Clone(s)
	slices.Sort(sorted)

	buf := make([]byte, 0, len(sorted)*4)
	for i, v := range sorted {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(v), 10)
	}
	return Signature(buf)
}

// Batch is the full collection of game card sets generated for one run.
// No two members share a signature.
type Batch []Set

// Len returns the number of game cards in the batch.
func (b Batch) Len() int {
	return len(b)
}

// Flatten returns every calling card index of every set, in batch order.
func (b Batch) Flatten() []int {
	n := 0
	for _, s := range b {
		n += len(s)
	}
	flat := make([]int, 0, n)
	for _, s := range b {
		flat = append(flat, s...)
	}
	return flat
}

// Distinct reports whether all sets in the batch have pairwise different
// signatures.
func (b Batch) Distinct() bool {
	seen := make(map[Signature]struct{}, len(b))
	for _, s := range b {
		sig := s.Signature()
		if _, ok := seen[sig]; ok {
			return false
		}
		seen[sig] = struct{}{}
	}
	return true
}
