package orderbook

import "fmt"

// LevelIndex maintains price levels in priority order: descending price
// for a Buy book, ascending for a Sell book. Abstracting the index lets
// the O(n) canonical structure be swapped for a logarithmic one without
// touching the Add/Remove/Fill contracts.
//
// Implementations:
//   - sliceIndex: ordered slice with linear scans (the canonical layout)
//   - treeIndex:  red-black tree keyed by price (the default)
type LevelIndex interface {
	// Best returns the most competitive level, or nil when empty.
	Best() *PriceLevel

	// Get returns the level at exactly this price, or nil.
	Get(price int64) *PriceLevel

	// Insert adds a new level, preserving priority order.
	// The price must not already be present.
	Insert(level *PriceLevel)

	// Delete removes the level at this price, if present.
	Delete(price int64)

	// Walk visits levels in priority order until fn returns false.
	Walk(fn func(*PriceLevel) bool)

	// Len returns the number of price levels.
	Len() int
}

// IndexKind selects a LevelIndex implementation.
type IndexKind string

const (
	IndexSlice IndexKind = "slice"
	IndexTree  IndexKind = "tree"
)

// ParseIndexKind validates a configured index kind.
func ParseIndexKind(raw string) (IndexKind, error) {
	switch IndexKind(raw) {
	case IndexSlice, IndexTree:
		return IndexKind(raw), nil
	default:
		return "", fmt.Errorf("orderbook: unknown index kind %q", raw)
	}
}

// newLevelIndex builds the index for a book. descending is true for Buy
// books (higher price is better) and false for Sell books.
func newLevelIndex(kind IndexKind, descending bool) LevelIndex {
	switch kind {
	case IndexSlice:
		return newSliceIndex(descending)
	case IndexTree:
		return newTreeIndex(descending)
	default:
		panic(fmt.Sprintf("orderbook: unknown index kind %q", kind))
	}
}
