package orderbook

// sliceIndex keeps levels in a sorted slice and scans linearly. Lookup
// and insertion are O(n) in the number of levels, which is fine for
// shallow books and trivially auditable; deep books should use treeIndex.
type sliceIndex struct {
	levels     []*PriceLevel
	descending bool
}

var _ LevelIndex = (*sliceIndex)(nil)

func newSliceIndex(descending bool) *sliceIndex {
	return &sliceIndex{descending: descending}
}

func (s *sliceIndex) Best() *PriceLevel {
	if len(s.levels) == 0 {
		return nil
	}
	return s.levels[0]
}

func (s *sliceIndex) Get(price int64) *PriceLevel {
	for _, level := range s.levels {
		if level.Price == price {
			return level
		}
	}
	return nil
}

func (s *sliceIndex) Insert(level *PriceLevel) {
	// Insert before the first less-competitive level; if every resting
	// level beats this price, it goes at the end.
	for i, existing := range s.levels {
		if s.isBetterPrice(level.Price, existing.Price) {
			s.levels = append(s.levels, nil)
			copy(s.levels[i+1:], s.levels[i:])
			s.levels[i] = level
			return
		}
	}
	s.levels = append(s.levels, level)
}

func (s *sliceIndex) Delete(price int64) {
	for i, level := range s.levels {
		if level.Price == price {
			s.levels = append(s.levels[:i], s.levels[i+1:]...)
			return
		}
	}
}

func (s *sliceIndex) Walk(fn func(*PriceLevel) bool) {
	for _, level := range s.levels {
		if !fn(level) {
			return
		}
	}
}

func (s *sliceIndex) Len() int {
	return len(s.levels)
}

func (s *sliceIndex) isBetterPrice(price1, price2 int64) bool {
	if s.descending {
		return price1 > price2 // bids: higher is better
	}
	return price1 < price2 // asks: lower is better
}
