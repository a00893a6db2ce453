package orderbook

import (
	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"
)

// treeIndex keys levels by price in a red-black tree whose comparator
// encodes the book's priority order, so the leftmost node is always the
// best level. O(log n) lookup and insertion.
type treeIndex struct {
	tree *rbt.Tree[int64, *PriceLevel]
}

var _ LevelIndex = (*treeIndex)(nil)

func newTreeIndex(descending bool) *treeIndex {
	var comparator func(a, b int64) int
	if descending {
		// Bids: higher price sorts first.
		comparator = func(a, b int64) int {
			if a > b {
				return -1
			} else if a < b {
				return 1
			}
			return 0
		}
	} else {
		// Asks: lower price sorts first.
		comparator = func(a, b int64) int {
			if a < b {
				return -1
			} else if a > b {
				return 1
			}
			return 0
		}
	}

	return &treeIndex{
		tree: rbt.NewWith[int64, *PriceLevel](comparator),
	}
}

func (t *treeIndex) Best() *PriceLevel {
	node := t.tree.Left()
	if node == nil {
		return nil
	}
	return node.Value
}

func (t *treeIndex) Get(price int64) *PriceLevel {
	level, found := t.tree.Get(price)
	if !found {
		return nil
	}
	return level
}

func (t *treeIndex) Insert(level *PriceLevel) {
	t.tree.Put(level.Price, level)
}

func (t *treeIndex) Delete(price int64) {
	t.tree.Remove(price)
}

func (t *treeIndex) Walk(fn func(*PriceLevel) bool) {
	it := t.tree.Iterator()
	for it.Next() {
		if !fn(it.Value()) {
			return
		}
	}
}

func (t *treeIndex) Len() int {
	return t.tree.Size()
}
