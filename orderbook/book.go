// Package orderbook implements one side of a limit order book: price
// levels kept in priority order (best first), FIFO queues within a level,
// and the fill algorithm that consumes resting liquidity under price-time
// priority.
//
// A Book is not safe for concurrent use; callers serialize access (see
// the exchange package).
package orderbook

import (
	"github.com/google/uuid"

	"microexchange/domain"
)

// Book holds the resting orders of one (symbol, side) pair. Every order
// in the book has Side equal to the book's side; the opposite side lives
// in its own Book instance.
type Book struct {
	side   domain.Side
	levels LevelIndex
}

// New creates an empty book using the default red-black-tree index.
func New(side domain.Side) *Book {
	return NewWithIndex(side, IndexTree)
}

// NewWithIndex creates an empty book with an explicit index kind.
func NewWithIndex(side domain.Side, kind IndexKind) *Book {
	return &Book{
		side:   side,
		levels: newLevelIndex(kind, side == domain.SideBuy),
	}
}

// Side returns the side this book is configured for.
func (b *Book) Side() domain.Side {
	return b.side
}

// Add admits a resting order. An order with a nil id is assigned a fresh
// one before insertion; the admitted order is returned. Orders at an
// existing price join that level's tail, preserving time priority;
// otherwise a new single-order level is inserted in priority position.
func (b *Book) Add(order domain.Order) (domain.Order, error) {
	if order.Side != b.side {
		return domain.Order{}, ErrWrongSide
	}
	if order.Quantity <= 0 || order.Price <= 0 {
		return domain.Order{}, ErrInvalidOrder
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	if level := b.levels.Get(order.Price); level != nil {
		level.append(order)
		return order, nil
	}

	level := newPriceLevel(order.Price)
	level.append(order)
	b.levels.Insert(level)
	return order, nil
}

// Remove cancels the resting order with the given id. The level is
// deleted when its last order goes, so the book never holds empty
// levels. Returns ErrNotFound when no such order is resting.
func (b *Book) Remove(id uuid.UUID) error {
	var found *PriceLevel
	b.levels.Walk(func(level *PriceLevel) bool {
		if level.remove(id) {
			found = level
			return false
		}
		return true
	})
	if found == nil {
		return ErrNotFound
	}
	if found.Len() == 0 {
		b.levels.Delete(found.Price)
	}
	return nil
}

// Snapshot returns an independent copy of the book: levels in priority
// order, orders in FIFO order. Later mutations of the book never affect
// a previously returned snapshot.
func (b *Book) Snapshot() []LevelSnapshot {
	out := make([]LevelSnapshot, 0, b.levels.Len())
	b.levels.Walk(func(level *PriceLevel) bool {
		out = append(out, LevelSnapshot{
			Price:  level.Price,
			Orders: level.Orders(),
		})
		return true
	})
	return out
}

// Depth returns the number of price levels currently in the book.
func (b *Book) Depth() int {
	return b.levels.Len()
}
