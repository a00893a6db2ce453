// Package exchange owns the live order books: one Market per listed
// symbol, each holding a guarded buy book and sell book, behind a
// lock-free symbol router.
package exchange

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"microexchange/domain"
	"microexchange/orderbook"
)

// ErrSymbolMismatch is returned when an order is routed to a market for
// a different symbol. The router prevents this; the check is a guard
// against misuse of a Market held directly.
var ErrSymbolMismatch = errors.New("exchange: order symbol does not match market")

// guardedBook serializes access to one book. Add, Remove and Fill need
// the write lock; Snapshot needs only the read lock.
type guardedBook struct {
	mu   sync.RWMutex
	book *orderbook.Book
}

// Market is the pair of books for one symbol. Operations on one Market
// are serialized per book; distinct markets run fully in parallel.
type Market struct {
	symbol domain.Symbol
	buy    guardedBook
	sell   guardedBook
}

// NewMarket creates the empty buy and sell books for a symbol.
func NewMarket(symbol domain.Symbol, kind orderbook.IndexKind) *Market {
	m := &Market{symbol: symbol}
	m.buy.book = orderbook.NewWithIndex(domain.SideBuy, kind)
	m.sell.book = orderbook.NewWithIndex(domain.SideSell, kind)
	return m
}

// Symbol returns the symbol this market trades.
func (m *Market) Symbol() domain.Symbol {
	return m.symbol
}

// PlaceResult is the outcome of Place: either an immediate fill or the
// admitted resting order.
type PlaceResult struct {
	Filled  bool
	Fill    orderbook.FillResult
	Resting domain.Order
}

// Place attempts to fill the order against the opposite-side book and,
// when liquidity or price is insufficient, leaves it resting on its own
// side instead. The whole sequence runs as one critical section over
// both books, locked in a fixed order (buy before sell) so that two
// opposite-direction orders arriving concurrently cannot deadlock.
func (m *Market) Place(order domain.Order) (PlaceResult, error) {
	if order.Symbol != m.symbol {
		return PlaceResult{}, ErrSymbolMismatch
	}

	m.buy.mu.Lock()
	defer m.buy.mu.Unlock()
	m.sell.mu.Lock()
	defer m.sell.mu.Unlock()

	opposite := m.bookFor(order.Side.Opposite())
	result, err := opposite.Fill(order)
	switch {
	case err == nil:
		return PlaceResult{Filled: true, Fill: result}, nil
	case errors.Is(err, orderbook.ErrCantFillPrice), errors.Is(err, orderbook.ErrCantFillSize):
		admitted, addErr := m.bookFor(order.Side).Add(order)
		if addErr != nil {
			return PlaceResult{}, addErr
		}
		return PlaceResult{Resting: admitted}, nil
	default:
		return PlaceResult{}, err
	}
}

// Cancel removes a resting order from one side of the market.
func (m *Market) Cancel(side domain.Side, id uuid.UUID) error {
	guard := m.guardFor(side)
	guard.mu.Lock()
	defer guard.mu.Unlock()
	return guard.book.Remove(id)
}

// Depth returns a read-consistent snapshot of one side of the market.
func (m *Market) Depth(side domain.Side) []orderbook.LevelSnapshot {
	guard := m.guardFor(side)
	guard.mu.RLock()
	defer guard.mu.RUnlock()
	return guard.book.Snapshot()
}

func (m *Market) guardFor(side domain.Side) *guardedBook {
	if side == domain.SideBuy {
		return &m.buy
	}
	return &m.sell
}

func (m *Market) bookFor(side domain.Side) *orderbook.Book {
	return m.guardFor(side).book
}
