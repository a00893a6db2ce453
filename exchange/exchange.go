package exchange

import (
	"errors"
	"sync"
	"sync/atomic"

	"microexchange/domain"
	"microexchange/orderbook"
)

// ErrUnknownSymbol is returned for a symbol no market is listed for.
var ErrUnknownSymbol = errors.New("exchange: unknown symbol")

// Exchange routes orders to per-symbol markets.
// The routing table is an immutable map held in an atomic.Value: reads
// are lock-free, and listing a new symbol copies the map under the
// mutex (copy-on-write; listing is rare, routing is the hot path).
type Exchange struct {
	markets atomic.Value // map[domain.Symbol]*Market
	mu      sync.Mutex   // guards listing only
	index   orderbook.IndexKind
}

// New creates an exchange and lists the given symbols.
func New(kind orderbook.IndexKind, symbols ...domain.Symbol) *Exchange {
	e := &Exchange{index: kind}
	e.markets.Store(make(map[domain.Symbol]*Market))
	for _, symbol := range symbols {
		e.List(symbol)
	}
	return e
}

// Market returns the market for a symbol, lock-free.
func (e *Exchange) Market(symbol domain.Symbol) (*Market, error) {
	markets := e.markets.Load().(map[domain.Symbol]*Market)
	market, ok := markets[symbol]
	if !ok {
		return nil, ErrUnknownSymbol
	}
	return market, nil
}

// List creates the market for a symbol if it does not exist yet and
// returns it.
func (e *Exchange) List(symbol domain.Symbol) *Market {
	markets := e.markets.Load().(map[domain.Symbol]*Market)
	if market, ok := markets[symbol]; ok {
		return market
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Another goroutine may have listed it between the load and the lock.
	markets = e.markets.Load().(map[domain.Symbol]*Market)
	if market, ok := markets[symbol]; ok {
		return market
	}

	market := NewMarket(symbol, e.index)
	next := make(map[domain.Symbol]*Market, len(markets)+1)
	for k, v := range markets {
		next[k] = v
	}
	next[symbol] = market
	e.markets.Store(next)

	return market
}

// Symbols returns the currently listed symbols.
func (e *Exchange) Symbols() []domain.Symbol {
	markets := e.markets.Load().(map[domain.Symbol]*Market)
	out := make([]domain.Symbol, 0, len(markets))
	for symbol := range markets {
		out = append(out, symbol)
	}
	return out
}
