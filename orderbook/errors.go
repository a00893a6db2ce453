package orderbook

import "errors"

// All expected engine outcomes are sentinel errors matched with errors.Is.
// A corrupted book structure (an empty level found where one must not be)
// is a programming error and panics instead.
var (
	// ErrWrongSide is returned when an order's side does not match the
	// book it was submitted to, or when Fill is invoked with an order
	// whose side is not the opposite of the book's side.
	ErrWrongSide = errors.New("orderbook: wrong side for this book")

	// ErrNotFound is returned by Remove for an id that is not resting.
	// Callers should treat it as a no-op outcome.
	ErrNotFound = errors.New("orderbook: no such order")

	// ErrCantFillPrice means nothing is available at a valid price.
	ErrCantFillPrice = errors.New("orderbook: can't fill order, nothing available for that price")

	// ErrCantFillSize means the book's eligible liquidity cannot cover
	// the requested quantity.
	ErrCantFillSize = errors.New("orderbook: can't fill order, order too large")

	// ErrInvalidOrder rejects non-positive quantity or price at the
	// engine boundary before they can violate book invariants.
	ErrInvalidOrder = errors.New("orderbook: quantity and price must be positive")
)
