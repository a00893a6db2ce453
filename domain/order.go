package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Side represents the order side (Buy or Sell)
type Side int

const (
	SideBuy Side = iota
	SideSell
)

// Opposite returns the side an order of this side matches against.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

func (s Side) String() string {
	if s == SideBuy {
		return "buy"
	}
	return "sell"
}

// ParseSide parses "buy" or "sell".
func ParseSide(raw string) (Side, error) {
	switch raw {
	case "buy":
		return SideBuy, nil
	case "sell":
		return SideSell, nil
	default:
		return 0, fmt.Errorf("invalid side %q", raw)
	}
}

func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Side) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	side, err := ParseSide(raw)
	if err != nil {
		return err
	}
	*s = side
	return nil
}

// Symbol identifies a tradable instrument. The set of listed symbols is
// decided by the exchange at start-up, not by this package.
type Symbol string

// Order is an open limit order. It is a value type: once admitted to a
// book it is never mutated in place, only removed and re-inserted.
//
// ID is assigned by the book on insertion when nil and is the sole key
// for cancellation. Quantity and Price must be strictly positive while
// the order is visible in a book.
type Order struct {
	ID       uuid.UUID `json:"id"`
	Quantity int64     `json:"quantity"`
	Symbol   Symbol    `json:"symbol"`
	Price    int64     `json:"price"`
	Side     Side      `json:"side"`
}
