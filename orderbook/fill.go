package orderbook

import (
	"fmt"

	"github.com/shopspring/decimal"

	"microexchange/domain"
)

// FillResult reports a successful match: the volume-weighted average
// execution price over the consumed orders and the total quantity filled.
type FillResult struct {
	AvgPrice decimal.Decimal `json:"avg_price"`
	Quantity int64           `json:"filled_quantity"`
}

// validPrice reports whether a resting level at candidatePrice may fill
// an incoming order limited to reqPrice. For a Buy book the incoming
// sell accepts any bid at or above its ask; for a Sell book the incoming
// buy accepts any ask at or below its bid. Evaluated once per level.
func (b *Book) validPrice(reqPrice, candidatePrice int64) bool {
	if b.side == domain.SideBuy {
		return reqPrice <= candidatePrice
	}
	return reqPrice >= candidatePrice
}

// Fill matches toFill against this book, which must hold the opposite
// side. Levels are consumed best-price-first, FIFO within a level, until
// the requested quantity is covered. When the last consumed order
// over-fills, its unused remainder is re-inserted as a new order with a
// fresh id.
//
// Fill is atomic: on any failure every provisionally consumed order is
// restored in consumption order and the book is left exactly as it was.
func (b *Book) Fill(toFill domain.Order) (FillResult, error) {
	if toFill.Side.Opposite() != b.side {
		return FillResult{}, ErrWrongSide
	}
	if toFill.Quantity <= 0 || toFill.Price <= 0 {
		return FillResult{}, ErrInvalidOrder
	}
	if b.levels.Len() == 0 {
		return FillResult{}, ErrCantFillSize
	}
	if !b.validPrice(toFill.Price, b.levels.Best().Price) {
		return FillResult{}, ErrCantFillPrice
	}

	// remaining is signed: it goes negative when the final consumed
	// order covers more than was asked for.
	remaining := toFill.Quantity
	var consumed []domain.Order

	for {
		best := b.levels.Best()
		order := best.popFront()
		consumed = append(consumed, order)
		remaining -= order.Quantity
		if best.Len() == 0 {
			b.levels.Delete(best.Price)
		}
		if remaining <= 0 {
			break
		}
		if b.levels.Len() == 0 {
			// Drained the whole book without covering the request.
			b.restore(consumed)
			return FillResult{}, ErrCantFillSize
		}
		if !b.validPrice(toFill.Price, b.levels.Best().Price) {
			// The remaining levels are outside the price limit.
			b.restore(consumed)
			return FillResult{}, ErrCantFillPrice
		}
	}

	if remaining < 0 {
		// The last order was split: re-insert its unused remainder as a
		// new order and count only the consumed portion toward pricing.
		last := &consumed[len(consumed)-1]
		residual := -remaining
		if residual >= last.Quantity {
			panic(fmt.Sprintf("orderbook: residual %d not smaller than consumed order quantity %d", residual, last.Quantity))
		}
		if _, err := b.Add(domain.Order{
			Quantity: residual,
			Symbol:   last.Symbol,
			Price:    last.Price,
			Side:     last.Side,
		}); err != nil {
			panic("orderbook: re-insert of split remainder failed: " + err.Error())
		}
		last.Quantity -= residual
	}

	return FillResult{
		AvgPrice: averagePrice(consumed),
		Quantity: toFill.Quantity,
	}, nil
}

// restore puts provisionally consumed orders back, in consumption order,
// which re-creates any dropped levels and preserves FIFO positions.
func (b *Book) restore(consumed []domain.Order) {
	for _, order := range consumed {
		if _, err := b.Add(order); err != nil {
			panic("orderbook: restore of consumed order failed: " + err.Error())
		}
	}
}

// averagePrice is the volume-weighted mean over the consumed set. A
// successful fill always consumes a positive quantity, so the divisor
// cannot be zero.
func averagePrice(consumed []domain.Order) decimal.Decimal {
	var notional, quantity int64
	for _, order := range consumed {
		notional += order.Price * order.Quantity
		quantity += order.Quantity
	}
	return decimal.NewFromInt(notional).Div(decimal.NewFromInt(quantity))
}
