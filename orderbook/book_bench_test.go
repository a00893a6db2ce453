package orderbook

import (
	"testing"

	"github.com/google/uuid"

	"microexchange/domain"
)

func BenchmarkAdd(b *testing.B) {
	for _, kind := range []IndexKind{IndexSlice, IndexTree} {
		b.Run(string(kind), func(b *testing.B) {
			book := NewWithIndex(domain.SideBuy, kind)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				book.Add(domain.Order{
					Quantity: 1,
					Symbol:   "AAPL",
					Price:    int64(1 + i%200),
					Side:     domain.SideBuy,
				})
			}
		})
	}
}

func BenchmarkFill(b *testing.B) {
	for _, kind := range []IndexKind{IndexSlice, IndexTree} {
		b.Run(string(kind), func(b *testing.B) {
			book := NewWithIndex(domain.SideBuy, kind)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				// One resting bid per fill so the book never drains
				// permanently or grows without bound.
				book.Add(domain.Order{
					Quantity: 1,
					Symbol:   "AAPL",
					Price:    int64(100 + i%20),
					Side:     domain.SideBuy,
				})
				book.Fill(domain.Order{
					ID:       uuid.Nil,
					Quantity: 1,
					Symbol:   "AAPL",
					Price:    1,
					Side:     domain.SideSell,
				})
			}
		})
	}
}

func BenchmarkRemove(b *testing.B) {
	book := New(domain.SideBuy)
	ids := make([]uuid.UUID, b.N)
	for i := 0; i < b.N; i++ {
		admitted, _ := book.Add(domain.Order{
			Quantity: 1,
			Symbol:   "AAPL",
			Price:    int64(1 + i%200),
			Side:     domain.SideBuy,
		})
		ids[i] = admitted.ID
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book.Remove(ids[i])
	}
}
