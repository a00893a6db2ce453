package orderbook

import (
	"container/list"

	"github.com/google/uuid"

	"microexchange/domain"
)

// PriceLevel holds all resting orders at one price as a FIFO queue,
// establishing time priority within the level. A level is never empty
// while it is present in a book; the book deletes it on its last removal.
type PriceLevel struct {
	Price  int64
	orders *list.List // FIFO queue of domain.Order values
}

func newPriceLevel(price int64) *PriceLevel {
	return &PriceLevel{
		Price:  price,
		orders: list.New(),
	}
}

// append adds an order to the tail of the queue.
func (l *PriceLevel) append(order domain.Order) {
	l.orders.PushBack(order)
}

// popFront dequeues the oldest order at this level.
func (l *PriceLevel) popFront() domain.Order {
	front := l.orders.Front()
	if front == nil {
		panic("orderbook: pop from empty price level")
	}
	l.orders.Remove(front)
	return front.Value.(domain.Order)
}

// remove deletes the order with the given id from the queue, if present.
func (l *PriceLevel) remove(id uuid.UUID) bool {
	for e := l.orders.Front(); e != nil; e = e.Next() {
		if e.Value.(domain.Order).ID == id {
			l.orders.Remove(e)
			return true
		}
	}
	return false
}

// Len returns the number of orders queued at this level.
func (l *PriceLevel) Len() int {
	return l.orders.Len()
}

// Volume returns the total resting quantity at this level.
func (l *PriceLevel) Volume() int64 {
	var total int64
	for e := l.orders.Front(); e != nil; e = e.Next() {
		total += e.Value.(domain.Order).Quantity
	}
	return total
}

// Orders returns the queued orders in FIFO order as an independent copy.
func (l *PriceLevel) Orders() []domain.Order {
	out := make([]domain.Order, 0, l.orders.Len())
	for e := l.orders.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(domain.Order))
	}
	return out
}

// LevelSnapshot is the caller-facing copy of one price level.
type LevelSnapshot struct {
	Price  int64          `json:"price"`
	Orders []domain.Order `json:"orders"`
}
