package orderbook

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microexchange/domain"
)

func buyOrder(id uuid.UUID, quantity, price int64) domain.Order {
	return domain.Order{
		ID:       id,
		Quantity: quantity,
		Symbol:   "AAPL",
		Price:    price,
		Side:     domain.SideBuy,
	}
}

func sellOrder(id uuid.UUID, quantity, price int64) domain.Order {
	return domain.Order{
		ID:       id,
		Quantity: quantity,
		Symbol:   "AAPL",
		Price:    price,
		Side:     domain.SideSell,
	}
}

func testID(n byte) uuid.UUID {
	var id uuid.UUID
	id[15] = n
	return id
}

// levelPrices flattens a snapshot to its price sequence.
func levelPrices(snapshot []LevelSnapshot) []int64 {
	prices := make([]int64, 0, len(snapshot))
	for _, level := range snapshot {
		prices = append(prices, level.Price)
	}
	return prices
}

func TestAddRemove(t *testing.T) {
	tests := []struct {
		name            string
		add             []domain.Order
		wantAfterAdd    []LevelSnapshot
		remove          []uuid.UUID
		wantAfterRemove []LevelSnapshot
	}{
		{
			name:         "single add remove",
			add:          []domain.Order{buyOrder(testID(1), 10, 5)},
			wantAfterAdd: []LevelSnapshot{{Price: 5, Orders: []domain.Order{buyOrder(testID(1), 10, 5)}}},
			remove:       []uuid.UUID{testID(1)},
		},
		{
			name: "same price queues in arrival order",
			add: []domain.Order{
				buyOrder(testID(1), 10, 5),
				buyOrder(testID(2), 10, 5),
			},
			wantAfterAdd: []LevelSnapshot{{
				Price:  5,
				Orders: []domain.Order{buyOrder(testID(1), 10, 5), buyOrder(testID(2), 10, 5)},
			}},
			remove: []uuid.UUID{testID(1)},
			wantAfterRemove: []LevelSnapshot{{
				Price:  5,
				Orders: []domain.Order{buyOrder(testID(2), 10, 5)},
			}},
		},
		{
			name: "maintains descending sort for buy book",
			add: []domain.Order{
				buyOrder(testID(1), 10, 4),
				buyOrder(testID(2), 10, 5),
			},
			wantAfterAdd: []LevelSnapshot{
				{Price: 5, Orders: []domain.Order{buyOrder(testID(2), 10, 5)}},
				{Price: 4, Orders: []domain.Order{buyOrder(testID(1), 10, 4)}},
			},
			wantAfterRemove: []LevelSnapshot{
				{Price: 5, Orders: []domain.Order{buyOrder(testID(2), 10, 5)}},
				{Price: 4, Orders: []domain.Order{buyOrder(testID(1), 10, 4)}},
			},
		},
	}

	for _, kind := range []IndexKind{IndexSlice, IndexTree} {
		for _, tt := range tests {
			t.Run(string(kind)+"/"+tt.name, func(t *testing.T) {
				book := NewWithIndex(domain.SideBuy, kind)
				for _, order := range tt.add {
					_, err := book.Add(order)
					require.NoError(t, err)
				}
				assert.Equal(t, tt.wantAfterAdd, book.Snapshot())

				for _, id := range tt.remove {
					require.NoError(t, book.Remove(id))
				}
				want := tt.wantAfterRemove
				if want == nil {
					want = []LevelSnapshot{}
				}
				assert.Equal(t, want, book.Snapshot())
			})
		}
	}
}

func TestAddSortInvariant(t *testing.T) {
	// Adding at prices 5, 6, 4 to a buy book yields levels [6, 5, 4];
	// the same prices on a sell book yield [4, 5, 6].
	buy := New(domain.SideBuy)
	sell := New(domain.SideSell)
	for _, price := range []int64{5, 6, 4} {
		_, err := buy.Add(buyOrder(uuid.Nil, 1, price))
		require.NoError(t, err)
		_, err = sell.Add(sellOrder(uuid.Nil, 1, price))
		require.NoError(t, err)
	}
	assert.Equal(t, []int64{6, 5, 4}, levelPrices(buy.Snapshot()))
	assert.Equal(t, []int64{4, 5, 6}, levelPrices(sell.Snapshot()))
}

func TestAddWrongSide(t *testing.T) {
	book := New(domain.SideBuy)
	_, err := book.Add(sellOrder(uuid.Nil, 10, 5))
	assert.ErrorIs(t, err, ErrWrongSide)
	assert.Empty(t, book.Snapshot())
}

func TestAddRejectsInvalidOrder(t *testing.T) {
	book := New(domain.SideBuy)

	_, err := book.Add(buyOrder(uuid.Nil, 0, 5))
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = book.Add(buyOrder(uuid.Nil, 10, 0))
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestAddAssignsID(t *testing.T) {
	book := New(domain.SideBuy)

	admitted, err := book.Add(buyOrder(uuid.Nil, 10, 5))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, admitted.ID)

	// A caller-supplied id is kept.
	kept, err := book.Add(buyOrder(testID(7), 10, 5))
	require.NoError(t, err)
	assert.Equal(t, testID(7), kept.ID)
}

func TestRemoveNotFoundLeavesBookUnchanged(t *testing.T) {
	book := New(domain.SideBuy)
	_, err := book.Add(buyOrder(testID(1), 10, 5))
	require.NoError(t, err)

	before := book.Snapshot()
	assert.ErrorIs(t, book.Remove(testID(9)), ErrNotFound)
	assert.Equal(t, before, book.Snapshot())
}

func TestRemoveDropsEmptyLevel(t *testing.T) {
	book := New(domain.SideBuy)
	_, err := book.Add(buyOrder(testID(1), 10, 5))
	require.NoError(t, err)
	_, err = book.Add(buyOrder(testID(2), 10, 4))
	require.NoError(t, err)

	require.NoError(t, book.Remove(testID(1)))

	// Price 5 no longer appears; no empty level is retained.
	assert.Equal(t, []int64{4}, levelPrices(book.Snapshot()))
}

func TestSnapshotIsolation(t *testing.T) {
	book := New(domain.SideBuy)
	_, err := book.Add(buyOrder(testID(1), 10, 5))
	require.NoError(t, err)

	snapshot := book.Snapshot()
	_, err = book.Add(buyOrder(testID(2), 3, 6))
	require.NoError(t, err)
	require.NoError(t, book.Remove(testID(1)))

	// The earlier snapshot still shows the book as it was.
	require.Len(t, snapshot, 1)
	assert.Equal(t, int64(5), snapshot[0].Price)
	assert.Equal(t, []domain.Order{buyOrder(testID(1), 10, 5)}, snapshot[0].Orders)
}
