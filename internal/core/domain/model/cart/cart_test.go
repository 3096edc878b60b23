package cart_test

import (
	"errors"
	"math/rand"
	"testing"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestNewCart(t *testing.T) {
	t.Run("should create empty cart", func(t *testing.T) {
		id := kernel.NewUUID()

		c, err := cart.NewCart(id)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, id, c.ID())
		assert.True(t, c.IsEmpty())
	})

	t.Run("should fail with empty id", func(t *testing.T) {
		_, err := cart.NewCart(kernel.UUID{})

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var c cart.Cart

		assert.Equal(t, cart.ErrCartIsNotConstructed, c.Validate())
	})
}

func TestCart_AddItem(t *testing.T) {
	t.Run("should add new line", func(t *testing.T) {
		c, _ := cart.NewCart(kernel.NewUUID())
		productID := kernel.NewUUID()

		err := c.AddItem(productID, mustMoney(t, "2.500"), 2, "")

		require.NoError(t, err)
		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, productID, items[0].ProductID())
		assert.Equal(t, 2, items[0].Quantity())
	})

	t.Run("should merge identical product and note", func(t *testing.T) {
		c, _ := cart.NewCart(kernel.NewUUID())
		productID := kernel.NewUUID()

		require.NoError(t, c.AddItem(productID, mustMoney(t, "2.500"), 2, "extra sauce"))
		require.NoError(t, c.AddItem(productID, mustMoney(t, "2.500"), 3, "extra sauce"))

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Quantity())
	})

	t.Run("should keep distinct lines for same product with different notes", func(t *testing.T) {
		c, _ := cart.NewCart(kernel.NewUUID())
		productID := kernel.NewUUID()

		require.NoError(t, c.AddItem(productID, mustMoney(t, "2.500"), 1, "no onions"))
		require.NoError(t, c.AddItem(productID, mustMoney(t, "2.500"), 1, ""))

		assert.Len(t, c.Items(), 2)
	})

	t.Run("should fail with zero quantity", func(t *testing.T) {
		c, _ := cart.NewCart(kernel.NewUUID())

		err := c.AddItem(kernel.NewUUID(), mustMoney(t, "1.000"), 0, "")

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})

	t.Run("should fail with negative quantity", func(t *testing.T) {
		c, _ := cart.NewCart(kernel.NewUUID())

		err := c.AddItem(kernel.NewUUID(), mustMoney(t, "1.000"), -3, "")

		require.Error(t, err)
	})

	t.Run("zero quantity fails on existing line too", func(t *testing.T) {
		c, _ := cart.NewCart(kernel.NewUUID())
		productID := kernel.NewUUID()
		require.NoError(t, c.AddItem(productID, mustMoney(t, "2.500"), 2, ""))

		err := c.AddItem(productID, mustMoney(t, "2.500"), 0, "")

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
		assert.Equal(t, 2, c.Items()[0].Quantity())
	})

	t.Run("negative quantity cannot shrink an existing line", func(t *testing.T) {
		c, _ := cart.NewCart(kernel.NewUUID())
		productID := kernel.NewUUID()
		require.NoError(t, c.AddItem(productID, mustMoney(t, "2.500"), 2, ""))

		err := c.AddItem(productID, mustMoney(t, "2.500"), -1, "")

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
		assert.Equal(t, 2, c.Items()[0].Quantity())
	})
}

func TestCart_UpdateQuantity(t *testing.T) {
	t.Run("should update quantity", func(t *testing.T) {
		c, _ := cart.NewCart(kernel.NewUUID())
		require.NoError(t, c.AddItem(kernel.NewUUID(), mustMoney(t, "1.000"), 1, ""))
		itemID := c.Items()[0].ID()

		err := c.UpdateQuantity(itemID, 7)

		require.NoError(t, err)
		assert.Equal(t, 7, c.Items()[0].Quantity())
	})

	t.Run("zero quantity removes the line", func(t *testing.T) {
		c, _ := cart.NewCart(kernel.NewUUID())
		require.NoError(t, c.AddItem(kernel.NewUUID(), mustMoney(t, "1.000"), 1, ""))
		itemID := c.Items()[0].ID()

		err := c.UpdateQuantity(itemID, 0)

		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})

	t.Run("negative quantity fails", func(t *testing.T) {
		c, _ := cart.NewCart(kernel.NewUUID())
		require.NoError(t, c.AddItem(kernel.NewUUID(), mustMoney(t, "1.000"), 1, ""))
		itemID := c.Items()[0].ID()

		err := c.UpdateQuantity(itemID, -1)

		require.Error(t, err)
		assert.Equal(t, 1, c.Items()[0].Quantity())
	})

	t.Run("unknown item fails with not found", func(t *testing.T) {
		c, _ := cart.NewCart(kernel.NewUUID())

		err := c.UpdateQuantity(kernel.NewUUID(), 2)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrObjectNotFound))
	})
}

func TestCart_RemoveItem(t *testing.T) {
	t.Run("should remove line", func(t *testing.T) {
		c, _ := cart.NewCart(kernel.NewUUID())
		require.NoError(t, c.AddItem(kernel.NewUUID(), mustMoney(t, "1.000"), 1, ""))
		require.NoError(t, c.AddItem(kernel.NewUUID(), mustMoney(t, "2.000"), 1, ""))
		itemID := c.Items()[0].ID()

		err := c.RemoveItem(itemID)

		require.NoError(t, err)
		require.Len(t, c.Items(), 1)
		assert.False(t, c.Items()[0].ID().IsEqual(itemID))
	})

	t.Run("unknown item fails with not found", func(t *testing.T) {
		c, _ := cart.NewCart(kernel.NewUUID())

		err := c.RemoveItem(kernel.NewUUID())

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrObjectNotFound))
	})
}

func TestCart_Subtotal(t *testing.T) {
	t.Run("empty cart totals zero", func(t *testing.T) {
		c, _ := cart.NewCart(kernel.NewUUID())

		subtotal, err := c.Subtotal()

		require.NoError(t, err)
		assert.True(t, subtotal.IsZero())
	})

	t.Run("sums line totals exactly", func(t *testing.T) {
		c, _ := cart.NewCart(kernel.NewUUID())
		require.NoError(t, c.AddItem(kernel.NewUUID(), mustMoney(t, "0.100"), 3, ""))
		require.NoError(t, c.AddItem(kernel.NewUUID(), mustMoney(t, "2.450"), 2, ""))

		subtotal, err := c.Subtotal()

		require.NoError(t, err)
		assert.True(t, subtotal.IsEqual(mustMoney(t, "5.200")))
	})

	t.Run("recomputed after every mutation", func(t *testing.T) {
		c, _ := cart.NewCart(kernel.NewUUID())
		require.NoError(t, c.AddItem(kernel.NewUUID(), mustMoney(t, "1.500"), 2, ""))
		itemID := c.Items()[0].ID()

		before, err := c.Subtotal()
		require.NoError(t, err)
		assert.True(t, before.IsEqual(mustMoney(t, "3.000")))

		require.NoError(t, c.UpdateQuantity(itemID, 5))

		after, err := c.Subtotal()
		require.NoError(t, err)
		assert.True(t, after.IsEqual(mustMoney(t, "7.500")))
	})

	t.Run("stays exact over many random mutations", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		c, _ := cart.NewCart(kernel.NewUUID())

		// Shadow ledger in fils (thousandths) using plain integers.
		// The cart subtotal must agree with it after every mutation.
		ledger := int64(0)
		priceOf := func(item *cart.Item) int64 {
			return item.UnitPrice().Decimal().Mul(decimal.NewFromInt(1000)).IntPart()
		}

		for i := 0; i < 1000; i++ {
			items := c.Items()
			switch op := rng.Intn(4); {
			case op == 0 || len(items) == 0:
				priceFils := int64(rng.Intn(9999) + 1)
				qty := rng.Intn(5) + 1
				price, err := kernel.NewMoney(decimal.New(priceFils, -3))
				require.NoError(t, err)
				require.NoError(t, c.AddItem(kernel.NewUUID(), price, qty, ""))
				ledger += priceFils * int64(qty)
			case op == 3:
				// Re-add an existing product so the merge path is hit.
				item := items[rng.Intn(len(items))]
				qty := rng.Intn(5) + 1
				require.NoError(t, c.AddItem(item.ProductID(), item.UnitPrice(), qty, item.Note()))
				ledger += priceOf(item) * int64(qty)
			case op == 1:
				item := items[rng.Intn(len(items))]
				newQty := rng.Intn(6)
				ledger += priceOf(item) * int64(newQty-item.Quantity())
				require.NoError(t, c.UpdateQuantity(item.ID(), newQty))
			default:
				item := items[rng.Intn(len(items))]
				ledger -= priceOf(item) * int64(item.Quantity())
				require.NoError(t, c.RemoveItem(item.ID()))
			}

			subtotal, err := c.Subtotal()
			require.NoError(t, err)
			want, err := kernel.NewMoney(decimal.New(ledger, -3))
			require.NoError(t, err)
			require.True(t, subtotal.IsEqual(want),
				"mutation %d: subtotal %s, ledger %s", i, subtotal, want)
		}
	})
}

func TestCart_Snapshot(t *testing.T) {
	t.Run("snapshot is unaffected by later mutations", func(t *testing.T) {
		c, _ := cart.NewCart(kernel.NewUUID())
		require.NoError(t, c.AddItem(kernel.NewUUID(), mustMoney(t, "2.000"), 2, ""))

		snapshot, err := c.Snapshot()
		require.NoError(t, err)
		require.NoError(t, snapshot.Validate())

		require.NoError(t, c.AddItem(kernel.NewUUID(), mustMoney(t, "9.000"), 1, ""))

		subtotal, err := snapshot.Subtotal()
		require.NoError(t, err)
		assert.True(t, subtotal.IsEqual(mustMoney(t, "4.000")))
		assert.Len(t, snapshot.Items(), 1)
	})

	t.Run("empty cart yields empty snapshot", func(t *testing.T) {
		c, _ := cart.NewCart(kernel.NewUUID())

		snapshot, err := c.Snapshot()

		require.NoError(t, err)
		assert.True(t, snapshot.IsEmpty())
	})

	t.Run("zero value snapshot fails validation", func(t *testing.T) {
		var s cart.Snapshot

		require.Error(t, s.Validate())
	})
}

func TestRestoreCart(t *testing.T) {
	t.Run("should restore cart with items", func(t *testing.T) {
		item, err := cart.NewItem(kernel.NewUUID(), kernel.NewUUID(), mustMoney(t, "3.000"), 2, "spicy")
		require.NoError(t, err)
		id := kernel.NewUUID()

		c, err := cart.RestoreCart(id, []*cart.Item{item})

		require.NoError(t, err)
		assert.Equal(t, id, c.ID())
		require.Len(t, c.Items(), 1)
		assert.Equal(t, "spicy", c.Items()[0].Note())
	})

	t.Run("should fail with invalid item", func(t *testing.T) {
		_, err := cart.RestoreCart(kernel.NewUUID(), []*cart.Item{{}})

		require.Error(t, err)
		assert.Equal(t, cart.ErrItemIsNotConstructed, err)
	})
}
