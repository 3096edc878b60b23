package cart

import (
	"errors"
	"fmt"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
)

// ErrCartIsNotConstructed is returned when a Cart instance was not created
// through the NewCart or RestoreCart factory methods.
var ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart constructor")

// Cart is the aggregate root for a customer's shopping cart. It owns its
// line items exclusively: every mutation goes through AddItem,
// UpdateQuantity, or RemoveItem, and the subtotal is recomputed from the
// current items on every call to Subtotal.
//
// Cart follows these invariants:
//   - Every item quantity is >= 1
//   - Identical lines (same product and note) are merged, never duplicated
//   - Subtotal is never cached; any caller holding a previously computed
//     total must re-read after a mutation
type Cart struct {
	// id is the unique identifier of the cart
	id kernel.UUID

	// items are the line items in insertion order (order matters for
	// display, not for totals)
	items []*Item

	isConstructed bool
}

// NewCart creates an empty cart with the given identifier.
func NewCart(id kernel.UUID) (*Cart, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Cart{
		id:            id,
		isConstructed: true,
	}, nil
}

// RestoreCart reconstructs a cart from persistence. Every restored item must
// be valid; this guards against corrupted rows re-entering the domain.
func RestoreCart(id kernel.UUID, items []*Item) (*Cart, error) {
	c, err := NewCart(id)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if err = item.Validate(); err != nil {
			return nil, err
		}
	}
	c.items = append(c.items, items...)

	return c, nil
}

// Validate ensures the Cart was created through a constructor.
func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

// ID returns the cart's unique identifier.
func (c *Cart) ID() kernel.UUID {
	return c.id
}

// Items returns a copy of the line-item slice in insertion order. The items
// themselves remain owned by the cart.
func (c *Cart) Items() []*Item {
	items := make([]*Item, len(c.items))
	copy(items, c.items)
	return items
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// AddItem adds quantity units of a product to the cart. When a line with the
// same product and note already exists, the quantities are summed instead of
// creating a duplicate row.
//
// Returns an error if the quantity is below 1 or any input is invalid.
func (c *Cart) AddItem(productID kernel.UUID, unitPrice kernel.Money, quantity int, note string) error {
	// The quantity gate applies to the increment itself, not just the
	// resulting line total: a merge must never be a no-op or shrink a line.
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	for _, existing := range c.items {
		if existing.matches(productID, note) {
			return existing.setQuantity(existing.quantity + quantity)
		}
	}

	item, err := NewItem(kernel.NewUUID(), productID, unitPrice, quantity, note)
	if err != nil {
		return err
	}

	c.items = append(c.items, item)
	return nil
}

// UpdateQuantity sets the quantity of an existing line item. A quantity of 0
// removes the line, exactly as RemoveItem would. Negative quantities are
// rejected.
func (c *Cart) UpdateQuantity(itemID kernel.UUID, quantity int) error {
	if quantity == 0 {
		return c.RemoveItem(itemID)
	}

	item := c.findItem(itemID)
	if item == nil {
		return errs.NewObjectNotFoundError("cart item", itemID.String())
	}

	return item.setQuantity(quantity)
}

// RemoveItem removes a line item from the cart.
func (c *Cart) RemoveItem(itemID kernel.UUID) error {
	for i, item := range c.items {
		if item.id.IsEqual(itemID) {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}

	return errs.NewObjectNotFoundError("cart item", itemID.String())
}

// Subtotal recomputes the sum of unitPrice x quantity over the current
// items. It is a pure read with no side effects and no cached state.
func (c *Cart) Subtotal() (kernel.Money, error) {
	subtotal := kernel.ZeroMoney()

	for _, item := range c.items {
		lineTotal, err := item.Total()
		if err != nil {
			return kernel.Money{}, err
		}

		subtotal, err = subtotal.Add(lineTotal)
		if err != nil {
			return kernel.Money{}, err
		}
	}

	return subtotal, nil
}

// Snapshot captures an immutable copy of the current cart contents for a
// checkout session. Later cart mutations do not affect the snapshot; the
// step machine refreshes its snapshot before submission.
func (c *Cart) Snapshot() (Snapshot, error) {
	if err := c.Validate(); err != nil {
		return Snapshot{}, err
	}

	return NewSnapshot(c.items)
}

func (c *Cart) findItem(itemID kernel.UUID) *Item {
	for _, item := range c.items {
		if item.id.IsEqual(itemID) {
			return item
		}
	}
	return nil
}
