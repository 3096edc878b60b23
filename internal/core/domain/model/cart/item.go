package cart

import (
	"errors"
	"fmt"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a cart line item. It is an entity owned exclusively by the Cart
// aggregate; code outside this package mutates items only through Cart
// operations.
//
// Invariants:
//   - quantity is always >= 1 (a zero-quantity row is removed, not kept)
//   - unit price is a valid Money amount
//   - the optional note participates in line identity: the same product with
//     a different note is a distinct line
type Item struct {
	// id is the unique identifier of the line item
	id kernel.UUID

	// productID references the product in the external catalog
	productID kernel.UUID

	// unitPrice is the price per unit captured when the item was added
	unitPrice kernel.Money

	// quantity is the number of units (>= 1)
	quantity int

	// note is optional free-text attached to the line
	note string

	isConstructed bool
}

// NewItem creates a validated line item.
//
// Returns an error if any identifier is invalid, the unit price is not
// constructed, or the quantity is below 1.
func NewItem(
	id kernel.UUID,
	productID kernel.UUID,
	unitPrice kernel.Money,
	quantity int,
	note string,
) (*Item, error) {
	item := &Item{
		note:          note,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the Item was created through NewItem.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the line item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the referenced product's identifier.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// UnitPrice returns the captured per-unit price.
func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the number of units on the line.
func (i *Item) Quantity() int {
	return i.quantity
}

// Note returns the optional free-text note.
func (i *Item) Note() string {
	return i.note
}

// Total returns unitPrice multiplied by quantity, computed exactly.
func (i *Item) Total() (kernel.Money, error) {
	return i.unitPrice.MulQuantity(i.quantity)
}

// matches reports whether another line would merge into this one.
// Lines merge when both the product and the note are identical.
func (i *Item) matches(productID kernel.UUID, note string) bool {
	return i.productID.IsEqual(productID) && i.note == note
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	i.quantity = quantity
	return nil
}
