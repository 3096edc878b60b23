package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var (
	ErrUpdateCartItemCommandIsNotConstructed = errors.New(
		"UpdateCartItemCommand must be created via NewUpdateCartItemCommand constructor",
	)
	ErrQuantityIsNegative = errors.New("quantity must not be negative")
)

// UpdateCartItemCommand represents a request to change a line item's
// quantity. A quantity of 0 removes the line.
type UpdateCartItemCommand struct { //nolint:recvcheck //using for validation
	cartID   kernel.UUID
	itemID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

// NewUpdateCartItemCommand creates a command to change a line quantity.
// A zero quantity is valid and removes the line; negative quantities fail.
func NewUpdateCartItemCommand(cartID, itemID kernel.UUID, quantity int) (UpdateCartItemCommand, error) {
	command := UpdateCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCartID(cartID),
		command.setItemID(itemID),
		command.setQuantity(quantity),
	); err != nil {
		return UpdateCartItemCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCartItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartItemCommandIsNotConstructed)
}

// CartID returns the target cart's identifier.
func (c UpdateCartItemCommand) CartID() kernel.UUID {
	return c.cartID
}

// ItemID returns the line item to change.
func (c UpdateCartItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Quantity returns the new quantity (0 removes the line).
func (c UpdateCartItemCommand) Quantity() int {
	return c.quantity
}

func (c *UpdateCartItemCommand) setCartID(cartID kernel.UUID) error {
	if err := cartID.Validate(); err != nil {
		return err
	}

	c.cartID = cartID
	return nil
}

func (c *UpdateCartItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *UpdateCartItemCommand) setQuantity(quantity int) error {
	if quantity < 0 {
		return ErrQuantityIsNegative
	}

	c.quantity = quantity
	return nil
}
