package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrRemoveCartItemCommandIsNotConstructed = errors.New(
	"RemoveCartItemCommand must be created via NewRemoveCartItemCommand constructor",
)

// RemoveCartItemCommand represents a request to remove a line item from a
// cart.
type RemoveCartItemCommand struct { //nolint:recvcheck //using for validation
	cartID kernel.UUID
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveCartItemCommand creates a command to remove a line item.
func NewRemoveCartItemCommand(cartID, itemID kernel.UUID) (RemoveCartItemCommand, error) {
	command := RemoveCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCartID(cartID),
		command.setItemID(itemID),
	); err != nil {
		return RemoveCartItemCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCartItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartItemCommandIsNotConstructed)
}

// CartID returns the target cart's identifier.
func (c RemoveCartItemCommand) CartID() kernel.UUID {
	return c.cartID
}

// ItemID returns the line item to remove.
func (c RemoveCartItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c *RemoveCartItemCommand) setCartID(cartID kernel.UUID) error {
	if err := cartID.Validate(); err != nil {
		return err
	}

	c.cartID = cartID
	return nil
}

func (c *RemoveCartItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}
