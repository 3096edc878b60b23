package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var (
	ErrAddCartItemCommandIsNotConstructed = errors.New(
		"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
	)
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// AddCartItemCommand represents a request to add a product to a cart.
// The unit price is not part of the command; it is resolved from the price
// catalog at handling time so clients cannot set their own prices.
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	cartID    kernel.UUID
	productID kernel.UUID
	quantity  int
	note      string

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand creates a command to add a product to a cart.
// Validates that both IDs are valid and the quantity is positive.
func NewAddCartItemCommand(cartID, productID kernel.UUID, quantity int, note string) (AddCartItemCommand, error) {
	command := AddCartItemCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCartID(cartID),
		command.setProductID(productID),
		command.setQuantity(quantity),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

// CartID returns the target cart's identifier.
func (c AddCartItemCommand) CartID() kernel.UUID {
	return c.cartID
}

// ProductID returns the product to add.
func (c AddCartItemCommand) ProductID() kernel.UUID {
	return c.productID
}

// Quantity returns the number of units to add.
func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

// Note returns the optional line note.
func (c AddCartItemCommand) Note() string {
	return c.note
}

func (c *AddCartItemCommand) setCartID(cartID kernel.UUID) error {
	if err := cartID.Validate(); err != nil {
		return err
	}

	c.cartID = cartID
	return nil
}

func (c *AddCartItemCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *AddCartItemCommand) setQuantity(quantity int) error {
	if quantity < 1 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}
