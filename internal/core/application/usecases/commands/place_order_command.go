package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand represents a request to submit the checkout session to
// the fulfillment backend and create the order.
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates an order placement command. The order ID is
// supplied by the caller so retries after transport failures can reuse it.
func NewPlaceOrderCommand(sessionID, orderID kernel.UUID) (PlaceOrderCommand, error) {
	command := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSessionID(sessionID),
		command.setOrderID(orderID),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// SessionID returns the session to submit.
func (c PlaceOrderCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// OrderID returns the identifier for the order to create.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *PlaceOrderCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
