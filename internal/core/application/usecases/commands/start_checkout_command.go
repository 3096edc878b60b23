package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrStartCheckoutCommandIsNotConstructed = errors.New(
	"StartCheckoutCommand must be created via NewStartCheckoutCommand constructor",
)

// StartCheckoutCommand represents a request to open a checkout session for
// a cart.
type StartCheckoutCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	cartID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartCheckoutCommand creates a command to start a checkout session.
func NewStartCheckoutCommand(sessionID, cartID kernel.UUID) (StartCheckoutCommand, error) {
	command := StartCheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSessionID(sessionID),
		command.setCartID(cartID),
	); err != nil {
		return StartCheckoutCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StartCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrStartCheckoutCommandIsNotConstructed)
}

// SessionID returns the identifier for the new session.
func (c StartCheckoutCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// CartID returns the cart being checked out.
func (c StartCheckoutCommand) CartID() kernel.UUID {
	return c.cartID
}

func (c *StartCheckoutCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *StartCheckoutCommand) setCartID(cartID kernel.UUID) error {
	if err := cartID.Validate(); err != nil {
		return err
	}

	c.cartID = cartID
	return nil
}
