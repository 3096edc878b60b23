package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrAbandonCheckoutCommandIsNotConstructed = errors.New(
	"AbandonCheckoutCommand must be created via NewAbandonCheckoutCommand constructor",
)

// AbandonCheckoutCommand represents a request to discard a checkout
// session. The cart survives; only the session and its idempotency token
// are removed.
type AbandonCheckoutCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAbandonCheckoutCommand creates an abandon command.
func NewAbandonCheckoutCommand(sessionID kernel.UUID) (AbandonCheckoutCommand, error) {
	command := AbandonCheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setSessionID(sessionID); err != nil {
		return AbandonCheckoutCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AbandonCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrAbandonCheckoutCommandIsNotConstructed)
}

// SessionID returns the session to discard.
func (c AbandonCheckoutCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c *AbandonCheckoutCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}
