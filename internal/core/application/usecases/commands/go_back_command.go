package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrGoBackCommandIsNotConstructed = errors.New(
	"GoBackCommand must be created via NewGoBackCommand constructor",
)

// GoBackCommand represents a request to move one step backward in the
// checkout flow.
type GoBackCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGoBackCommand creates a backward-navigation command.
func NewGoBackCommand(sessionID kernel.UUID) (GoBackCommand, error) {
	command := GoBackCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setSessionID(sessionID); err != nil {
		return GoBackCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c GoBackCommand) Validate() error {
	return c.guard.Validate(ErrGoBackCommandIsNotConstructed)
}

// SessionID returns the target session's identifier.
func (c GoBackCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c *GoBackCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}
