package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrSubmitContactCommandIsNotConstructed = errors.New(
	"SubmitContactCommand must be created via NewSubmitContactCommand constructor",
)

// SubmitContactCommand represents the contact step submission. The contact
// fields are carried raw; field validation happens in the domain when the
// ContactInfo value object is constructed, so all failing fields are
// reported together.
type SubmitContactCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	name      string
	phone     string
	email     string

	guard guard.ConstructorGuard
}

// NewSubmitContactCommand creates a contact submission command.
func NewSubmitContactCommand(sessionID kernel.UUID, name, phone, email string) (SubmitContactCommand, error) {
	command := SubmitContactCommand{
		name:  name,
		phone: phone,
		email: email,
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setSessionID(sessionID); err != nil {
		return SubmitContactCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitContactCommand) Validate() error {
	return c.guard.Validate(ErrSubmitContactCommandIsNotConstructed)
}

// SessionID returns the target session's identifier.
func (c SubmitContactCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// Name returns the raw customer name.
func (c SubmitContactCommand) Name() string {
	return c.name
}

// Phone returns the raw phone number.
func (c SubmitContactCommand) Phone() string {
	return c.phone
}

// Email returns the raw email address, possibly empty.
func (c SubmitContactCommand) Email() string {
	return c.email
}

func (c *SubmitContactCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}
