package commands

import (
	"errors"
	"time"

	"checkout/internal/pkg/guard"
)

var (
	ErrAbandonStaleSessionsCommandIsNotConstructed = errors.New(
		"AbandonStaleSessionsCommand must be created via NewAbandonStaleSessionsCommand constructor",
	)
	ErrIdleTimeoutIsInvalid = errors.New("idle timeout must be greater than 0")
)

// AbandonStaleSessionsCommand represents a request to garbage-collect
// checkout sessions idle for longer than the timeout.
type AbandonStaleSessionsCommand struct { //nolint:recvcheck //using for validation
	idleTimeout time.Duration

	guard guard.ConstructorGuard
}

// NewAbandonStaleSessionsCommand creates a cleanup command.
func NewAbandonStaleSessionsCommand(idleTimeout time.Duration) (AbandonStaleSessionsCommand, error) {
	command := AbandonStaleSessionsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setIdleTimeout(idleTimeout); err != nil {
		return AbandonStaleSessionsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AbandonStaleSessionsCommand) Validate() error {
	return c.guard.Validate(ErrAbandonStaleSessionsCommandIsNotConstructed)
}

// IdleTimeout returns how long a session may stay untouched before it is
// considered abandoned.
func (c AbandonStaleSessionsCommand) IdleTimeout() time.Duration {
	return c.idleTimeout
}

func (c *AbandonStaleSessionsCommand) setIdleTimeout(idleTimeout time.Duration) error {
	if idleTimeout <= 0 {
		return ErrIdleTimeoutIsInvalid
	}

	c.idleTimeout = idleTimeout
	return nil
}
