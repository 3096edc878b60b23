package commands

import (
	"errors"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrSubmitPaymentCommandIsNotConstructed = errors.New(
	"SubmitPaymentCommand must be created via a NewSubmit*PaymentCommand constructor",
)

// CardPayload carries the raw card fields of a card payment submission.
// Validation happens in the domain when the Card value object is
// constructed.
type CardPayload struct {
	Number     string
	HolderName string
	Expiry     string
	CVV        string
}

// SubmitPaymentCommand represents the payment step submission. Cash
// submissions carry no card payload by construction.
type SubmitPaymentCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	method    checkout.PaymentMethod
	card      CardPayload

	guard guard.ConstructorGuard
}

// NewSubmitCashPaymentCommand creates a cash payment submission.
func NewSubmitCashPaymentCommand(sessionID kernel.UUID) (SubmitPaymentCommand, error) {
	command := SubmitPaymentCommand{
		method: checkout.PaymentMethodCash,
		guard:  guard.NewConstructorGuard(),
	}

	if err := command.setSessionID(sessionID); err != nil {
		return SubmitPaymentCommand{}, err
	}

	return command, nil
}

// NewSubmitCardPaymentCommand creates a card payment submission.
func NewSubmitCardPaymentCommand(sessionID kernel.UUID, card CardPayload) (SubmitPaymentCommand, error) {
	command := SubmitPaymentCommand{
		method: checkout.PaymentMethodCard,
		card:   card,
		guard:  guard.NewConstructorGuard(),
	}

	if err := command.setSessionID(sessionID); err != nil {
		return SubmitPaymentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through a constructor.
func (c SubmitPaymentCommand) Validate() error {
	return c.guard.Validate(ErrSubmitPaymentCommandIsNotConstructed)
}

// SessionID returns the target session's identifier.
func (c SubmitPaymentCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// Method returns the chosen payment method.
func (c SubmitPaymentCommand) Method() checkout.PaymentMethod {
	return c.method
}

// Card returns the raw card payload (card submissions only).
func (c SubmitPaymentCommand) Card() CardPayload {
	return c.card
}

func (c *SubmitPaymentCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}
