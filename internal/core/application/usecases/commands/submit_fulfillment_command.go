package commands

import (
	"errors"
	"time"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var (
	ErrSubmitFulfillmentCommandIsNotConstructed = errors.New(
		"SubmitFulfillmentCommand must be created via a NewSubmit*FulfillmentCommand constructor",
	)
)

// AddressPayload carries the raw delivery-address fields of a fulfillment
// submission. Validation happens in the domain when the AddressInfo value
// object is constructed.
type AddressPayload struct {
	Street    string
	Building  string
	Area      string
	City      string
	Floor     string
	Apartment string
	Notes     string
}

// SubmitFulfillmentCommand represents the fulfillment step submission:
// delivery to an address or pickup at a branch, optionally scheduled. The
// two constructors make the payload match the type by construction.
type SubmitFulfillmentCommand struct { //nolint:recvcheck //using for validation
	sessionID       kernel.UUID
	fulfillmentType checkout.FulfillmentType
	address         AddressPayload
	branchID        kernel.UUID
	scheduledAt     *time.Time

	guard guard.ConstructorGuard
}

// NewSubmitDeliveryFulfillmentCommand creates a delivery submission.
// A nil scheduledAt selects immediate fulfillment.
func NewSubmitDeliveryFulfillmentCommand(
	sessionID kernel.UUID,
	address AddressPayload,
	scheduledAt *time.Time,
) (SubmitFulfillmentCommand, error) {
	command := SubmitFulfillmentCommand{
		fulfillmentType: checkout.FulfillmentTypeDelivery,
		address:         address,
		scheduledAt:     scheduledAt,
		guard:           guard.NewConstructorGuard(),
	}

	if err := command.setSessionID(sessionID); err != nil {
		return SubmitFulfillmentCommand{}, err
	}

	return command, nil
}

// NewSubmitPickupFulfillmentCommand creates a pickup submission at the
// given branch. A nil scheduledAt selects immediate fulfillment.
func NewSubmitPickupFulfillmentCommand(
	sessionID kernel.UUID,
	branchID kernel.UUID,
	scheduledAt *time.Time,
) (SubmitFulfillmentCommand, error) {
	command := SubmitFulfillmentCommand{
		fulfillmentType: checkout.FulfillmentTypePickup,
		scheduledAt:     scheduledAt,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSessionID(sessionID),
		command.setBranchID(branchID),
	); err != nil {
		return SubmitFulfillmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through a constructor.
func (c SubmitFulfillmentCommand) Validate() error {
	return c.guard.Validate(ErrSubmitFulfillmentCommandIsNotConstructed)
}

// SessionID returns the target session's identifier.
func (c SubmitFulfillmentCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// FulfillmentType returns the submitted type.
func (c SubmitFulfillmentCommand) FulfillmentType() checkout.FulfillmentType {
	return c.fulfillmentType
}

// Address returns the raw address payload (delivery submissions only).
func (c SubmitFulfillmentCommand) Address() AddressPayload {
	return c.address
}

// BranchID returns the chosen branch (pickup submissions only).
func (c SubmitFulfillmentCommand) BranchID() kernel.UUID {
	return c.branchID
}

// ScheduledAt returns the requested fulfillment time, or nil for
// immediate.
func (c SubmitFulfillmentCommand) ScheduledAt() *time.Time {
	return c.scheduledAt
}

func (c *SubmitFulfillmentCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *SubmitFulfillmentCommand) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}

	c.branchID = branchID
	return nil
}
