package order

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through the NewOrder or RestoreOrder factory methods.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root for a confirmed order. It is created exactly
// once per checkout session, after the submission gateway accepts the
// order, and echoes the session's idempotency token for reconciliation
// with the fulfillment backend.
//
// The order records display-ready summaries of the fulfillment and payment
// choices rather than the full checkout payloads: once confirmed, those
// choices are frozen and only shown back to the customer.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// token echoes the checkout session's idempotency token
	token kernel.UUID

	// subtotal is the exact cart subtotal at submission time
	subtotal kernel.Money

	// fulfillmentSummary describes the chosen fulfillment, e.g.
	// "Delivery to Seef, Manama"
	fulfillmentSummary string

	// estimatedTime is the estimate shown on confirmation, e.g.
	// "30-45 minutes"
	estimatedTime string

	// paymentSummary describes the chosen payment, e.g. "Card ending 1111"
	paymentSummary string

	// status represents the current state in the fulfillment lifecycle
	status Status

	isConstructed bool
}

// NewOrder creates a confirmed order from a successful submission.
func NewOrder(
	id kernel.UUID,
	token kernel.UUID,
	subtotal kernel.Money,
	fulfillmentSummary string,
	estimatedTime string,
	paymentSummary string,
) (*Order, error) {
	o := &Order{
		status:        Confirmed,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setToken(token),
		o.setSubtotal(subtotal),
		o.setFulfillmentSummary(fulfillmentSummary),
		o.setEstimatedTime(estimatedTime),
		o.setPaymentSummary(paymentSummary),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence.
func RestoreOrder(
	id kernel.UUID,
	token kernel.UUID,
	subtotal kernel.Money,
	fulfillmentSummary string,
	estimatedTime string,
	paymentSummary string,
	status Status,
) (*Order, error) {
	o, err := NewOrder(id, token, subtotal, fulfillmentSummary, estimatedTime, paymentSummary)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	o.status = status

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Token returns the idempotency token the order was submitted with.
func (o *Order) Token() kernel.UUID {
	return o.token
}

// Subtotal returns the exact cart subtotal at submission time.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// FulfillmentSummary returns the display summary of the fulfillment choice.
func (o *Order) FulfillmentSummary() string {
	return o.fulfillmentSummary
}

// EstimatedTime returns the estimate shown on confirmation.
func (o *Order) EstimatedTime() string {
	return o.estimatedTime
}

// PaymentSummary returns the display summary of the payment choice.
func (o *Order) PaymentSummary() string {
	return o.paymentSummary
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// StartPreparing marks the order as being prepared by the kitchen.
func (o *Order) StartPreparing() error {
	newStatus, err := o.status.StartPreparing()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkReady marks the order as ready for handover.
func (o *Order) MarkReady() error {
	newStatus, err := o.status.MarkReady()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Complete marks the order as handed over. Final state.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setToken(token kernel.UUID) error {
	if err := token.Validate(); err != nil {
		return err
	}
	o.token = token
	return nil
}

func (o *Order) setSubtotal(subtotal kernel.Money) error {
	if err := subtotal.Validate(); err != nil {
		return err
	}
	o.subtotal = subtotal
	return nil
}

func (o *Order) setFulfillmentSummary(summary string) error {
	if summary == "" {
		return errs.NewValueIsRequiredError("fulfillment summary")
	}
	o.fulfillmentSummary = summary
	return nil
}

func (o *Order) setEstimatedTime(estimatedTime string) error {
	if estimatedTime == "" {
		return errs.NewValueIsRequiredError("estimated time")
	}
	o.estimatedTime = estimatedTime
	return nil
}

func (o *Order) setPaymentSummary(summary string) error {
	if summary == "" {
		return errs.NewValueIsRequiredError("payment summary")
	}
	o.paymentSummary = summary
	return nil
}
