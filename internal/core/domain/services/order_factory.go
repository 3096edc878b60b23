package services

import (
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"
)

// OrderFactory is a domain service that derives the customer-facing order
// record from a checkout session accepted by the fulfillment backend.
//
// The factory flattens the session's structured selections into the
// summaries the confirmation screen shows. It never mutates the session;
// confirming the submission stays with the caller so the order and the
// session transition land in the same transaction.
type OrderFactory struct{}

// CreateConfirmedOrder builds a confirmed order from the session's snapshot
// and completed steps. Returns a required-value error if the session is
// missing a step, which indicates the caller skipped the submission guard.
func (OrderFactory) CreateConfirmedOrder(orderID kernel.UUID, session *checkout.Session) (*order.Order, error) {
	if session == nil {
		return nil, errs.NewValueIsRequiredError("session")
	}

	fulfillment, ok := session.Fulfillment()
	if !ok {
		return nil, errs.NewValueIsRequiredError("fulfillment")
	}
	payment, ok := session.Payment()
	if !ok {
		return nil, errs.NewValueIsRequiredError("payment")
	}

	subtotal, err := session.Snapshot().Subtotal()
	if err != nil {
		return nil, err
	}

	fulfillmentSummary, err := fulfillment.Summary()
	if err != nil {
		return nil, err
	}

	return order.NewOrder(
		orderID,
		session.Token(),
		subtotal,
		fulfillmentSummary,
		fulfillment.EstimatedTime(),
		payment.Summary(),
	)
}
