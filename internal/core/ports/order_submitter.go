package ports

import (
	"context"
	"errors"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
)

// ErrSubmissionFailed is returned by an OrderSubmitter once its retry
// budget is exhausted. The checkout session stays intact so the customer
// can retry; the same idempotency token is re-sent on every attempt.
var ErrSubmissionFailed = errors.New("order submission failed")

// SubmissionRequest is the payload sent to the fulfillment backend. The
// token makes the request idempotent: the backend creates at most one
// order per token no matter how many times the request arrives.
type SubmissionRequest struct {
	Token       kernel.UUID
	Contact     checkout.ContactInfo
	Fulfillment checkout.Fulfillment
	Payment     checkout.PaymentSelection
	Snapshot    cart.Snapshot
}

// SubmissionResponse is the fulfillment backend's acceptance. Duplicate
// reports that the backend had already accepted this token; the caller
// treats it the same as a fresh acceptance.
type SubmissionResponse struct {
	OrderNumber string
	Duplicate   bool
}

// OrderSubmitter is the gateway to the external fulfillment backend.
type OrderSubmitter interface {
	// Submit sends the order, retrying transient failures with the same
	// idempotency token. Returns ErrSubmissionFailed (possibly wrapped)
	// when no attempt succeeded.
	Submit(ctx context.Context, request SubmissionRequest) (SubmissionResponse, error)
}
