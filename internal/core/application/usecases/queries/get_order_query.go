package queries

import (
	"errors"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the confirmation view of a placed order. It backs
// both the confirmation page shown right after checkout and later status
// tracking.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the order identified by orderID.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// OrderID returns the identifier of the order being read.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse is the order confirmation read model. Token echoes
// the idempotency token the order was submitted with so clients can correlate
// a confirmation with the checkout attempt that produced it.
type GetOrderQueryResponse struct {
	ID                 kernel.UUID
	Token              kernel.UUID
	Status             string
	Subtotal           kernel.Money
	FulfillmentSummary string
	EstimatedTime      string
	PaymentSummary     string
	CreatedAt          time.Time
}
