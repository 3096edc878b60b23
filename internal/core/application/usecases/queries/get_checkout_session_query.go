package queries

import (
	"errors"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrGetCheckoutSessionQueryIsNotConstructed = errors.New(
	"GetCheckoutSessionQuery must be created via NewGetCheckoutSessionQuery constructor",
)

// GetCheckoutSessionQuery retrieves the progress view of a checkout session:
// which step the shopper is on, what they have filled in so far, and the
// subtotal of the snapshot the session is holding.
type GetCheckoutSessionQuery struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCheckoutSessionQuery creates a query for the session identified by
// sessionID.
func NewGetCheckoutSessionQuery(sessionID kernel.UUID) (GetCheckoutSessionQuery, error) {
	if err := sessionID.Validate(); err != nil {
		return GetCheckoutSessionQuery{}, err
	}

	return GetCheckoutSessionQuery{sessionID: sessionID, guard: guard.NewConstructorGuard()}, nil
}

// SessionID returns the identifier of the session being read.
func (q GetCheckoutSessionQuery) SessionID() kernel.UUID {
	return q.sessionID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCheckoutSessionQueryIsNotConstructed if validation fails.
func (q GetCheckoutSessionQuery) Validate() error {
	return q.guard.Validate(ErrGetCheckoutSessionQueryIsNotConstructed)
}

// GetCheckoutSessionQueryResponse is the session progress read model.
// Fields that the shopper has not filled in yet are zero values; ScheduledAt
// and OrderID are nil until a scheduled time is chosen and an order is
// placed, respectively.
type GetCheckoutSessionQueryResponse struct {
	ID               kernel.UUID
	CartID           kernel.UUID
	Step             string
	FulfillmentType  string
	SubmissionStatus string

	ContactName  string
	ContactPhone string
	ContactEmail string

	DeliveryArea string
	DeliveryCity string
	BranchName   string
	ScheduledAt  *time.Time

	PaymentMethod string

	ItemCount int
	Subtotal  kernel.Money

	OrderID *kernel.UUID
}
