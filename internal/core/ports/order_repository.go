package ports

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByToken retrieves the order created with the given idempotency
	// token, if any. Used to reconcile duplicate submissions.
	GetByToken(ctx context.Context, token kernel.UUID) (*order.Order, error)
}
