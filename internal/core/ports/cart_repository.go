package ports

import (
	"context"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart aggregates.
type CartRepository interface {
	// Add persists a new cart aggregate to storage.
	Add(ctx context.Context, aggregate *cart.Cart) error

	// Update persists changes to an existing cart aggregate, including
	// line items added, changed, or removed since it was loaded.
	Update(ctx context.Context, aggregate *cart.Cart) error

	// Get retrieves a cart aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error)
}
