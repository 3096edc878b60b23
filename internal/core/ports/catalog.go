package ports

import (
	"context"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
)

// PriceCatalog resolves product prices at the moment an item is added to a
// cart. The cart stores the resolved price, so later catalog changes do
// not silently reprice existing carts.
type PriceCatalog interface {
	// PriceOf returns the current unit price of a product.
	// Returns an ObjectNotFoundError for unknown products.
	PriceOf(ctx context.Context, productID kernel.UUID) (kernel.Money, error)
}

// BranchCatalog lists the pickup branches offered at the branch step.
type BranchCatalog interface {
	// All returns every branch available for pickup.
	All(ctx context.Context) ([]checkout.Branch, error)

	// Get returns a branch by its identifier.
	// Returns an ObjectNotFoundError for unknown branches.
	Get(ctx context.Context, id kernel.UUID) (checkout.Branch, error)
}
