// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery retrieves the current contents of a cart together with the
// exact subtotal. The read model is what a storefront renders on the cart
// page before checkout begins.
//
// Example:
//
//	query, err := NewGetCartQuery(cartID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetCartQueryHandler(db)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve cart: %w", err)
//	}
//
//	for _, item := range view.Items {
//	    fmt.Printf("%s x%d = %s\n", item.ProductName, item.Quantity, item.Total)
//	}
type GetCartQuery struct {
	cartID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCartQuery creates a query for the cart identified by cartID.
func NewGetCartQuery(cartID kernel.UUID) (GetCartQuery, error) {
	if err := cartID.Validate(); err != nil {
		return GetCartQuery{}, err
	}

	return GetCartQuery{cartID: cartID, guard: guard.NewConstructorGuard()}, nil
}

// CartID returns the identifier of the cart being read.
func (q GetCartQuery) CartID() kernel.UUID {
	return q.cartID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCartQueryIsNotConstructed if validation fails.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// GetCartQueryResponse is the cart read model. Subtotal is the exact sum of
// all line totals; money values are formatted by their String method at the
// presentation boundary.
type GetCartQueryResponse struct {
	CartID   kernel.UUID
	Items    []CartItemResponse
	Subtotal kernel.Money
}

// CartItemResponse is a single cart line in the read model. ProductName is
// resolved from the product catalog; it is empty when the product has since
// been removed from the catalog.
type CartItemResponse struct {
	ID          kernel.UUID
	ProductID   kernel.UUID
	ProductName string
	UnitPrice   kernel.Money
	Quantity    int
	Note        string
	Total       kernel.Money
}
