package commands

import (
	"context"
	"errors"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

// AddCartItemCommandHandler handles adding products to carts. The cart is
// created on first use, the unit price comes from the price catalog, and
// identical lines are merged by the aggregate.
type AddCartItemCommandHandler struct {
	uowFactory   CartUoWFactory
	priceCatalog ports.PriceCatalog
}

// NewAddCartItemCommandHandler creates a handler for cart additions.
func NewAddCartItemCommandHandler(uowFactory CartUoWFactory, priceCatalog ports.PriceCatalog) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory:   uowFactory,
		priceCatalog: priceCatalog,
	}
}

// Handle processes the add-item command. Resolves the product price from
// the catalog, loads or creates the cart, and persists the merged result
// in one transaction.
func (h AddCartItemCommandHandler) Handle(ctx context.Context, command AddCartItemCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	unitPrice, err := h.priceCatalog.PriceOf(ctx, command.ProductID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()

	aggregate, err := cartRepo.Get(ctx, command.CartID())
	created := false
	if errors.Is(err, errs.ErrObjectNotFound) {
		aggregate, err = cart.NewCart(command.CartID())
		created = true
	}
	if err != nil {
		return err
	}

	if err = aggregate.AddItem(command.ProductID(), unitPrice, command.Quantity(), command.Note()); err != nil {
		return err
	}

	if created {
		err = cartRepo.Add(ctx, aggregate)
	} else {
		err = cartRepo.Update(ctx, aggregate)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
