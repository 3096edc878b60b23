package commands

import (
	"context"
)

// UpdateCartItemCommandHandler handles line-quantity changes, including the
// zero-quantity removal path.
type UpdateCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewUpdateCartItemCommandHandler creates a handler for quantity updates.
func NewUpdateCartItemCommandHandler(uowFactory CartUoWFactory) UpdateCartItemCommandHandler {
	return UpdateCartItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the update command within a transaction.
func (h UpdateCartItemCommandHandler) Handle(ctx context.Context, command UpdateCartItemCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()

	aggregate, err := cartRepo.Get(ctx, command.CartID())
	if err != nil {
		return err
	}

	if err = aggregate.UpdateQuantity(command.ItemID(), command.Quantity()); err != nil {
		return err
	}

	if err = cartRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
