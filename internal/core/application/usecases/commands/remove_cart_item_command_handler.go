package commands

import (
	"context"
)

// RemoveCartItemCommandHandler handles line-item removal.
type RemoveCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewRemoveCartItemCommandHandler creates a handler for item removal.
func NewRemoveCartItemCommandHandler(uowFactory CartUoWFactory) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the removal command within a transaction.
func (h RemoveCartItemCommandHandler) Handle(ctx context.Context, command RemoveCartItemCommand) error {
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

	if err = aggregate.RemoveItem(command.ItemID()); err != nil {
		return err
	}

	if err = cartRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
