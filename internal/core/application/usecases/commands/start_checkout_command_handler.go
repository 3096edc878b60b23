package commands

import (
	"context"

	"checkout/internal/core/domain/model/checkout"
)

// StartCheckoutCommandHandler opens a checkout session. The session
// captures a snapshot of the cart and mints the idempotency token that
// every later submission attempt will reuse.
type StartCheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
}

// NewStartCheckoutCommandHandler creates a handler for starting checkouts.
func NewStartCheckoutCommandHandler(uowFactory CheckoutUoWFactory) StartCheckoutCommandHandler {
	return StartCheckoutCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the start-checkout command. Loads the cart, snapshots
// it, and persists the new session in one transaction.
func (h StartCheckoutCommandHandler) Handle(ctx context.Context, command StartCheckoutCommand) error {
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

	aggregate, err := uow.CartRepository().Get(ctx, command.CartID())
	if err != nil {
		return err
	}

	snapshot, err := aggregate.Snapshot()
	if err != nil {
		return err
	}

	session, err := checkout.NewSession(command.SessionID(), command.CartID(), snapshot)
	if err != nil {
		return err
	}

	if err = uow.SessionRepository().Add(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
