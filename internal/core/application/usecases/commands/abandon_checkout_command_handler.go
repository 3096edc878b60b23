package commands

import (
	"context"
)

// AbandonCheckoutCommandHandler handles explicit checkout abandonment.
type AbandonCheckoutCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewAbandonCheckoutCommandHandler creates a handler for abandonment.
func NewAbandonCheckoutCommandHandler(uowFactory SessionUoWFactory) AbandonCheckoutCommandHandler {
	return AbandonCheckoutCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle discards the session after the aggregate confirms it may be
// abandoned (consumed and in-flight sessions refuse).
func (h AbandonCheckoutCommandHandler) Handle(ctx context.Context, command AbandonCheckoutCommand) error {
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

	sessionRepo := uow.SessionRepository()

	session, err := sessionRepo.Get(ctx, command.SessionID())
	if err != nil {
		return err
	}

	if err = session.Abandon(); err != nil {
		return err
	}

	if err = sessionRepo.Delete(ctx, session.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
