package commands

import (
	"context"
)

// GoBackCommandHandler handles backward navigation. Captured step data is
// retained by the session for pre-filling on re-entry.
type GoBackCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewGoBackCommandHandler creates a handler for backward navigation.
func NewGoBackCommandHandler(uowFactory SessionUoWFactory) GoBackCommandHandler {
	return GoBackCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the navigation command within a transaction.
func (h GoBackCommandHandler) Handle(ctx context.Context, command GoBackCommand) error {
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

	if err = session.GoBack(); err != nil {
		return err
	}

	if err = sessionRepo.Update(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
