package commands

import (
	"context"

	"checkout/internal/core/domain/model/checkout"
)

// SubmitContactCommandHandler handles the contact step of the checkout
// flow.
type SubmitContactCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewSubmitContactCommandHandler creates a handler for contact submissions.
func NewSubmitContactCommandHandler(uowFactory SessionUoWFactory) SubmitContactCommandHandler {
	return SubmitContactCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the contact submission. Field validation failures come
// back as a validation.FieldErrors value from the ContactInfo constructor;
// step violations come back from the session.
func (h SubmitContactCommandHandler) Handle(ctx context.Context, command SubmitContactCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	contact, err := checkout.NewContactInfo(command.Name(), command.Phone(), command.Email())
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

	sessionRepo := uow.SessionRepository()

	session, err := sessionRepo.Get(ctx, command.SessionID())
	if err != nil {
		return err
	}

	if err = session.SubmitContact(contact); err != nil {
		return err
	}

	if err = sessionRepo.Update(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
