package commands

import (
	"context"
	"time"

	"checkout/internal/core/domain/model/checkout"
)

// SubmitPaymentCommandHandler handles the payment step. Card details are
// validated against the clock so expiry checks use the submission time.
type SubmitPaymentCommandHandler struct {
	uowFactory SessionUoWFactory
	now        func() time.Time
}

// NewSubmitPaymentCommandHandler creates a handler for payment
// submissions.
func NewSubmitPaymentCommandHandler(uowFactory SessionUoWFactory) SubmitPaymentCommandHandler {
	return SubmitPaymentCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the payment submission within a transaction.
func (h SubmitPaymentCommandHandler) Handle(ctx context.Context, command SubmitPaymentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	payment, err := h.buildPayment(command)
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

	if err = session.SubmitPayment(payment); err != nil {
		return err
	}

	if err = sessionRepo.Update(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h SubmitPaymentCommandHandler) buildPayment(command SubmitPaymentCommand) (checkout.PaymentSelection, error) {
	if command.Method() == checkout.PaymentMethodCash {
		return checkout.NewCashPayment(), nil
	}

	payload := command.Card()
	card, err := checkout.NewCard(payload.Number, payload.HolderName, payload.Expiry, payload.CVV, h.now())
	if err != nil {
		return checkout.PaymentSelection{}, err
	}

	return checkout.NewCardPayment(card)
}
