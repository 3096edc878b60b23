package commands

import (
	"context"
	"errors"
	"fmt"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

// PlaceOrderCommandHandler orchestrates order submission. It runs two
// transactions around the external gateway call:
//
//  1. Re-read the cart, refresh the session snapshot, and persist the
//     in-flight submission lock. Once committed, any concurrent placement
//     for the same session fails with ErrSubmissionInFlight.
//  2. After the gateway answers: on success, create the order and consume
//     the session; on failure, release the lock so the customer can retry.
//
// The gateway call itself happens outside any transaction; the persisted
// lock plus the session's idempotency token are what keep the operation
// at exactly one order per session.
type PlaceOrderCommandHandler struct {
	uowFactory   UoWFactory
	submitter    ports.OrderSubmitter
	orderFactory services.OrderFactory
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(uowFactory UoWFactory, submitter ports.OrderSubmitter) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory:   uowFactory,
		submitter:    submitter,
		orderFactory: services.OrderFactory{},
	}
}

// Handle processes the placement command.
//
// Error returns the caller must distinguish:
//   - checkout.ErrEmptyCart: the re-read cart was empty; the session is
//     back at the contact step
//   - checkout.ErrSessionConsumed / checkout.ErrSubmissionInFlight: a
//     duplicate placement
//   - ports.ErrSubmissionFailed (wrapped): the gateway gave up; the
//     session data is intact and the placement may be retried
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, command PlaceOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	request, err := h.lockForSubmission(ctx, command)
	if err != nil {
		return err
	}

	response, submitErr := h.submitter.Submit(ctx, request)

	return h.settle(ctx, command, response, submitErr)
}

// lockForSubmission refreshes the session snapshot from the live cart and
// persists the in-flight lock. The commit must land before the gateway is
// called.
func (h PlaceOrderCommandHandler) lockForSubmission(
	ctx context.Context,
	command PlaceOrderCommand,
) (ports.SubmissionRequest, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.SubmissionRequest{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()

	session, err := sessionRepo.Get(ctx, command.SessionID())
	if err != nil {
		return ports.SubmissionRequest{}, err
	}

	aggregate, err := uow.CartRepository().Get(ctx, session.CartID())
	if err != nil {
		return ports.SubmissionRequest{}, err
	}

	snapshot, err := aggregate.Snapshot()
	if err != nil {
		return ports.SubmissionRequest{}, err
	}

	if err = session.RefreshSnapshot(snapshot); err != nil {
		return ports.SubmissionRequest{}, err
	}

	beginErr := session.BeginSubmission()
	if beginErr != nil && !errors.Is(beginErr, checkout.ErrEmptyCart) {
		return ports.SubmissionRequest{}, beginErr
	}

	// The empty-cart reset and the in-flight lock both have to be
	// persisted; the former so the customer restarts at the contact step.
	if err = sessionRepo.Update(ctx, session); err != nil {
		return ports.SubmissionRequest{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return ports.SubmissionRequest{}, err
	}
	if beginErr != nil {
		return ports.SubmissionRequest{}, beginErr
	}

	contact, ok := session.Contact()
	if !ok {
		return ports.SubmissionRequest{}, errs.NewValueIsRequiredError("contact")
	}
	fulfillment, ok := session.Fulfillment()
	if !ok {
		return ports.SubmissionRequest{}, errs.NewValueIsRequiredError("fulfillment")
	}
	payment, ok := session.Payment()
	if !ok {
		return ports.SubmissionRequest{}, errs.NewValueIsRequiredError("payment")
	}

	return ports.SubmissionRequest{
		Token:       session.Token(),
		Contact:     contact,
		Fulfillment: fulfillment,
		Payment:     payment,
		Snapshot:    session.Snapshot(),
	}, nil
}

// settle records the gateway outcome in a second transaction.
func (h PlaceOrderCommandHandler) settle(
	ctx context.Context,
	command PlaceOrderCommand,
	response ports.SubmissionResponse,
	submitErr error,
) error {
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

	if submitErr != nil {
		if err = session.FailSubmission(); err != nil {
			return err
		}
		if err = sessionRepo.Update(ctx, session); err != nil {
			return err
		}
		if err = uow.Commit(ctx); err != nil {
			return err
		}
		return fmt.Errorf("%w: %w", ports.ErrSubmissionFailed, submitErr)
	}

	_ = response // the backend's order number is not stored; the token ties the records together

	aggregate, err := h.orderFactory.CreateConfirmedOrder(command.OrderID(), session)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = session.ConfirmSubmission(aggregate.ID()); err != nil {
		return err
	}

	if err = sessionRepo.Update(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
