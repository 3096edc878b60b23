package commands

import (
	"context"
	"time"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/ports"
)

// SubmitFulfillmentCommandHandler handles the fulfillment step. It switches
// the session's fulfillment type when the submission differs from the
// current choice (discarding the stale payload), resolves pickup branches
// through the branch catalog, and enforces the scheduling lead time.
type SubmitFulfillmentCommandHandler struct {
	uowFactory    SessionUoWFactory
	branchCatalog ports.BranchCatalog
	now           func() time.Time
}

// NewSubmitFulfillmentCommandHandler creates a handler for fulfillment
// submissions.
func NewSubmitFulfillmentCommandHandler(
	uowFactory SessionUoWFactory,
	branchCatalog ports.BranchCatalog,
) SubmitFulfillmentCommandHandler {
	return SubmitFulfillmentCommandHandler{
		uowFactory:    uowFactory,
		branchCatalog: branchCatalog,
		now:           time.Now,
	}
}

// Handle processes the fulfillment submission within a transaction.
func (h SubmitFulfillmentCommandHandler) Handle(ctx context.Context, command SubmitFulfillmentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	fulfillment, err := h.buildFulfillment(ctx, command)
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

	if session.FulfillmentType() != command.FulfillmentType() {
		if err = session.ChooseFulfillmentType(command.FulfillmentType()); err != nil {
			return err
		}
	}

	if err = session.SubmitFulfillment(fulfillment); err != nil {
		return err
	}

	if err = sessionRepo.Update(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h SubmitFulfillmentCommandHandler) buildFulfillment(
	ctx context.Context,
	command SubmitFulfillmentCommand,
) (checkout.Fulfillment, error) {
	timeSelection := checkout.ImmediateTime()
	if at := command.ScheduledAt(); at != nil {
		var err error
		timeSelection, err = checkout.NewScheduledTime(*at, h.now())
		if err != nil {
			return checkout.Fulfillment{}, err
		}
	}

	if command.FulfillmentType() == checkout.FulfillmentTypePickup {
		branch, err := h.branchCatalog.Get(ctx, command.BranchID())
		if err != nil {
			return checkout.Fulfillment{}, err
		}
		return checkout.NewPickupFulfillment(branch, timeSelection)
	}

	payload := command.Address()
	address, err := checkout.NewAddressInfo(
		payload.Street, payload.Building, payload.Area, payload.City,
		payload.Floor, payload.Apartment, payload.Notes,
	)
	if err != nil {
		return checkout.Fulfillment{}, err
	}
	return checkout.NewDeliveryFulfillment(address, timeSelection)
}
