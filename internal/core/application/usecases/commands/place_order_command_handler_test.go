package commands_test

import (
	"errors"
	"testing"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cartID := kernel.NewUUID()
	session := testSessionAtPayment(t, cartID)
	existing := testCartWithItem(t, cartID)
	orderID := kernel.NewUUID()
	cmd, _ := commands.NewPlaceOrderCommand(session.ID(), orderID)
	token := session.Token()

	cartRepo := new(MockCartRepository)
	sessionRepo := new(MockSessionRepository)
	orderRepo := new(MockOrderRepository)

	lockUoW := new(MockUoW)
	mock.InOrder(
		lockUoW.On("Begin", ctx).Return(nil).Once(),
		lockUoW.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("Get", ctx, session.ID()).Return(session, nil).Once(),
		lockUoW.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("Get", ctx, cartID).Return(existing, nil).Once(),
		sessionRepo.On("Update", mock.Anything, session).Return(nil).Once(),
		lockUoW.On("Commit", ctx).Return(nil).Once(),
		lockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	submitter := new(MockOrderSubmitter)
	submitter.On("Submit", ctx, mock.MatchedBy(func(req ports.SubmissionRequest) bool {
		return req.Token == token && !req.Snapshot.IsEmpty()
	})).Return(ports.SubmissionResponse{OrderNumber: "F-1001"}, nil).Once()

	var created *order.Order
	settleUoW := new(MockUoW)
	mock.InOrder(
		settleUoW.On("Begin", ctx).Return(nil).Once(),
		settleUoW.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("Get", ctx, session.ID()).Return(session, nil).Once(),
		settleUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*order.Order) }).
			Return(nil).Once(),
		sessionRepo.On("Update", mock.Anything, session).Return(nil).Once(),
		settleUoW.On("Commit", ctx).Return(nil).Once(),
		settleUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(lockUoW).Once()
	factory.On("Create").Return(settleUoW).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, submitter)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, orderID, created.ID())
	assert.Equal(t, token, created.Token())
	assert.Equal(t, order.Confirmed, created.Status())
	assert.True(t, created.Subtotal().IsEqual(testMoney(t, "5.000")))

	assert.Equal(t, checkout.StepConfirmation, session.Step())
	assert.Equal(t, checkout.SubmissionConsumed, session.SubmissionStatus())
	linked, ok := session.OrderID()
	require.True(t, ok)
	assert.Equal(t, orderID, linked)

	submitter.AssertExpectations(t)
	sessionRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_GatewayFailureKeepsSession(t *testing.T) {
	ctx := t.Context()
	cartID := kernel.NewUUID()
	session := testSessionAtPayment(t, cartID)
	existing := testCartWithItem(t, cartID)
	cmd, _ := commands.NewPlaceOrderCommand(session.ID(), kernel.NewUUID())

	cartRepo := new(MockCartRepository)
	sessionRepo := new(MockSessionRepository)

	lockUoW := new(MockUoW)
	mock.InOrder(
		lockUoW.On("Begin", ctx).Return(nil).Once(),
		lockUoW.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("Get", ctx, session.ID()).Return(session, nil).Once(),
		lockUoW.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("Get", ctx, cartID).Return(existing, nil).Once(),
		sessionRepo.On("Update", mock.Anything, session).Return(nil).Once(),
		lockUoW.On("Commit", ctx).Return(nil).Once(),
		lockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	submitter := new(MockOrderSubmitter)
	submitter.On("Submit", ctx, mock.Anything).
		Return(ports.SubmissionResponse{}, ports.ErrSubmissionFailed).Once()

	settleUoW := new(MockUoW)
	mock.InOrder(
		settleUoW.On("Begin", ctx).Return(nil).Once(),
		settleUoW.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("Get", ctx, session.ID()).Return(session, nil).Once(),
		sessionRepo.On("Update", mock.Anything, session).Return(nil).Once(),
		settleUoW.On("Commit", ctx).Return(nil).Once(),
		settleUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(lockUoW).Once()
	factory.On("Create").Return(settleUoW).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, submitter)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrSubmissionFailed)
	assert.Equal(t, checkout.SubmissionNotSubmitted, session.SubmissionStatus())
	assert.Equal(t, checkout.StepPayment, session.Step())
	_, ok := session.Payment()
	assert.True(t, ok, "session data intact for retry")
}

func TestPlaceOrderCommandHandler_Handle_ConsumedSession(t *testing.T) {
	ctx := t.Context()
	cartID := kernel.NewUUID()
	session := testSessionAtPayment(t, cartID)
	existing := testCartWithItem(t, cartID)
	require.NoError(t, session.BeginSubmission())
	require.NoError(t, session.ConfirmSubmission(kernel.NewUUID()))
	cmd, _ := commands.NewPlaceOrderCommand(session.ID(), kernel.NewUUID())

	cartRepo := new(MockCartRepository)
	cartRepo.On("Get", ctx, cartID).Return(existing, nil).Maybe()
	sessionRepo := new(MockSessionRepository)
	sessionRepo.On("Get", ctx, session.ID()).Return(session, nil).Once()

	lockUoW := new(MockUoW)
	lockUoW.On("Begin", ctx).Return(nil).Once()
	lockUoW.On("SessionRepository").Return(sessionRepo).Once()
	lockUoW.On("CartRepository").Return(cartRepo).Maybe()
	lockUoW.On("Rollback", ctx).Return(nil).Once()

	submitter := new(MockOrderSubmitter)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(lockUoW).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, submitter)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, checkout.ErrSessionConsumed)
	submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestPlaceOrderCommandHandler_Handle_EmptyCartResetsSession(t *testing.T) {
	ctx := t.Context()
	cartID := kernel.NewUUID()
	session := testSessionAtPayment(t, cartID)
	emptyCart, err := cart.NewCart(cartID)
	require.NoError(t, err)
	cmd, _ := commands.NewPlaceOrderCommand(session.ID(), kernel.NewUUID())

	cartRepo := new(MockCartRepository)
	sessionRepo := new(MockSessionRepository)

	lockUoW := new(MockUoW)
	mock.InOrder(
		lockUoW.On("Begin", ctx).Return(nil).Once(),
		lockUoW.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("Get", ctx, session.ID()).Return(session, nil).Once(),
		lockUoW.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("Get", ctx, cartID).Return(emptyCart, nil).Once(),
		sessionRepo.On("Update", mock.Anything, session).Return(nil).Once(),
		lockUoW.On("Commit", ctx).Return(nil).Once(),
		lockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	submitter := new(MockOrderSubmitter)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(lockUoW).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, submitter)
	handleErr := h.Handle(ctx, cmd)

	require.ErrorIs(t, handleErr, checkout.ErrEmptyCart)
	assert.Equal(t, checkout.StepContact, session.Step())
	submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestPlaceOrderCommandHandler_Handle_SubmitErrorWithFailedSettleCommit(t *testing.T) {
	ctx := t.Context()
	cartID := kernel.NewUUID()
	session := testSessionAtPayment(t, cartID)
	existing := testCartWithItem(t, cartID)
	cmd, _ := commands.NewPlaceOrderCommand(session.ID(), kernel.NewUUID())

	cartRepo := new(MockCartRepository)
	sessionRepo := new(MockSessionRepository)

	lockUoW := new(MockUoW)
	mock.InOrder(
		lockUoW.On("Begin", ctx).Return(nil).Once(),
		lockUoW.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("Get", ctx, session.ID()).Return(session, nil).Once(),
		lockUoW.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("Get", ctx, cartID).Return(existing, nil).Once(),
		sessionRepo.On("Update", mock.Anything, session).Return(nil).Once(),
		lockUoW.On("Commit", ctx).Return(nil).Once(),
		lockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	submitter := new(MockOrderSubmitter)
	submitter.On("Submit", ctx, mock.Anything).
		Return(ports.SubmissionResponse{}, errors.New("gateway timeout")).Once()

	settleUoW := new(MockUoW)
	mock.InOrder(
		settleUoW.On("Begin", ctx).Return(nil).Once(),
		settleUoW.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("Get", ctx, session.ID()).Return(session, nil).Once(),
		sessionRepo.On("Update", mock.Anything, session).Return(nil).Once(),
		settleUoW.On("Commit", ctx).Return(errors.New("commit failed")).Once(),
		settleUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(lockUoW).Once()
	factory.On("Create").Return(settleUoW).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, submitter)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
