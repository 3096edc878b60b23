package commands_test

import (
	"context"
	"testing"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Add(ctx context.Context, aggregate *cart.Cart) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCartRepository) Update(ctx context.Context, aggregate *cart.Cart) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCartRepository) Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Add(ctx context.Context, aggregate *checkout.Session) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockSessionRepository) Update(ctx context.Context, aggregate *checkout.Session) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, id kernel.UUID) (*checkout.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Session), args.Error(1)
}

func (m *MockSessionRepository) FindIdleSince(ctx context.Context, cutoff time.Time) ([]*checkout.Session, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*checkout.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByToken(ctx context.Context, token kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

// MockUoW satisfies every unit-of-work interface in this package, so one
// mock type serves all handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

func (m *MockUoW) SessionRepository() ports.SessionRepository {
	args := m.Called()
	return args.Get(0).(ports.SessionRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockCartUoWFactory struct{ mock.Mock }

func (m *MockCartUoWFactory) Create() commands.CartUoW {
	args := m.Called()
	return args.Get(0).(commands.CartUoW)
}

type MockSessionUoWFactory struct{ mock.Mock }

func (m *MockSessionUoWFactory) Create() commands.SessionUoW {
	args := m.Called()
	return args.Get(0).(commands.SessionUoW)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockPriceCatalog struct{ mock.Mock }

func (m *MockPriceCatalog) PriceOf(ctx context.Context, productID kernel.UUID) (kernel.Money, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(kernel.Money), args.Error(1)
}

type MockBranchCatalog struct{ mock.Mock }

func (m *MockBranchCatalog) All(ctx context.Context) ([]checkout.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]checkout.Branch), args.Error(1)
}

func (m *MockBranchCatalog) Get(ctx context.Context, id kernel.UUID) (checkout.Branch, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(checkout.Branch), args.Error(1)
}

type MockOrderSubmitter struct{ mock.Mock }

func (m *MockOrderSubmitter) Submit(ctx context.Context, request ports.SubmissionRequest) (ports.SubmissionResponse, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(ports.SubmissionResponse), args.Error(1)
}

// test data builders

func testMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func testCartWithItem(t *testing.T, id kernel.UUID) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(id)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(kernel.NewUUID(), testMoney(t, "2.500"), 2, ""))
	return c
}

func testSessionAtPayment(t *testing.T, cartID kernel.UUID) *checkout.Session {
	t.Helper()
	c := testCartWithItem(t, cartID)
	snapshot, err := c.Snapshot()
	require.NoError(t, err)
	session, err := checkout.NewSession(kernel.NewUUID(), cartID, snapshot)
	require.NoError(t, err)

	contact, err := checkout.NewContactInfo("Fatima", "+973 33123456", "fatima@example.com")
	require.NoError(t, err)
	require.NoError(t, session.SubmitContact(contact))

	address, err := checkout.NewAddressInfo("Road 2831", "Building 120", "Seef", "", "", "", "")
	require.NoError(t, err)
	fulfillment, err := checkout.NewDeliveryFulfillment(address, checkout.ImmediateTime())
	require.NoError(t, err)
	require.NoError(t, session.SubmitFulfillment(fulfillment))

	require.NoError(t, session.SubmitPayment(checkout.NewCashPayment()))
	return session
}
