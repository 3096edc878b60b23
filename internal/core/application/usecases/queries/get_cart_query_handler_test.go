package queries_test

import (
	"context"
	"testing"
	"time"

	"checkout/internal/adapters/out/catalog"
	"checkout/internal/adapters/out/postgres/cartrepo"
	"checkout/internal/adapters/out/postgres/orderrepo"
	"checkout/internal/adapters/out/postgres/sessionrepo"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// QueryHandlersIntegrationTestSuite exercises the read-side handlers against
// a real PostgreSQL schema shared with the write-side DTOs.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&catalog.ProductDTO{},
		&cartrepo.CartDTO{},
		&cartrepo.CartItemDTO{},
		&sessionrepo.SessionDTO{},
		&sessionrepo.SessionItemDTO{},
		&orderrepo.OrderDTO{},
	))
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE products, carts, cart_items, checkout_sessions, checkout_session_items, orders").Error)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetCart_ReturnsItemsAndExactSubtotal() {
	ctx := context.Background()
	cartID := suite.seedCart()

	query, err := queries.NewGetCartQuery(cartID)
	suite.Require().NoError(err)

	handler := queries.NewGetCartQueryHandler(suite.db)
	view, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(cartID, view.CartID)
	suite.Require().Len(view.Items, 2)
	suite.Equal("7.750", view.Subtotal.String())

	// Sorted by product name: Hummus before Shawarma.
	suite.Equal("Hummus", view.Items[0].ProductName)
	suite.Equal("2.750", view.Items[0].UnitPrice.String())
	suite.Equal(1, view.Items[0].Quantity)
	suite.Equal("extra garlic", view.Items[0].Note)

	suite.Equal("Shawarma", view.Items[1].ProductName)
	suite.Equal(2, view.Items[1].Quantity)
	suite.Equal("5.000", view.Items[1].Total.String())
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetCart_EmptyCart() {
	ctx := context.Background()

	cartID := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&cartrepo.CartDTO{ID: cartID.Bytes()}).Error)

	query, err := queries.NewGetCartQuery(cartID)
	suite.Require().NoError(err)

	handler := queries.NewGetCartQueryHandler(suite.db)
	view, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Empty(view.Items)
	suite.Equal("0.000", view.Subtotal.String())
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetCart_NonExistentCart_ReturnsNotFoundError() {
	query, err := queries.NewGetCartQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	handler := queries.NewGetCartQueryHandler(suite.db)
	_, err = handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetCart_InvalidQuery_ReturnsError() {
	handler := queries.NewGetCartQueryHandler(suite.db)
	_, err := handler.Handle(context.Background(), queries.GetCartQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetCartQueryIsNotConstructed)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetCheckoutSession_ReturnsProgressView() {
	ctx := context.Background()

	sessionID := kernel.NewUUID()
	cartID := kernel.NewUUID()
	name := "Fatima"
	phone := "+973 33123456"
	area := "Seef"
	city := "Manama"
	method := "Cash"

	suite.Require().NoError(suite.db.Create(&sessionrepo.SessionDTO{
		ID:               sessionID.Bytes(),
		CartID:           cartID.Bytes(),
		Token:            uuid.New(),
		Step:             "Payment",
		FulfillmentType:  "Delivery",
		SubmissionStatus: "NotSubmitted",
		ContactName:      &name,
		ContactPhone:     &phone,
		AddressArea:      &area,
		AddressCity:      &city,
		PaymentMethod:    &method,
		Items: []sessionrepo.SessionItemDTO{
			{ProductID: uuid.New(), UnitPrice: decimal.RequireFromString("2.500"), Quantity: 2},
			{ProductID: uuid.New(), UnitPrice: decimal.RequireFromString("2.750"), Quantity: 1},
		},
	}).Error)

	query, err := queries.NewGetCheckoutSessionQuery(sessionID)
	suite.Require().NoError(err)

	handler := queries.NewGetCheckoutSessionQueryHandler(suite.db)
	view, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(sessionID, view.ID)
	suite.Equal(cartID, view.CartID)
	suite.Equal("Payment", view.Step)
	suite.Equal("Delivery", view.FulfillmentType)
	suite.Equal("NotSubmitted", view.SubmissionStatus)
	suite.Equal("Fatima", view.ContactName)
	suite.Equal("Seef", view.DeliveryArea)
	suite.Equal("Manama", view.DeliveryCity)
	suite.Equal("Cash", view.PaymentMethod)
	suite.Equal(3, view.ItemCount)
	suite.Equal("7.750", view.Subtotal.String())
	suite.Nil(view.ScheduledAt)
	suite.Nil(view.OrderID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetCheckoutSession_NonExistent_ReturnsNotFoundError() {
	query, err := queries.NewGetCheckoutSessionQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	handler := queries.NewGetCheckoutSessionQueryHandler(suite.db)
	_, err = handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_ReturnsConfirmationView() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	token := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&orderrepo.OrderDTO{
		ID:                 orderID.Bytes(),
		Token:              token.Bytes(),
		Subtotal:           decimal.RequireFromString("7.750"),
		FulfillmentSummary: "Delivery to Seef, Manama",
		EstimatedTime:      "30-45 minutes",
		PaymentSummary:     "Cash",
		Status:             "Confirmed",
	}).Error)

	query, err := queries.NewGetOrderQuery(orderID)
	suite.Require().NoError(err)

	handler := queries.NewGetOrderQueryHandler(suite.db)
	view, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(orderID, view.ID)
	suite.Equal(token, view.Token)
	suite.Equal("Confirmed", view.Status)
	suite.Equal("7.750", view.Subtotal.String())
	suite.Equal("Delivery to Seef, Manama", view.FulfillmentSummary)
	suite.Equal("30-45 minutes", view.EstimatedTime)
	suite.Equal("Cash", view.PaymentSummary)
	suite.False(view.CreatedAt.IsZero())
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_NonExistent_ReturnsNotFoundError() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	handler := queries.NewGetOrderQueryHandler(suite.db)
	_, err = handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// seedCart inserts a cart with Shawarma 2.500 x 2 and Hummus 2.750 x 1.
func (suite *QueryHandlersIntegrationTestSuite) seedCart() kernel.UUID {
	cartID := kernel.NewUUID()
	shawarmaID := uuid.New()
	hummusID := uuid.New()

	suite.Require().NoError(suite.db.Create(&catalog.ProductDTO{
		ID: shawarmaID, Name: "Shawarma", Price: decimal.RequireFromString("2.500"),
	}).Error)
	suite.Require().NoError(suite.db.Create(&catalog.ProductDTO{
		ID: hummusID, Name: "Hummus", Price: decimal.RequireFromString("2.750"),
	}).Error)

	suite.Require().NoError(suite.db.Create(&cartrepo.CartDTO{
		ID: cartID.Bytes(),
		Items: []cartrepo.CartItemDTO{
			{
				ID:        uuid.New(),
				ProductID: shawarmaID,
				UnitPrice: decimal.RequireFromString("2.500"),
				Quantity:  2,
			},
			{
				ID:        uuid.New(),
				ProductID: hummusID,
				UnitPrice: decimal.RequireFromString("2.750"),
				Quantity:  1,
				Note:      "extra garlic",
			},
		},
	}).Error)

	return cartID
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
