// Package http exposes the checkout flow over a JSON API. Handlers translate
// requests into commands and queries and map domain errors onto HTTP status
// codes; all business rules live in the core.
package http

import (
	"errors"
	"net/http"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/validation"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the use case handlers the server dispatches to.
type Handlers struct {
	AddCartItem       commands.AddCartItemCommandHandler
	UpdateCartItem    commands.UpdateCartItemCommandHandler
	RemoveCartItem    commands.RemoveCartItemCommandHandler
	StartCheckout     commands.StartCheckoutCommandHandler
	SubmitContact     commands.SubmitContactCommandHandler
	SubmitFulfillment commands.SubmitFulfillmentCommandHandler
	SubmitPayment     commands.SubmitPaymentCommandHandler
	GoBack            commands.GoBackCommandHandler
	PlaceOrder        commands.PlaceOrderCommandHandler
	AbandonCheckout   commands.AbandonCheckoutCommandHandler

	GetCart            queries.GetCartQueryHandler
	GetCheckoutSession queries.GetCheckoutSessionQueryHandler
	GetOrder           queries.GetOrderQueryHandler
}

// Server implements the HTTP API for carts, checkout sessions, and orders.
type Server struct {
	handlers      Handlers
	branchCatalog ports.BranchCatalog
}

// NewServer creates a new HTTP server with the required handlers and the
// branch catalog backing the pickup step.
func NewServer(handlers Handlers, branchCatalog ports.BranchCatalog) *Server {
	return &Server{
		handlers:      handlers,
		branchCatalog: branchCatalog,
	}
}

// RegisterRoutes mounts all API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/carts/:cartId", s.GetCart)
	api.POST("/carts/:cartId/items", s.AddCartItem)
	api.PATCH("/carts/:cartId/items/:itemId", s.UpdateCartItem)
	api.DELETE("/carts/:cartId/items/:itemId", s.RemoveCartItem)

	api.GET("/branches", s.GetBranches)

	api.POST("/checkout/sessions", s.StartCheckout)
	api.GET("/checkout/sessions/:sessionId", s.GetCheckoutSession)
	api.PUT("/checkout/sessions/:sessionId/contact", s.SubmitContact)
	api.PUT("/checkout/sessions/:sessionId/fulfillment", s.SubmitFulfillment)
	api.PUT("/checkout/sessions/:sessionId/payment", s.SubmitPayment)
	api.POST("/checkout/sessions/:sessionId/back", s.GoBack)
	api.POST("/checkout/sessions/:sessionId/submit", s.PlaceOrder)
	api.DELETE("/checkout/sessions/:sessionId", s.AbandonCheckout)

	api.GET("/orders/:orderId", s.GetOrder)
}

// ErrorResponse is the uniform error body. Fields is populated for
// validation failures, keyed by the offending field.
type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type startCheckoutRequest struct {
	CartID string `json:"cart_id"`
}

type contactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type addressRequest struct {
	Street    string `json:"street"`
	Building  string `json:"building"`
	Area      string `json:"area"`
	City      string `json:"city"`
	Floor     string `json:"floor"`
	Apartment string `json:"apartment"`
	Notes     string `json:"notes"`
}

type fulfillmentRequest struct {
	Type        string          `json:"type"`
	Address     *addressRequest `json:"address"`
	BranchID    string          `json:"branch_id"`
	ScheduledAt *time.Time      `json:"scheduled_at"`
}

type cardRequest struct {
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

type paymentRequest struct {
	Method string       `json:"method"`
	Card   *cardRequest `json:"card"`
}

type cartItemResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Note        string `json:"note,omitempty"`
	Total       string `json:"total"`
}

type cartResponse struct {
	CartID   string             `json:"cart_id"`
	Items    []cartItemResponse `json:"items"`
	Subtotal string             `json:"subtotal"`
}

type sessionResponse struct {
	ID               string  `json:"id"`
	CartID           string  `json:"cart_id"`
	Step             string  `json:"step"`
	FulfillmentType  string  `json:"fulfillment_type"`
	SubmissionStatus string  `json:"submission_status"`
	ContactName      string  `json:"contact_name,omitempty"`
	ContactPhone     string  `json:"contact_phone,omitempty"`
	ContactEmail     string  `json:"contact_email,omitempty"`
	DeliveryArea     string  `json:"delivery_area,omitempty"`
	DeliveryCity     string  `json:"delivery_city,omitempty"`
	BranchName       string  `json:"branch_name,omitempty"`
	ScheduledAt      *string `json:"scheduled_at,omitempty"`
	PaymentMethod    string  `json:"payment_method,omitempty"`
	ItemCount        int     `json:"item_count"`
	Subtotal         string  `json:"subtotal"`
	OrderID          *string `json:"order_id,omitempty"`
}

type orderResponse struct {
	ID                 string `json:"id"`
	Token              string `json:"token"`
	Status             string `json:"status"`
	Subtotal           string `json:"subtotal"`
	FulfillmentSummary string `json:"fulfillment_summary"`
	EstimatedTime      string `json:"estimated_time"`
	PaymentSummary     string `json:"payment_summary"`
	CreatedAt          string `json:"created_at"`
}

type branchResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	PickupEstimate string `json:"pickup_estimate"`
}

// GetCart handles GET /api/v1/carts/:cartId.
func (s *Server) GetCart(ctx echo.Context) error {
	cartID, err := parseID(ctx, "cartId")
	if err != nil {
		return badRequest(ctx, "invalid cart id")
	}

	query, err := queries.NewGetCartQuery(cartID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.handlers.GetCart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]cartItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, cartItemResponse{
			ID:          item.ID.String(),
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice.String(),
			Quantity:    item.Quantity,
			Note:        item.Note,
			Total:       item.Total.String(),
		})
	}

	return ctx.JSON(http.StatusOK, cartResponse{
		CartID:   view.CartID.String(),
		Items:    items,
		Subtotal: view.Subtotal.String(),
	})
}

// AddCartItem handles POST /api/v1/carts/:cartId/items. The cart is created
// on first use, so this endpoint never 404s on a fresh cart id.
func (s *Server) AddCartItem(ctx echo.Context) error {
	cartID, err := parseID(ctx, "cartId")
	if err != nil {
		return badRequest(ctx, "invalid cart id")
	}

	var request addCartItemRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	productID, err := kernel.UUIDFromString(request.ProductID)
	if err != nil {
		return badRequest(ctx, "invalid product id")
	}

	cmd, err := commands.NewAddCartItemCommand(cartID, productID, request.Quantity, request.Note)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.AddCartItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// UpdateCartItem handles PATCH /api/v1/carts/:cartId/items/:itemId.
// A quantity of zero removes the line.
func (s *Server) UpdateCartItem(ctx echo.Context) error {
	cartID, err := parseID(ctx, "cartId")
	if err != nil {
		return badRequest(ctx, "invalid cart id")
	}
	itemID, err := parseID(ctx, "itemId")
	if err != nil {
		return badRequest(ctx, "invalid item id")
	}

	var request updateCartItemRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewUpdateCartItemCommand(cartID, itemID, request.Quantity)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.UpdateCartItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCartItem handles DELETE /api/v1/carts/:cartId/items/:itemId.
func (s *Server) RemoveCartItem(ctx echo.Context) error {
	cartID, err := parseID(ctx, "cartId")
	if err != nil {
		return badRequest(ctx, "invalid cart id")
	}
	itemID, err := parseID(ctx, "itemId")
	if err != nil {
		return badRequest(ctx, "invalid item id")
	}

	cmd, err := commands.NewRemoveCartItemCommand(cartID, itemID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.RemoveCartItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetBranches handles GET /api/v1/branches.
func (s *Server) GetBranches(ctx echo.Context) error {
	branches, err := s.branchCatalog.All(ctx.Request().Context())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]branchResponse, 0, len(branches))
	for _, branch := range branches {
		response = append(response, branchResponse{
			ID:             branch.ID().String(),
			Name:           branch.Name(),
			Address:        branch.Address(),
			Phone:          branch.Phone(),
			PickupEstimate: branch.PickupEstimate(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// StartCheckout handles POST /api/v1/checkout/sessions.
func (s *Server) StartCheckout(ctx echo.Context) error {
	var request startCheckoutRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	cartID, err := kernel.UUIDFromString(request.CartID)
	if err != nil {
		return badRequest(ctx, "invalid cart id")
	}

	sessionID := kernel.NewUUID()
	cmd, err := commands.NewStartCheckoutCommand(sessionID, cartID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.StartCheckout.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"session_id": sessionID.String()})
}

// GetCheckoutSession handles GET /api/v1/checkout/sessions/:sessionId.
func (s *Server) GetCheckoutSession(ctx echo.Context) error {
	sessionID, err := parseID(ctx, "sessionId")
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	query, err := queries.NewGetCheckoutSessionQuery(sessionID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.handlers.GetCheckoutSession.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := sessionResponse{
		ID:               view.ID.String(),
		CartID:           view.CartID.String(),
		Step:             view.Step,
		FulfillmentType:  view.FulfillmentType,
		SubmissionStatus: view.SubmissionStatus,
		ContactName:      view.ContactName,
		ContactPhone:     view.ContactPhone,
		ContactEmail:     view.ContactEmail,
		DeliveryArea:     view.DeliveryArea,
		DeliveryCity:     view.DeliveryCity,
		BranchName:       view.BranchName,
		PaymentMethod:    view.PaymentMethod,
		ItemCount:        view.ItemCount,
		Subtotal:         view.Subtotal.String(),
	}
	if view.ScheduledAt != nil {
		at := view.ScheduledAt.Format(time.RFC3339)
		response.ScheduledAt = &at
	}
	if view.OrderID != nil {
		id := view.OrderID.String()
		response.OrderID = &id
	}

	return ctx.JSON(http.StatusOK, response)
}

// SubmitContact handles PUT /api/v1/checkout/sessions/:sessionId/contact.
func (s *Server) SubmitContact(ctx echo.Context) error {
	sessionID, err := parseID(ctx, "sessionId")
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	var request contactRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewSubmitContactCommand(sessionID, request.Name, request.Phone, request.Email)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.SubmitContact.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitFulfillment handles PUT /api/v1/checkout/sessions/:sessionId/fulfillment.
func (s *Server) SubmitFulfillment(ctx echo.Context) error {
	sessionID, err := parseID(ctx, "sessionId")
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	var request fulfillmentRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	fulfillmentType, err := checkout.FulfillmentTypeFromString(request.Type)
	if err != nil {
		return badRequest(ctx, "invalid fulfillment type")
	}

	var cmd commands.SubmitFulfillmentCommand
	switch fulfillmentType {
	case checkout.FulfillmentTypeDelivery:
		if request.Address == nil {
			return badRequest(ctx, "address is required for delivery")
		}
		cmd, err = commands.NewSubmitDeliveryFulfillmentCommand(sessionID, commands.AddressPayload{
			Street:    request.Address.Street,
			Building:  request.Address.Building,
			Area:      request.Address.Area,
			City:      request.Address.City,
			Floor:     request.Address.Floor,
			Apartment: request.Address.Apartment,
			Notes:     request.Address.Notes,
		}, request.ScheduledAt)

	case checkout.FulfillmentTypePickup:
		var branchID kernel.UUID
		branchID, err = kernel.UUIDFromString(request.BranchID)
		if err != nil {
			return badRequest(ctx, "invalid branch id")
		}
		cmd, err = commands.NewSubmitPickupFulfillmentCommand(sessionID, branchID, request.ScheduledAt)

	default:
		return badRequest(ctx, "invalid fulfillment type")
	}
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.SubmitFulfillment.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitPayment handles PUT /api/v1/checkout/sessions/:sessionId/payment.
func (s *Server) SubmitPayment(ctx echo.Context) error {
	sessionID, err := parseID(ctx, "sessionId")
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	var request paymentRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	method, err := checkout.PaymentMethodFromString(request.Method)
	if err != nil {
		return badRequest(ctx, "invalid payment method")
	}

	var cmd commands.SubmitPaymentCommand
	switch method {
	case checkout.PaymentMethodCash:
		cmd, err = commands.NewSubmitCashPaymentCommand(sessionID)

	case checkout.PaymentMethodCard:
		if request.Card == nil {
			return badRequest(ctx, "card details are required for card payment")
		}
		cmd, err = commands.NewSubmitCardPaymentCommand(sessionID, commands.CardPayload{
			Number:     request.Card.Number,
			HolderName: request.Card.HolderName,
			Expiry:     request.Card.Expiry,
			CVV:        request.Card.CVV,
		})

	default:
		return badRequest(ctx, "invalid payment method")
	}
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.SubmitPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GoBack handles POST /api/v1/checkout/sessions/:sessionId/back.
func (s *Server) GoBack(ctx echo.Context) error {
	sessionID, err := parseID(ctx, "sessionId")
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	cmd, err := commands.NewGoBackCommand(sessionID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.GoBack.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PlaceOrder handles POST /api/v1/checkout/sessions/:sessionId/submit.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	sessionID, err := parseID(ctx, "sessionId")
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(sessionID, orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.PlaceOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"order_id": orderID.String()})
}

// AbandonCheckout handles DELETE /api/v1/checkout/sessions/:sessionId.
func (s *Server) AbandonCheckout(ctx echo.Context) error {
	sessionID, err := parseID(ctx, "sessionId")
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	cmd, err := commands.NewAbandonCheckoutCommand(sessionID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.AbandonCheckout.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := parseID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponse{
		ID:                 view.ID.String(),
		Token:              view.Token.String(),
		Status:             view.Status,
		Subtotal:           view.Subtotal.String(),
		FulfillmentSummary: view.FulfillmentSummary,
		EstimatedTime:      view.EstimatedTime,
		PaymentSummary:     view.PaymentSummary,
		CreatedAt:          view.CreatedAt.Format(time.RFC3339),
	})
}

func parseID(ctx echo.Context, param string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(param))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain errors onto HTTP status codes. Validation failures
// carry per-field messages; submission state conflicts map to 409 so clients
// can distinguish them from bad input.
func writeError(ctx echo.Context, err error) error {
	var fieldErrors validation.FieldErrors
	switch {
	case errors.As(err, &fieldErrors):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: "validation failed",
			Fields:  fieldErrors,
		})

	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})

	case errors.Is(err, checkout.ErrSessionConsumed),
		errors.Is(err, checkout.ErrSubmissionInFlight),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrInvalidScheduleTime):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})

	case errors.Is(err, ports.ErrSubmissionFailed):
		return ctx.JSON(http.StatusBadGateway, ErrorResponse{
			Code:    http.StatusBadGateway,
			Message: "order submission failed, please retry",
		})

	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})

	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal server error",
		})
	}
}
