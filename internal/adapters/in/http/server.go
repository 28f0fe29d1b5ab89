// Package http is the inbound HTTP adapter. It translates the REST surface
// into commands and queries, and maps domain errors onto status codes: a
// lost claim race is a 409, an eligibility denial a 422, a foreign
// operator's progress update a 403.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/application/usecases/commands"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/application/usecases/queries"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/services"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler     commands.PlaceOrderCommandHandler
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler
	claimOrderHandler     commands.ClaimOrderCommandHandler
	advanceOrderHandler   commands.AdvanceOrderCommandHandler
	cancelOrderHandler    commands.CancelOrderCommandHandler
	failOrderHandler      commands.FailOrderCommandHandler

	// Query handlers
	getOrderHandler           queries.GetOrderQueryHandler
	getUnclaimedOrdersHandler queries.GetUnclaimedOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	failOrderHandler commands.FailOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getUnclaimedOrdersHandler queries.GetUnclaimedOrdersQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:         placeOrderHandler,
		confirmPaymentHandler:     confirmPaymentHandler,
		claimOrderHandler:         claimOrderHandler,
		advanceOrderHandler:       advanceOrderHandler,
		cancelOrderHandler:        cancelOrderHandler,
		failOrderHandler:          failOrderHandler,
		getOrderHandler:           getOrderHandler,
		getUnclaimedOrdersHandler: getUnclaimedOrdersHandler,
	}
}

// RegisterRoutes binds the REST surface onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders/unclaimed", s.GetUnclaimedOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/claim", s.ClaimOrder)
	api.POST("/orders/:orderId/advance", s.AdvanceOrder)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.POST("/webhooks/payment", s.PaymentWebhook)
}

// PlaceOrder handles POST /api/v1/orders - places a new laundry order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer ID: "+err.Error())
	}

	zip, err := kernel.NewZipCode(req.Zip)
	if err != nil {
		return badRequest(ctx, "Invalid zip code: "+err.Error())
	}

	pickupType, err := order.PickupTypeFromString(req.PickupType)
	if err != nil {
		return badRequest(ctx, "Invalid pickup type: "+err.Error())
	}

	slot, err := services.SlotFromString(req.Slot)
	if err != nil {
		return badRequest(ctx, "Invalid window slot: "+err.Error())
	}

	pickupDate, err := time.Parse("2006-01-02", req.PickupDate)
	if err != nil {
		return badRequest(ctx, "Invalid pickup date: "+err.Error())
	}

	preferences := make([]services.PreferenceCost, 0, len(req.Preferences))
	for _, pref := range req.Preferences {
		preferences = append(preferences, services.PreferenceCost{
			Name:  pref.Name,
			Cents: pref.Cents,
		})
	}

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), customerID, zip,
		pickupType, req.ServiceType, req.IsExpress, req.BagCount,
		pickupDate, slot, preferences,
		services.AddOns{
			FragranceFree:   req.AddOns.FragranceFree,
			ShirtsOnHangers: req.AddOns.ShirtsOnHangers,
			ExtraRinse:      req.AddOns.ExtraRinse,
		},
		req.PromoCode,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	result, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, placeOrderResponseFrom(result))
}

// GetOrder handles GET /api/v1/orders/:orderId - the customer tracking view.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderViewFrom(resp))
}

// GetUnclaimedOrders handles GET /api/v1/orders/unclaimed - the pool
// operators browse, optionally filtered with ?zip=.
func (s *Server) GetUnclaimedOrders(ctx echo.Context) error {
	var zipFilter *kernel.ZipCode
	if raw := ctx.QueryParam("zip"); raw != "" {
		zip, err := kernel.NewZipCode(raw)
		if err != nil {
			return badRequest(ctx, "Invalid zip code: "+err.Error())
		}
		zipFilter = &zip
	}

	query, err := queries.NewGetUnclaimedOrdersQuery(zipFilter)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	orders, err := s.getUnclaimedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]UnclaimedOrder, len(orders))
	for i, o := range orders {
		response[i] = unclaimedOrderFrom(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ClaimOrder handles POST /api/v1/orders/:orderId/claim - an operator's
// claim attempt. The loser of a race gets 409.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var req ClaimOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	operatorID, err := kernel.UUIDFromString(req.OperatorID)
	if err != nil {
		return badRequest(ctx, "Invalid operator ID: "+err.Error())
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, operatorID)
	if err != nil {
		return badRequest(ctx, "Invalid claim data: "+err.Error())
	}

	claimed, err := s.claimOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, claimResponseFrom(claimed))
}

// AdvanceOrder handles POST /api/v1/orders/:orderId/advance - one
// fulfillment step by the assigned operator.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var req AdvanceOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	operatorID, err := kernel.UUIDFromString(req.OperatorID)
	if err != nil {
		return badRequest(ctx, "Invalid operator ID: "+err.Error())
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, "Invalid target status: "+err.Error())
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, operatorID, target, req.EvidenceURI)
	if err != nil {
		return badRequest(ctx, "Invalid advance data: "+err.Error())
	}

	if err = s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PaymentWebhook handles POST /api/v1/webhooks/payment - the payment
// collaborator's capture confirmations and intent expiries.
func (s *Server) PaymentWebhook(ctx echo.Context) error {
	var req PaymentWebhookRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	reqCtx := ctx.Request().Context()

	switch req.Event {
	case WebhookEventCaptureConfirmed:
		cmd, cmdErr := commands.NewConfirmPaymentCommand(orderID)
		if cmdErr != nil {
			return badRequest(ctx, "Invalid webhook data: "+cmdErr.Error())
		}
		err = s.confirmPaymentHandler.Handle(reqCtx, cmd)
	case WebhookEventIntentExpired:
		cmd, cmdErr := commands.NewFailOrderCommand(orderID)
		if cmdErr != nil {
			return badRequest(ctx, "Invalid webhook data: "+cmdErr.Error())
		}
		err = s.failOrderHandler.Handle(reqCtx, cmd)
	default:
		return badRequest(ctx, "Unknown webhook event: "+req.Event)
	}

	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps domain and application errors onto HTTP status codes.
func domainError(ctx echo.Context, err error) error {
	var denied *commands.EligibilityDeniedError
	if errors.As(err, &denied) {
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: "Order is not eligible",
			Reason:  denied.Reason.String(),
		})
	}

	var status int
	switch {
	case errors.Is(err, services.ErrLeadTimeTooShort):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrAlreadyClaimed),
		errors.Is(err, order.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, order.ErrOperatorMismatch):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
