package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/promotion"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/servicearea"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/services"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/ports"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/errs"
)

// ErrOrderNotEligible is the sentinel wrapped by EligibilityDeniedError.
// Use errors.As to recover the precise denial reason.
var ErrOrderNotEligible = errors.New("order is not eligible")

// EligibilityDeniedError reports that the eligibility gate rejected an order
// request, carrying the precise reason so the customer sees "express cutoff
// passed" rather than a generic rejection.
type EligibilityDeniedError struct {
	Reason services.DenialReason
}

func (e *EligibilityDeniedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOrderNotEligible, e.Reason)
}

func (e *EligibilityDeniedError) Unwrap() error {
	return ErrOrderNotEligible
}

// PlaceOrderResult carries the outcome of a successful placement: the
// persisted order and the payment client secret the customer needs to
// complete the capture.
type PlaceOrderResult struct {
	Order        *order.Order
	ClientSecret string
}

// PlaceOrderCommandHandler handles the business logic for order placement.
// Runs the full placement pipeline: eligibility gate, window scheduling,
// pricing, persistence in "placed" status, and payment intent creation.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(
//	    uowFactory, areaRepo, promoRepo, gateway, dispatcher, logger, time.Now)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	// Customer completes payment with result.ClientSecret
type PlaceOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	areaRepo    ports.ServiceAreaRepository
	promoRepo   ports.PromotionRepository
	gateway     ports.PaymentGateway
	dispatcher  ports.NotificationDispatcher
	eligibility services.EligibilityValidator
	scheduler   services.WindowScheduler
	pricing     services.PriceCalculator
	logger      *slog.Logger
	now         func() time.Time
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// now supplies the local wall-clock time used for the express cutoff and the
// lead-time check; production passes time.Now.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	areaRepo ports.ServiceAreaRepository,
	promoRepo ports.PromotionRepository,
	gateway ports.PaymentGateway,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
	now func() time.Time,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory:  uowFactory,
		areaRepo:    areaRepo,
		promoRepo:   promoRepo,
		gateway:     gateway,
		dispatcher:  dispatcher,
		eligibility: services.NewEligibilityValidator(),
		scheduler:   services.NewWindowScheduler(),
		pricing:     services.NewPriceCalculator(),
		logger:      logger.With("component", "place_order"),
		now:         now,
	}
}

// Handle processes the order placement command.
//
// The pipeline is ordered so that no side effect happens for a request that
// would later be rejected: eligibility and scheduling run before anything is
// persisted, and the payment intent is created inside the transaction so a
// gateway failure aborts the placement entirely.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlaceOrderResult{}, err
	}

	nowLocal := h.now()

	area, err := h.resolveArea(ctx, cmd)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	if result := h.eligibility.Validate(area, cmd.PickupType(), cmd.IsExpress(), nowLocal); !result.IsAllowed() {
		return PlaceOrderResult{}, &EligibilityDeniedError{Reason: result.Reason()}
	}

	schedule, err := h.scheduler.Schedule(cmd.PickupDate(), cmd.Slot(), cmd.IsExpress(), nowLocal)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	promo, err := h.resolvePromo(ctx, cmd.PromoCode())
	if err != nil {
		return PlaceOrderResult{}, err
	}

	quote, err := h.pricing.Price(cmd.BagCount(), cmd.IsExpress(), cmd.Preferences(), cmd.AddOns(), promo)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	var promoCode *string
	if promo != nil {
		code := promo.Code()
		promoCode = &code
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(), cmd.Zip(),
		cmd.PickupType(), cmd.ServiceType(), cmd.IsExpress(), cmd.BagCount(),
		schedule.Pickup, schedule.Delivery,
		quote.LineItems, quote.TotalCents, promoCode, nowLocal,
	)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return PlaceOrderResult{}, err
	}

	clientSecret, err := h.gateway.CreateIntent(ctx, newOrder.ID(), newOrder.TotalCents())
	if err != nil {
		return PlaceOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	h.notifyCreated(ctx, newOrder)

	return PlaceOrderResult{Order: newOrder, ClientSecret: clientSecret}, nil
}

// resolveArea loads the service area for the command's zip code. A zip with
// no configured area is a normal outcome, reported to the eligibility
// validator as a nil area.
func (h *PlaceOrderCommandHandler) resolveArea(
	ctx context.Context, cmd PlaceOrderCommand,
) (*servicearea.ServiceArea, error) {
	area, err := h.areaRepo.GetByZip(ctx, cmd.Zip())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return area, nil
}

// resolvePromo loads the promotion for a promo code. An empty or unknown
// code prices the order without a discount; only infrastructure failures
// propagate.
func (h *PlaceOrderCommandHandler) resolvePromo(
	ctx context.Context, code string,
) (*promotion.Promotion, error) {
	if code == "" {
		return nil, nil
	}

	promo, err := h.promoRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return promo, nil
}

func (h *PlaceOrderCommandHandler) notifyCreated(ctx context.Context, o *order.Order) {
	event := ports.NotificationEvent{
		OrderID:  o.ID(),
		Kind:     ports.EventOrderCreated,
		Audience: ports.AudienceCustomer,
		Zip:      o.Zip(),
		Data: map[string]string{
			"status":      o.Status().String(),
			"total_cents": fmt.Sprintf("%d", o.TotalCents()),
		},
	}

	if err := h.dispatcher.Notify(ctx, event); err != nil {
		h.logger.Warn("failed to dispatch order created event",
			"order_id", o.ID().String(), "error", err)
	}
}
