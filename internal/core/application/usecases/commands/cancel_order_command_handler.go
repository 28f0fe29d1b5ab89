package commands

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/ports"
)

// CancelOrderCommandHandler handles customer cancellations. The refund
// percentage depends on the status the order was in when the cancellation
// was requested: full before a claim, half after, nothing once fulfillment
// has started (the aggregate rejects those outright).
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellations.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		dispatcher: dispatcher,
		logger:     logger.With("component", "cancel_order"),
	}
}

// Handle processes the cancellation. The refund request runs inside the
// transaction so a gateway failure leaves the order uncancelled; the
// conditional write makes a cancellation racing a claim resolve to exactly
// one winner.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	cancelledOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	fromStatus := cancelledOrder.Status()
	refundPercent, err := cancelledOrder.Cancel()
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, cancelledOrder, fromStatus); err != nil {
		return err
	}

	if refundPercent > 0 {
		if err = h.gateway.Refund(ctx, cancelledOrder.ID(), refundPercent); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyCancelled(ctx, cancelledOrder, refundPercent)

	return nil
}

func (h *CancelOrderCommandHandler) notifyCancelled(ctx context.Context, o *order.Order, refundPercent int) {
	data := map[string]string{
		"status":         o.Status().String(),
		"refund_percent": strconv.Itoa(refundPercent),
	}
	if operatorID := o.Operator(); operatorID != nil {
		data["operator_id"] = operatorID.String()
	}

	event := ports.NotificationEvent{
		OrderID:  o.ID(),
		Kind:     ports.EventOrderCancelled,
		Audience: ports.AudienceCustomer,
		Zip:      o.Zip(),
		Data:     data,
	}

	if err := h.dispatcher.Notify(ctx, event); err != nil {
		h.logger.Warn("failed to dispatch order cancelled event",
			"order_id", o.ID().String(), "error", err)
	}
}
