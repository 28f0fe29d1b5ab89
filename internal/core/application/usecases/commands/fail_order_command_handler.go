package commands

import (
	"context"
	"log/slog"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/ports"
)

// FailOrderCommandHandler fails orders whose payment intent expired. The
// expiry timer is owned by the payment collaborator; this handler only
// reacts to its webhook.
type FailOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewFailOrderCommandHandler creates a handler for payment expiry signals.
func NewFailOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) FailOrderCommandHandler {
	return FailOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "fail_order"),
	}
}

// Handle processes the expiry signal. A signal arriving after a claim or a
// cancellation loses against the conditional write and reports
// order.ErrInvalidTransition.
func (h *FailOrderCommandHandler) Handle(ctx context.Context, cmd FailOrderCommand) error {
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
	failedOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	fromStatus := failedOrder.Status()
	if err = failedOrder.Fail(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, failedOrder, fromStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyFailed(ctx, failedOrder)

	return nil
}

func (h *FailOrderCommandHandler) notifyFailed(ctx context.Context, o *order.Order) {
	event := ports.NotificationEvent{
		OrderID:  o.ID(),
		Kind:     ports.EventStatusChanged,
		Audience: ports.AudienceCustomer,
		Zip:      o.Zip(),
		Data: map[string]string{
			"status": o.Status().String(),
		},
	}

	if err := h.dispatcher.Notify(ctx, event); err != nil {
		h.logger.Warn("failed to dispatch order failed event",
			"order_id", o.ID().String(), "error", err)
	}
}
