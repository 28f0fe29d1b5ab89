package commands

import (
	"context"
	"log/slog"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/ports"
)

// ConfirmPaymentCommandHandler moves an order into the unclaimed pool once
// the payment collaborator confirms the capture. This is the webhook side of
// the asynchronous payment handshake started by order placement.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewConfirmPaymentCommandHandler creates a handler for payment capture
// confirmations.
func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "confirm_payment"),
	}
}

// Handle processes the capture confirmation. The write is conditioned on the
// order still being in "placed" status, so a duplicate webhook delivery or a
// racing cancellation loses cleanly with order.ErrInvalidTransition.
func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
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
	paidOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	fromStatus := paidOrder.Status()
	if err = paidOrder.ConfirmPayment(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, paidOrder, fromStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyConfirmed(ctx, paidOrder)

	return nil
}

// notifyConfirmed announces the order to operators serving its zip code.
// Which operators actually receive it is resolved by the consuming side of
// the event bus.
func (h *ConfirmPaymentCommandHandler) notifyConfirmed(ctx context.Context, o *order.Order) {
	event := ports.NotificationEvent{
		OrderID:  o.ID(),
		Kind:     ports.EventPaymentConfirmed,
		Audience: ports.AudienceEligibleOperators,
		Zip:      o.Zip(),
		Data: map[string]string{
			"status":     o.Status().String(),
			"is_express": boolString(o.IsExpress()),
		},
	}

	if err := h.dispatcher.Notify(ctx, event); err != nil {
		h.logger.Warn("failed to dispatch payment confirmed event",
			"order_id", o.ID().String(), "error", err)
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
