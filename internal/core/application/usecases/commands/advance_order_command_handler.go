package commands

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/ports"
)

// AdvanceOrderCommandHandler handles fulfillment progress updates from the
// assigned operator. The aggregate rejects skipped steps, replays, and
// updates from anyone but the assigned operator; the conditional write
// rejects updates computed from a stale status.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
	now        func() time.Time
}

// NewAdvanceOrderCommandHandler creates a handler for fulfillment updates.
func NewAdvanceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
	now func() time.Time,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "advance_order"),
		now:        now,
	}
}

// Handle processes one fulfillment step.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
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
	claimedOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	fromStatus := claimedOrder.Status()
	if err = claimedOrder.Advance(cmd.OperatorID(), cmd.Target(), cmd.EvidenceURI(), h.now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, claimedOrder, fromStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyStatusChanged(ctx, claimedOrder)

	return nil
}

func (h *AdvanceOrderCommandHandler) notifyStatusChanged(ctx context.Context, o *order.Order) {
	data := map[string]string{
		"status": o.Status().String(),
	}
	if step := o.CurrentStep(); step != nil {
		data["current_step"] = strconv.Itoa(*step)
	}

	event := ports.NotificationEvent{
		OrderID:  o.ID(),
		Kind:     ports.EventStatusChanged,
		Audience: ports.AudienceCustomer,
		Zip:      o.Zip(),
		Data:     data,
	}

	if err := h.dispatcher.Notify(ctx, event); err != nil {
		h.logger.Warn("failed to dispatch status changed event",
			"order_id", o.ID().String(), "error", err)
	}
}
