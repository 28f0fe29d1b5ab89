package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/ports"
)

// ClaimOrderCommandHandler handles operator claims on unclaimed orders.
//
// Claiming is first-come-first-served with no reservation step: the entire
// race is settled by one conditional update in the repository. The handler
// holds no locks and never retries; a loser gets order.ErrAlreadyClaimed and
// moves on to another order.
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
	now        func() time.Time
}

// NewClaimOrderCommandHandler creates a handler for claim attempts.
func NewClaimOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
	now func() time.Time,
) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "claim_order"),
		now:        now,
	}
}

// Handle processes a claim attempt. On a win the claimed order is reloaded
// inside the same transaction for the notification payload; on a loss the
// repository's order.ErrAlreadyClaimed propagates unchanged.
func (h *ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if err := orderRepo.Claim(ctx, cmd.OrderID(), cmd.OperatorID(), h.now()); err != nil {
		return nil, err
	}

	claimedOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifyClaimed(ctx, claimedOrder)

	return claimedOrder, nil
}

// notifyClaimed tells the customer their order was picked up by an operator,
// then lets subscribers watching the unclaimed pool know the order is gone.
// The subscriber fan-out is fire-and-forget: it runs detached from the
// request so a slow bus never delays the claim response.
func (h *ClaimOrderCommandHandler) notifyClaimed(ctx context.Context, o *order.Order) {
	data := map[string]string{
		"status": o.Status().String(),
	}
	if operatorID := o.Operator(); operatorID != nil {
		data["operator_id"] = operatorID.String()
	}

	customerEvent := ports.NotificationEvent{
		OrderID:  o.ID(),
		Kind:     ports.EventOrderClaimed,
		Audience: ports.AudienceCustomer,
		Zip:      o.Zip(),
		Data:     data,
	}

	if err := h.dispatcher.Notify(ctx, customerEvent); err != nil {
		h.logger.Warn("failed to dispatch order claimed event",
			"order_id", o.ID().String(), "error", err)
	}

	subscriberEvent := customerEvent
	subscriberEvent.Audience = ports.AudienceEligibleOperators

	go func(event ports.NotificationEvent) {
		detached, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		if err := h.dispatcher.Notify(detached, event); err != nil {
			h.logger.Warn("failed to dispatch claim fan-out event",
				"order_id", event.OrderID.String(), "error", err)
		}
	}(subscriberEvent)
}
