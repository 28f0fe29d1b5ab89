package ports

import (
	"context"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
)

// PaymentGateway is the consumed interface to the external payment
// collaborator. Payment capture is asynchronous with respect to order
// creation: CreateIntent returns a client secret for the customer to
// complete, and the capture confirmation arrives later as a webhook, never
// as a synchronous call the orchestrator awaits.
//
// Intent expiry is owned by the payment collaborator; orders stuck in the
// placed status are failed by an external timeout signal, not by a timer in
// the core.
type PaymentGateway interface {
	// CreateIntent registers a payment intent for the order total and
	// returns the client secret the customer uses to complete payment.
	// A failure here aborts order creation.
	CreateIntent(ctx context.Context, orderID kernel.UUID, totalCents int64) (string, error)

	// Refund requests a refund of the given percentage of the order total.
	Refund(ctx context.Context, orderID kernel.UUID, percentage int) error
}
