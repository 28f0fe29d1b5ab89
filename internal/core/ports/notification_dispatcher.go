package ports

import (
	"context"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
)

// EventKind classifies the domain events published on committed order
// transitions. Exactly one event is emitted per committed transition.
type EventKind string

const (
	EventOrderCreated     EventKind = "created"
	EventPaymentConfirmed EventKind = "payment_confirmed"
	EventOrderClaimed     EventKind = "claimed"
	EventStatusChanged    EventKind = "status_changed"
	EventOrderCancelled   EventKind = "cancelled"
)

// Audience selects who a notification event targets. Operator candidate
// resolution (which operators serve a zip, who is online) happens on the
// consuming side of the event bus, not in the core.
type Audience string

const (
	AudienceCustomer          Audience = "customer"
	AudienceOperator          Audience = "operator"
	AudienceEligibleOperators Audience = "eligible_operators_in_zip"
)

// NotificationEvent is the typed domain event published on the event bus for
// every committed order transition and claim outcome. Data carries
// event-specific payload fields (new status, refund percentage, zip code)
// as opaque strings.
type NotificationEvent struct {
	OrderID  kernel.UUID
	Kind     EventKind
	Audience Audience
	Zip      kernel.ZipCode
	Data     map[string]string
}

// NotificationDispatcher is the consumed interface to the external
// notification transport. Dispatch failures are logged and swallowed by
// callers: notifications are best-effort and MUST NOT roll back or block the
// state transition that triggered them.
type NotificationDispatcher interface {
	Notify(ctx context.Context, event NotificationEvent) error
}
