// Package ports defines the contracts between the order fulfillment core and
// its infrastructure: repositories, the unit of work, and the external
// payment and notification collaborators. These interfaces enable dependency
// inversion and testability.
package ports

import (
	"context"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// The order row is the only shared mutable resource in the system. Every
// status change goes through a conditional write guarded by the status the
// caller observed, so transitions for one order are totally ordered by the
// database and a stale writer always loses.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, conditioned
	// on the order still being in fromStatus. If another writer moved the
	// order first, no row is affected and order.ErrInvalidTransition is
	// returned; the aggregate's in-memory state must then be discarded.
	Update(ctx context.Context, aggregate *order.Order, fromStatus order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the fully hydrated aggregate with its current status,
	// assignment, price breakdown, and windows.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Claim atomically assigns an unclaimed order to an operator. It is
	// the claim coordinator's sole synchronization primitive: a single
	// conditional update that succeeds only if the order is still
	// unclaimed with no operator, so at most one of any number of
	// concurrent callers wins. Losers receive order.ErrAlreadyClaimed
	// and must not retry the same order; claiming an order that never
	// reached the unclaimed pool, or already left it by cancellation or
	// failure, returns order.ErrInvalidTransition.
	Claim(ctx context.Context, orderID, operatorID kernel.UUID, claimedAt time.Time) error

	// GetAllUnclaimed retrieves every order currently waiting for an
	// operator, oldest first. Used by the re-notification sweep.
	GetAllUnclaimed(ctx context.Context) ([]*order.Order, error)
}
