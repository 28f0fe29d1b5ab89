// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain model and read directly from the
// database, returning flat response shapes tailored for the API.
package queries

import (
	"errors"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order for customer tracking.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve one order by ID.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier being looked up.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the flat tracking view of an order: its status,
// progress step, price, schedule, and assignment.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	Status        string
	CurrentStep   *int
	TotalCents    int64
	IsExpress     bool
	Zip           string
	PickupStart   time.Time
	PickupEnd     time.Time
	DeliveryStart time.Time
	DeliveryEnd   time.Time
	OperatorID    *kernel.UUID
	CompletedAt   *time.Time
}
