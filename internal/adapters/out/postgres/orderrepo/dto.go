// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status column doubles as the guard column for conditional writes, so it
// is indexed together with the operator assignment.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index"`
	Zip         string    `gorm:"type:varchar(5);index"`
	PickupType  string
	ServiceType string
	IsExpress   bool

	OperatorID *uuid.UUID `gorm:"type:uuid;index"`
	ClaimedAt  *time.Time

	PickupStart   time.Time
	PickupEnd     time.Time
	DeliveryStart time.Time
	DeliveryEnd   time.Time

	BagCount   int
	LineItems  []order.LineItem `gorm:"serializer:json"`
	TotalCents int64
	PromoCode  *string

	Status      string `gorm:"index"`
	CurrentStep *int
	Evidence    map[int]string `gorm:"serializer:json"`

	CreatedAt   time.Time
	CompletedAt *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
// Timestamps are normalized to UTC before persisting.
func fromDomain(aggregate *order.Order) OrderDTO {
	var operatorID *uuid.UUID
	if id := aggregate.Operator(); id != nil {
		raw := id.Bytes()
		operatorID = &raw
	}

	var claimedAt *time.Time
	if at := aggregate.ClaimedAt(); at != nil {
		utc := at.UTC()
		claimedAt = &utc
	}

	var completedAt *time.Time
	if at := aggregate.CompletedAt(); at != nil {
		utc := at.UTC()
		completedAt = &utc
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		CustomerID:  aggregate.CustomerID().Bytes(),
		Zip:         aggregate.Zip().String(),
		PickupType:  aggregate.PickupType().String(),
		ServiceType: aggregate.ServiceType(),
		IsExpress:   aggregate.IsExpress(),

		OperatorID: operatorID,
		ClaimedAt:  claimedAt,

		PickupStart:   aggregate.PickupWindow().Start().UTC(),
		PickupEnd:     aggregate.PickupWindow().End().UTC(),
		DeliveryStart: aggregate.DeliveryWindow().Start().UTC(),
		DeliveryEnd:   aggregate.DeliveryWindow().End().UTC(),

		BagCount:   aggregate.BagCount(),
		LineItems:  aggregate.LineItems(),
		TotalCents: aggregate.TotalCents(),
		PromoCode:  aggregate.PromoCode(),

		Status:      aggregate.Status().String(),
		CurrentStep: aggregate.CurrentStep(),
		Evidence:    aggregate.Evidence(),

		CreatedAt:   aggregate.CreatedAt().UTC(),
		CompletedAt: completedAt,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status, assignment, windows,
// and price breakdown using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	zip, err := kernel.NewZipCode(dto.Zip)
	if err != nil {
		return nil, err
	}

	pickupType, err := order.PickupTypeFromString(dto.PickupType)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var operatorID *kernel.UUID
	if dto.OperatorID != nil {
		opID, opErr := kernel.UUIDFromBytes((*dto.OperatorID)[:])
		if opErr != nil {
			return nil, opErr
		}

		operatorID = &opID
	}

	pickupWindow, err := kernel.NewTimeWindow(dto.PickupStart.UTC(), dto.PickupEnd.UTC())
	if err != nil {
		return nil, err
	}

	deliveryWindow, err := kernel.NewTimeWindow(dto.DeliveryStart.UTC(), dto.DeliveryEnd.UTC())
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID, zip,
		pickupType, dto.ServiceType, dto.IsExpress, dto.BagCount,
		pickupWindow, deliveryWindow,
		dto.LineItems, dto.TotalCents, dto.PromoCode,
		status, operatorID, dto.ClaimedAt,
		dto.CurrentStep, dto.Evidence,
		dto.CreatedAt.UTC(), dto.CompletedAt,
	)
}
