package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order's tracking view straight from
// the database, bypassing the aggregate.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup. Returns errs.ObjectNotFoundError when no order
// has the requested ID.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			current_step,
			total_cents,
			is_express,
			zip,
			pickup_start,
			pickup_end,
			delivery_start,
			delivery_end,
			operator_id,
			completed_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	var (
		resp        GetOrderQueryResponse
		id          uuid.UUID
		currentStep sql.NullInt64
		operatorID  uuid.NullUUID
		completedAt sql.NullTime
	)

	err := row.Scan(
		&id,
		&resp.Status,
		&currentStep,
		&resp.TotalCents,
		&resp.IsExpress,
		&resp.Zip,
		&resp.PickupStart,
		&resp.PickupEnd,
		&resp.DeliveryStart,
		&resp.DeliveryEnd,
		&operatorID,
		&completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order_id", query.OrderID())
		}
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.ID = orderID

	if currentStep.Valid {
		step := int(currentStep.Int64)
		resp.CurrentStep = &step
	}
	if operatorID.Valid {
		opID, opErr := kernel.UUIDFromBytes(operatorID.UUID[:])
		if opErr != nil {
			return GetOrderQueryResponse{}, opErr
		}
		resp.OperatorID = &opID
	}
	if completedAt.Valid {
		completed := completedAt.Time.UTC()
		resp.CompletedAt = &completed
	}

	resp.PickupStart = resp.PickupStart.UTC()
	resp.PickupEnd = resp.PickupEnd.UTC()
	resp.DeliveryStart = resp.DeliveryStart.UTC()
	resp.DeliveryEnd = resp.DeliveryEnd.UTC()

	return resp, nil
}
