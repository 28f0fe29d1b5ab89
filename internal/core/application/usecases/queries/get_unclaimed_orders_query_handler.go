package queries

import (
	"context"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnclaimedOrdersQueryHandler reads the unclaimed pool from the database.
// Oldest orders come first so the pool drains fairly.
type GetUnclaimedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUnclaimedOrdersQueryHandler creates a handler for unclaimed pool
// queries. Requires a GORM database connection for query execution.
func NewGetUnclaimedOrdersQueryHandler(db *gorm.DB) GetUnclaimedOrdersQueryHandler {
	return GetUnclaimedOrdersQueryHandler{db: db}
}

// Handle executes the query, optionally filtered by zip code.
func (h GetUnclaimedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnclaimedOrdersQuery,
) ([]GetUnclaimedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			zip,
			pickup_type,
			service_type,
			is_express,
			bag_count,
			total_cents,
			pickup_start,
			pickup_end,
			created_at
		FROM orders
		WHERE status = ?
	`
	args := []any{order.Unclaimed.String()}

	if zip := query.Zip(); zip != nil {
		sql += " AND zip = ?"
		args = append(args, zip.String())
	}
	sql += " ORDER BY created_at"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetUnclaimedOrdersQueryResponse, 0)

	for rows.Next() {
		var resp GetUnclaimedOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.Zip,
			&resp.PickupType,
			&resp.ServiceType,
			&resp.IsExpress,
			&resp.BagCount,
			&resp.TotalCents,
			&resp.PickupStart,
			&resp.PickupEnd,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.PickupStart = resp.PickupStart.UTC()
		resp.PickupEnd = resp.PickupEnd.UTC()
		resp.CreatedAt = resp.CreatedAt.UTC()

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
