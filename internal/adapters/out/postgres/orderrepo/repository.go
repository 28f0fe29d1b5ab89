package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
//
// Every status change is a conditional write: the UPDATE carries the status
// the caller observed in its WHERE clause, so the database totally orders the
// transitions of one order and a stale writer affects zero rows. No
// row-level locks are held across calls.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order, conditioned on the row still holding
// fromStatus. Select("*") forces every column to be written, including ones
// that went back to NULL (the step counter after completion).
//
// Zero affected rows means another writer moved the order first; the caller
// gets order.ErrInvalidTransition and must discard the aggregate.
func (r *GormOrderRepository) Update(
	ctx context.Context, aggregate *order.Order, fromStatus order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := fromStatus.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, fromStatus.String()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.classifyConditionalMiss(ctx, aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Claim atomically assigns an unclaimed order to an operator. This single
// conditional UPDATE is the claim coordinator's only synchronization
// primitive: of any number of concurrent claimers, exactly one matches the
// WHERE clause and wins. Losers receive order.ErrAlreadyClaimed; claims
// against orders that never reached the unclaimed pool (or already left it
// by cancellation or failure) receive order.ErrInvalidTransition.
func (r *GormOrderRepository) Claim(
	ctx context.Context, orderID, operatorID kernel.UUID, claimedAt time.Time,
) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := operatorID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND operator_id IS NULL",
			orderID.Bytes(), order.Unclaimed.String()).
		Updates(map[string]any{
			"status":      order.Claimed.String(),
			"operator_id": operatorID.Bytes(),
			"claimed_at":  claimedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var dto OrderDTO
		err := r.db.WithContext(ctx).
			Select("status").
			First(&dto, "id = ?", orderID.Bytes()).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("order", orderID.String())
		}
		if err != nil {
			return err
		}

		current, err := order.StatusFromString(dto.Status)
		if err != nil {
			return err
		}
		if current.RequiresOperator() {
			return order.ErrAlreadyClaimed
		}
		return fmt.Errorf("%w: order is %s, not %s",
			order.ErrInvalidTransition, current.String(), order.Unclaimed.String())
	}

	return nil
}

// GetAllUnclaimed retrieves every order waiting for an operator, oldest first.
func (r *GormOrderRepository) GetAllUnclaimed(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "status = ?", order.Unclaimed.String()).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// classifyConditionalMiss distinguishes a vanished row from a lost race
// after a conditional update affected nothing.
func (r *GormOrderRepository) classifyConditionalMiss(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return order.ErrInvalidTransition
}
