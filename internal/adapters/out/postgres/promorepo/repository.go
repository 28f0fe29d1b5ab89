package promorepo

import (
	"context"
	"errors"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/promotion"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPromotionRepository implements PromotionRepository using GORM.
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewGormPromotionRepository creates a new GORM promotion repository.
func NewGormPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// GetByCode retrieves a promotion by its code.
// Returns a wrapped errs.ErrObjectNotFound for unknown codes.
func (r *GormPromotionRepository) GetByCode(
	ctx context.Context, code string,
) (*promotion.Promotion, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto PromotionDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("promotion", code)
		}
		return nil, err
	}

	return toDomain(dto)
}
