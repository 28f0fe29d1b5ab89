// Package promorepo provides read access to the promo code table owned by
// the marketing collaborator. Codes are only resolved at pricing time.
package promorepo

import (
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/promotion"
)

// PromotionDTO represents the database structure for promotions.
type PromotionDTO struct {
	Code       string `gorm:"primaryKey"`
	PercentOff int
	Active     bool
}

// TableName overrides GORM's default naming convention.
func (PromotionDTO) TableName() string {
	return "promotions"
}

func toDomain(dto PromotionDTO) (*promotion.Promotion, error) {
	return promotion.NewPromotion(dto.Code, dto.PercentOff, dto.Active)
}
