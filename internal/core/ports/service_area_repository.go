package ports

import (
	"context"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/promotion"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/servicearea"
)

// ServiceAreaRepository provides read access to the service area
// configuration owned by an external collaborator. The core never writes
// service areas.
type ServiceAreaRepository interface {
	// GetByZip retrieves the service area covering a zip code.
	// Returns errs.ErrObjectNotFound (wrapped) when no area is configured;
	// callers treat that the same as an inactive area.
	GetByZip(ctx context.Context, zip kernel.ZipCode) (*servicearea.ServiceArea, error)
}

// PromotionRepository provides read access to the promo code table owned by
// an external marketing collaborator. The core only resolves codes at
// pricing time; a code that does not resolve is a pricing no-op.
type PromotionRepository interface {
	// GetByCode retrieves a promotion by its code.
	// Returns errs.ErrObjectNotFound (wrapped) for unknown codes.
	GetByCode(ctx context.Context, code string) (*promotion.Promotion, error)
}
