package arearepo

import (
	"context"
	"errors"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/servicearea"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormServiceAreaRepository implements ServiceAreaRepository using GORM.
type GormServiceAreaRepository struct {
	db *gorm.DB
}

// NewGormServiceAreaRepository creates a new GORM service area repository.
func NewGormServiceAreaRepository(db *gorm.DB) *GormServiceAreaRepository {
	return &GormServiceAreaRepository{db: db}
}

// GetByZip retrieves the service area covering a zip code.
// Returns a wrapped errs.ErrObjectNotFound when no area is configured.
func (r *GormServiceAreaRepository) GetByZip(
	ctx context.Context, zip kernel.ZipCode,
) (*servicearea.ServiceArea, error) {
	if err := zip.Validate(); err != nil {
		return nil, err
	}

	var dto ServiceAreaDTO
	if err := r.db.WithContext(ctx).First(&dto, "zip = ?", zip.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("service_area", zip.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
