// Package arearepo provides read access to the service area configuration
// table. Service areas are owned by an external collaborator; this
// repository never writes them.
package arearepo

import (
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/servicearea"
)

// ServiceAreaDTO represents the database structure for service areas.
type ServiceAreaDTO struct {
	Zip            string `gorm:"type:varchar(5);primaryKey"`
	AllowsDelivery bool
	AllowsLocker   bool
	AllowsExpress  bool
	Active         bool
}

// TableName overrides GORM's default naming convention.
func (ServiceAreaDTO) TableName() string {
	return "service_areas"
}

func toDomain(dto ServiceAreaDTO) (*servicearea.ServiceArea, error) {
	zip, err := kernel.NewZipCode(dto.Zip)
	if err != nil {
		return nil, err
	}

	return servicearea.NewServiceArea(zip, dto.AllowsDelivery, dto.AllowsLocker, dto.AllowsExpress, dto.Active)
}
