// Package servicearea provides the read model describing what the platform
// offers in a given zip code. Service areas are owned by an external
// configuration collaborator; the core only reads them to gate order placement.
package servicearea

import (
	"errors"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
)

// ErrServiceAreaIsNotConstructed is returned when a ServiceArea instance was
// not created through the NewServiceArea factory method.
var ErrServiceAreaIsNotConstructed = errors.New("ServiceArea must be created via NewServiceArea constructor")

// ServiceArea describes the capabilities enabled for one zip code: whether
// home pickup/delivery is offered, whether lockers are installed, and whether
// same-day express turnaround is available. An inactive area is treated the
// same as an absent one.
//
// ServiceArea is immutable read-only input to the eligibility validator.
type ServiceArea struct {
	zip            kernel.ZipCode
	allowsDelivery bool
	allowsLocker   bool
	allowsExpress  bool
	active         bool

	isConstructed bool
}

// NewServiceArea creates a validated ServiceArea for a zip code.
func NewServiceArea(zip kernel.ZipCode, allowsDelivery, allowsLocker, allowsExpress, active bool) (*ServiceArea, error) {
	if err := zip.Validate(); err != nil {
		return nil, err
	}

	return &ServiceArea{
		zip:            zip,
		allowsDelivery: allowsDelivery,
		allowsLocker:   allowsLocker,
		allowsExpress:  allowsExpress,
		active:         active,
		isConstructed:  true,
	}, nil
}

// Validate ensures the ServiceArea was created through NewServiceArea.
func (a *ServiceArea) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrServiceAreaIsNotConstructed
	}
	return nil
}

// Zip returns the zip code this area covers.
func (a *ServiceArea) Zip() kernel.ZipCode {
	return a.zip
}

// AllowsDelivery reports whether home pickup/delivery orders are offered.
func (a *ServiceArea) AllowsDelivery() bool {
	return a.allowsDelivery
}

// AllowsLocker reports whether locker drop-off orders are offered.
func (a *ServiceArea) AllowsLocker() bool {
	return a.allowsLocker
}

// AllowsExpress reports whether same-day express turnaround is offered.
func (a *ServiceArea) AllowsExpress() bool {
	return a.allowsExpress
}

// IsActive reports whether the area is currently serviced at all.
func (a *ServiceArea) IsActive() bool {
	return a.active
}
