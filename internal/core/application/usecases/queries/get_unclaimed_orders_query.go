package queries

import (
	"errors"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/guard"
)

var ErrGetUnclaimedOrdersQueryIsNotConstructed = errors.New(
	"GetUnclaimedOrdersQuery must be created via NewGetUnclaimedOrdersQuery constructor",
)

// GetUnclaimedOrdersQuery retrieves the pool of paid orders waiting for an
// operator, optionally narrowed to one zip code. Operators browse this pool
// to decide what to claim.
type GetUnclaimedOrdersQuery struct {
	zip *kernel.ZipCode

	guard guard.ConstructorGuard
}

// NewGetUnclaimedOrdersQuery creates a query for the unclaimed pool.
// Pass a nil zip to list the pool across all service areas.
func NewGetUnclaimedOrdersQuery(zip *kernel.ZipCode) (GetUnclaimedOrdersQuery, error) {
	if zip != nil {
		if err := zip.Validate(); err != nil {
			return GetUnclaimedOrdersQuery{}, err
		}
	}

	return GetUnclaimedOrdersQuery{
		zip:   zip,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUnclaimedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnclaimedOrdersQueryIsNotConstructed)
}

// Zip returns the zip code filter, or nil for no filter.
func (q GetUnclaimedOrdersQuery) Zip() *kernel.ZipCode {
	return q.zip
}

// GetUnclaimedOrdersQueryResponse is one row of the unclaimed pool: what an
// operator needs to decide whether the order is worth claiming.
type GetUnclaimedOrdersQueryResponse struct {
	ID          kernel.UUID
	Zip         string
	PickupType  string
	ServiceType string
	IsExpress   bool
	BagCount    int
	TotalCents  int64
	PickupStart time.Time
	PickupEnd   time.Time
	CreatedAt   time.Time
}
