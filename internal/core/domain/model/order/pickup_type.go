package order

import (
	"fmt"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/errs"
)

// PickupType describes how the laundry reaches the operator: dropped in a
// fixed locker, or picked up at (and delivered back to) the customer address.
type PickupType int

const (
	// PickupTypeUnknown represents an invalid or undefined pickup type.
	PickupTypeUnknown PickupType = iota

	// Locker means the customer leaves the bags at a fixed drop-off point.
	Locker

	// PickupDelivery means the operator collects from and delivers to
	// the customer's address.
	PickupDelivery
)

func getPickupTypeStrings() map[PickupType]string {
	return map[PickupType]string{
		Locker:         "locker",
		PickupDelivery: "pickup_delivery",
	}
}

// PickupTypeFromString parses the wire representation of a pickup type.
func PickupTypeFromString(s string) (PickupType, error) {
	for pt, str := range getPickupTypeStrings() {
		if str == s {
			return pt, nil
		}
	}
	return PickupTypeUnknown, errs.NewValueIsInvalidErrorWithCause("pickup type",
		fmt.Errorf("%q is not a valid pickup type", s))
}

// Validate checks if the PickupType value is valid.
func (p PickupType) Validate() error {
	if _, ok := getPickupTypeStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("pickup type",
			fmt.Errorf("%d is not a valid pickup type", p))
	}
	return nil
}

// String returns the wire name of the pickup type.
func (p PickupType) String() string {
	if str, ok := getPickupTypeStrings()[p]; ok {
		return str
	}
	return "unknown"
}
