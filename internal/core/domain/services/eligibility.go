package services

import (
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/servicearea"
)

// ExpressCutoffHour is the local hour after which express orders can no
// longer be placed for same-day turnaround.
const ExpressCutoffHour = 12

// DenialReason identifies why an order request is not serviceable. Each
// reason maps to a precise customer-facing message, so "express not offered
// here" is distinguishable from "express cutoff passed for today".
type DenialReason int

const (
	// DenialNone means the request is serviceable.
	DenialNone DenialReason = iota

	// AreaNotServiced means no active service area covers the zip code.
	AreaNotServiced

	// ServiceTypeUnavailable means the area does not offer the requested
	// pickup type (locker vs. home pickup/delivery).
	ServiceTypeUnavailable

	// ExpressUnavailableInArea means the area never offers express turnaround.
	ExpressUnavailableInArea

	// ExpressCutoffPassed means express is offered but the daily cutoff
	// has passed; the order is still placeable without the express flag.
	ExpressCutoffPassed
)

func getDenialReasonStrings() map[DenialReason]string {
	return map[DenialReason]string{
		DenialNone:               "",
		AreaNotServiced:          "area_not_serviced",
		ServiceTypeUnavailable:   "service_type_unavailable",
		ExpressUnavailableInArea: "express_unavailable_in_area",
		ExpressCutoffPassed:      "express_cutoff_passed",
	}
}

// String returns the wire code of the denial reason.
func (r DenialReason) String() string {
	if str, ok := getDenialReasonStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// EligibilityResult is the typed outcome of an eligibility check. A denied
// request is a normal business outcome, not an error.
type EligibilityResult struct {
	allowed bool
	reason  DenialReason
}

// Allowed creates a passing result.
func Allowed() EligibilityResult {
	return EligibilityResult{allowed: true}
}

// Denied creates a failing result with a specific reason.
func Denied(reason DenialReason) EligibilityResult {
	return EligibilityResult{reason: reason}
}

// IsAllowed reports whether the request passed the eligibility gate.
func (r EligibilityResult) IsAllowed() bool {
	return r.allowed
}

// Reason returns the denial reason, or DenialNone for passing results.
func (r EligibilityResult) Reason() DenialReason {
	return r.reason
}

// EligibilityValidator is a pure domain service that gates order placement on
// the capabilities of the customer's service area and the time of day. It
// performs no I/O: the caller resolves the ServiceArea (nil when the zip code
// has no configured area) and passes the local wall-clock time.
type EligibilityValidator struct{}

// NewEligibilityValidator creates an EligibilityValidator.
func NewEligibilityValidator() EligibilityValidator {
	return EligibilityValidator{}
}

// Validate checks whether an order with the given pickup type and express
// flag can be placed in the given area at the given local time.
//
// Rules, in order:
//   - an absent or inactive area denies with AreaNotServiced
//   - locker orders require the locker capability, pickup/delivery orders the
//     delivery capability; violations deny with ServiceTypeUnavailable
//   - express additionally requires the local hour to be before the daily
//     cutoff (ExpressCutoffPassed otherwise, regardless of area flags) and
//     the area's express capability (ExpressUnavailableInArea)
func (v EligibilityValidator) Validate(
	area *servicearea.ServiceArea,
	pickupType order.PickupType,
	isExpress bool,
	nowLocal time.Time,
) EligibilityResult {
	if area == nil || !area.IsActive() {
		return Denied(AreaNotServiced)
	}

	switch pickupType {
	case order.Locker:
		if !area.AllowsLocker() {
			return Denied(ServiceTypeUnavailable)
		}
	case order.PickupDelivery:
		if !area.AllowsDelivery() {
			return Denied(ServiceTypeUnavailable)
		}
	default:
		return Denied(ServiceTypeUnavailable)
	}

	if isExpress {
		if nowLocal.Hour() >= ExpressCutoffHour {
			return Denied(ExpressCutoffPassed)
		}
		if !area.AllowsExpress() {
			return Denied(ExpressUnavailableInArea)
		}
	}

	return Allowed()
}
