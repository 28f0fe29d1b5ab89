package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/errs"
)

const (
	// MinLeadTime is the minimum gap between order placement and the start
	// of the pickup window.
	MinLeadTime = time.Hour

	// ExpressDeliverySpan is the length of the same-day delivery window
	// that immediately follows an express pickup.
	ExpressDeliverySpan = 4 * time.Hour
)

// ErrLeadTimeTooShort is returned when the requested pickup window starts
// less than MinLeadTime after the current local time.
var ErrLeadTimeTooShort = errors.New("pickup window starts too soon")

// Slot identifies one of the fixed daily pickup/delivery intervals.
type Slot int

const (
	// SlotUnknown represents an invalid or undefined slot.
	SlotUnknown Slot = iota

	// Morning covers [06:00, 08:00) local time.
	Morning

	// Lunch covers [12:00, 14:00) local time.
	Lunch

	// Evening covers [17:00, 19:00) local time.
	Evening
)

// slotHours maps each slot to its start and end hour on a 24h clock.
func slotHours(s Slot) (startHour, endHour int, ok bool) {
	switch s {
	case Morning:
		return 6, 8, true
	case Lunch:
		return 12, 14, true
	case Evening:
		return 17, 19, true
	default:
		return 0, 0, false
	}
}

func getSlotStrings() map[Slot]string {
	return map[Slot]string{
		Morning: "morning",
		Lunch:   "lunch",
		Evening: "evening",
	}
}

// SlotFromString parses the wire representation of a window slot.
func SlotFromString(s string) (Slot, error) {
	for slot, str := range getSlotStrings() {
		if str == s {
			return slot, nil
		}
	}
	return SlotUnknown, errs.NewValueIsInvalidErrorWithCause("window slot",
		fmt.Errorf("%q is not a valid window slot", s))
}

// Validate checks if the Slot value is valid.
func (s Slot) Validate() error {
	if _, _, ok := slotHours(s); !ok {
		return errs.NewValueIsInvalidErrorWithCause("window slot",
			fmt.Errorf("%d is not a valid window slot", s))
	}
	return nil
}

// String returns the wire name of the slot.
func (s Slot) String() string {
	if str, ok := getSlotStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// OrderSchedule holds the computed pickup and delivery windows for an order.
type OrderSchedule struct {
	Pickup   kernel.TimeWindow
	Delivery kernel.TimeWindow
}

// WindowScheduler is a pure domain service that turns a requested pickup
// date, slot, and express flag into concrete pickup and delivery windows.
// It is a deterministic function of its inputs: passing a fixed clock value
// always yields the same windows, which is how it is tested.
//
// Normal orders are delivered in the same slot on the following day. Express
// orders are delivered the same day, in a window opening the moment the
// pickup window closes. The scheduler assumes express eligibility was already
// confirmed by the eligibility validator.
type WindowScheduler struct{}

// NewWindowScheduler creates a WindowScheduler.
func NewWindowScheduler() WindowScheduler {
	return WindowScheduler{}
}

// Schedule computes the pickup and delivery windows.
//
// pickupDate contributes only its calendar day, interpreted in nowLocal's
// time zone. The pickup window must start at least MinLeadTime after
// nowLocal, otherwise ErrLeadTimeTooShort is returned.
func (s WindowScheduler) Schedule(
	pickupDate time.Time,
	slot Slot,
	isExpress bool,
	nowLocal time.Time,
) (OrderSchedule, error) {
	startHour, endHour, ok := slotHours(slot)
	if !ok {
		return OrderSchedule{}, errs.NewValueIsInvalidErrorWithCause("window slot",
			fmt.Errorf("%d is not a valid window slot", slot))
	}

	loc := nowLocal.Location()
	year, month, day := pickupDate.In(loc).Date()

	pickupStart := time.Date(year, month, day, startHour, 0, 0, 0, loc)
	pickupEnd := time.Date(year, month, day, endHour, 0, 0, 0, loc)

	if pickupStart.Before(nowLocal.Add(MinLeadTime)) {
		return OrderSchedule{}, fmt.Errorf("%w: pickup at %s is less than %s after %s",
			ErrLeadTimeTooShort,
			pickupStart.Format(time.RFC3339), MinLeadTime, nowLocal.Format(time.RFC3339))
	}

	pickup, err := kernel.NewTimeWindow(pickupStart, pickupEnd)
	if err != nil {
		return OrderSchedule{}, err
	}

	var delivery kernel.TimeWindow
	if isExpress {
		delivery, err = kernel.NewTimeWindow(pickupEnd, pickupEnd.Add(ExpressDeliverySpan))
	} else {
		delivery, err = kernel.NewTimeWindow(
			pickupStart.AddDate(0, 0, 1),
			pickupEnd.AddDate(0, 0, 1),
		)
	}
	if err != nil {
		return OrderSchedule{}, err
	}

	return OrderSchedule{Pickup: pickup, Delivery: delivery}, nil
}
