package kernel

import (
	"fmt"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/errs"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/guard"
)

// ErrTimeWindowIsNotConstructed is returned when attempting to use an improperly initialized TimeWindow.
// TimeWindows must be created using the NewTimeWindow constructor to ensure validity.
var ErrTimeWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"time window must be created via NewTimeWindow constructor")

// TimeWindow is a value object representing a half-open time interval [start, end).
// It models pickup and delivery windows on orders.
//
// A TimeWindow always satisfies start < end; the constructor rejects empty
// and inverted intervals. TimeWindow is immutable, and its zero value is
// invalid and will fail validation.
//
// Example:
//
//	start := time.Date(2026, 3, 14, 6, 0, 0, 0, loc)
//	window, err := kernel.NewTimeWindow(start, start.Add(2*time.Hour))
//	if err != nil {
//	    // handle validation error
//	}
type TimeWindow struct {
	start time.Time
	end   time.Time

	guard guard.ConstructorGuard
}

// NewTimeWindow creates a TimeWindow covering [start, end).
// Both instants must be non-zero and start must be strictly before end.
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if start.IsZero() || end.IsZero() {
		return TimeWindow{}, errs.NewValueIsRequiredError("time window bounds")
	}

	if !start.Before(end) {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("time window",
			fmt.Errorf("start %s is not before end %s", start.Format(time.RFC3339), end.Format(time.RFC3339)))
	}

	return TimeWindow{
		start: start,
		end:   end,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Start returns the inclusive lower bound of the window.
func (w TimeWindow) Start() time.Time {
	return w.start
}

// End returns the exclusive upper bound of the window.
func (w TimeWindow) End() time.Time {
	return w.end
}

// Duration returns the length of the window.
func (w TimeWindow) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// EndsBeforeOrAt reports whether this window closes no later than the given instant.
// Used to enforce that a pickup window precedes its delivery window.
func (w TimeWindow) EndsBeforeOrAt(t time.Time) bool {
	return !w.end.After(t)
}

// IsEqual compares two windows by their bounds.
func (w TimeWindow) IsEqual(other TimeWindow) bool {
	return w.start.Equal(other.start) && w.end.Equal(other.end)
}

// Validate ensures the TimeWindow was created through NewTimeWindow.
// Returns ErrTimeWindowIsNotConstructed for zero-value instances.
func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}
