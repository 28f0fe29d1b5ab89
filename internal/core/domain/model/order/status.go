package order

import (
	"errors"
	"fmt"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a requested status change does not
// follow an edge of the order state machine. Callers must not retry the same
// transition: the guard condition that failed cannot become true again.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Placed ──> Unclaimed ──> Claimed ──> InProgress ──> Washed ──> OutForDelivery ──> Completed
//	   │            │           │
//	   │            │           └──────> Cancelled
//	   ├──────> Cancelled  ┌──> Cancelled
//	   └──────> Failed     └──> Failed (payment expiry, pre-claim only)
//
// Placed becomes Unclaimed on confirmed payment capture. Unclaimed becomes
// Claimed through the claim coordinator, for exactly one operator. The four
// fulfillment steps after Claimed advance one at a time and can never be
// skipped or replayed. Completed, Cancelled, and Failed are terminal.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and the API.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status when an order is submitted.
	// Payment capture has been requested but not yet confirmed.
	Placed

	// Unclaimed indicates payment was captured and the order is visible
	// to eligible operators, none of whom has claimed it yet.
	Unclaimed

	// Claimed indicates exactly one operator owns the order.
	Claimed

	// InProgress indicates the operator has picked up the laundry
	// and started working on it.
	InProgress

	// Washed indicates washing and drying are finished.
	Washed

	// OutForDelivery indicates the operator is returning the laundry.
	OutForDelivery

	// Completed indicates the order was delivered. Terminal.
	Completed

	// Cancelled indicates the customer or an admin cancelled the order
	// before fulfillment finished. Terminal.
	Cancelled

	// Failed indicates payment capture never arrived. Terminal.
	Failed
)

// Refund percentages applied when an order is cancelled, keyed by the status
// the order was in at cancellation time. Orders cancelled before any operator
// claimed them are refunded in full; once an operator has committed to the
// order the contractual refund is half.
const (
	FullRefundPercent      = 100
	PostClaimRefundPercent = 50
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Placed:         "placed",
		Unclaimed:      "unclaimed",
		Claimed:        "claimed",
		InProgress:     "in_progress",
		Washed:         "washed",
		OutForDelivery: "out_for_delivery",
		Completed:      "completed",
		Cancelled:      "cancelled",
		Failed:         "failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:         "placed",
		Unclaimed:      "unclaimed",
		Claimed:        "claimed",
		InProgress:     "in_progress",
		Washed:         "washed",
		OutForDelivery: "out_for_delivery",
		Completed:      "completed",
		Cancelled:      "cancelled",
		Failed:         "failed",
	}
}

// StatusFromString parses the wire representation of a status.
// Returns an error for unrecognized values, including "unknown".
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "out_for_delivery".
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == Failed
}

// RequiresOperator reports whether an order in this status must carry a
// non-nil operator reference. Every status reachable only after a successful
// claim requires one.
func (s Status) RequiresOperator() bool {
	switch s {
	case Claimed, InProgress, Washed, OutForDelivery, Completed:
		return true
	default:
		return false
	}
}

// ValidateCanHaveOperator validates the consistency between order status and
// operator assignment: pre-claim statuses must not carry an operator, and
// post-claim statuses must. Cancelled orders may carry one or not, depending
// on when the cancellation happened.
func (s Status) ValidateCanHaveOperator(hasOperator bool) error {
	if s == Cancelled {
		return nil
	}

	if hasOperator && !s.RequiresOperator() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have an operator", s.String()))
	}

	if !hasOperator && s.RequiresOperator() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have no operator", s.String()))
	}

	return nil
}

// ConfirmPayment transitions the status to Unclaimed.
//
// Valid transitions:
//   - Placed -> Unclaimed (payment capture confirmed)
//
// Returns (0, ErrInvalidTransition) from any other status.
func (s Status) ConfirmPayment() (Status, error) {
	if s != Placed {
		return 0, transitionError(s, Unclaimed)
	}
	return Unclaimed, nil
}

// Claim transitions the status to Claimed.
//
// Valid transitions:
//   - Unclaimed -> Claimed (operator took ownership)
//
// Returns (0, ErrInvalidTransition) from any other status. The claim
// coordinator additionally enforces at-most-once semantics at the
// persistence layer; this guard covers in-memory aggregates.
func (s Status) Claim() (Status, error) {
	if s != Unclaimed {
		return 0, transitionError(s, Claimed)
	}
	return Claimed, nil
}

// fulfillmentSuccessor maps each post-claim status to its single legal
// forward step. No step may be skipped and no step may be replayed.
func fulfillmentSuccessor(s Status) (Status, bool) {
	switch s {
	case Claimed:
		return InProgress, true
	case InProgress:
		return Washed, true
	case Washed:
		return OutForDelivery, true
	case OutForDelivery:
		return Completed, true
	default:
		return Unknown, false
	}
}

// Advance transitions the status one forward step to target.
//
// Valid transitions:
//   - Claimed -> InProgress
//   - InProgress -> Washed
//   - Washed -> OutForDelivery
//   - OutForDelivery -> Completed
//
// The target must be exactly the successor of the current status; requesting
// a skip (e.g. Claimed -> Completed) or a replay returns ErrInvalidTransition.
func (s Status) Advance(target Status) (Status, error) {
	next, ok := fulfillmentSuccessor(s)
	if !ok || next != target {
		return 0, transitionError(s, target)
	}
	return next, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Placed -> Cancelled
//   - Unclaimed -> Cancelled
//   - Claimed -> Cancelled
//
// Once fulfillment work has started (InProgress and later) cancellation is
// no longer possible and ErrInvalidTransition is returned.
func (s Status) Cancel() (Status, error) {
	if s != Placed && s != Unclaimed && s != Claimed {
		return 0, transitionError(s, Cancelled)
	}
	return Cancelled, nil
}

// Fail transitions the status to Failed.
//
// Valid transitions:
//   - Placed -> Failed (payment capture never confirmed)
//   - Unclaimed -> Failed
//
// Returns (0, ErrInvalidTransition) from any other status.
func (s Status) Fail() (Status, error) {
	if s != Placed && s != Unclaimed {
		return 0, transitionError(s, Failed)
	}
	return Failed, nil
}

// RefundPercentage returns the refund owed if an order is cancelled while in
// this status: full refund before a claim, the contractual partial refund
// once an operator owns the order. Statuses that do not permit cancellation
// return ErrInvalidTransition.
func (s Status) RefundPercentage() (int, error) {
	switch s {
	case Placed, Unclaimed:
		return FullRefundPercent, nil
	case Claimed:
		return PostClaimRefundPercent, nil
	default:
		return 0, transitionError(s, Cancelled)
	}
}

func transitionError(from, to Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from.String(), to.String())
}
