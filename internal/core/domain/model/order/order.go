package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrAlreadyClaimed is returned when an operator attempts to claim an order
	// that another operator already owns. Callers must not retry the same order.
	ErrAlreadyClaimed = errors.New("order already claimed")

	// ErrOperatorMismatch is returned when an operator attempts to advance an
	// order that is assigned to a different operator.
	ErrOperatorMismatch = errors.New("order is assigned to a different operator")
)

// Order represents a laundry order in the system. It is the aggregate root that
// manages the order lifecycle from placement through claim and fulfillment to
// completion.
//
// Order follows these invariants:
//   - Must have valid identifiers, zip code, pickup type, and service type
//   - Bag count must be at least 1
//   - The stored total is always reproducible from the stored line items
//   - The pickup window ends no later than the delivery window starts, unless express
//   - An operator reference is present exactly when the status requires one
//   - Status only ever advances along edges defined by the state machine;
//     no code path may assign an arbitrary status
//   - Orders become immutable upon reaching a terminal status
//
// The Order struct uses private fields to ensure encapsulation; all mutation
// goes through the transition methods, which delegate their guard logic to
// the Status state machine.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	zip        kernel.ZipCode

	pickupType  PickupType
	serviceType string
	isExpress   bool

	// operatorID is the assigned operator's ID (nil until claimed)
	operatorID *kernel.UUID
	claimedAt  *time.Time

	pickupWindow   kernel.TimeWindow
	deliveryWindow kernel.TimeWindow

	bagCount   int
	lineItems  []LineItem
	totalCents int64
	promoCode  *string

	status Status

	// currentStep is a small step counter used only for UI granularity
	// within the fulfillment statuses (nil outside of them)
	currentStep *int

	// evidence holds opaque per-step evidence URIs, keyed by step number.
	// The core stores them and never interprets them.
	evidence map[int]string

	createdAt   time.Time
	completedAt *time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Placed status with validation. This is the
// only way to create a valid Order; it enforces every construction invariant.
//
// The caller supplies the already-computed price breakdown (line items plus
// total) and the already-validated pickup and delivery windows. NewOrder
// re-checks that the breakdown reproduces the total and that the windows are
// consistent with the express flag, so an order can never be persisted with
// a total that its inputs do not explain.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	zip kernel.ZipCode,
	pickupType PickupType,
	serviceType string,
	isExpress bool,
	bagCount int,
	pickupWindow kernel.TimeWindow,
	deliveryWindow kernel.TimeWindow,
	lineItems []LineItem,
	totalCents int64,
	promoCode *string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Placed,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setZip(zip),
		o.setPickupType(pickupType),
		o.setServiceType(serviceType),
		o.setBagCount(bagCount),
		o.setWindows(pickupWindow, deliveryWindow, isExpress),
		o.setPrice(lineItems, totalCents),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.isExpress = isExpress
	o.promoCode = promoCode
	o.evidence = make(map[int]string)

	return o, nil
}

// RestoreOrder reconstructs an Order from persisted state without replaying
// its history. Used by the persistence layer; it validates the restored state
// against the aggregate invariants, including the consistency between status
// and operator assignment.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	zip kernel.ZipCode,
	pickupType PickupType,
	serviceType string,
	isExpress bool,
	bagCount int,
	pickupWindow kernel.TimeWindow,
	deliveryWindow kernel.TimeWindow,
	lineItems []LineItem,
	totalCents int64,
	promoCode *string,
	status Status,
	operatorID *kernel.UUID,
	claimedAt *time.Time,
	currentStep *int,
	evidence map[int]string,
	createdAt time.Time,
	completedAt *time.Time,
) (*Order, error) {
	o, err := NewOrder(id, customerID, zip, pickupType, serviceType, isExpress,
		bagCount, pickupWindow, deliveryWindow, lineItems, totalCents, promoCode, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if err = status.ValidateCanHaveOperator(operatorID != nil); err != nil {
		return nil, err
	}
	if operatorID != nil {
		if err = operatorID.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = status
	o.operatorID = operatorID
	o.claimedAt = claimedAt
	o.currentStep = currentStep
	o.completedAt = completedAt
	if evidence != nil {
		o.evidence = evidence
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Zip returns the zip code the order is serviced in.
func (o *Order) Zip() kernel.ZipCode {
	return o.zip
}

// PickupType returns how the laundry reaches the operator.
func (o *Order) PickupType() PickupType {
	return o.pickupType
}

// ServiceType returns the requested laundry service.
func (o *Order) ServiceType() string {
	return o.serviceType
}

// IsExpress reports whether the order requires same-day turnaround.
func (o *Order) IsExpress() bool {
	return o.isExpress
}

// Operator returns the assigned operator's ID, or nil before a claim.
func (o *Order) Operator() *kernel.UUID {
	return o.operatorID
}

// ClaimedAt returns the claim instant, or nil before a claim.
func (o *Order) ClaimedAt() *time.Time {
	return o.claimedAt
}

// PickupWindow returns the scheduled pickup interval.
func (o *Order) PickupWindow() kernel.TimeWindow {
	return o.pickupWindow
}

// DeliveryWindow returns the scheduled delivery interval.
func (o *Order) DeliveryWindow() kernel.TimeWindow {
	return o.deliveryWindow
}

// BagCount returns the number of laundry bags in the order.
func (o *Order) BagCount() int {
	return o.bagCount
}

// LineItems returns a copy of the itemized price breakdown.
func (o *Order) LineItems() []LineItem {
	items := make([]LineItem, len(o.lineItems))
	copy(items, o.lineItems)
	return items
}

// TotalCents returns the order total in integer cents.
func (o *Order) TotalCents() int64 {
	return o.totalCents
}

// PromoCode returns the applied promo code, or nil if none was applied.
func (o *Order) PromoCode() *string {
	return o.promoCode
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CurrentStep returns the UI step counter, or nil outside fulfillment.
func (o *Order) CurrentStep() *int {
	return o.currentStep
}

// Evidence returns a copy of the per-step evidence URIs keyed by step number.
func (o *Order) Evidence() map[int]string {
	out := make(map[int]string, len(o.evidence))
	for step, uri := range o.evidence {
		out[step] = uri
	}
	return out
}

// CreatedAt returns the placement instant.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// CompletedAt returns the delivery instant, or nil before completion.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// ConfirmPayment moves the order from Placed to Unclaimed after the external
// payment collaborator confirms capture. The order becomes visible to
// eligible operators only after this transition.
func (o *Order) ConfirmPayment() error {
	newStatus, err := o.status.ConfirmPayment()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Claim assigns the order to an operator and moves it to Claimed.
//
// This method enforces the in-memory half of claim exclusivity: the order
// must be Unclaimed with no operator assigned. The durable half (at most one
// winner among concurrent claimers) is enforced by the claim coordinator's
// conditional update in the persistence layer.
func (o *Order) Claim(operatorID kernel.UUID, at time.Time) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}

	if o.operatorID != nil {
		return ErrAlreadyClaimed
	}

	newStatus, err := o.status.Claim()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.operatorID = &operatorID
	o.claimedAt = &at
	return nil
}

// Advance moves the order one fulfillment step forward on behalf of its
// assigned operator. The target must be the exact successor of the current
// status; skipped or replayed steps return ErrInvalidTransition and leave
// the order unchanged.
//
// evidenceURI optionally attaches an opaque reference (photo, scan) for the
// step being entered; the core stores it without interpretation. Reaching
// Completed records the completion instant and clears the step counter.
func (o *Order) Advance(operatorID kernel.UUID, target Status, evidenceURI string, at time.Time) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}

	if o.operatorID == nil || !o.operatorID.IsEqual(operatorID) {
		return ErrOperatorMismatch
	}

	newStatus, err := o.status.Advance(target)
	if err != nil {
		return err
	}

	o.status = newStatus

	step := fulfillmentStep(newStatus)
	if evidenceURI != "" && step > 0 {
		o.evidence[step] = evidenceURI
	}

	if newStatus == Completed {
		o.currentStep = nil
		o.completedAt = &at
		return nil
	}

	o.currentStep = &step
	return nil
}

// Cancel moves the order to Cancelled and returns the refund percentage owed,
// determined by the status the order was in when cancellation was requested.
// Only Placed, Unclaimed, and Claimed orders can be cancelled.
func (o *Order) Cancel() (int, error) {
	refundPercent, err := o.status.RefundPercentage()
	if err != nil {
		return 0, err
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return 0, err
	}

	o.status = newStatus
	return refundPercent, nil
}

// Fail moves the order to Failed when the external payment expiry signal
// arrives. Only pre-claim orders can fail this way.
func (o *Order) Fail() error {
	newStatus, err := o.status.Fail()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// fulfillmentStep maps fulfillment statuses to the small step counter shown
// to customers. Statuses outside the fulfillment chain have no step.
func fulfillmentStep(s Status) int {
	switch s {
	case InProgress:
		return 1
	case Washed:
		return 2
	case OutForDelivery:
		return 3
	case Completed:
		return 4
	default:
		return 0
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setZip(zip kernel.ZipCode) error {
	if err := zip.Validate(); err != nil {
		return err
	}
	o.zip = zip
	return nil
}

func (o *Order) setPickupType(pickupType PickupType) error {
	if err := pickupType.Validate(); err != nil {
		return err
	}
	o.pickupType = pickupType
	return nil
}

func (o *Order) setServiceType(serviceType string) error {
	if serviceType == "" {
		return errs.NewValueIsRequiredError("service type")
	}
	o.serviceType = serviceType
	return nil
}

func (o *Order) setBagCount(bagCount int) error {
	if bagCount < 1 {
		return errs.NewValueIsInvalidErrorWithCause("bag count",
			fmt.Errorf("%d is not at least 1", bagCount))
	}
	o.bagCount = bagCount
	return nil
}

// setWindows validates both windows and their ordering. A normal order's
// pickup window must close before its delivery window opens; express orders
// are delivered the same day, immediately after pickup.
func (o *Order) setWindows(pickup, delivery kernel.TimeWindow, isExpress bool) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	if err := delivery.Validate(); err != nil {
		return err
	}

	if !isExpress && !pickup.EndsBeforeOrAt(delivery.Start()) {
		return errs.NewValueIsInvalidErrorWithCause("delivery window",
			fmt.Errorf("pickup window ends at %s after delivery window starts at %s",
				pickup.End().Format(time.RFC3339), delivery.Start().Format(time.RFC3339)))
	}

	o.pickupWindow = pickup
	o.deliveryWindow = delivery
	return nil
}

func (o *Order) setPrice(lineItems []LineItem, totalCents int64) error {
	if totalCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total amount",
			fmt.Errorf("%d cents is negative", totalCents))
	}

	if err := validateLineItems(lineItems, totalCents); err != nil {
		return err
	}

	o.lineItems = make([]LineItem, len(lineItems))
	copy(o.lineItems, lineItems)
	o.totalCents = totalCents
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt
	return nil
}
