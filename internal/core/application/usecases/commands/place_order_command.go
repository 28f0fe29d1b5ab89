package commands

import (
	"errors"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/services"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrServiceTypeIsRequired = errors.New("service type is required")
	ErrBagCountIsInvalid     = errors.New("bag count must be greater than 0")
	ErrPickupDateIsRequired  = errors.New("pickup date is required")
)

// PlaceOrderCommand represents a request to place a new laundry order.
// Encapsulates everything the customer chose: pickup type, schedule slot,
// bag count, priced preferences, add-ons, and an optional promo code.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewPlaceOrderCommand(orderID, customerID, zip,
//	    order.PickupDelivery, "wash_fold", false, 2,
//	    pickupDate, services.Morning, nil, services.AddOns{}, "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	customerID  kernel.UUID
	zip         kernel.ZipCode
	pickupType  order.PickupType
	serviceType string
	isExpress   bool
	bagCount    int
	pickupDate  time.Time
	slot        services.Slot
	preferences []services.PreferenceCost
	addOns      services.AddOns
	promoCode   string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new laundry order.
// Validates identifiers, the pickup type, the slot, and the basic shape of
// the request; domain rules (eligibility, lead time, pricing) are enforced
// by the handler through the domain services.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	zip kernel.ZipCode,
	pickupType order.PickupType,
	serviceType string,
	isExpress bool,
	bagCount int,
	pickupDate time.Time,
	slot services.Slot,
	preferences []services.PreferenceCost,
	addOns services.AddOns,
	promoCode string,
) (PlaceOrderCommand, error) {
	orderCommand := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setZip(zip),
		orderCommand.setPickupType(pickupType),
		orderCommand.setServiceType(serviceType),
		orderCommand.setBagCount(bagCount),
		orderCommand.setPickupDate(pickupDate),
		orderCommand.setSlot(slot),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	orderCommand.isExpress = isExpress
	orderCommand.preferences = preferences
	orderCommand.addOns = addOns
	orderCommand.promoCode = promoCode

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the customer placing the order.
func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Zip returns the service area zip code.
func (c PlaceOrderCommand) Zip() kernel.ZipCode {
	return c.zip
}

// PickupType returns how the laundry reaches the operator.
func (c PlaceOrderCommand) PickupType() order.PickupType {
	return c.pickupType
}

// ServiceType returns the requested laundry service.
func (c PlaceOrderCommand) ServiceType() string {
	return c.serviceType
}

// IsExpress reports whether same-day turnaround was requested.
func (c PlaceOrderCommand) IsExpress() bool {
	return c.isExpress
}

// BagCount returns the number of laundry bags.
func (c PlaceOrderCommand) BagCount() int {
	return c.bagCount
}

// PickupDate returns the requested pickup calendar day.
func (c PlaceOrderCommand) PickupDate() time.Time {
	return c.pickupDate
}

// Slot returns the requested pickup time slot.
func (c PlaceOrderCommand) Slot() services.Slot {
	return c.slot
}

// Preferences returns the priced customer preferences.
func (c PlaceOrderCommand) Preferences() []services.PreferenceCost {
	return c.preferences
}

// AddOns returns the flat-fee extras enabled on the order.
func (c PlaceOrderCommand) AddOns() services.AddOns {
	return c.addOns
}

// PromoCode returns the promo code, or an empty string if none was supplied.
func (c PlaceOrderCommand) PromoCode() string {
	return c.promoCode
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setZip(zip kernel.ZipCode) error {
	if err := zip.Validate(); err != nil {
		return err
	}

	c.zip = zip
	return nil
}

func (c *PlaceOrderCommand) setPickupType(pickupType order.PickupType) error {
	if err := pickupType.Validate(); err != nil {
		return err
	}

	c.pickupType = pickupType
	return nil
}

func (c *PlaceOrderCommand) setServiceType(serviceType string) error {
	if serviceType == "" {
		return ErrServiceTypeIsRequired
	}

	c.serviceType = serviceType
	return nil
}

func (c *PlaceOrderCommand) setBagCount(bagCount int) error {
	if bagCount <= 0 {
		return ErrBagCountIsInvalid
	}

	c.bagCount = bagCount
	return nil
}

func (c *PlaceOrderCommand) setPickupDate(pickupDate time.Time) error {
	if pickupDate.IsZero() {
		return ErrPickupDateIsRequired
	}

	c.pickupDate = pickupDate
	return nil
}

func (c *PlaceOrderCommand) setSlot(slot services.Slot) error {
	if err := slot.Validate(); err != nil {
		return err
	}

	c.slot = slot
	return nil
}
