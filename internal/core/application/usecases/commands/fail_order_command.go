package commands

import (
	"errors"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/guard"
)

var ErrFailOrderCommandIsNotConstructed = errors.New(
	"FailOrderCommand must be created via NewFailOrderCommand constructor",
)

// FailOrderCommand represents the payment collaborator's signal that an
// order's payment intent expired before capture. Only pre-claim orders can
// fail this way.
type FailOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFailOrderCommand creates a command to fail an order on payment expiry.
// Validates that the order ID is valid.
func NewFailOrderCommand(orderID kernel.UUID) (FailOrderCommand, error) {
	cmd := FailOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return FailOrderCommand{}, err
	}
	cmd.orderID = orderID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FailOrderCommand) Validate() error {
	return c.guard.Validate(ErrFailOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being failed.
func (c FailOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
