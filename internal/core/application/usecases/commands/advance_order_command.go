package commands

import (
	"errors"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand represents an operator moving their claimed order one
// fulfillment step forward, optionally attaching an evidence URI (a photo or
// scan reference) for the step being entered.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	operatorID  kernel.UUID
	target      order.Status
	evidenceURI string

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to advance a claimed order.
// Validates the identifiers and that the target names a real status; whether
// the target is reachable from the order's current status is decided by the
// aggregate.
func NewAdvanceOrderCommand(
	orderID, operatorID kernel.UUID,
	target order.Status,
	evidenceURI string,
) (AdvanceOrderCommand, error) {
	cmd := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOperatorID(operatorID),
		cmd.setTarget(target),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	cmd.evidenceURI = evidenceURI

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being advanced.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OperatorID returns the identifier of the acting operator.
func (c AdvanceOrderCommand) OperatorID() kernel.UUID {
	return c.operatorID
}

// Target returns the status the operator wants to move the order to.
func (c AdvanceOrderCommand) Target() order.Status {
	return c.target
}

// EvidenceURI returns the opaque evidence reference, or an empty string.
func (c AdvanceOrderCommand) EvidenceURI() string {
	return c.evidenceURI
}

func (c *AdvanceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderCommand) setOperatorID(operatorID kernel.UUID) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}

	c.operatorID = operatorID
	return nil
}

func (c *AdvanceOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
