package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrDisposeOrderCommandIsNotConstructed = errors.New(
	"DisposeOrderCommand must be created via NewDisposeOrderCommand constructor",
)

// DisposeOrderCommand settles an Expired or DeliveryOverdue order.
type DisposeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	disposition order.Disposition
	reason      string

	guard guard.ConstructorGuard
}

func NewDisposeOrderCommand(orderID kernel.UUID, disposition order.Disposition, reason string) (DisposeOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DisposeOrderCommand{}, err
	}
	if _, err := disposition.TargetStatus(); err != nil {
		return DisposeOrderCommand{}, err
	}

	return DisposeOrderCommand{
		orderID:     orderID,
		disposition: disposition,
		reason:      reason,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c DisposeOrderCommand) Validate() error {
	return c.guard.Validate(ErrDisposeOrderCommandIsNotConstructed)
}

func (c DisposeOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c DisposeOrderCommand) Disposition() order.Disposition {
	return c.disposition
}

func (c DisposeOrderCommand) Reason() string {
	return c.reason
}
