package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrProposeTransferCommandIsNotConstructed = errors.New(
	"ProposeTransferCommand must be created via NewProposeTransferCommand constructor",
)

// ProposeTransferCommand offers an order held by currentDriverID to the
// driver registered under newDriverPhone. The caller picks the transfer id.
type ProposeTransferCommand struct { //nolint:recvcheck //using for validation
	transferID      kernel.UUID
	orderID         kernel.UUID
	currentDriverID kernel.UUID
	newDriverPhone  string

	guard guard.ConstructorGuard
}

func NewProposeTransferCommand(
	transferID, orderID, currentDriverID kernel.UUID,
	newDriverPhone string,
) (ProposeTransferCommand, error) {
	if err := errors.Join(transferID.Validate(), orderID.Validate(), currentDriverID.Validate()); err != nil {
		return ProposeTransferCommand{}, err
	}

	phone, err := driver.NormalizePhone(newDriverPhone)
	if err != nil {
		return ProposeTransferCommand{}, err
	}

	return ProposeTransferCommand{
		transferID:      transferID,
		orderID:         orderID,
		currentDriverID: currentDriverID,
		newDriverPhone:  phone,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c ProposeTransferCommand) Validate() error {
	return c.guard.Validate(ErrProposeTransferCommandIsNotConstructed)
}

func (c ProposeTransferCommand) TransferID() kernel.UUID      { return c.transferID }
func (c ProposeTransferCommand) OrderID() kernel.UUID         { return c.orderID }
func (c ProposeTransferCommand) CurrentDriverID() kernel.UUID { return c.currentDriverID }
func (c ProposeTransferCommand) NewDriverPhone() string       { return c.newDriverPhone }
