package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAcceptTransferCommandIsNotConstructed = errors.New(
	"AcceptTransferCommand must be created via NewAcceptTransferCommand constructor",
)

// AcceptTransferCommand hands the order over to the addressed driver.
type AcceptTransferCommand struct { //nolint:recvcheck //using for validation
	transferID kernel.UUID
	driverID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptTransferCommand(transferID, driverID kernel.UUID) (AcceptTransferCommand, error) {
	if err := errors.Join(transferID.Validate(), driverID.Validate()); err != nil {
		return AcceptTransferCommand{}, err
	}

	return AcceptTransferCommand{
		transferID: transferID,
		driverID:   driverID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptTransferCommand) Validate() error {
	return c.guard.Validate(ErrAcceptTransferCommandIsNotConstructed)
}

func (c AcceptTransferCommand) TransferID() kernel.UUID {
	return c.transferID
}

// DriverID is the driver answering the offer.
func (c AcceptTransferCommand) DriverID() kernel.UUID {
	return c.driverID
}
