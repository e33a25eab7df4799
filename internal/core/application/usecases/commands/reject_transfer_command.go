package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRejectTransferCommandIsNotConstructed = errors.New(
	"RejectTransferCommand must be created via NewRejectTransferCommand constructor",
)

// RejectTransferCommand declines an offer; the ledger is not touched.
type RejectTransferCommand struct { //nolint:recvcheck //using for validation
	transferID kernel.UUID
	driverID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewRejectTransferCommand(transferID, driverID kernel.UUID) (RejectTransferCommand, error) {
	if err := errors.Join(transferID.Validate(), driverID.Validate()); err != nil {
		return RejectTransferCommand{}, err
	}

	return RejectTransferCommand{
		transferID: transferID,
		driverID:   driverID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RejectTransferCommand) Validate() error {
	return c.guard.Validate(ErrRejectTransferCommandIsNotConstructed)
}

func (c RejectTransferCommand) TransferID() kernel.UUID {
	return c.transferID
}

// DriverID is the driver answering the offer.
func (c RejectTransferCommand) DriverID() kernel.UUID {
	return c.driverID
}
