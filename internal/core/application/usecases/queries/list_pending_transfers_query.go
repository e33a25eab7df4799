package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrListPendingTransfersQueryIsNotConstructed = errors.New(
	"ListPendingTransfersQuery must be created via NewListPendingTransfersQuery constructor",
)

// ListPendingTransfersQuery asks for the offers a driver can still answer.
type ListPendingTransfersQuery struct {
	driverID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewListPendingTransfersQuery(driverID kernel.UUID) (ListPendingTransfersQuery, error) {
	if err := driverID.Validate(); err != nil {
		return ListPendingTransfersQuery{}, err
	}
	return ListPendingTransfersQuery{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPendingTransfersQuery) DriverID() kernel.UUID { return q.driverID }

func (q ListPendingTransfersQuery) Validate() error {
	return q.guard.Validate(ErrListPendingTransfersQueryIsNotConstructed)
}

type PendingTransferView struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	ProposerID    kernel.UUID
	ProposerName  string
	ProposerPhone string
	CreatedAt     time.Time
	ExpiresAt     time.Time
}
