package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAssignmentInfoQueryIsNotConstructed = errors.New(
	"GetAssignmentInfoQuery must be created via NewGetAssignmentInfoQuery constructor",
)

type GetAssignmentInfoQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetAssignmentInfoQuery(orderID kernel.UUID) (GetAssignmentInfoQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetAssignmentInfoQuery{}, err
	}
	return GetAssignmentInfoQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAssignmentInfoQuery) OrderID() kernel.UUID { return q.orderID }

func (q GetAssignmentInfoQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignmentInfoQueryIsNotConstructed)
}

// AssignmentInfo is who holds (or delivered) an order, with the last hand-off.
type AssignmentInfo struct {
	OrderID     kernel.UUID
	DriverID    kernel.UUID
	DriverName  string
	DriverPhone string
	Completed   bool
	AcceptedAt  time.Time
	Previous    *PreviousDriverInfo
}

type PreviousDriverInfo struct {
	DriverID kernel.UUID
	Name     string
	Phone    string
}
