// Package assignment implements the AssignmentLedger: which driver currently
// holds which order, plus the audit trail of the most recent hand-off.
//
// Storage guarantees at most one Accepted row per order; the aggregate
// guarantees that only an Accepted row can change hands or be completed.
package assignment

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

// Action is the ledger state of an assignment row.
type Action int

const (
	UnknownAction Action = iota
	// Accepted rows block the order for every other driver.
	Accepted
	// Completed rows are terminal and never free the order again.
	Completed
)

func (a Action) String() string {
	switch a {
	case Accepted:
		return "accepted"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

func (a Action) Validate() error {
	if a != Accepted && a != Completed {
		return errs.NewValueIsInvalidErrorWithCause("action is invalid", fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

// PreviousDriver is the audit record written on hand-off.
type PreviousDriver struct {
	ID    kernel.UUID
	Name  string
	Phone string
}

type Assignment struct {
	id         kernel.UUID
	orderID    kernel.UUID
	driverID   kernel.UUID
	action     Action
	previous   *PreviousDriver
	acceptedAt time.Time

	isConstructed bool
}

// NewAssignment records that driverID accepted orderID at acceptedAt.
func NewAssignment(id, orderID, driverID kernel.UUID, acceptedAt time.Time) (*Assignment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), driverID.Validate()); err != nil {
		return nil, err
	}
	if acceptedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("accepted at")
	}

	return &Assignment{
		id:            id,
		orderID:       orderID,
		driverID:      driverID,
		action:        Accepted,
		acceptedAt:    acceptedAt.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreAssignment rebuilds a ledger row from storage.
func RestoreAssignment(
	id, orderID, driverID kernel.UUID,
	action Action,
	previous *PreviousDriver,
	acceptedAt time.Time,
) (*Assignment, error) {
	a, err := NewAssignment(id, orderID, driverID, acceptedAt)
	if err != nil {
		return nil, err
	}
	if err = action.Validate(); err != nil {
		return nil, err
	}
	if previous != nil {
		if err = previous.ID.Validate(); err != nil {
			return nil, err
		}
		p := *previous
		a.previous = &p
	}
	a.action = action
	return a, nil
}

func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

func (a *Assignment) ID() kernel.UUID       { return a.id }
func (a *Assignment) OrderID() kernel.UUID  { return a.orderID }
func (a *Assignment) DriverID() kernel.UUID { return a.driverID }
func (a *Assignment) Action() Action        { return a.action }
func (a *Assignment) AcceptedAt() time.Time { return a.acceptedAt }

// PreviousDriver is nil until the first hand-off.
func (a *Assignment) PreviousDriver() *PreviousDriver {
	if a.previous == nil {
		return nil
	}
	p := *a.previous
	return &p
}

// IsHeldBy reports whether driverID is the active holder.
func (a *Assignment) IsHeldBy(driverID kernel.UUID) bool {
	return a.action == Accepted && a.driverID.IsEqual(driverID)
}

// Complete closes the row. Only the active holder's row can be completed.
func (a *Assignment) Complete() error {
	if a.action != Accepted {
		return errs.NewInvalidStateTransitionError("assignment", a.action, Completed)
	}
	a.action = Completed
	return nil
}

// HandOff rewrites the holder to newDriverID and keeps the outgoing driver as
// the audit record. acceptedAt is kept so delivery age keeps counting from the
// original acceptance.
func (a *Assignment) HandOff(newDriverID kernel.UUID, previous PreviousDriver) error {
	if err := newDriverID.Validate(); err != nil {
		return err
	}
	if a.action != Accepted {
		return errs.NewRuleViolationError(errs.ErrNotHolder, "assignment is no longer active")
	}
	if !a.driverID.IsEqual(previous.ID) {
		return errs.NewRuleViolationError(errs.ErrStaleOwnership,
			fmt.Sprintf("order is held by %s, not %s", a.driverID, previous.ID))
	}
	if a.driverID.IsEqual(newDriverID) {
		return errs.NewRuleViolationError(errs.ErrSelfTransfer, "")
	}

	a.previous = &previous
	a.driverID = newDriverID
	return nil
}
