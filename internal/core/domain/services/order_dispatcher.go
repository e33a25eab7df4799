package services

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// OrderDispatcher decides whether a driver may take an Unaccepted order and,
// if so, produces the ledger row.
//
// Checks run in a fixed order and the first failure wins:
//  1. the order is still Unaccepted (AlreadyAssigned)
//  2. the acceptance window is open (Expired; the order is moved to Expired)
//  3. the driver did not place the order (SelfAssignment)
//  4. the driver has no overdue deliveries (OverdueBacklog)
//
// Only the Expired failure mutates the order, and the caller must persist that
// change before returning the error.
type OrderDispatcher struct {
	policy ExpiryPolicy
}

func NewOrderDispatcher(policy ExpiryPolicy) OrderDispatcher {
	return OrderDispatcher{policy: policy}
}

// Dispatch runs the admission checks and, on success, accepts the order and
// returns the new assignment with the given id.
func (d OrderDispatcher) Dispatch(
	o *order.Order,
	drv *driver.Driver,
	overdueHeld int64,
	assignmentID kernel.UUID,
	now time.Time,
) (*assignment.Assignment, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := drv.Validate(); err != nil {
		return nil, err
	}

	if o.Status() != order.Unaccepted {
		return nil, errs.NewRuleViolationError(errs.ErrAlreadyAssigned,
			fmt.Sprintf("order %s is %s", o.ID(), o.Status()))
	}

	if d.policy.IsAcceptanceWindowClosed(o, now) {
		if err := o.Expire(); err != nil {
			return nil, err
		}
		return nil, errs.NewRuleViolationError(errs.ErrExpired,
			fmt.Sprintf("order %s was not accepted within %s", o.ID(), d.policy.unacceptedTTL))
	}

	if o.IsPlacedBy(drv.UserID()) {
		return nil, errs.NewRuleViolationError(errs.ErrSelfAssignment, "")
	}

	if overdueHeld > 0 {
		return nil, errs.NewRuleViolationError(errs.ErrOverdueBacklog,
			fmt.Sprintf("driver holds %d order(s) accepted more than %s ago", overdueHeld, d.policy.backlogThreshold))
	}

	a, err := assignment.NewAssignment(assignmentID, o.ID(), drv.ID(), now)
	if err != nil {
		return nil, err
	}
	if err = o.Accept(); err != nil {
		return nil, err
	}
	return a, nil
}
