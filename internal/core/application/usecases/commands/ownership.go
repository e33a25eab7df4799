package commands

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// lockHeldAssignment locks the active ledger row of the order and checks that
// driverID holds it.
func lockHeldAssignment(
	ctx context.Context,
	repo ports.AssignmentRepository,
	orderID, driverID kernel.UUID,
) (*assignment.Assignment, error) {
	a, err := repo.GetActiveByOrderForUpdate(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewRuleViolationError(errs.ErrNotHolder,
			fmt.Sprintf("order %s has no active assignment", orderID))
	}
	if err != nil {
		return nil, err
	}
	if !a.IsHeldBy(driverID) {
		return nil, errs.NewRuleViolationError(errs.ErrNotHolder,
			fmt.Sprintf("order %s is held by another driver", orderID))
	}
	return a, nil
}
