package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrSweepExpiredCommandIsNotConstructed = errors.New(
	"SweepExpiredCommand must be created via NewSweepExpiredCommand constructor",
)

// SweepExpiredCommand runs one pass of the expiry reaper.
type SweepExpiredCommand struct {
	guard guard.ConstructorGuard
}

func NewSweepExpiredCommand() SweepExpiredCommand {
	return SweepExpiredCommand{guard: guard.NewConstructorGuard()}
}

func (c SweepExpiredCommand) Validate() error {
	return c.guard.Validate(ErrSweepExpiredCommandIsNotConstructed)
}
