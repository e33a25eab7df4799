package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// MaxOutboxBatch bounds how many rows one dispatch pass keeps locked.
const MaxOutboxBatch = 1000

var ErrDispatchOutboxCommandIsNotConstructed = errors.New(
	"DispatchOutboxCommand must be created via NewDispatchOutboxCommand constructor",
)

// DispatchOutboxCommand delivers up to batchSize pending outbox messages.
type DispatchOutboxCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewDispatchOutboxCommand(batchSize int) (DispatchOutboxCommand, error) {
	if batchSize <= 0 || batchSize > MaxOutboxBatch {
		return DispatchOutboxCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, MaxOutboxBatch)
	}

	return DispatchOutboxCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchOutboxCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOutboxCommandIsNotConstructed)
}

func (c DispatchOutboxCommand) BatchSize() int {
	return c.batchSize
}
