// Package commands contains the write side: one command value and one handler
// per business operation. Every handler validates the command, opens a unit of
// work, locks what it mutates, enqueues outbox intents and commits.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	TransferRepoFactory interface {
		TransferRepository() ports.TransferRepository
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW is used by order creation.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DriverUoW is used by driver registration.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// OutboxUoW is used by the outbox dispatcher.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}

	// UoW spans every aggregate. Used by the ownership and transfer flows
	// that must lock an order, its assignment and its offers together.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   // ... mutate and enqueue
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
		TransferRepoFactory
		DriverRepoFactory
		OutboxRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
