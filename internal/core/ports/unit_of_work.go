package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after
// Begin share its transaction; before Begin they run in autocommit mode.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active.
	Commit(ctx context.Context) error

	// Rollback returns an error if no transaction is active. Calling it after
	// Commit is safe and reports that error, which callers ignore.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	AssignmentRepository() AssignmentRepository
	TransferRepository() TransferRepository
	DriverRepository() DriverRepository
	OutboxRepository() OutboxRepository
}
