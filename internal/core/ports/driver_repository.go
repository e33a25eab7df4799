package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

type DriverRepository interface {
	Add(ctx context.Context, aggregate *driver.Driver) error
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetByPhone expects a phone already passed through driver.NormalizePhone.
	GetByPhone(ctx context.Context, phone string) (*driver.Driver, error)
}
