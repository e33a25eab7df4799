package postgres

import (
	"fmt"

	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/adapters/out/postgres/catalogrepo"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/outboxrepo"
	"dispatch/internal/adapters/out/postgres/transferrepo"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/transfer"

	"gorm.io/gorm"
)

// Tables lists every table owned by the service, in truncate-safe order.
var Tables = []string{
	"outbox_messages",
	"pending_transfers",
	"assignments",
	"order_items",
	"orders",
	"drivers",
	"produce",
}

// partialIndexes back the one-holder and one-open-offer rules.
var partialIndexes = []string{
	fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS ux_assignments_active_order
		ON assignments (order_id) WHERE action = %d`, int(assignment.Accepted)),
	fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS ux_pending_transfers_open_pair
		ON pending_transfers (order_id, new_driver_id) WHERE status = %d`, int(transfer.Pending)),
}

// Migrate creates or updates the schema. It is idempotent.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&assignmentrepo.AssignmentDTO{},
		&transferrepo.PendingTransferDTO{},
		&driverrepo.DriverDTO{},
		&outboxrepo.MessageDTO{},
		&catalogrepo.ProduceDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range partialIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create partial index: %w", err)
		}
	}
	return nil
}
