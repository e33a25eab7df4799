package transferrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/transfer"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormTransferRepository implements ports.TransferRepository using GORM.
type GormTransferRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormTransferRepository(db *gorm.DB, tracker aggregateTracker) *GormTransferRepository {
	return &GormTransferRepository{db: db, tracker: tracker}
}

// Add inserts a Pending offer. At most one Pending row may exist per order
// and candidate; a second one is reported as DuplicatePending.
func (r *GormTransferRepository) Add(ctx context.Context, aggregate *transfer.PendingTransfer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewRuleViolationError(errs.ErrDuplicatePending, "order "+aggregate.OrderID().String())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the status. Everything else about an offer is immutable.
func (r *GormTransferRepository) Update(ctx context.Context, aggregate *transfer.PendingTransfer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&PendingTransferDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("status", int(aggregate.Status()))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("transfer", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTransferRepository) Get(ctx context.Context, id kernel.UUID) (*transfer.PendingTransfer, error) {
	return r.find(ctx, id, false)
}

func (r *GormTransferRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*transfer.PendingTransfer, error) {
	return r.find(ctx, id, true)
}

func (r *GormTransferRepository) GetPendingByOrderAndCandidate(
	ctx context.Context,
	orderID, newDriverID kernel.UUID,
) (*transfer.PendingTransfer, error) {
	if err := errors.Join(orderID.Validate(), newDriverID.Validate()); err != nil {
		return nil, err
	}

	var dto PendingTransferDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND new_driver_id = ? AND status = ?",
			orderID.Bytes(), newDriverID.Bytes(), int(transfer.Pending)).
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pending transfer for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormTransferRepository) ExpireSiblings(ctx context.Context, orderID, exceptID kernel.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&PendingTransferDTO{}).
		Where("order_id = ? AND id <> ? AND status = ?", orderID.Bytes(), exceptID.Bytes(), int(transfer.Pending)).
		Update("status", int(transfer.Expired))
	return result.RowsAffected, result.Error
}

func (r *GormTransferRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&PendingTransferDTO{}).
		Where("status = ? AND expires_at <= ?", int(transfer.Pending), now).
		Update("status", int(transfer.Expired))
	return result.RowsAffected, result.Error
}

func (r *GormTransferRepository) find(ctx context.Context, id kernel.UUID, lock bool) (*transfer.PendingTransfer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)
	if lock {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto PendingTransferDTO
	if err := tx.Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transfer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
