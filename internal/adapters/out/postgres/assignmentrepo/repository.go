package assignmentrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db, tracker: tracker}
}

// Add inserts an Accepted row. A second Accepted row for the same order
// violates ux_assignments_active_order and is reported as AlreadyAssigned.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewRuleViolationError(errs.ErrAlreadyAssigned, "order "+aggregate.OrderID().String())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"driver_id":             dto.DriverID,
			"action":                dto.Action,
			"previous_driver_id":    dto.PreviousDriverID,
			"previous_driver_name":  dto.PreviousDriverName,
			"previous_driver_phone": dto.PreviousDriverPhone,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes the row so the order can never be completed through it again.
func (r *GormAssignmentRepository) Delete(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&AssignmentDTO{}, "id = ?", aggregate.ID().Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormAssignmentRepository) GetActiveByOrderForUpdate(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ? AND action = ?", orderID.Bytes(), int(assignment.Accepted)).
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormAssignmentRepository) CountOverdueByDriver(
	ctx context.Context,
	driverID kernel.UUID,
	acceptedBefore time.Time,
) (int64, error) {
	if err := driverID.Validate(); err != nil {
		return 0, err
	}

	var n int64
	err := r.db.WithContext(ctx).
		Table("assignments AS a").
		Joins("JOIN orders o ON o.id = a.order_id").
		Where("a.driver_id = ? AND a.action = ? AND a.accepted_at < ?",
			driverID.Bytes(), int(assignment.Accepted), acceptedBefore).
		Where("o.status IN ?", []int{int(order.Accepted), int(order.InDelivery), int(order.DeliveryOverdue)}).
		Count(&n).Error
	return n, err
}
