// Package assignmentrepo persists the assignment ledger.
package assignmentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO is one ledger row. The partial unique index on order_id for
// accepted rows is created by postgres.Migrate.
type AssignmentDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID  `gorm:"type:uuid;not null;index"`
	DriverID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	Action              int        `gorm:"not null"`
	PreviousDriverID    *uuid.UUID `gorm:"type:uuid"`
	PreviousDriverName  *string
	PreviousDriverPhone *string
	AcceptedAt          time.Time `gorm:"not null"`
}

func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	dto := AssignmentDTO{
		ID:         a.ID().Bytes(),
		OrderID:    a.OrderID().Bytes(),
		DriverID:   a.DriverID().Bytes(),
		Action:     int(a.Action()),
		AcceptedAt: a.AcceptedAt(),
	}
	if prev := a.PreviousDriver(); prev != nil {
		id := prev.ID.Bytes()
		dto.PreviousDriverID = &id
		dto.PreviousDriverName = &prev.Name
		dto.PreviousDriverPhone = &prev.Phone
	}
	return dto
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	var previous *assignment.PreviousDriver
	if dto.PreviousDriverID != nil {
		prevID, prevErr := kernel.UUIDFromBytes((*dto.PreviousDriverID)[:])
		if prevErr != nil {
			return nil, prevErr
		}
		previous = &assignment.PreviousDriver{ID: prevID}
		if dto.PreviousDriverName != nil {
			previous.Name = *dto.PreviousDriverName
		}
		if dto.PreviousDriverPhone != nil {
			previous.Phone = *dto.PreviousDriverPhone
		}
	}

	return assignment.RestoreAssignment(id, orderID, driverID, assignment.Action(dto.Action), previous, dto.AcceptedAt)
}
