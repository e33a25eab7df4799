package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetAssignmentInfoQueryHandler struct {
	db *gorm.DB
}

func NewGetAssignmentInfoQueryHandler(db *gorm.DB) GetAssignmentInfoQueryHandler {
	return GetAssignmentInfoQueryHandler{db: db}
}

// Handle prefers the Accepted row; an order that was delivered reports its
// latest Completed row instead.
func (h GetAssignmentInfoQueryHandler) Handle(ctx context.Context, query GetAssignmentInfoQuery) (AssignmentInfo, error) {
	if err := query.Validate(); err != nil {
		return AssignmentInfo{}, err
	}

	var (
		info      AssignmentInfo
		driverID  uuid.UUID
		action    int
		prevID    *uuid.UUID
		prevName  sql.NullString
		prevPhone sql.NullString
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			a.driver_id,
			d.name,
			d.phone,
			a.action,
			a.accepted_at,
			a.previous_driver_id,
			a.previous_driver_name,
			a.previous_driver_phone
		FROM assignments a
		JOIN drivers d ON d.id = a.driver_id
		WHERE a.order_id = ?
		ORDER BY a.action ASC, a.accepted_at DESC
		LIMIT 1
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(&driverID, &info.DriverName, &info.DriverPhone, &action, &info.AcceptedAt,
		&prevID, &prevName, &prevPhone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AssignmentInfo{}, errs.NewObjectNotFoundError("assignment for order", query.OrderID().String())
		}
		return AssignmentInfo{}, err
	}

	info.OrderID = query.OrderID()
	if info.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
		return AssignmentInfo{}, err
	}
	info.Completed = assignment.Action(action) == assignment.Completed
	info.AcceptedAt = info.AcceptedAt.UTC()

	if prevID != nil {
		pID, pErr := kernel.UUIDFromBytes(prevID[:])
		if pErr != nil {
			return AssignmentInfo{}, pErr
		}
		info.Previous = &PreviousDriverInfo{DriverID: pID, Name: prevName.String, Phone: prevPhone.String}
	}

	return info, nil
}
