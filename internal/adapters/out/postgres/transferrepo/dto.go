// Package transferrepo persists pending transfer offers.
package transferrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/transfer"

	"github.com/google/uuid"
)

type PendingTransferDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ProposerID    uuid.UUID `gorm:"type:uuid;not null"`
	ProposerName  string    `gorm:"not null"`
	ProposerPhone string    `gorm:"not null"`
	NewDriverID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Status        int       `gorm:"not null;index"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime:false"`
	ExpiresAt     time.Time `gorm:"not null;index"`
}

func (PendingTransferDTO) TableName() string {
	return "pending_transfers"
}

func fromDomain(t *transfer.PendingTransfer) PendingTransferDTO {
	p := t.Proposer()
	return PendingTransferDTO{
		ID:            t.ID().Bytes(),
		OrderID:       t.OrderID().Bytes(),
		ProposerID:    p.DriverID.Bytes(),
		ProposerName:  p.Name,
		ProposerPhone: p.Phone,
		NewDriverID:   t.NewDriverID().Bytes(),
		Status:        int(t.Status()),
		CreatedAt:     t.CreatedAt(),
		ExpiresAt:     t.ExpiresAt(),
	}
}

func toDomain(dto PendingTransferDTO) (*transfer.PendingTransfer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	proposerID, err := kernel.UUIDFromBytes(dto.ProposerID[:])
	if err != nil {
		return nil, err
	}
	newDriverID, err := kernel.UUIDFromBytes(dto.NewDriverID[:])
	if err != nil {
		return nil, err
	}

	return transfer.RestorePendingTransfer(
		id,
		orderID,
		transfer.Proposer{DriverID: proposerID, Name: dto.ProposerName, Phone: dto.ProposerPhone},
		newDriverID,
		transfer.Status(dto.Status),
		dto.CreatedAt,
		dto.ExpiresAt,
	)
}
