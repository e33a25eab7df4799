// Package outboxrepo stores outbox messages and hands them to the dispatcher.
package outboxrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Kind        int        `gorm:"not null"`
	RecipientID *uuid.UUID `gorm:"type:uuid"`
	Key         string     `gorm:"not null"`
	Payload     []byte     `gorm:"type:bytea;not null"`
	Status      int        `gorm:"not null;index:idx_outbox_status_created,priority:1"`
	Attempts    int        `gorm:"not null;default:0"`
	LastError   string     `gorm:"not null;default:''"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime:false;index:idx_outbox_status_created,priority:2"`
	ProcessedAt *time.Time
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(m *outbox.Message) MessageDTO {
	var recipient *uuid.UUID
	if id := m.RecipientID(); id != nil {
		raw := id.Bytes()
		recipient = &raw
	}

	return MessageDTO{
		ID:          m.ID().Bytes(),
		Kind:        int(m.Kind()),
		RecipientID: recipient,
		Key:         m.Key(),
		Payload:     m.Payload(),
		Status:      int(m.Status()),
		Attempts:    m.Attempts(),
		LastError:   m.LastError(),
		CreatedAt:   m.CreatedAt(),
		ProcessedAt: m.ProcessedAt(),
	}
}

func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var recipient *kernel.UUID
	if dto.RecipientID != nil {
		rid, ridErr := kernel.UUIDFromBytes((*dto.RecipientID)[:])
		if ridErr != nil {
			return nil, ridErr
		}
		recipient = &rid
	}

	return outbox.RestoreMessage(
		id,
		outbox.Kind(dto.Kind),
		recipient,
		dto.Key,
		dto.Payload,
		outbox.Status(dto.Status),
		dto.Attempts,
		dto.LastError,
		dto.CreatedAt,
		dto.ProcessedAt,
	)
}
