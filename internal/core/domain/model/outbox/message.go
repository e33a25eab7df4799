// Package outbox models side effects that are recorded inside a domain
// transaction and delivered after it commits: notices to buyers and drivers,
// and settlement events for the payment collaborator.
package outbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrMessageIsNotConstructed = errors.New("Message must be created via NewNotification or NewSettlement")

type Kind int

const (
	UnknownKind Kind = iota
	// Notification is a text addressed to one user through the NotificationGateway.
	Notification
	// Settlement tells the payment collaborator an order was completed.
	Settlement
)

func (k Kind) String() string {
	switch k {
	case Notification:
		return "notification"
	case Settlement:
		return "settlement"
	default:
		return "unknown"
	}
}

type Status int

const (
	UnknownStatus Status = iota
	Pending
	Processing
	Delivered
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Processing:
		return "processing"
	case Delivered:
		return "delivered"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// SettlementEvent is the payload consumed by the payment collaborator.
type SettlementEvent struct {
	OrderID     string          `json:"order_id"`
	CompletedAt time.Time       `json:"completed_at"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type Message struct {
	id          kernel.UUID
	kind        Kind
	recipientID *kernel.UUID
	key         string
	payload     []byte
	status      Status
	attempts    int
	lastError   string
	createdAt   time.Time
	processedAt *time.Time

	isConstructed bool
}

// NewNotification records a text for recipientID.
func NewNotification(id, recipientID kernel.UUID, text string, createdAt time.Time) (*Message, error) {
	if err := errors.Join(id.Validate(), recipientID.Validate()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errs.NewValueIsRequiredError("notification text")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("created at")
	}

	rid := recipientID
	return &Message{
		id:            id,
		kind:          Notification,
		recipientID:   &rid,
		key:           recipientID.String(),
		payload:       []byte(text),
		status:        Pending,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

// NewSettlement records that orderID was completed at completedAt for total.
// The order id is the message key so events of one order stay ordered.
func NewSettlement(id, orderID kernel.UUID, completedAt time.Time, total decimal.Decimal) (*Message, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if completedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("completed at")
	}

	payload, err := json.Marshal(SettlementEvent{
		OrderID:     orderID.String(),
		CompletedAt: completedAt.UTC(),
		TotalPrice:  total,
	})
	if err != nil {
		return nil, fmt.Errorf("encode settlement event: %w", err)
	}

	return &Message{
		id:            id,
		kind:          Settlement,
		key:           orderID.String(),
		payload:       payload,
		status:        Pending,
		createdAt:     completedAt.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreMessage rebuilds a message from storage.
func RestoreMessage(
	id kernel.UUID,
	kind Kind,
	recipientID *kernel.UUID,
	key string,
	payload []byte,
	status Status,
	attempts int,
	lastError string,
	createdAt time.Time,
	processedAt *time.Time,
) (*Message, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if kind != Notification && kind != Settlement {
		return nil, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a valid kind", kind))
	}
	if status < Pending || status > Failed {
		return nil, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", status))
	}
	if kind == Notification && recipientID == nil {
		return nil, errs.NewValueIsRequiredError("recipient id")
	}

	return &Message{
		id:            id,
		kind:          kind,
		recipientID:   recipientID,
		key:           key,
		payload:       payload,
		status:        status,
		attempts:      attempts,
		lastError:     lastError,
		createdAt:     createdAt,
		processedAt:   processedAt,
		isConstructed: true,
	}, nil
}

func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

func (m *Message) ID() kernel.UUID {
	return m.id
}

func (m *Message) Kind() Kind {
	return m.kind
}

// RecipientID is nil for settlement messages.
func (m *Message) RecipientID() *kernel.UUID {
	return m.recipientID
}

func (m *Message) Key() string {
	return m.key
}

func (m *Message) Payload() []byte {
	return m.payload
}

// Text is the notification body.
func (m *Message) Text() string {
	return string(m.payload)
}

func (m *Message) Status() Status {
	return m.status
}

func (m *Message) Attempts() int {
	return m.attempts
}

func (m *Message) LastError() string {
	return m.lastError
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) ProcessedAt() *time.Time {
	return m.processedAt
}

// MarkProcessing claims a pending message for delivery.
func (m *Message) MarkProcessing() error {
	if m.status != Pending {
		return errs.NewInvalidStateTransitionError("outbox message", m.status, Processing)
	}
	m.status = Processing
	m.attempts++
	return nil
}

func (m *Message) MarkDelivered(at time.Time) error {
	if m.status != Processing {
		return errs.NewInvalidStateTransitionError("outbox message", m.status, Delivered)
	}
	m.status = Delivered
	m.lastError = ""
	processed := at.UTC()
	m.processedAt = &processed
	return nil
}

// MarkFailed records the delivery failure. Failed messages are not retried.
func (m *Message) MarkFailed(at time.Time, reason string) error {
	if m.status != Processing {
		return errs.NewInvalidStateTransitionError("outbox message", m.status, Failed)
	}
	m.status = Failed
	m.lastError = reason
	processed := at.UTC()
	m.processedAt = &processed
	return nil
}
