// Package servers holds the wire types and echo router glue for the
// operations described in api/openapi.yaml. The code is maintained by hand
// in the layout of oapi-codegen's echo server output, and GetSwagger serves
// the embedded document instead of a generated copy. Routes are checked
// against the document in server_test.go, so a new operation needs both.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for NewOrderKind.
const (
	Necessities NewOrderKind = "necessities"
	Produce     NewOrderKind = "produce"
)

// Defines values for AssignmentStatus.
const (
	AssignmentStatusAccepted  AssignmentStatus = "accepted"
	AssignmentStatusCompleted AssignmentStatus = "completed"
)

// Defines values for DispositionDisposition.
const (
	CustomerStillWants DispositionDisposition = "customer_still_wants"
	Dispose            DispositionDisposition = "dispose"
	Donate             DispositionDisposition = "donate"
	ReturnToSeller     DispositionDisposition = "return_to_seller"
)

// Assignment defines model for Assignment.
type Assignment struct {
	AcceptedAt     time.Time          `json:"accepted_at"`
	DriverId       openapi_types.UUID `json:"driver_id"`
	DriverName     string             `json:"driver_name"`
	DriverPhone    string             `json:"driver_phone"`
	OrderId        openapi_types.UUID `json:"order_id"`
	PreviousDriver *PreviousDriver    `json:"previous_driver,omitempty"`
	Status         AssignmentStatus   `json:"status"`
}

// AssignmentStatus defines model for Assignment.Status.
type AssignmentStatus string

// BuyerAction defines model for BuyerAction.
type BuyerAction struct {
	BuyerId openapi_types.UUID `json:"buyer_id"`
}

// Created defines model for Created.
type Created struct {
	Id openapi_types.UUID `json:"id"`
}

// Disposition defines model for Disposition.
type Disposition struct {
	Disposition DispositionDisposition `json:"disposition"`
	Reason      *string                `json:"reason,omitempty"`
}

// DispositionDisposition defines model for Disposition.Disposition.
type DispositionDisposition string

// DriverAction defines model for DriverAction.
type DriverAction struct {
	DriverId openapi_types.UUID `json:"driver_id"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewDriver defines model for NewDriver.
type NewDriver struct {
	Name   string             `json:"name"`
	Phone  string             `json:"phone"`
	UserId openapi_types.UUID `json:"user_id"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	BuyerId  openapi_types.UUID  `json:"buyer_id"`
	Items    []NewOrderItem      `json:"items"`
	Kind     NewOrderKind        `json:"kind"`
	Location string              `json:"location"`
	Note     *string             `json:"note,omitempty"`
	SellerId *openapi_types.UUID `json:"seller_id,omitempty"`
}

// NewOrderKind defines model for NewOrder.Kind.
type NewOrderKind string

// NewOrderItem defines model for NewOrderItem.
type NewOrderItem struct {
	ItemId   string    `json:"item_id"`
	Name     *string   `json:"name,omitempty"`
	Options  *[]string `json:"options,omitempty"`
	Quantity int       `json:"quantity"`

	// UnitPrice Decimal string. Ignored for produce orders.
	UnitPrice *string `json:"unit_price,omitempty"`
}

// NewTransfer defines model for NewTransfer.
type NewTransfer struct {
	CandidatePhone string             `json:"candidate_phone"`
	DriverId       openapi_types.UUID `json:"driver_id"`
}

// Order defines model for Order.
type Order struct {
	BuyerId    openapi_types.UUID  `json:"buyer_id"`
	CreatedAt  time.Time           `json:"created_at"`
	Id         openapi_types.UUID  `json:"id"`
	Items      []OrderItem         `json:"items"`
	Kind       string              `json:"kind"`
	Location   string              `json:"location"`
	Note       string              `json:"note"`
	SellerId   *openapi_types.UUID `json:"seller_id,omitempty"`
	Status     string              `json:"status"`
	TotalPrice string              `json:"total_price"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	ItemId    string   `json:"item_id"`
	Name      string   `json:"name"`
	Options   []string `json:"options"`
	Quantity  int      `json:"quantity"`
	UnitPrice string   `json:"unit_price"`
}

// PendingTransfer defines model for PendingTransfer.
type PendingTransfer struct {
	CreatedAt     time.Time          `json:"created_at"`
	ExpiresAt     time.Time          `json:"expires_at"`
	Id            openapi_types.UUID `json:"id"`
	OrderId       openapi_types.UUID `json:"order_id"`
	ProposerId    openapi_types.UUID `json:"proposer_id"`
	ProposerName  string             `json:"proposer_name"`
	ProposerPhone string             `json:"proposer_phone"`
}

// PreviousDriver defines model for PreviousDriver.
type PreviousDriver struct {
	DriverId openapi_types.UUID `json:"driver_id"`
	Name     string             `json:"name"`
	Phone    string             `json:"phone"`
}

// CreateDriverJSONRequestBody defines body for CreateDriver for application/json ContentType.
type CreateDriverJSONRequestBody = NewDriver

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// AcceptOrderJSONRequestBody defines body for AcceptOrder for application/json ContentType.
type AcceptOrderJSONRequestBody = DriverAction

// PickupOrderJSONRequestBody defines body for PickupOrder for application/json ContentType.
type PickupOrderJSONRequestBody = DriverAction

// CompleteOrderJSONRequestBody defines body for CompleteOrder for application/json ContentType.
type CompleteOrderJSONRequestBody = DriverAction

// CancelOrderJSONRequestBody defines body for CancelOrder for application/json ContentType.
type CancelOrderJSONRequestBody = BuyerAction

// DisposeOrderJSONRequestBody defines body for DisposeOrder for application/json ContentType.
type DisposeOrderJSONRequestBody = Disposition

// ProposeTransferJSONRequestBody defines body for ProposeTransfer for application/json ContentType.
type ProposeTransferJSONRequestBody = NewTransfer

// AcceptTransferJSONRequestBody defines body for AcceptTransfer for application/json ContentType.
type AcceptTransferJSONRequestBody = DriverAction

// RejectTransferJSONRequestBody defines body for RejectTransfer for application/json ContentType.
type RejectTransferJSONRequestBody = DriverAction
