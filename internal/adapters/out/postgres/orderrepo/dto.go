// Package orderrepo maps order aggregates and their line items to the orders
// and order_items tables.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table. The composite status/created_at
// index serves the FIFO listing and the reaper sweeps.
type OrderDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BuyerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SellerID   *uuid.UUID      `gorm:"type:uuid"`
	Kind       int             `gorm:"not null"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Location   string          `gorm:"not null"`
	Note       string          `gorm:"not null;default:''"`
	Status     int             `gorm:"not null;index:idx_orders_status_created,priority:1"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime:false;index:idx_orders_status_created,priority:2"`
	Items      []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO keeps the position so items come back in the order they were placed.
type OrderItemDTO struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	ItemID    string          `gorm:"not null"`
	Name      string          `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity  int             `gorm:"not null"`
	Options   pq.StringArray  `gorm:"type:text[]"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	var sellerID *uuid.UUID
	if id := o.SellerID(); id != nil {
		raw := id.Bytes()
		sellerID = &raw
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   o.ID().Bytes(),
			Position:  i,
			ItemID:    item.ItemID(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice(),
			Quantity:  item.Quantity(),
			Options:   pq.StringArray(item.Options()),
		})
	}

	return OrderDTO{
		ID:         o.ID().Bytes(),
		BuyerID:    o.BuyerID().Bytes(),
		SellerID:   sellerID,
		Kind:       int(o.Kind()),
		TotalPrice: o.TotalPrice(),
		Location:   o.Location(),
		Note:       o.Note(),
		Status:     int(o.Status()),
		CreatedAt:  o.CreatedAt(),
		Items:      items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	var sellerID *kernel.UUID
	if dto.SellerID != nil {
		sID, sellerErr := kernel.UUIDFromBytes((*dto.SellerID)[:])
		if sellerErr != nil {
			return nil, sellerErr
		}
		sellerID = &sID
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, it := range dto.Items {
		li, itemErr := order.NewLineItem(it.ItemID, it.Name, it.UnitPrice, it.Quantity, it.Options)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, li)
	}

	return order.RestoreOrder(
		id,
		buyerID,
		sellerID,
		order.Kind(dto.Kind),
		items,
		dto.TotalPrice,
		dto.Location,
		dto.Note,
		order.Status(dto.Status),
		dto.CreatedAt,
	)
}
