// Package queries contains the read side. Handlers run raw SQL against the
// read connection and return flat projections; they never lock rows.
package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is the public projection of an order.
type OrderView struct {
	ID         kernel.UUID
	BuyerID    kernel.UUID
	SellerID   *kernel.UUID
	Kind       order.Kind
	Status     order.Status
	TotalPrice decimal.Decimal
	Location   string
	Note       string
	CreatedAt  time.Time
	Items      []OrderItemView
}

type OrderItemView struct {
	ItemID    string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Options   []string
}

const orderColumns = `id, buyer_id, seller_id, kind, status, total_price, location, note, created_at`

// scanOrders reads rows selected with orderColumns and attaches their items.
func scanOrders(ctx context.Context, db *gorm.DB, rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]OrderView, error) {
	views := make([]OrderView, 0)
	ids := make([]uuid.UUID, 0)

	for rows.Next() {
		var (
			view     OrderView
			id       uuid.UUID
			buyerID  uuid.UUID
			sellerID *uuid.UUID
			kind     int
			status   int
		)
		if err := rows.Scan(&id, &buyerID, &sellerID, &kind, &status,
			&view.TotalPrice, &view.Location, &view.Note, &view.CreatedAt); err != nil {
			return nil, err
		}

		var err error
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
			return nil, err
		}
		if sellerID != nil {
			sID, sErr := kernel.UUIDFromBytes(sellerID[:])
			if sErr != nil {
				return nil, sErr
			}
			view.SellerID = &sID
		}
		view.Kind = order.Kind(kind)
		view.Status = order.Status(status)
		view.CreatedAt = view.CreatedAt.UTC()

		views = append(views, view)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return views, nil
	}

	items, err := loadItems(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	for i := range views {
		views[i].Items = items[views[i].ID.Bytes()]
	}
	return views, nil
}

func loadItems(ctx context.Context, db *gorm.DB, orderIDs []uuid.UUID) (map[uuid.UUID][]OrderItemView, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT order_id, item_id, name, unit_price, quantity, options
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, orderIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]OrderItemView, len(orderIDs))
	for rows.Next() {
		var (
			orderID uuid.UUID
			item    OrderItemView
			options pq.StringArray
		)
		if err = rows.Scan(&orderID, &item.ItemID, &item.Name, &item.UnitPrice, &item.Quantity, &options); err != nil {
			return nil, err
		}
		item.Options = []string(options)
		items[orderID] = append(items[orderID], item)
	}

	return items, rows.Err()
}
