// Package catalogrepo serves platform-sold produce prices from the produce table.
package catalogrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProduceDTO struct {
	ItemID    string          `gorm:"primaryKey"`
	Name      string          `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (ProduceDTO) TableName() string {
	return "produce"
}

// GormProduceCatalog implements ports.ProduceCatalog.
type GormProduceCatalog struct {
	db *gorm.DB
}

func NewGormProduceCatalog(db *gorm.DB) *GormProduceCatalog {
	return &GormProduceCatalog{db: db}
}

func (c *GormProduceCatalog) Produce(ctx context.Context, itemID string) (ports.ProduceItem, error) {
	var dto ProduceDTO
	if err := c.db.WithContext(ctx).Take(&dto, "item_id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ProduceItem{}, errs.NewObjectNotFoundError("produce item", itemID)
		}
		return ports.ProduceItem{}, err
	}

	return ports.ProduceItem{ItemID: dto.ItemID, Name: dto.Name, UnitPrice: dto.UnitPrice}, nil
}

// Upsert inserts an item or replaces its name and price. Orders already
// placed keep the price they were created with.
func (c *GormProduceCatalog) Upsert(ctx context.Context, item ports.ProduceItem) error {
	if item.ItemID == "" {
		return errs.NewValueIsRequiredError("item id")
	}
	if item.UnitPrice.IsNegative() {
		return errs.NewValueIsInvalidError("unit price")
	}

	dto := ProduceDTO{ItemID: item.ItemID, Name: item.Name, UnitPrice: item.UnitPrice}
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "unit_price"}),
		}).
		Create(&dto).Error
}
