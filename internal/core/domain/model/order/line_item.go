package order

import (
	"fmt"
	"slices"
	"strings"

	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is stored as numeric(12,2).
const MoneyScale = 2

// MaxAmount is the largest unit or total price an order can carry.
var MaxAmount = decimal.New(1, 10).Sub(decimal.New(1, -MoneyScale))

// LineItem is one immutable position of an order.
type LineItem struct {
	itemID    string
	name      string
	unitPrice decimal.Decimal
	quantity  int
	options   []string
}

// NewLineItem validates a position. Prices must be non-negative whole cents
// and quantities positive.
func NewLineItem(itemID, name string, unitPrice decimal.Decimal, quantity int, options []string) (LineItem, error) {
	if strings.TrimSpace(itemID) == "" {
		return LineItem{}, errs.NewValueIsRequiredError("item id")
	}
	if strings.TrimSpace(name) == "" {
		return LineItem{}, errs.NewValueIsRequiredError("item name")
	}
	if unitPrice.IsNegative() {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%s is negative", unitPrice))
	}
	if !unitPrice.Equal(unitPrice.Truncate(MoneyScale)) {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%s has more than %d decimal places", unitPrice, MoneyScale))
	}
	if unitPrice.GreaterThan(MaxAmount) {
		return LineItem{}, errs.NewValueIsOutOfRangeError("unit price", unitPrice, 0, MaxAmount)
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	return LineItem{
		itemID:    itemID,
		name:      name,
		unitPrice: unitPrice,
		quantity:  quantity,
		options:   slices.Clone(options),
	}, nil
}

func (i LineItem) ItemID() string             { return i.itemID }
func (i LineItem) Name() string               { return i.name }
func (i LineItem) UnitPrice() decimal.Decimal { return i.unitPrice }
func (i LineItem) Quantity() int              { return i.quantity }

// Options returns a copy of the customization options.
func (i LineItem) Options() []string {
	return slices.Clone(i.options)
}

// Subtotal is unit price times quantity.
func (i LineItem) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}
