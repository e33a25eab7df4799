package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is one requested item. For produce orders only ItemID, Quantity
// and Options are used; name and price come from the catalog.
type OrderLine struct {
	ItemID    string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Options   []string
}

// CreateOrderCommand places a new order into the Unaccepted pool.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), buyerID, &sellerID, order.Necessities,
//	    []OrderLine{{ItemID: "sku-1", Name: "Milk", UnitPrice: decimal.RequireFromString("1.20"), Quantity: 2}},
//	    "Dorm 4, room 12", "ring twice")
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	buyerID  kernel.UUID
	sellerID *kernel.UUID
	kind     order.Kind
	lines    []OrderLine
	location string
	note     string

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID, buyerID kernel.UUID,
	sellerID *kernel.UUID,
	kind order.Kind,
	lines []OrderLine,
	location, note string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		sellerID: sellerID,
		note:     note,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyerID(buyerID),
		cmd.setKind(kind),
		cmd.setLines(lines),
		cmd.setLocation(location),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

func (c CreateOrderCommand) SellerID() *kernel.UUID {
	return c.sellerID
}

func (c CreateOrderCommand) Kind() order.Kind {
	return c.kind
}

func (c CreateOrderCommand) Lines() []OrderLine {
	return c.lines
}

func (c CreateOrderCommand) Location() string {
	return c.location
}

func (c CreateOrderCommand) Note() string {
	return c.note
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setBuyerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyer id", err)
	}
	c.buyerID = id
	return nil
}

func (c *CreateOrderCommand) setKind(kind order.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("order lines")
	}
	c.lines = lines
	return nil
}

func (c *CreateOrderCommand) setLocation(location string) error {
	if strings.TrimSpace(location) == "" {
		return errs.NewValueIsRequiredError("location")
	}
	c.location = location
	return nil
}
