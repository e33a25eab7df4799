package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MaxItemsPerOrder caps the summed quantity of all line items.
const MaxItemsPerOrder = 30

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the OrderStore. It owns the immutable order
// facts (buyer, seller, items, price, location, creation time) and the status
// machine in status.go.
//
// Order follows these invariants:
//   - total price is computed once from the line items and never changes
//   - the summed quantity of line items never exceeds MaxItemsPerOrder
//   - a produce order has exactly one line item
//   - status only changes along the transition table
type Order struct {
	id         kernel.UUID
	buyerID    kernel.UUID
	sellerID   *kernel.UUID
	kind       Kind
	items      []LineItem
	totalPrice decimal.Decimal
	location   string
	note       string
	status     Status
	createdAt  time.Time

	isConstructed bool
}

// NewOrder creates an Unaccepted order and computes its total price.
//
// Example:
//
//	item, _ := order.NewLineItem("sku-1", "Milk", decimal.RequireFromString("1.20"), 2, nil)
//	o, err := order.NewOrder(kernel.NewUUID(), buyerID, &sellerID, order.Necessities,
//	    []order.LineItem{item}, "12 Baker St", "", clk.Now())
func NewOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	sellerID *kernel.UUID,
	kind Kind,
	items []LineItem,
	location string,
	note string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Unaccepted,
		note:          note,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyerID(buyerID),
		o.setSellerID(sellerID),
		o.setKind(kind),
		o.setLocation(location),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	if err := o.setItems(items); err != nil {
		return nil, err
	}
	o.totalPrice = computeTotal(o.items)
	if o.totalPrice.GreaterThan(MaxAmount) {
		return nil, errs.NewValueIsOutOfRangeError("total price", o.totalPrice, 0, MaxAmount)
	}

	return o, nil
}

// RestoreOrder rebuilds an order from storage. The stored total is trusted
// as-is so later catalog price changes never leak into existing orders.
func RestoreOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	sellerID *kernel.UUID,
	kind Kind,
	items []LineItem,
	totalPrice decimal.Decimal,
	location string,
	note string,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		totalPrice:    totalPrice,
		note:          note,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyerID(buyerID),
		o.setSellerID(sellerID),
		o.setKind(kind),
		o.setLocation(location),
		o.setCreatedAt(createdAt),
		o.setItems(items),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status

	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID               { return o.id }
func (o *Order) BuyerID() kernel.UUID          { return o.buyerID }
func (o *Order) Kind() Kind                    { return o.kind }
func (o *Order) TotalPrice() decimal.Decimal   { return o.totalPrice }
func (o *Order) Location() string              { return o.location }
func (o *Order) Note() string                  { return o.note }
func (o *Order) Status() Status                { return o.status }
func (o *Order) CreatedAt() time.Time          { return o.createdAt }
func (o *Order) Items() []LineItem             { return slices.Clone(o.items) }
func (o *Order) IsPlacedBy(u kernel.UUID) bool { return o.buyerID.IsEqual(u) }

// SellerID is nil for produce orders sold directly by the platform.
func (o *Order) SellerID() *kernel.UUID {
	if o.sellerID == nil {
		return nil
	}
	id := *o.sellerID
	return &id
}

// TotalQuantity sums quantities over all line items.
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.items {
		total += item.Quantity()
	}
	return total
}

// Age is the time elapsed since creation at instant now.
func (o *Order) Age(now time.Time) time.Duration {
	return now.Sub(o.createdAt)
}

// Accept moves an Unaccepted order to Accepted.
func (o *Order) Accept() error {
	return o.transitionTo(Accepted)
}

// Pickup moves an Accepted order to InDelivery.
func (o *Order) Pickup() error {
	return o.transitionTo(InDelivery)
}

// Complete finishes delivery of a held order. Completion of expired or
// overdue goods goes through Dispose instead.
func (o *Order) Complete() error {
	if !o.status.IsHeld() {
		return errs.NewInvalidStateTransitionError("order", o.status, Completed)
	}
	return o.transitionTo(Completed)
}

// Expire marks an order that was never accepted in time.
func (o *Order) Expire() error {
	return o.transitionTo(Expired)
}

// MarkOverdue flags an accepted order that missed the delivery deadline.
func (o *Order) MarkOverdue() error {
	return o.transitionTo(DeliveryOverdue)
}

// Cancel withdraws the order on behalf of its buyer.
func (o *Order) Cancel(buyerID kernel.UUID) error {
	if !o.IsPlacedBy(buyerID) {
		return errs.NewForbiddenError(buyerID.String(), "order "+o.id.String())
	}
	return o.transitionTo(Cancelled)
}

// Dispose settles an Expired or DeliveryOverdue order and appends the reason to the note.
func (o *Order) Dispose(d Disposition, reason string) error {
	target, err := d.TargetStatus()
	if err != nil {
		return err
	}
	if o.status != Expired && o.status != DeliveryOverdue {
		return errs.NewInvalidStateTransitionError("order", o.status, target)
	}
	if err = o.transitionTo(target); err != nil {
		return err
	}

	entry := fmt.Sprintf("[%s]", d)
	if r := strings.TrimSpace(reason); r != "" {
		entry = fmt.Sprintf("[%s] %s", d, r)
	}
	if o.note == "" {
		o.note = entry
	} else {
		o.note = o.note + "\n" + entry
	}
	return nil
}

func (o *Order) transitionTo(target Status) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBuyerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyer id", err)
	}
	o.buyerID = id
	return nil
}

func (o *Order) setSellerID(id *kernel.UUID) error {
	if id == nil {
		o.sellerID = nil
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("seller id", err)
	}
	sellerID := *id
	o.sellerID = &sellerID
	return nil
}

func (o *Order) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	o.kind = kind
	return nil
}

func (o *Order) setLocation(location string) error {
	if strings.TrimSpace(location) == "" {
		return errs.NewValueIsRequiredError("location")
	}
	o.location = location
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt.UTC()
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}
	if o.kind == Produce && len(items) != 1 {
		return errs.NewValueIsInvalidErrorWithCause("line items", fmt.Errorf("produce order must have exactly one item, got %d", len(items)))
	}

	total := 0
	for _, item := range items {
		if item.quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("line items", fmt.Errorf("item %q was not built by NewLineItem", item.itemID))
		}
		// compared against the remaining allowance so the sum cannot overflow
		if item.quantity > MaxItemsPerOrder-total {
			return errs.NewRuleViolationError(
				errs.ErrQuantityLimitExceeded,
				fmt.Sprintf("more than %d items requested", MaxItemsPerOrder),
			)
		}
		total += item.quantity
	}

	o.items = slices.Clone(items)
	return nil
}

func computeTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
