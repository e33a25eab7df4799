package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/metrics"
	"dispatch/internal/pkg/clock"
)

// CreateOrderCommandHandler builds the order, computing its total once, and
// stores it as Unaccepted. Produce lines are priced from the catalog.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.ProduceCatalog
	clock      clock.Clock
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.ProduceCatalog,
	clk clock.Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		clock:      clk,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	items, err := h.lineItems(ctx, cmd)
	if err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.BuyerID(), cmd.SellerID(), cmd.Kind(),
		items, cmd.Location(), cmd.Note(), h.clock.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.OrdersCreatedTotal.Inc()
	return nil
}

func (h CreateOrderCommandHandler) lineItems(ctx context.Context, cmd CreateOrderCommand) ([]order.LineItem, error) {
	items := make([]order.LineItem, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		name, price := line.Name, line.UnitPrice
		if cmd.Kind() == order.Produce {
			produce, err := h.catalog.Produce(ctx, line.ItemID)
			if err != nil {
				return nil, err
			}
			name, price = produce.Name, produce.UnitPrice
		}

		item, err := order.NewLineItem(line.ItemID, name, price, line.Quantity, line.Options)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
