package http

import (
	"net/http"
	"strings"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := newCreateOrderCommand(body)
	if err != nil {
		return s.fail(ctx, "create_order", err)
	}

	if err = s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "create_order", err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: cmd.OrderID().Bytes()})
}

func newCreateOrderCommand(body servers.NewOrder) (commands.CreateOrderCommand, error) {
	buyerID, err := toKernel("buyer id", body.BuyerId)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	var sellerID *kernel.UUID
	if body.SellerId != nil {
		id, idErr := toKernel("seller id", *body.SellerId)
		if idErr != nil {
			return commands.CreateOrderCommand{}, idErr
		}
		sellerID = &id
	}

	kind, err := parseKind(body.Kind)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	lines := make([]commands.OrderLine, 0, len(body.Items))
	for _, item := range body.Items {
		line := commands.OrderLine{
			ItemID:    item.ItemId,
			Quantity:  item.Quantity,
			UnitPrice: decimal.Zero,
		}
		if item.Name != nil {
			line.Name = *item.Name
		}
		if item.Options != nil {
			line.Options = *item.Options
		}
		if item.UnitPrice != nil && kind != order.Produce {
			price, priceErr := decimal.NewFromString(*item.UnitPrice)
			if priceErr != nil {
				return commands.CreateOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("unit price", priceErr)
			}
			line.UnitPrice = price
		}
		lines = append(lines, line)
	}

	var note string
	if body.Note != nil {
		note = *body.Note
	}

	return commands.NewCreateOrderCommand(kernel.NewUUID(), buyerID, sellerID, kind, lines, body.Location, note)
}

func parseKind(kind servers.NewOrderKind) (order.Kind, error) {
	switch kind {
	case servers.Necessities:
		return order.Necessities, nil
	case servers.Produce:
		return order.Produce, nil
	default:
		return order.UnknownKind, errs.NewValueIsInvalidError("kind")
	}
}

// ListUnacceptedOrders handles GET /api/v1/orders/unaccepted. Stale orders
// are expired before the pool is read.
func (s *Server) ListUnacceptedOrders(ctx echo.Context) error {
	views, err := s.h.ListUnaccepted.Handle(ctx.Request().Context(), queries.NewListUnacceptedOrdersQuery())
	if err != nil {
		return s.fail(ctx, "list_unaccepted_orders", err)
	}

	response := make([]servers.Order, len(views))
	for i, v := range views {
		response[i] = toOrder(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// ListBuyerOrders handles GET /api/v1/buyers/{buyerId}/orders.
func (s *Server) ListBuyerOrders(ctx echo.Context, buyerId openapi_types.UUID) error {
	return s.listOrdersByParty(ctx, "list_buyer_orders", queries.Buyer, buyerId)
}

// ListSellerOrders handles GET /api/v1/sellers/{sellerId}/orders.
func (s *Server) ListSellerOrders(ctx echo.Context, sellerId openapi_types.UUID) error {
	return s.listOrdersByParty(ctx, "list_seller_orders", queries.Seller, sellerId)
}

func (s *Server) listOrdersByParty(ctx echo.Context, operation string, party queries.Party, partyID openapi_types.UUID) error {
	id, err := toKernel(party.String()+" id", partyID)
	if err != nil {
		return s.fail(ctx, operation, err)
	}
	query, err := queries.NewListOrdersByPartyQuery(party, id)
	if err != nil {
		return s.fail(ctx, operation, err)
	}

	views, err := s.h.OrdersByParty.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, operation, err)
	}

	response := make([]servers.Order, len(views))
	for i, v := range views {
		response[i] = toOrder(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := toKernel("order id", orderId)
	if err != nil {
		return s.fail(ctx, "get_order", err)
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, "get_order", err)
	}

	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "get_order", err)
	}
	return ctx.JSON(http.StatusOK, toOrder(view))
}

// GetAssignment handles GET /api/v1/orders/{orderId}/assignment.
func (s *Server) GetAssignment(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := toKernel("order id", orderId)
	if err != nil {
		return s.fail(ctx, "get_assignment", err)
	}
	query, err := queries.NewGetAssignmentInfoQuery(id)
	if err != nil {
		return s.fail(ctx, "get_assignment", err)
	}

	info, err := s.h.GetAssignment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "get_assignment", err)
	}

	response := servers.Assignment{
		OrderId:     info.OrderID.Bytes(),
		DriverId:    info.DriverID.Bytes(),
		DriverName:  info.DriverName,
		DriverPhone: info.DriverPhone,
		Status:      servers.AssignmentStatusAccepted,
		AcceptedAt:  info.AcceptedAt,
	}
	if info.Completed {
		response.Status = servers.AssignmentStatusCompleted
	}
	if info.Previous != nil {
		response.PreviousDriver = &servers.PreviousDriver{
			DriverId: info.Previous.DriverID.Bytes(),
			Name:     info.Previous.Name,
			Phone:    info.Previous.Phone,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// AcceptOrder handles POST /api/v1/orders/{orderId}/accept.
func (s *Server) AcceptOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, driverID, err := bindDriverAction(ctx, orderId)
	if err != nil {
		return s.fail(ctx, "accept_order", err)
	}
	cmd, err := commands.NewAcceptOrderCommand(orderID, driverID)
	if err != nil {
		return s.fail(ctx, "accept_order", err)
	}
	if err = s.h.AcceptOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "accept_order", err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// PickupOrder handles POST /api/v1/orders/{orderId}/pickup.
func (s *Server) PickupOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, driverID, err := bindDriverAction(ctx, orderId)
	if err != nil {
		return s.fail(ctx, "pickup_order", err)
	}
	cmd, err := commands.NewPickupOrderCommand(orderID, driverID)
	if err != nil {
		return s.fail(ctx, "pickup_order", err)
	}
	if err = s.h.PickupOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "pickup_order", err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/{orderId}/complete.
func (s *Server) CompleteOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, driverID, err := bindDriverAction(ctx, orderId)
	if err != nil {
		return s.fail(ctx, "complete_order", err)
	}
	cmd, err := commands.NewCompleteOrderCommand(orderID, driverID)
	if err != nil {
		return s.fail(ctx, "complete_order", err)
	}
	if err = s.h.CompleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "complete_order", err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.CancelOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := toKernel("order id", orderId)
	if err != nil {
		return s.fail(ctx, "cancel_order", err)
	}
	buyerID, err := toKernel("buyer id", body.BuyerId)
	if err != nil {
		return s.fail(ctx, "cancel_order", err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, buyerID)
	if err != nil {
		return s.fail(ctx, "cancel_order", err)
	}
	if err = s.h.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "cancel_order", err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DisposeOrder handles POST /api/v1/orders/{orderId}/dispose.
func (s *Server) DisposeOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.DisposeOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := toKernel("order id", orderId)
	if err != nil {
		return s.fail(ctx, "dispose_order", err)
	}
	disposition, err := order.ParseDisposition(string(body.Disposition))
	if err != nil {
		return s.fail(ctx, "dispose_order", err)
	}
	var reason string
	if body.Reason != nil {
		reason = *body.Reason
	}

	cmd, err := commands.NewDisposeOrderCommand(orderID, disposition, reason)
	if err != nil {
		return s.fail(ctx, "dispose_order", err)
	}
	if err = s.h.DisposeOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "dispose_order", err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// bindDriverAction reads the acting driver from a DriverAction body.
func bindDriverAction(ctx echo.Context, pathID openapi_types.UUID) (kernel.UUID, kernel.UUID, error) {
	var body servers.DriverAction
	if err := ctx.Bind(&body); err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	id, err := toKernel("path id", pathID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	driverID, err := toKernel("driver id", body.DriverId)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return id, driverID, nil
}

func toOrder(v queries.OrderView) servers.Order {
	items := make([]servers.OrderItem, len(v.Items))
	for i, item := range v.Items {
		options := item.Options
		if options == nil {
			options = []string{}
		}
		items[i] = servers.OrderItem{
			ItemId:    item.ItemID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
			Options:   options,
		}
	}

	o := servers.Order{
		Id:         v.ID.Bytes(),
		BuyerId:    v.BuyerID.Bytes(),
		Kind:       strings.ToLower(v.Kind.String()),
		Status:     v.Status.String(),
		TotalPrice: v.TotalPrice.StringFixed(2),
		Location:   v.Location,
		Note:       v.Note,
		CreatedAt:  v.CreatedAt,
		Items:      items,
	}
	if v.SellerID != nil {
		seller := v.SellerID.Bytes()
		o.SellerId = &seller
	}
	return o
}
