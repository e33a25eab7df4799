package servers

import (
	"context"
	"fmt"
	"net/http"

	"dispatch/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Orders placed by a buyer, newest first
	// (GET /buyers/{buyerId}/orders)
	ListBuyerOrders(ctx echo.Context, buyerId openapi_types.UUID) error
	// Register a driver
	// (POST /drivers)
	CreateDriver(ctx echo.Context) error
	// Open transfer offers addressed to a driver
	// (GET /drivers/{driverId}/transfers)
	ListPendingTransfers(ctx echo.Context, driverId openapi_types.UUID) error
	// Place an order
	// (POST /orders)
	CreateOrder(ctx echo.Context) error
	// Orders waiting for a driver, oldest first
	// (GET /orders/unaccepted)
	ListUnacceptedOrders(ctx echo.Context) error

	// (GET /orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error

	// (POST /orders/{orderId}/accept)
	AcceptOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Who holds the order
	// (GET /orders/{orderId}/assignment)
	GetAssignment(ctx echo.Context, orderId openapi_types.UUID) error

	// (POST /orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error

	// (POST /orders/{orderId}/complete)
	CompleteOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Settle an expired or overdue order
	// (POST /orders/{orderId}/dispose)
	DisposeOrder(ctx echo.Context, orderId openapi_types.UUID) error

	// (POST /orders/{orderId}/pickup)
	PickupOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Offer the order to another driver
	// (POST /orders/{orderId}/transfers)
	ProposeTransfer(ctx echo.Context, orderId openapi_types.UUID) error
	// Orders sold by a seller, newest first
	// (GET /sellers/{sellerId}/orders)
	ListSellerOrders(ctx echo.Context, sellerId openapi_types.UUID) error

	// (POST /transfers/{transferId}/accept)
	AcceptTransfer(ctx echo.Context, transferId openapi_types.UUID) error

	// (POST /transfers/{transferId}/reject)
	RejectTransfer(ctx echo.Context, transferId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// ListBuyerOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListBuyerOrders(ctx echo.Context) error {
	buyerId, err := bindUUID(ctx, "buyerId")
	if err != nil {
		return err
	}
	return w.Handler.ListBuyerOrders(ctx, buyerId)
}

// CreateDriver converts echo context to params.
func (w *ServerInterfaceWrapper) CreateDriver(ctx echo.Context) error {
	return w.Handler.CreateDriver(ctx)
}

// ListPendingTransfers converts echo context to params.
func (w *ServerInterfaceWrapper) ListPendingTransfers(ctx echo.Context) error {
	driverId, err := bindUUID(ctx, "driverId")
	if err != nil {
		return err
	}
	return w.Handler.ListPendingTransfers(ctx, driverId)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// ListUnacceptedOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListUnacceptedOrders(ctx echo.Context) error {
	return w.Handler.ListUnacceptedOrders(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

// AcceptOrder converts echo context to params.
func (w *ServerInterfaceWrapper) AcceptOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.AcceptOrder(ctx, orderId)
}

// GetAssignment converts echo context to params.
func (w *ServerInterfaceWrapper) GetAssignment(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetAssignment(ctx, orderId)
}

// CancelOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, orderId)
}

// CompleteOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CompleteOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.CompleteOrder(ctx, orderId)
}

// DisposeOrder converts echo context to params.
func (w *ServerInterfaceWrapper) DisposeOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.DisposeOrder(ctx, orderId)
}

// PickupOrder converts echo context to params.
func (w *ServerInterfaceWrapper) PickupOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.PickupOrder(ctx, orderId)
}

// ProposeTransfer converts echo context to params.
func (w *ServerInterfaceWrapper) ProposeTransfer(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ProposeTransfer(ctx, orderId)
}

// ListSellerOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListSellerOrders(ctx echo.Context) error {
	sellerId, err := bindUUID(ctx, "sellerId")
	if err != nil {
		return err
	}
	return w.Handler.ListSellerOrders(ctx, sellerId)
}

// AcceptTransfer converts echo context to params.
func (w *ServerInterfaceWrapper) AcceptTransfer(ctx echo.Context) error {
	transferId, err := bindUUID(ctx, "transferId")
	if err != nil {
		return err
	}
	return w.Handler.AcceptTransfer(ctx, transferId)
}

// RejectTransfer converts echo context to params.
func (w *ServerInterfaceWrapper) RejectTransfer(ctx echo.Context) error {
	transferId, err := bindUUID(ctx, "transferId")
	if err != nil {
		return err
	}
	return w.Handler.RejectTransfer(ctx, transferId)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends baseURL to the paths.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/buyers/:buyerId/orders", wrapper.ListBuyerOrders)
	router.POST(baseURL+"/drivers", wrapper.CreateDriver)
	router.GET(baseURL+"/drivers/:driverId/transfers", wrapper.ListPendingTransfers)
	router.POST(baseURL+"/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/orders/unaccepted", wrapper.ListUnacceptedOrders)
	router.GET(baseURL+"/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/orders/:orderId/accept", wrapper.AcceptOrder)
	router.GET(baseURL+"/orders/:orderId/assignment", wrapper.GetAssignment)
	router.POST(baseURL+"/orders/:orderId/cancel", wrapper.CancelOrder)
	router.POST(baseURL+"/orders/:orderId/complete", wrapper.CompleteOrder)
	router.POST(baseURL+"/orders/:orderId/dispose", wrapper.DisposeOrder)
	router.POST(baseURL+"/orders/:orderId/pickup", wrapper.PickupOrder)
	router.POST(baseURL+"/orders/:orderId/transfers", wrapper.ProposeTransfer)
	router.GET(baseURL+"/sellers/:sellerId/orders", wrapper.ListSellerOrders)
	router.POST(baseURL+"/transfers/:transferId/accept", wrapper.AcceptTransfer)
	router.POST(baseURL+"/transfers/:transferId/reject", wrapper.RejectTransfer)
}

// GetSwagger returns the parsed and validated OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	return api.Load(context.Background())
}
