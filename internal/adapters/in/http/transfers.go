package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ProposeTransfer handles POST /api/v1/orders/{orderId}/transfers.
func (s *Server) ProposeTransfer(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.ProposeTransferJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := toKernel("order id", orderId)
	if err != nil {
		return s.fail(ctx, "propose_transfer", err)
	}
	driverID, err := toKernel("driver id", body.DriverId)
	if err != nil {
		return s.fail(ctx, "propose_transfer", err)
	}

	cmd, err := commands.NewProposeTransferCommand(kernel.NewUUID(), orderID, driverID, body.CandidatePhone)
	if err != nil {
		return s.fail(ctx, "propose_transfer", err)
	}
	if err = s.h.ProposeTransfer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "propose_transfer", err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: cmd.TransferID().Bytes()})
}

// AcceptTransfer handles POST /api/v1/transfers/{transferId}/accept.
func (s *Server) AcceptTransfer(ctx echo.Context, transferId openapi_types.UUID) error {
	transferID, driverID, err := bindDriverAction(ctx, transferId)
	if err != nil {
		return s.fail(ctx, "accept_transfer", err)
	}
	cmd, err := commands.NewAcceptTransferCommand(transferID, driverID)
	if err != nil {
		return s.fail(ctx, "accept_transfer", err)
	}
	if err = s.h.AcceptTransfer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "accept_transfer", err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RejectTransfer handles POST /api/v1/transfers/{transferId}/reject.
func (s *Server) RejectTransfer(ctx echo.Context, transferId openapi_types.UUID) error {
	transferID, driverID, err := bindDriverAction(ctx, transferId)
	if err != nil {
		return s.fail(ctx, "reject_transfer", err)
	}
	cmd, err := commands.NewRejectTransferCommand(transferID, driverID)
	if err != nil {
		return s.fail(ctx, "reject_transfer", err)
	}
	if err = s.h.RejectTransfer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "reject_transfer", err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ListPendingTransfers handles GET /api/v1/drivers/{driverId}/transfers.
func (s *Server) ListPendingTransfers(ctx echo.Context, driverId openapi_types.UUID) error {
	id, err := toKernel("driver id", driverId)
	if err != nil {
		return s.fail(ctx, "list_pending_transfers", err)
	}
	query, err := queries.NewListPendingTransfersQuery(id)
	if err != nil {
		return s.fail(ctx, "list_pending_transfers", err)
	}

	views, err := s.h.PendingTransfers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "list_pending_transfers", err)
	}

	response := make([]servers.PendingTransfer, len(views))
	for i, v := range views {
		response[i] = servers.PendingTransfer{
			Id:            v.ID.Bytes(),
			OrderId:       v.OrderID.Bytes(),
			ProposerId:    v.ProposerID.Bytes(),
			ProposerName:  v.ProposerName,
			ProposerPhone: v.ProposerPhone,
			CreatedAt:     v.CreatedAt,
			ExpiresAt:     v.ExpiresAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}
