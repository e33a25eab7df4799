package http

import (
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/generated/servers"
)

var _ servers.ServerInterface = (*Server)(nil)

// Handlers groups the use cases the HTTP surface calls into.
type Handlers struct {
	RegisterDriver   commands.RegisterDriverCommandHandler
	CreateOrder      commands.CreateOrderCommandHandler
	AcceptOrder      commands.AcceptOrderCommandHandler
	PickupOrder      commands.PickupOrderCommandHandler
	CompleteOrder    commands.CompleteOrderCommandHandler
	CancelOrder      commands.CancelOrderCommandHandler
	DisposeOrder     commands.DisposeOrderCommandHandler
	ProposeTransfer  commands.ProposeTransferCommandHandler
	AcceptTransfer   commands.AcceptTransferCommandHandler
	RejectTransfer   commands.RejectTransferCommandHandler
	ListUnaccepted   queries.ListUnacceptedOrdersQueryHandler
	GetOrder         queries.GetOrderQueryHandler
	GetAssignment    queries.GetAssignmentInfoQueryHandler
	PendingTransfers queries.ListPendingTransfersQueryHandler
	OrdersByParty    queries.ListOrdersByPartyQueryHandler
}

// Server implements servers.ServerInterface. It translates wire types into
// commands and queries and maps domain errors onto status codes.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      h,
		logger: logger.With("component", "http"),
	}
}
