package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/logsink"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/catalogrepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/clock"

	"gorm.io/gorm"
)

// CompositionRoot builds every handler from one database, one clock and one
// pair of outbound gateways.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	policy     services.ExpiryPolicy
	clock      clock.Clock
	logger     *slog.Logger

	notifications ports.NotificationGateway
	settlements   ports.SettlementPublisher
	closers       []func() error
}

type Option func(*CompositionRoot)

func WithClock(clk clock.Clock) Option {
	return func(c *CompositionRoot) { c.clock = clk }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *CompositionRoot) { c.logger = logger }
}

// WithGateways replaces the Kafka or log-backed outbound adapters.
func WithGateways(notifications ports.NotificationGateway, settlements ports.SettlementPublisher) Option {
	return func(c *CompositionRoot) {
		c.notifications = notifications
		c.settlements = settlements
	}
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, opts ...Option) (*CompositionRoot, error) {
	policy, err := services.NewExpiryPolicy(cfg.UnacceptedTTL, cfg.DeliveryDeadline, cfg.BacklogThreshold, cfg.TransferTTL)
	if err != nil {
		return nil, fmt.Errorf("expiry policy: %w", err)
	}

	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     policy,
		clock:      clock.System{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.notifications == nil || c.settlements == nil {
		c.buildGateways()
	}

	return c, nil
}

func (c *CompositionRoot) buildGateways() {
	brokers := c.cfg.Brokers()
	if len(brokers) == 0 {
		c.logger.Warn("KAFKA_BROKERS is empty, notifications and settlements go to the log")
		c.notifications = logsink.NewNotificationGateway(c.logger)
		c.settlements = logsink.NewSettlementPublisher(c.logger)
		return
	}

	notifications := kafka.NewNotificationGateway(kafka.WriterConfig{
		Brokers: brokers,
		Topic:   c.cfg.KafkaNotificationTopic,
	}, c.clock, c.logger)
	settlements := kafka.NewSettlementPublisher(kafka.WriterConfig{
		Brokers: brokers,
		Topic:   c.cfg.KafkaSettlementTopic,
	})

	c.notifications = notifications
	c.settlements = settlements
	c.closers = append(c.closers, notifications.Close, settlements.Close)
}

// Close releases the Kafka writers, if any.
func (c *CompositionRoot) Close() error {
	var errList []error
	for _, closeFn := range c.closers {
		errList = append(errList, closeFn())
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, catalogrepo.NewGormProduceCatalog(c.gormDB), c.clock)
}

func (c *CompositionRoot) CreateRegisterDriverCommandHandler() commands.RegisterDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.uow(), c.policy, c.clock)
}

func (c *CompositionRoot) CreatePickupOrderCommandHandler() commands.PickupOrderCommandHandler {
	return commands.NewPickupOrderCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateDisposeOrderCommandHandler() commands.DisposeOrderCommandHandler {
	return commands.NewDisposeOrderCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateProposeTransferCommandHandler() commands.ProposeTransferCommandHandler {
	return commands.NewProposeTransferCommandHandler(c.uow(), c.policy, c.clock)
}

func (c *CompositionRoot) CreateAcceptTransferCommandHandler() commands.AcceptTransferCommandHandler {
	return commands.NewAcceptTransferCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateRejectTransferCommandHandler() commands.RejectTransferCommandHandler {
	return commands.NewRejectTransferCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateSweepExpiredCommandHandler() commands.SweepExpiredCommandHandler {
	return commands.NewSweepExpiredCommandHandler(c.uow(), c.policy, c.clock)
}

func (c *CompositionRoot) CreateDispatchOutboxCommandHandler() commands.DispatchOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOutboxCommandHandler(f, c.notifications, c.settlements, c.clock, c.logger)
}

func (c *CompositionRoot) CreateListUnacceptedOrdersQueryHandler() queries.ListUnacceptedOrdersQueryHandler {
	return queries.NewListUnacceptedOrdersQueryHandler(c.gormDB, c.CreateSweepExpiredCommandHandler())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAssignmentInfoQueryHandler() queries.GetAssignmentInfoQueryHandler {
	return queries.NewGetAssignmentInfoQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPendingTransfersQueryHandler() queries.ListPendingTransfersQueryHandler {
	return queries.NewListPendingTransfersQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateListOrdersByPartyQueryHandler() queries.ListOrdersByPartyQueryHandler {
	return queries.NewListOrdersByPartyQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		RegisterDriver:   c.CreateRegisterDriverCommandHandler(),
		CreateOrder:      c.CreateCreateOrderCommandHandler(),
		AcceptOrder:      c.CreateAcceptOrderCommandHandler(),
		PickupOrder:      c.CreatePickupOrderCommandHandler(),
		CompleteOrder:    c.CreateCompleteOrderCommandHandler(),
		CancelOrder:      c.CreateCancelOrderCommandHandler(),
		DisposeOrder:     c.CreateDisposeOrderCommandHandler(),
		ProposeTransfer:  c.CreateProposeTransferCommandHandler(),
		AcceptTransfer:   c.CreateAcceptTransferCommandHandler(),
		RejectTransfer:   c.CreateRejectTransferCommandHandler(),
		ListUnaccepted:   c.CreateListUnacceptedOrdersQueryHandler(),
		GetOrder:         c.CreateGetOrderQueryHandler(),
		GetAssignment:    c.CreateGetAssignmentInfoQueryHandler(),
		PendingTransfers: c.CreateListPendingTransfersQueryHandler(),
		OrdersByParty:    c.CreateListOrdersByPartyQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	return jobs.NewJobManager(
		jobs.Schedules{Reaper: c.cfg.ReaperSchedule, Outbox: c.cfg.OutboxSchedule},
		c.CreateSweepExpiredCommandHandler(),
		c.CreateDispatchOutboxCommandHandler(),
		c.cfg.OutboxBatchSize,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
