package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/outbox"
	"dispatch/internal/core/domain/model/transfer"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/clock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ExpireUnaccepted(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) MarkOverdue(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, a *assignment.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssignmentRepository) GetActiveByOrderForUpdate(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) CountOverdueByDriver(ctx context.Context, driverID kernel.UUID, acceptedBefore time.Time) (int64, error) {
	args := m.Called(ctx, driverID, acceptedBefore)
	return args.Get(0).(int64), args.Error(1)
}

type MockTransferRepository struct{ mock.Mock }

func (m *MockTransferRepository) Add(ctx context.Context, t *transfer.PendingTransfer) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTransferRepository) Update(ctx context.Context, t *transfer.PendingTransfer) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTransferRepository) Get(ctx context.Context, id kernel.UUID) (*transfer.PendingTransfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.PendingTransfer), args.Error(1)
}

func (m *MockTransferRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*transfer.PendingTransfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.PendingTransfer), args.Error(1)
}

func (m *MockTransferRepository) GetPendingByOrderAndCandidate(ctx context.Context, orderID, newDriverID kernel.UUID) (*transfer.PendingTransfer, error) {
	args := m.Called(ctx, orderID, newDriverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.PendingTransfer), args.Error(1)
}

func (m *MockTransferRepository) ExpireSiblings(ctx context.Context, orderID, exceptID kernel.UUID) (int64, error) {
	args := m.Called(ctx, orderID, exceptID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransferRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetByPhone(ctx context.Context, phone string) (*driver.Driver, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, msg *outbox.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockOutboxRepository) ClaimPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) Update(ctx context.Context, msg *outbox.Message) error {
	return m.Called(ctx, msg).Error(0)
}

// MockUoW satisfies every unit-of-work flavour the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	return m.Called().Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) TransferRepository() ports.TransferRepository {
	return m.Called().Get(0).(ports.TransferRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	return m.Called().Get(0).(ports.DriverRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	return m.Called().Get(0).(ports.OutboxRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	return m.Called().Get(0).(commands.DriverUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	return m.Called().Get(0).(commands.OutboxUoW)
}

type MockProduceCatalog struct{ mock.Mock }

func (m *MockProduceCatalog) Produce(ctx context.Context, itemID string) (ports.ProduceItem, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(ports.ProduceItem), args.Error(1)
}

type MockNotificationGateway struct{ mock.Mock }

func (m *MockNotificationGateway) Send(ctx context.Context, userID kernel.UUID, text string) bool {
	return m.Called(ctx, userID, text).Bool(0)
}

type MockSettlementPublisher struct{ mock.Mock }

func (m *MockSettlementPublisher) Publish(ctx context.Context, key string, payload []byte) error {
	return m.Called(ctx, key, payload).Error(0)
}

var now = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

// env wires one MockUoW with all repositories. Begin is expected once and
// Rollback is allowed because handlers always defer it.
type env struct {
	orders      *MockOrderRepository
	assignments *MockAssignmentRepository
	transfers   *MockTransferRepository
	drivers     *MockDriverRepository
	outbox      *MockOutboxRepository
	uow         *MockUoW
	factory     *MockUoWFactory
	clock       *clock.Fixed
}

func newEnv() *env {
	e := &env{
		orders:      new(MockOrderRepository),
		assignments: new(MockAssignmentRepository),
		transfers:   new(MockTransferRepository),
		drivers:     new(MockDriverRepository),
		outbox:      new(MockOutboxRepository),
		uow:         new(MockUoW),
		factory:     new(MockUoWFactory),
		clock:       clock.NewFixed(now),
	}

	e.uow.On("Begin", mock.Anything).Return(nil).Once()
	e.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	e.uow.On("OrderRepository").Return(e.orders).Maybe()
	e.uow.On("AssignmentRepository").Return(e.assignments).Maybe()
	e.uow.On("TransferRepository").Return(e.transfers).Maybe()
	e.uow.On("DriverRepository").Return(e.drivers).Maybe()
	e.uow.On("OutboxRepository").Return(e.outbox).Maybe()
	e.factory.On("Create").Return(e.uow).Once()
	return e
}

func (e *env) expectCommit() {
	e.uow.On("Commit", mock.Anything).Return(nil).Once()
}

func (e *env) assertExpectations(t *testing.T) {
	t.Helper()
	e.orders.AssertExpectations(t)
	e.assignments.AssertExpectations(t)
	e.transfers.AssertExpectations(t)
	e.drivers.AssertExpectations(t)
	e.outbox.AssertExpectations(t)
	e.uow.AssertExpectations(t)
	e.factory.AssertExpectations(t)
}

func (e *env) assertNotCommitted(t *testing.T) {
	t.Helper()
	e.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func newTestOrder(t *testing.T, buyerID kernel.UUID, createdAt time.Time) *order.Order {
	t.Helper()
	item, err := order.NewLineItem("water", "Water 1.5l", decimal.RequireFromString("0.80"), 3, nil)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), buyerID, nil, order.Necessities, []order.LineItem{item}, "Dorm 7", "", createdAt)
	require.NoError(t, err)
	return o
}

func newTestDriver(t *testing.T, name, phone string) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), kernel.NewUUID(), name, phone)
	require.NoError(t, err)
	return d
}

func newDriverForUser(t *testing.T, userID kernel.UUID) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), userID, "Self", "+79990000999")
	require.NoError(t, err)
	return d
}

func acceptedBy(t *testing.T, o *order.Order, d *driver.Driver, at time.Time) *assignment.Assignment {
	t.Helper()
	require.NoError(t, o.Accept())
	a, err := assignment.NewAssignment(kernel.NewUUID(), o.ID(), d.ID(), at)
	require.NoError(t, err)
	return a
}

func notificationTo(recipient kernel.UUID) any {
	return mock.MatchedBy(func(m *outbox.Message) bool {
		return m.Kind() == outbox.Notification && m.RecipientID() != nil && m.RecipientID().IsEqual(recipient)
	})
}

func settlementFor(orderID kernel.UUID) any {
	return mock.MatchedBy(func(m *outbox.Message) bool {
		return m.Kind() == outbox.Settlement && m.Key() == orderID.String()
	})
}
