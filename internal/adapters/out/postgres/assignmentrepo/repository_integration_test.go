package assignmentrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

var base = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

type AssignmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *assignmentrepo.GormAssignmentRepository
	orders     *orderrepo.GormOrderRepository
}

func (suite *AssignmentRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *AssignmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())

	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = assignmentrepo.NewGormAssignmentRepository(suite.pg.DB, tracker)
	suite.orders = orderrepo.NewGormOrderRepository(suite.pg.DB, tracker)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAdd_SecondAcceptedRowIsRejected() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	first := suite.newAssignment(orderID, kernel.NewUUID(), base)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	err := suite.repository.Add(ctx, suite.newAssignment(orderID, kernel.NewUUID(), base))

	suite.Require().ErrorIs(err, errs.ErrAlreadyAssigned)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAdd_CompletedRowDoesNotBlock() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	first := suite.newAssignment(orderID, kernel.NewUUID(), base)
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(first.Complete())
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(suite.repository.Add(ctx, suite.newAssignment(orderID, kernel.NewUUID(), base)))
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestUpdate_HandOffKeepsAcceptedAt() {
	ctx := context.Background()
	proposer := kernel.NewUUID()
	candidate := kernel.NewUUID()
	a := suite.newAssignment(kernel.NewUUID(), proposer, base)
	suite.Require().NoError(suite.repository.Add(ctx, a))

	suite.Require().NoError(a.HandOff(candidate, assignment.PreviousDriver{ID: proposer, Name: "Ann", Phone: "5550001"}))
	suite.Require().NoError(suite.repository.Update(ctx, a))

	got, err := suite.repository.GetActiveByOrderForUpdate(ctx, a.OrderID())
	suite.Require().NoError(err)
	suite.True(got.IsHeldBy(candidate))
	suite.True(base.Equal(got.AcceptedAt()))
	suite.Require().NotNil(got.PreviousDriver())
	suite.True(proposer.IsEqual(got.PreviousDriver().ID))
	suite.Equal("Ann", got.PreviousDriver().Name)
	suite.Equal("5550001", got.PreviousDriver().Phone)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestGetActiveByOrderForUpdate_IgnoresCompletedRows() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	done := suite.newAssignment(orderID, kernel.NewUUID(), base)
	suite.Require().NoError(done.Complete())
	suite.Require().NoError(suite.repository.Add(ctx, done))

	_, err := suite.repository.GetActiveByOrderForUpdate(ctx, orderID)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	active := suite.newAssignment(orderID, kernel.NewUUID(), base.Add(time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, active))

	got, err := suite.repository.GetActiveByOrderForUpdate(ctx, orderID)
	suite.Require().NoError(err)
	suite.True(active.ID().IsEqual(got.ID()))
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	a := suite.newAssignment(kernel.NewUUID(), kernel.NewUUID(), base)
	suite.Require().NoError(suite.repository.Add(ctx, a))

	suite.Require().NoError(suite.repository.Delete(ctx, a))

	_, err := suite.repository.GetActiveByOrderForUpdate(ctx, a.OrderID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Require().ErrorIs(suite.repository.Delete(ctx, a), errs.ErrObjectNotFound)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestCountOverdueByDriver() {
	ctx := context.Background()
	driverID := kernel.NewUUID()
	cutoff := base.Add(-2 * time.Hour)

	held := suite.heldOrder(order.Accepted)
	suite.Require().NoError(suite.repository.Add(ctx, suite.newAssignment(held.ID(), driverID, base.Add(-3*time.Hour))))

	inDelivery := suite.heldOrder(order.InDelivery)
	suite.Require().NoError(suite.repository.Add(ctx, suite.newAssignment(inDelivery.ID(), driverID, base.Add(-3*time.Hour))))

	recent := suite.heldOrder(order.Accepted)
	suite.Require().NoError(suite.repository.Add(ctx, suite.newAssignment(recent.ID(), driverID, base.Add(-time.Hour))))

	otherDriver := suite.heldOrder(order.Accepted)
	suite.Require().NoError(suite.repository.Add(ctx, suite.newAssignment(otherDriver.ID(), kernel.NewUUID(), base.Add(-3*time.Hour))))

	n, err := suite.repository.CountOverdueByDriver(ctx, driverID, cutoff)
	suite.Require().NoError(err)
	suite.Equal(int64(2), n)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) newAssignment(orderID, driverID kernel.UUID, at time.Time) *assignment.Assignment {
	a, err := assignment.NewAssignment(kernel.NewUUID(), orderID, driverID, at)
	suite.Require().NoError(err)
	return a
}

func (suite *AssignmentRepositoryIntegrationTestSuite) heldOrder(status order.Status) *order.Order {
	li, err := order.NewLineItem("a", "item", decimal.NewFromInt(1), 1, nil)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, order.Necessities,
		[]order.LineItem{li}, "Dorm 3", "", base.Add(-6*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(o.Accept())
	if status == order.InDelivery {
		suite.Require().NoError(o.Pickup())
	}
	suite.Require().NoError(suite.orders.Add(context.Background(), o))
	return o
}

func TestAssignmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentRepositoryIntegrationTestSuite))
}
