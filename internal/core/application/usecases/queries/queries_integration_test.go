package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/adapters/out/postgres/transferrepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/transfer"
	"dispatch/internal/pkg/clock"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var now = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// expiringSweeper moves Unaccepted orders older than two hours, like the reaper.
type expiringSweeper struct {
	orders *orderrepo.GormOrderRepository
	calls  int
	err    error
}

func (s *expiringSweeper) Handle(ctx context.Context, _ commands.SweepExpiredCommand) (commands.SweepResult, error) {
	s.calls++
	if s.err != nil {
		return commands.SweepResult{}, s.err
	}
	n, err := s.orders.ExpireUnaccepted(ctx, now.Add(-2*time.Hour))
	return commands.SweepResult{ExpiredOrders: n}, err
}

type QueriesIntegrationTestSuite struct {
	suite.Suite
	pg          *pgtest.Database
	orders      *orderrepo.GormOrderRepository
	assignments *assignmentrepo.GormAssignmentRepository
	transfers   *transferrepo.GormTransferRepository
	drivers     *driverrepo.GormDriverRepository
	clock       *clock.Fixed
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg

	suite.orders = orderrepo.NewGormOrderRepository(pg.DB, noopTracker{})
	suite.assignments = assignmentrepo.NewGormAssignmentRepository(pg.DB, noopTracker{})
	suite.transfers = transferrepo.NewGormTransferRepository(pg.DB, noopTracker{})
	suite.drivers = driverrepo.NewGormDriverRepository(pg.DB, noopTracker{})
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.clock = clock.NewFixed(now)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *QueriesIntegrationTestSuite) TestListUnaccepted_SweepsThenListsFIFO() {
	ctx := context.Background()
	stale := suite.addOrder(now.Add(-3 * time.Hour))
	second := suite.addOrder(now.Add(-30 * time.Minute))
	first := suite.addOrder(now.Add(-90 * time.Minute))
	accepted := suite.newOrder(now.Add(-10 * time.Minute))
	suite.Require().NoError(accepted.Accept())
	suite.Require().NoError(suite.orders.Add(ctx, accepted))

	sweeper := &expiringSweeper{orders: suite.orders}
	handler := queries.NewListUnacceptedOrdersQueryHandler(suite.pg.DB, sweeper)

	views, err := handler.Handle(ctx, queries.NewListUnacceptedOrdersQuery())

	suite.Require().NoError(err)
	suite.Equal(1, sweeper.calls)
	suite.Require().Len(views, 2)
	suite.Equal(first.ID(), views[0].ID)
	suite.Equal(second.ID(), views[1].ID)
	suite.Require().Len(views[0].Items, 2)
	suite.Equal("milk", views[0].Items[0].ItemID)
	suite.Equal([]string{"cold"}, views[0].Items[0].Options)
	suite.Equal("bread", views[0].Items[1].ItemID)

	got, err := suite.orders.Get(ctx, stale.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Expired, got.Status())
}

func (suite *QueriesIntegrationTestSuite) TestListUnaccepted_SweepFailureIsReturned() {
	sweeper := &expiringSweeper{err: errors.New("db down")}
	handler := queries.NewListUnacceptedOrdersQueryHandler(suite.pg.DB, sweeper)

	_, err := handler.Handle(context.Background(), queries.NewListUnacceptedOrdersQuery())

	suite.Require().EqualError(err, "db down")
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder() {
	o := suite.addOrder(now)
	handler := queries.NewGetOrderQueryHandler(suite.pg.DB)

	q, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)
	view, err := handler.Handle(context.Background(), q)

	suite.Require().NoError(err)
	suite.Equal(o.ID(), view.ID)
	suite.Equal(o.BuyerID(), view.BuyerID)
	suite.Nil(view.SellerID)
	suite.Equal(order.Necessities, view.Kind)
	suite.Equal(order.Unaccepted, view.Status)
	suite.True(decimal.RequireFromString("4.45").Equal(view.TotalPrice), view.TotalPrice.String())
	suite.Equal("Dorm 9", view.Location)
	suite.True(now.Equal(view.CreatedAt))
	suite.Len(view.Items, 2)

	missing, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestGetAssignmentInfo() {
	ctx := context.Background()
	ann := suite.addDriver("Ann", "5550000001")
	bob := suite.addDriver("Bob", "5550000002")
	o := suite.addOrder(now)
	handler := queries.NewGetAssignmentInfoQueryHandler(suite.pg.DB)
	q, err := queries.NewGetAssignmentInfoQuery(o.ID())
	suite.Require().NoError(err)

	_, err = handler.Handle(ctx, q)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	a, err := assignment.NewAssignment(kernel.NewUUID(), o.ID(), ann.ID(), now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.assignments.Add(ctx, a))
	suite.Require().NoError(a.HandOff(bob.ID(), assignment.PreviousDriver{ID: ann.ID(), Name: ann.Name(), Phone: ann.Phone()}))
	suite.Require().NoError(suite.assignments.Update(ctx, a))

	info, err := handler.Handle(ctx, q)
	suite.Require().NoError(err)
	suite.Equal(bob.ID(), info.DriverID)
	suite.Equal("Bob", info.DriverName)
	suite.Equal("5550000002", info.DriverPhone)
	suite.False(info.Completed)
	suite.True(now.Equal(info.AcceptedAt))
	suite.Require().NotNil(info.Previous)
	suite.Equal(ann.ID(), info.Previous.DriverID)
	suite.Equal("Ann", info.Previous.Name)
}

func (suite *QueriesIntegrationTestSuite) TestListPendingTransfers_OnlyOpenOffersNewestFirst() {
	ctx := context.Background()
	candidate := kernel.NewUUID()
	proposer := transfer.Proposer{DriverID: kernel.NewUUID(), Name: "Ann", Phone: "5550000001"}

	older := suite.addOffer(proposer, candidate, now.Add(-2*time.Hour))
	newer := suite.addOffer(proposer, candidate, now.Add(-time.Hour))
	suite.addOffer(proposer, candidate, now.Add(-25*time.Hour))
	suite.addOffer(proposer, kernel.NewUUID(), now.Add(-time.Hour))
	rejected := suite.addOffer(proposer, candidate, now.Add(-time.Minute))
	suite.Require().NoError(rejected.Reject(candidate, now))
	suite.Require().NoError(suite.transfers.Update(ctx, rejected))

	handler := queries.NewListPendingTransfersQueryHandler(suite.pg.DB, suite.clock)
	q, err := queries.NewListPendingTransfersQuery(candidate)
	suite.Require().NoError(err)

	views, err := handler.Handle(ctx, q)

	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.Equal(newer.ID(), views[0].ID)
	suite.Equal(older.ID(), views[1].ID)
	suite.Equal("Ann", views[0].ProposerName)
	suite.True(newer.ExpiresAt().Equal(views[0].ExpiresAt))

	suite.clock.Set(older.ExpiresAt())
	views, err = handler.Handle(ctx, q)
	suite.Require().NoError(err)
	suite.Require().Len(views, 1, "an offer is closed at exactly expires_at")
	suite.Equal(newer.ID(), views[0].ID)
}

func (suite *QueriesIntegrationTestSuite) TestListOrdersByParty_NewestFirstInEveryStatus() {
	ctx := context.Background()
	buyerID := kernel.NewUUID()
	sellerID := kernel.NewUUID()
	item, err := order.NewLineItem("tea", "Tea", decimal.RequireFromString("3.50"), 1, nil)
	suite.Require().NoError(err)

	place := func(buyer kernel.UUID, seller *kernel.UUID, at time.Time) *order.Order {
		o, placeErr := order.NewOrder(kernel.NewUUID(), buyer, seller, order.Necessities,
			[]order.LineItem{item}, "Dorm 2", "", at)
		suite.Require().NoError(placeErr)
		suite.Require().NoError(suite.orders.Add(ctx, o))
		return o
	}
	older := place(buyerID, &sellerID, now.Add(-3*time.Hour))
	suite.Require().NoError(older.Cancel(buyerID))
	suite.Require().NoError(suite.orders.Update(ctx, older))
	newer := place(buyerID, nil, now.Add(-time.Hour))
	otherBuyer := place(kernel.NewUUID(), &sellerID, now)

	handler := queries.NewListOrdersByPartyQueryHandler(suite.pg.DB)

	q, err := queries.NewListOrdersByPartyQuery(queries.Buyer, buyerID)
	suite.Require().NoError(err)
	views, err := handler.Handle(ctx, q)
	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.Equal(newer.ID(), views[0].ID)
	suite.Equal(older.ID(), views[1].ID)
	suite.Equal(order.Cancelled, views[1].Status)
	suite.Len(views[1].Items, 1)

	q, err = queries.NewListOrdersByPartyQuery(queries.Seller, sellerID)
	suite.Require().NoError(err)
	views, err = handler.Handle(ctx, q)
	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.Equal(otherBuyer.ID(), views[0].ID)
	suite.Equal(older.ID(), views[1].ID)

	q, err = queries.NewListOrdersByPartyQuery(queries.Seller, kernel.NewUUID())
	suite.Require().NoError(err)
	views, err = handler.Handle(ctx, q)
	suite.Require().NoError(err)
	suite.Empty(views)
}

func (suite *QueriesIntegrationTestSuite) newOrder(createdAt time.Time) *order.Order {
	milk, err := order.NewLineItem("milk", "Milk", decimal.RequireFromString("1.20"), 2, []string{"cold"})
	suite.Require().NoError(err)
	bread, err := order.NewLineItem("bread", "Bread", decimal.RequireFromString("2.05"), 1, nil)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, order.Necessities,
		[]order.LineItem{milk, bread}, "Dorm 9", "", createdAt)
	suite.Require().NoError(err)
	return o
}

func (suite *QueriesIntegrationTestSuite) addOrder(createdAt time.Time) *order.Order {
	o := suite.newOrder(createdAt)
	suite.Require().NoError(suite.orders.Add(context.Background(), o))
	return o
}

func (suite *QueriesIntegrationTestSuite) addDriver(name, phone string) *driver.Driver {
	d, err := driver.NewDriver(kernel.NewUUID(), kernel.NewUUID(), name, phone)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.drivers.Add(context.Background(), d))
	return d
}

func (suite *QueriesIntegrationTestSuite) addOffer(proposer transfer.Proposer, candidate kernel.UUID, at time.Time) *transfer.PendingTransfer {
	tr, err := transfer.NewPendingTransfer(kernel.NewUUID(), kernel.NewUUID(), proposer, candidate, at, transfer.DefaultTTL)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.transfers.Add(context.Background(), tr))
	return tr
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
