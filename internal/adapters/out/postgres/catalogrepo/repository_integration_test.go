package catalogrepo_test

import (
	"context"
	"testing"

	"dispatch/internal/adapters/out/postgres/catalogrepo"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ProduceCatalogIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	catalog *catalogrepo.GormProduceCatalog
}

func (suite *ProduceCatalogIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.catalog = catalogrepo.NewGormProduceCatalog(pg.DB)
}

func (suite *ProduceCatalogIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
}

func (suite *ProduceCatalogIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *ProduceCatalogIntegrationTestSuite) TestUpsertAndProduce() {
	ctx := context.Background()
	suite.Require().NoError(suite.catalog.Upsert(ctx, ports.ProduceItem{
		ItemID: "apples", Name: "Apples", UnitPrice: decimal.RequireFromString("1.15"),
	}))

	got, err := suite.catalog.Produce(ctx, "apples")
	suite.Require().NoError(err)
	suite.Equal("Apples", got.Name)
	suite.True(decimal.RequireFromString("1.15").Equal(got.UnitPrice))

	suite.Require().NoError(suite.catalog.Upsert(ctx, ports.ProduceItem{
		ItemID: "apples", Name: "Red apples", UnitPrice: decimal.RequireFromString("1.30"),
	}))

	got, err = suite.catalog.Produce(ctx, "apples")
	suite.Require().NoError(err)
	suite.Equal("Red apples", got.Name)
	suite.True(decimal.RequireFromString("1.30").Equal(got.UnitPrice))
}

func (suite *ProduceCatalogIntegrationTestSuite) TestProduce_Unknown() {
	_, err := suite.catalog.Produce(context.Background(), "durian")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ProduceCatalogIntegrationTestSuite) TestUpsert_Validation() {
	ctx := context.Background()
	suite.Require().ErrorIs(suite.catalog.Upsert(ctx, ports.ProduceItem{Name: "x"}), errs.ErrValueIsRequired)
	suite.Require().ErrorIs(suite.catalog.Upsert(ctx, ports.ProduceItem{
		ItemID: "x", Name: "x", UnitPrice: decimal.NewFromInt(-1),
	}), errs.ErrValueIsInvalid)
}

func TestProduceCatalogIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProduceCatalogIntegrationTestSuite))
}
