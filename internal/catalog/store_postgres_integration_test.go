//go:build integration

package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"veridev/internal/catalog"
	"veridev/internal/platform/postgres"
	"veridev/internal/seller"
	"veridev/pkg/domain"
	"veridev/pkg/platform/sentinel"
	"veridev/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *catalog.PostgresStore
	sellers  *seller.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.Require().NoError(postgres.Migrate(context.Background(), s.postgres.DB))
	s.store = catalog.NewPostgres(s.postgres.DB)
	s.sellers = seller.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx,
		"registry_events", "certificates", "products", "sellers"))

	account, err := seller.NewAccount("0xseller", "Rome", "Rome Phone Service", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.sellers.Create(ctx, account))
}

func (s *PostgresStoreSuite) newProduct(deviceType string, price uint64) *catalog.Product {
	return &catalog.Product{
		DeviceType: deviceType,
		Price:      price,
		Asset:      "0xusdt",
		Seller:     "0xseller",
		CreatedAt:  time.Now(),
	}
}

func (s *PostgresStoreSuite) TestAppendAssignsSequentialIDs() {
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		id, err := s.store.Append(ctx, s.newProduct("phone", 15_000_000))
		s.Require().NoError(err)
		s.Equal(domain.ProductID(i), id)
	}
}

func (s *PostgresStoreSuite) TestFindByIDRoundTrip() {
	ctx := context.Background()
	id, err := s.store.Append(ctx, s.newProduct("phone", 15_000_000))
	s.Require().NoError(err)

	p, err := s.store.FindByID(ctx, id)
	s.Require().NoError(err)
	s.Equal("phone", p.DeviceType)
	s.Equal(uint64(15_000_000), p.Price)
	s.Equal(domain.AssetRef("0xusdt"), p.Asset)
	s.Equal(domain.Identity("0xseller"), p.Seller)
}

func (s *PostgresStoreSuite) TestFindUnknownID() {
	_, err := s.store.FindByID(context.Background(), 42)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListAllOrdered() {
	ctx := context.Background()
	_, err := s.store.Append(ctx, s.newProduct("phone", 10))
	s.Require().NoError(err)
	_, err = s.store.Append(ctx, s.newProduct("laptop", 20))
	s.Require().NoError(err)

	products, err := s.store.ListAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(products, 2)
	s.Equal("phone", products[0].DeviceType)
	s.Equal("laptop", products[1].DeviceType)
}
