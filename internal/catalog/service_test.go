package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"veridev/internal/audit"
	"veridev/internal/registry"
	"veridev/internal/seller"
	"veridev/pkg/domain"
	dErrors "veridev/pkg/domain-errors"
)

const (
	sellerID = domain.Identity("0xseller")
	usdt     = domain.AssetRef("0xusdt")
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	events  *audit.InMemoryStore
	sellers *seller.Service
	svc     *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	tx := registry.NewSerialTx(time.Second)
	s.events = audit.NewInMemoryStore()
	s.sellers = seller.New(seller.NewInMemoryStore(), tx)
	s.svc = New(NewInMemoryStore(), s.sellers, tx,
		WithAuditPublisher(audit.NewPublisher(s.events)))
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) register() {
	_, err := s.sellers.Register(s.ctx, sellerID, "Rome", "Rome Phone Service")
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestCreateAssignsSequentialIDs() {
	s.register()

	for i := 1; i <= 3; i++ {
		product, err := s.svc.Create(s.ctx, sellerID, "phone", 15_000_000, usdt)
		s.Require().NoError(err)
		s.Equal(domain.ProductID(i), product.ID)
		s.Equal(sellerID, product.Seller)
	}
}

func (s *ServiceSuite) TestCreateUnregisteredSeller() {
	_, err := s.svc.Create(s.ctx, sellerID, "phone", 15_000_000, usdt)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotRegistered))

	products, err := s.svc.Products(s.ctx)
	s.Require().NoError(err)
	s.Empty(products)
}

func (s *ServiceSuite) TestCreateZeroPriceAccepted() {
	s.register()

	product, err := s.svc.Create(s.ctx, sellerID, "phone", 0, usdt)
	s.Require().NoError(err)
	s.Equal(uint64(0), product.Price)
}

func (s *ServiceSuite) TestCreateEmitsAuditEvent() {
	s.register()

	product, err := s.svc.Create(s.ctx, sellerID, "phone", 15_000_000, usdt)
	s.Require().NoError(err)

	events := s.events.All()
	s.Require().Len(events, 1)
	s.Equal(audit.ActionProductCreated, events[0].Action)
	s.Equal(product.ID, events[0].ProductID)
	s.Equal(uint64(15_000_000), events[0].Amount)
}

func (s *ServiceSuite) TestProductUnknownID() {
	_, err := s.svc.Product(s.ctx, 42)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeProductNotFound))
}

func (s *ServiceSuite) TestProductsReturnsFullOrderedSet() {
	s.register()
	_, err := s.svc.Create(s.ctx, sellerID, "phone", 10, usdt)
	s.Require().NoError(err)
	_, err = s.svc.Create(s.ctx, sellerID, "laptop", 20, usdt)
	s.Require().NoError(err)

	products, err := s.svc.Products(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(products, 2)
	s.Equal(domain.ProductID(1), products[0].ID)
	s.Equal("phone", products[0].DeviceType)
	s.Equal(domain.ProductID(2), products[1].ID)
	s.Equal("laptop", products[1].DeviceType)
}

func (s *ServiceSuite) TestProductsImmutableOnceListed() {
	s.register()
	product, err := s.svc.Create(s.ctx, sellerID, "phone", 10, usdt)
	s.Require().NoError(err)

	product.DeviceType = "mutated"

	stored, err := s.svc.Product(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Equal("phone", stored.DeviceType)
}
