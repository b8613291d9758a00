package escrow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"veridev/pkg/domain"
	"veridev/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) pending(buyer, seller domain.Identity) *Certificate {
	return NewCertificate(buyer, seller, 1, DeviceClaim{Brand: "Apple", Model: "iPhone 12"}, time.Now())
}

func (s *MemoryStoreSuite) TestAppendAssignsSequentialIDs() {
	for i := 1; i <= 3; i++ {
		id, err := s.store.Append(s.ctx, s.pending("0xbuyer", "0xseller"))
		s.Require().NoError(err)
		s.Equal(domain.CertificateID(i), id)
	}
}

func (s *MemoryStoreSuite) TestFindReturnsCopy() {
	id, err := s.store.Append(s.ctx, s.pending("0xbuyer", "0xseller"))
	s.Require().NoError(err)

	found, err := s.store.FindByID(s.ctx, id)
	s.Require().NoError(err)
	found.Status = StatusCompleted

	again, err := s.store.FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(StatusPending, again.Status)
}

func (s *MemoryStoreSuite) TestFindUnknownID() {
	_, err := s.store.FindByID(s.ctx, 1)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindByID(s.ctx, 0)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestUpdatePersistsFinalization() {
	id, err := s.store.Append(s.ctx, s.pending("0xbuyer", "0xseller"))
	s.Require().NoError(err)

	cert, err := s.store.FindByID(s.ctx, id)
	s.Require().NoError(err)
	cert.ApplyCompletion(VerificationReport{Condition: "Good"}, time.Now())
	s.Require().NoError(s.store.Update(s.ctx, cert))

	stored, err := s.store.FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(StatusCompleted, stored.Status)
	s.Equal("Good", stored.Report.Condition)
}

func (s *MemoryStoreSuite) TestUpdateUnknownID() {
	cert := s.pending("0xbuyer", "0xseller")
	cert.ID = 7
	s.Require().ErrorIs(s.store.Update(s.ctx, cert), sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestIndexesTrackBothParties() {
	idA, err := s.store.Append(s.ctx, s.pending("0xalice", "0xseller"))
	s.Require().NoError(err)
	idB, err := s.store.Append(s.ctx, s.pending("0xbob", "0xseller"))
	s.Require().NoError(err)
	idC, err := s.store.Append(s.ctx, s.pending("0xalice", "0xseller"))
	s.Require().NoError(err)

	alice, err := s.store.ListByBuyer(s.ctx, "0xalice")
	s.Require().NoError(err)
	s.Equal([]domain.CertificateID{idA, idC}, alice)

	bob, err := s.store.ListByBuyer(s.ctx, "0xbob")
	s.Require().NoError(err)
	s.Equal([]domain.CertificateID{idB}, bob)

	sold, err := s.store.ListBySeller(s.ctx, "0xseller")
	s.Require().NoError(err)
	s.Equal([]domain.CertificateID{idA, idB, idC}, sold)
}

func (s *MemoryStoreSuite) TestListUnknownPartyIsEmpty() {
	ids, err := s.store.ListByBuyer(s.ctx, "0xnobody")
	s.Require().NoError(err)
	s.Empty(ids)
}
