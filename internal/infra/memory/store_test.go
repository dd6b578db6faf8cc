//go:build unit

package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/memory"
	"shareit/internal/usecase/shared"
	"shareit/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreSuite struct {
	suite.Suite
	ctx context.Context
	uow shared.UnitOfWork
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.uow = memory.NewUnitOfWork(memory.NewStore())
}

func (s *StoreSuite) createUser(email string) int64 {
	u, err := builder.NewUserBuilder().WithEmail(email).BuildDomain()
	s.Require().NoError(err)
	id, err := s.uow.Reads().Users().Create(s.ctx, u)
	s.Require().NoError(err)
	return id
}

func (s *StoreSuite) createItem(ownerID int64) int64 {
	it, err := builder.NewItemBuilder().WithOwner(ownerID).BuildDomain()
	s.Require().NoError(err)
	id, err := s.uow.Reads().Items().Create(s.ctx, it)
	s.Require().NoError(err)
	return id
}

func (s *StoreSuite) createBooking(itemID, bookerID int64, start time.Time, status booking.Status) int64 {
	b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.Item.ID = itemID
		b.BookerID = bookerID
		b.Start = start
		b.End = start.Add(24 * time.Hour)
		b.Status = status
	}).BuildStored()
	id, err := s.uow.Reads().Bookings().Create(s.ctx, b)
	s.Require().NoError(err)
	return id
}

func (s *StoreSuite) TestWithinRollsBackOnError() {
	boom := errors.New("boom")

	err := s.uow.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := builder.NewUserBuilder().BuildDomain()
		s.Require().NoError(err)
		_, err = tx.Users().Create(ctx, u)
		s.Require().NoError(err)
		return boom
	})
	s.ErrorIs(err, boom)

	users, err := s.uow.Reads().Users().List(s.ctx)
	s.Require().NoError(err)
	s.Empty(users)

	// ids are not burned by the rolled back insert
	s.Equal(int64(1), s.createUser("first@example.com"))
}

func (s *StoreSuite) TestDuplicateEmail() {
	s.createUser("dup@example.com")

	u, err := builder.NewUserBuilder().WithEmail("dup@example.com").BuildDomain()
	s.Require().NoError(err)
	_, err = s.uow.Reads().Users().Create(s.ctx, u)
	s.True(infra.IsKind(err, infra.KindDuplicateKey))
}

func (s *StoreSuite) TestReturnedEntitiesAreCopies() {
	id := s.createUser("copy@example.com")

	u, err := s.uow.Reads().Users().FindByID(s.ctx, id)
	s.Require().NoError(err)
	renamed, err := builder.NewUserBuilder().WithName("Changed").BuildDomain()
	s.Require().NoError(err)
	u.Rename(renamed.Name())

	again, err := s.uow.Reads().Users().FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("Alice", again.Name().Value())
}

func (s *StoreSuite) TestExclusionOnApprovedOverlap() {
	owner := s.createUser("owner@example.com")
	booker := s.createUser("booker@example.com")
	itemID := s.createItem(owner)
	start := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	s.createBooking(itemID, booker, start, booking.StatusApproved)
	waiting := s.createBooking(itemID, booker, start.Add(12*time.Hour), booking.StatusWaiting)

	err := s.uow.Reads().Bookings().UpdateStatus(s.ctx, waiting, booking.StatusApproved)
	s.True(infra.IsKind(err, infra.KindExclusionViolated))

	s.NoError(s.uow.Reads().Bookings().UpdateStatus(s.ctx, waiting, booking.StatusRejected))
}

func (s *StoreSuite) TestAdjacentApproved() {
	owner := s.createUser("owner@example.com")
	booker := s.createUser("booker@example.com")
	itemID := s.createItem(owner)
	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

	older := s.createBooking(itemID, booker, now.Add(-10*24*time.Hour), booking.StatusApproved)
	last := s.createBooking(itemID, booker, now.Add(-2*time.Hour), booking.StatusApproved)
	next := s.createBooking(itemID, booker, now.Add(48*time.Hour), booking.StatusApproved)
	s.createBooking(itemID, booker, now.Add(24*time.Hour), booking.StatusWaiting)
	s.createBooking(itemID, booker, now.Add(5*24*time.Hour), booking.StatusApproved)

	adjacent, err := s.uow.Reads().Bookings().AdjacentApproved(s.ctx, []int64{itemID}, now)
	s.Require().NoError(err)
	s.Require().NotNil(adjacent[itemID].Last)
	s.Require().NotNil(adjacent[itemID].Next)
	s.Equal(last, adjacent[itemID].Last.ID())
	s.Equal(next, adjacent[itemID].Next.ID())
	s.NotEqual(older, adjacent[itemID].Last.ID())
}

func (s *StoreSuite) TestDeleteUserCascades() {
	owner := s.createUser("owner@example.com")
	booker := s.createUser("booker@example.com")
	itemID := s.createItem(owner)
	bookingID := s.createBooking(itemID, booker, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), booking.StatusWaiting)

	s.Require().NoError(s.uow.Reads().Users().Delete(s.ctx, owner))

	_, err := s.uow.Reads().Items().FindByID(s.ctx, itemID)
	s.True(infra.IsKind(err, infra.KindNotFound))
	_, err = s.uow.Reads().Bookings().FindByID(s.ctx, bookingID)
	s.True(infra.IsKind(err, infra.KindNotFound))
}

func (s *StoreSuite) TestReadOnlyRejectsWrites() {
	err := s.uow.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := builder.NewUserBuilder().BuildDomain()
		s.Require().NoError(err)
		_, err = tx.Users().Create(ctx, u)
		return err
	})
	s.True(infra.IsKind(err, infra.KindDBFailure))
}

func TestSearchIsCaseInsensitiveAndSkipsUnavailable(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWork(memory.NewStore())

	u, err := builder.NewUserBuilder().BuildDomain()
	require.NoError(t, err)
	owner, err := uow.Reads().Users().Create(ctx, u)
	require.NoError(t, err)

	for _, b := range []*builder.ItemBuilder{
		builder.NewItemBuilder().WithOwner(owner).With(func(b *builder.ItemBuilder) { b.Name = "Power DRILL" }),
		builder.NewItemBuilder().WithOwner(owner).With(func(b *builder.ItemBuilder) { b.Name = "Saw"; b.Description = "cuts, does not drill" }),
		builder.NewItemBuilder().WithOwner(owner).Unavailable(),
	} {
		it, err := b.BuildDomain()
		require.NoError(t, err)
		_, err = uow.Reads().Items().Create(ctx, it)
		require.NoError(t, err)
	}

	found, err := uow.Reads().Items().Search(ctx, "dRiLl", 0, 0)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	paged, err := uow.Reads().Items().Search(ctx, "drill", 1, 1)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "Saw", paged[0].Name().Value())
}
