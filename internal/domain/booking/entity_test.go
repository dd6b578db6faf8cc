//go:build unit

package booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/pkg/errs"
	"shareit/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)

		assert.Zero(t, actual.ID())
		assert.Equal(t, booking.StatusWaiting, actual.Status())
		assert.Equal(t, b.Item.ID, actual.ItemID())
		assert.Equal(t, b.BookerID, actual.BookerID())
		assert.Equal(t, b.Start, actual.Start())
		assert.Equal(t, b.End, actual.End())
	})

	t.Run("item rules", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "owner books own item",
				mutate: func(b *builder.BookingBuilder) { b.BookerID = b.Item.OwnerID },
				errIs:  booking.ErrSelfBooking,
			},
			{
				name:   "item unavailable",
				mutate: func(b *builder.BookingBuilder) { b.Item.Available = false },
				errIs:  booking.ErrItemUnavailable,
			},
			{
				name:   "overlaps approved booking",
				mutate: func(b *builder.BookingBuilder) { b.Overlap = true },
				errIs:  booking.ErrOverlap,
			},
		})
	})

	t.Run("time window", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "end equals start",
				mutate: func(b *builder.BookingBuilder) { b.End = b.Start },
				errIs:  booking.ErrInvalidTimeRange,
			},
			{
				name:   "end before start",
				mutate: func(b *builder.BookingBuilder) { b.End = b.Start.Add(-time.Hour) },
				errIs:  booking.ErrInvalidTimeRange,
			},
			{
				name:   "one second window",
				mutate: func(b *builder.BookingBuilder) { b.End = b.Start.Add(time.Second) },
			},
		})
	})

	t.Run("self booking is reported before availability", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.BookerID = b.Item.OwnerID
			b.Item.Available = false
		}).BuildDomain()
		assert.ErrorIs(t, err, booking.ErrSelfBooking)
	})

	t.Run("overlap checker failure is propagated", func(t *testing.T) {
		boom := errors.New("db down")
		b := builder.NewBookingBuilder()
		_, err := booking.NewBooking(context.Background(), &booking.Services{Overlaps: failingOverlap{boom}}, b.BookerID, b.Item, b.Start, b.End)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("rule violations are validation errors", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Overlap = true }).BuildDomain()
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestDecide(t *testing.T) {
	ctx := context.Background()

	t.Run("owner approves", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		stored := b.BuildStored()

		require.NoError(t, stored.Decide(ctx, b.Services(), b.Item.OwnerID, b.Item, true))
		assert.Equal(t, booking.StatusApproved, stored.Status())
	})

	t.Run("owner rejects without overlap check", func(t *testing.T) {
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Overlap = true })
		stored := b.BuildStored()

		require.NoError(t, stored.Decide(ctx, b.Services(), b.Item.OwnerID, b.Item, false))
		assert.Equal(t, booking.StatusRejected, stored.Status())
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		stored := b.BuildStored()

		err := stored.Decide(ctx, b.Services(), b.BookerID, b.Item, true)
		require.ErrorIs(t, err, booking.ErrNotItemOwner)
		assert.True(t, errs.Is(err, errs.ErrForbidden))
		assert.Equal(t, booking.StatusWaiting, stored.Status())
	})

	t.Run("decided booking cannot change", func(t *testing.T) {
		for _, status := range []booking.Status{booking.StatusApproved, booking.StatusRejected} {
			t.Run(string(status), func(t *testing.T) {
				b := builder.NewBookingBuilder().WithStatus(status)
				stored := b.BuildStored()

				for _, approve := range []bool{true, false} {
					err := stored.Decide(ctx, b.Services(), b.Item.OwnerID, b.Item, approve)
					assert.ErrorIs(t, err, booking.ErrAlreadyDecided)
					assert.Equal(t, status, stored.Status())
				}
			})
		}
	})

	t.Run("approval rejected when window now overlaps", func(t *testing.T) {
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Overlap = true })
		stored := b.BuildStored()

		err := stored.Decide(ctx, b.Services(), b.Item.OwnerID, b.Item, true)
		assert.ErrorIs(t, err, booking.ErrOverlap)
		assert.Equal(t, booking.StatusWaiting, stored.Status())
	})

	t.Run("approval excludes the booking itself", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		stored := b.BuildStored()
		rec := &recordingOverlap{}

		require.NoError(t, stored.Decide(ctx, &booking.Services{Overlaps: rec}, b.Item.OwnerID, b.Item, true))
		assert.Equal(t, stored.ID(), rec.excluded)
		assert.Equal(t, b.Item.ID, rec.itemID)
	})
}

func TestCanBeViewedBy(t *testing.T) {
	stored := builder.NewBookingBuilder().BuildStored()

	assert.True(t, stored.CanBeViewedBy(2, 1), "booker")
	assert.True(t, stored.CanBeViewedBy(1, 1), "owner")
	assert.False(t, stored.CanBeViewedBy(3, 1), "stranger")
	assert.ErrorIs(t, stored.EnsureViewableBy(3, 1), booking.ErrAccessDenied)
}

func TestIsFinishedFor(t *testing.T) {
	b := builder.NewBookingBuilder().WithStatus(booking.StatusApproved)
	stored := b.BuildStored()

	assert.False(t, stored.IsFinishedFor(b.BookerID, b.End), "ends exactly now")
	assert.True(t, stored.IsFinishedFor(b.BookerID, b.End.Add(time.Second)))
	assert.False(t, stored.IsFinishedFor(b.Item.OwnerID, b.End.Add(time.Second)), "someone else")

	waiting := builder.NewBookingBuilder().BuildStored()
	assert.False(t, waiting.IsFinishedFor(b.BookerID, b.End.Add(time.Hour)), "not approved")
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookingBuilder().With(c.mutate).BuildDomain()
			if c.errIs != nil {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

type failingOverlap struct{ err error }

func (f failingOverlap) HasApprovedOverlap(context.Context, int64, booking.TimeRange, int64) (bool, error) {
	return false, f.err
}

type recordingOverlap struct {
	itemID   int64
	excluded int64
}

func (r *recordingOverlap) HasApprovedOverlap(_ context.Context, itemID int64, _ booking.TimeRange, exclude int64) (bool, error) {
	r.itemID = itemID
	r.excluded = exclude
	return false, nil
}
