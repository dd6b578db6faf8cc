//go:build unit || e2e

package builder

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/pkg/jsontime"
	"shareit/internal/usecase/queries"
)

type BookingBuilder struct {
	ID       int64
	BookerID int64
	Item     booking.BookableItem
	Start    time.Time
	End      time.Time
	Status   booking.Status
	Overlap  bool
}

func NewBookingBuilder() *BookingBuilder {
	start := time.Date(2030, 1, 2, 10, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:       1,
		BookerID: 2,
		Item:     booking.BookableItem{ID: 1, OwnerID: 1, Available: true},
		Start:    start,
		End:      start.Add(24 * time.Hour),
		Status:   booking.StatusWaiting,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	return booking.NewBooking(context.Background(), b.Services(), b.BookerID, b.Item, b.Start, b.End)
}

// BuildStored skips validation and yields a booking as a store would return it.
func (b *BookingBuilder) BuildStored() *booking.Booking {
	period, err := booking.NewTimeRange(b.Start, b.End)
	if err != nil {
		panic(err)
	}
	return booking.Reconstruct(b.ID, b.Item.ID, b.BookerID, period, b.Status)
}

func (b *BookingBuilder) Services() *booking.Services {
	return &booking.Services{Overlaps: StaticOverlap(b.Overlap)}
}

func (b *BookingBuilder) BuildReadModel() *queries.BookingView {
	return &queries.BookingView{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Booker: queries.BookerView{ID: b.BookerID, Name: "Bob", Email: "bob@example.com"},
		Item: queries.BookedItemView{
			ID:          b.Item.ID,
			Name:        "Drill",
			Description: "Cordless drill with two batteries",
			Available:   b.Item.Available,
		},
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	start, end := jsontime.New(b.Start), jsontime.New(b.End)
	return reqdto.CreateBookingRequest{
		ItemID: b.Item.ID,
		Start:  &start,
		End:    &end,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithWindow(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.Status = status
	return b
}

// StaticOverlap answers every overlap check with the same result.
type StaticOverlap bool

func (s StaticOverlap) HasApprovedOverlap(context.Context, int64, booking.TimeRange, int64) (bool, error) {
	return bool(s), nil
}
