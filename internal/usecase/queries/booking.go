package queries

import (
	"context"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/domain/user"
	"shareit/internal/pkg/clock"
	"shareit/internal/usecase/shared"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/queries/booking.go -package=queriesmock
type BookingQueries interface {
	GetByID(ctx context.Context, actorID, bookingID int64) (*BookingView, error)
	ListByBooker(ctx context.Context, bookerID int64, state booking.State, page Page) ([]*BookingView, error)
	ListByOwner(ctx context.Context, ownerID int64, state booking.State, page Page) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingQueries(uow shared.UnitOfWork, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{uow: uow, clock: clk}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID, bookingID int64) (*BookingView, error) {
	var view *BookingView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return shared.NotFoundAs(err, shared.ErrBookingNotFound)
		}
		it, err := tx.Items().FindByID(ctx, b.ItemID())
		if err != nil {
			return shared.NotFoundAs(err, shared.ErrItemNotFound)
		}
		if err := b.EnsureViewableBy(actorID, it.OwnerID()); err != nil {
			return err
		}

		views, err := assembleBookings(ctx, tx, []*booking.Booking{b}, map[int64]*item.Item{it.ID(): it})
		if err != nil {
			return err
		}
		view = views[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByBooker(ctx context.Context, bookerID int64, state booking.State, page Page) ([]*BookingView, error) {
	var views []*BookingView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Users().FindByID(ctx, bookerID); err != nil {
			return shared.NotFoundAs(err, shared.ErrUserNotFound)
		}

		bookings, err := tx.Bookings().ListByBooker(ctx, bookerID, q.filter(state, page))
		if err != nil {
			return err
		}
		views, err = assembleBookings(ctx, tx, bookings, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *bookingQueriesImpl) ListByOwner(ctx context.Context, ownerID int64, state booking.State, page Page) ([]*BookingView, error) {
	views := []*BookingView{}
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Users().FindByID(ctx, ownerID); err != nil {
			return shared.NotFoundAs(err, shared.ErrUserNotFound)
		}

		owned, err := tx.Items().ListByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		if len(owned) == 0 {
			return nil
		}

		items := make(map[int64]*item.Item, len(owned))
		ids := make([]int64, 0, len(owned))
		for _, it := range owned {
			items[it.ID()] = it
			ids = append(ids, it.ID())
		}

		bookings, err := tx.Bookings().ListByItems(ctx, ids, q.filter(state, page))
		if err != nil {
			return err
		}
		views, err = assembleBookings(ctx, tx, bookings, items)
		return err
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *bookingQueriesImpl) filter(state booking.State, page Page) booking.Filter {
	page = page.Normalize()
	return booking.Filter{
		State:  state,
		Now:    q.clock.Now(),
		Offset: page.From,
		Limit:  page.Size,
	}
}

// assembleBookings joins bookers and items onto bookings, keeping their order.
// Items already at hand can be passed in known and are not reloaded.
func assembleBookings(ctx context.Context, tx shared.Tx, bookings []*booking.Booking, known map[int64]*item.Item) ([]*BookingView, error) {
	out := make([]*BookingView, 0, len(bookings))
	if len(bookings) == 0 {
		return out, nil
	}

	bookerIDs := make([]int64, 0, len(bookings))
	var missing []int64
	for _, b := range bookings {
		bookerIDs = append(bookerIDs, b.BookerID())
		if _, ok := known[b.ItemID()]; !ok {
			missing = append(missing, b.ItemID())
		}
	}

	bookers, err := tx.Users().FindByIDs(ctx, bookerIDs)
	if err != nil {
		return nil, err
	}
	items := known
	if len(missing) > 0 {
		loaded, err := tx.Items().FindByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		items = make(map[int64]*item.Item, len(known)+len(loaded))
		for id, it := range known {
			items[id] = it
		}
		for id, it := range loaded {
			items[id] = it
		}
	}

	for _, b := range bookings {
		booker, ok := bookers[b.BookerID()]
		if !ok {
			return nil, shared.ErrUserNotFound
		}
		it, ok := items[b.ItemID()]
		if !ok {
			return nil, shared.ErrItemNotFound
		}
		out = append(out, toBookingView(b, booker, it))
	}
	return out, nil
}

func toBookingView(b *booking.Booking, booker *user.User, it *item.Item) *BookingView {
	return &BookingView{
		ID:     b.ID(),
		Start:  b.Start(),
		End:    b.End(),
		Status: b.Status().String(),
		Booker: BookerView{
			ID:    booker.ID(),
			Name:  booker.Name().Value(),
			Email: booker.Email().Value(),
		},
		Item: BookedItemView{
			ID:          it.ID(),
			Name:        it.Name().Value(),
			Description: it.Description().Value(),
			Available:   it.Available(),
		},
	}
}

func toBookingShortView(b *booking.Booking) *BookingShortView {
	if b == nil {
		return nil
	}
	return &BookingShortView{
		ID:       b.ID(),
		BookerID: b.BookerID(),
		Start:    b.Start(),
		End:      b.End(),
	}
}
