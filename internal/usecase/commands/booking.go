package commands

import (
	"context"
	"log/slog"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/infra"
	"shareit/internal/usecase/shared"
)

type CreateBookingInput struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/booking.go -package=commandsmock
type BookingCommands interface {
	Create(ctx context.Context, bookerID int64, in CreateBookingInput) (int64, error)
	// Decide approves or rejects a WAITING booking on behalf of the item owner.
	Decide(ctx context.Context, ownerID, bookingID int64, approved bool) error
}

type bookingUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewBookingUseCase(uow shared.UnitOfWork) BookingCommands {
	return &bookingUseCaseImpl{uow: uow}
}

func (uc *bookingUseCaseImpl) Create(ctx context.Context, bookerID int64, in CreateBookingInput) (int64, error) {
	var id int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Users().FindByID(ctx, bookerID); err != nil {
			return shared.NotFoundAs(err, shared.ErrUserNotFound)
		}
		it, err := tx.Items().FindByID(ctx, in.ItemID)
		if err != nil {
			return shared.NotFoundAs(err, shared.ErrItemNotFound)
		}

		services := &booking.Services{Overlaps: tx.Bookings()}
		b, err := booking.NewBooking(ctx, services, bookerID, bookableItem(it), in.Start, in.End)
		if err != nil {
			slog.WarnContext(ctx, "booking rejected",
				"item_id", in.ItemID,
				"booker_id", bookerID,
				"error", err.Error())
			return err
		}

		created, err := tx.Bookings().Create(ctx, b)
		if err != nil {
			return overlapOr(err)
		}
		id = created
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "booking created", "booking_id", id, "item_id", in.ItemID, "booker_id", bookerID)
	return id, nil
}

func (uc *bookingUseCaseImpl) Decide(ctx context.Context, ownerID, bookingID int64, approved bool) error {
	var status booking.Status
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return shared.NotFoundAs(err, shared.ErrBookingNotFound)
		}
		it, err := tx.Items().FindByID(ctx, b.ItemID())
		if err != nil {
			return shared.NotFoundAs(err, shared.ErrItemNotFound)
		}

		services := &booking.Services{Overlaps: tx.Bookings()}
		if err := b.Decide(ctx, services, ownerID, bookableItem(it), approved); err != nil {
			slog.WarnContext(ctx, "booking decision rejected",
				"booking_id", bookingID,
				"user_id", ownerID,
				"error", err.Error())
			return err
		}

		if err := tx.Bookings().UpdateStatus(ctx, b.ID(), b.Status()); err != nil {
			return shared.NotFoundAs(overlapOr(err), shared.ErrBookingNotFound)
		}
		status = b.Status()
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "booking status updated", "booking_id", bookingID, "status", status.String())
	return nil
}

func bookableItem(it *item.Item) booking.BookableItem {
	return booking.BookableItem{
		ID:        it.ID(),
		OwnerID:   it.OwnerID(),
		Available: it.Available(),
	}
}

// overlapOr maps the storage exclusion constraint onto the domain overlap error.
func overlapOr(err error) error {
	if infra.IsKind(err, infra.KindExclusionViolated) {
		return booking.ErrOverlap
	}
	return err
}
