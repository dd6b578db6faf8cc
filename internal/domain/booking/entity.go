package booking

import (
	"context"
	"time"

	"shareit/internal/pkg/errs"
)

var (
	ErrSelfBooking     = errs.Validation("owner cannot book their own item")
	ErrItemUnavailable = errs.Validation("item is not available for booking")
	ErrOverlap         = errs.Validation("booking overlaps an approved booking of this item")
	ErrAlreadyDecided  = errs.Validation("booking has already been approved or rejected")
	ErrNotItemOwner    = errs.Forbidden("only the item owner can approve or reject a booking")
	ErrAccessDenied    = errs.Forbidden("only the booker or the item owner can view a booking")
)

type Booking struct {
	id       int64
	itemID   int64
	bookerID int64
	period   TimeRange
	status   Status
}

// NewBooking validates a booking request against the item and the approved
// bookings already on it. The result is WAITING and has no id yet.
func NewBooking(
	ctx context.Context,
	services *Services,
	bookerID int64,
	item BookableItem,
	start, end time.Time,
) (*Booking, error) {
	if item.OwnerID == bookerID {
		return nil, ErrSelfBooking
	}
	if !item.Available {
		return nil, ErrItemUnavailable
	}

	period, err := NewTimeRange(start, end)
	if err != nil {
		return nil, err
	}

	overlap, err := services.Overlaps.HasApprovedOverlap(ctx, item.ID, period, 0)
	if err != nil {
		return nil, errs.Wrap(err, "check booking overlap")
	}
	if overlap {
		return nil, ErrOverlap
	}

	return &Booking{
		itemID:   item.ID,
		bookerID: bookerID,
		period:   period,
		status:   StatusWaiting,
	}, nil
}

func Reconstruct(id, itemID, bookerID int64, period TimeRange, status Status) *Booking {
	return &Booking{
		id:       id,
		itemID:   itemID,
		bookerID: bookerID,
		period:   period,
		status:   status,
	}
}

// Decide moves a WAITING booking to APPROVED or REJECTED on behalf of the
// item owner. Approval re-checks the window against other approved bookings.
func (b *Booking) Decide(ctx context.Context, services *Services, actorID int64, item BookableItem, approve bool) error {
	if item.OwnerID != actorID {
		return ErrNotItemOwner
	}
	if b.status != StatusWaiting {
		return ErrAlreadyDecided
	}

	if !approve {
		b.status = StatusRejected
		return nil
	}

	overlap, err := services.Overlaps.HasApprovedOverlap(ctx, b.itemID, b.period, b.id)
	if err != nil {
		return errs.Wrap(err, "check booking overlap")
	}
	if overlap {
		return ErrOverlap
	}
	b.status = StatusApproved
	return nil
}

func (b *Booking) CanBeViewedBy(userID, itemOwnerID int64) bool {
	return b.bookerID == userID || itemOwnerID == userID
}

func (b *Booking) EnsureViewableBy(userID, itemOwnerID int64) error {
	if !b.CanBeViewedBy(userID, itemOwnerID) {
		return ErrAccessDenied
	}
	return nil
}

// IsFinishedFor reports whether userID booked the item, got approved, and
// the window has already ended.
func (b *Booking) IsFinishedFor(userID int64, now time.Time) bool {
	return b.bookerID == userID && b.status == StatusApproved && b.period.End().Before(now)
}

func (b *Booking) WithID(id int64) *Booking {
	cp := *b
	cp.id = id
	return &cp
}

func (b *Booking) ID() int64         { return b.id }
func (b *Booking) ItemID() int64     { return b.itemID }
func (b *Booking) BookerID() int64   { return b.bookerID }
func (b *Booking) Period() TimeRange { return b.period }
func (b *Booking) Start() time.Time  { return b.period.Start() }
func (b *Booking) End() time.Time    { return b.period.End() }
func (b *Booking) Status() Status    { return b.status }
