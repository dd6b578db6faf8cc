package booking

import (
	"context"
)

type Services struct {
	Overlaps OverlapChecker
}

// OverlapChecker reports whether an APPROVED booking of itemID, other than
// excludeBookingID, intersects period.
type OverlapChecker interface {
	HasApprovedOverlap(ctx context.Context, itemID int64, period TimeRange, excludeBookingID int64) (bool, error)
}

// BookableItem is the slice of an item the booking rules look at.
type BookableItem struct {
	ID        int64
	OwnerID   int64
	Available bool
}
