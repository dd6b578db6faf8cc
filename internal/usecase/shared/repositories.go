package shared

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/domain/request"
	"shareit/internal/domain/user"
)

// Repositories report failures as infra.RepositoryError; a missing row is
// KindNotFound and a unique violation is KindDuplicateKey.

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (int64, error)
	Update(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*user.User, error)
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
}

type ItemRepository interface {
	Create(ctx context.Context, it *item.Item) (int64, error)
	Update(ctx context.Context, it *item.Item) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*item.Item, error)
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*item.Item, error)
	// ListByOwner orders by id.
	ListByOwner(ctx context.Context, ownerID int64) ([]*item.Item, error)
	ListByRequests(ctx context.Context, requestIDs []int64) ([]*item.Item, error)
	// Search matches available items whose name or description contains text, ignoring case.
	Search(ctx context.Context, text string, offset, limit int) ([]*item.Item, error)
}

type BookingRepository interface {
	booking.OverlapChecker

	Create(ctx context.Context, b *booking.Booking) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status booking.Status) error
	FindByID(ctx context.Context, id int64) (*booking.Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, f booking.Filter) ([]*booking.Booking, error)
	ListByItems(ctx context.Context, itemIDs []int64, f booking.Filter) ([]*booking.Booking, error)
	// HasFinishedApproved reports whether bookerID holds an APPROVED booking of itemID that ended before now.
	HasFinishedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
	// AdjacentApproved returns, per item, the latest APPROVED booking that
	// started before now and the earliest one starting after now.
	AdjacentApproved(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]AdjacentBookings, error)
}

type AdjacentBookings struct {
	Last *booking.Booking
	Next *booking.Booking
}

type RequestRepository interface {
	Create(ctx context.Context, r *request.ItemRequest) (int64, error)
	FindByID(ctx context.Context, id int64) (*request.ItemRequest, error)
	// ListByRequester and ListExcludingRequester order newest first.
	ListByRequester(ctx context.Context, requesterID int64) ([]*request.ItemRequest, error)
	ListExcludingRequester(ctx context.Context, requesterID int64, offset, limit int) ([]*request.ItemRequest, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *item.Comment) (int64, error)
	// ListByItems orders oldest first.
	ListByItems(ctx context.Context, itemIDs []int64) ([]*item.Comment, error)
}
