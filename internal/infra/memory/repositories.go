package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/domain/request"
	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/usecase/shared"
)

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

type userRepo struct{ t *memTx }

func (r *userRepo) Create(_ context.Context, u *user.User) (int64, error) {
	var id int64
	err := r.t.write(func(d *data) error {
		if emailTaken(d, u.Email().Value(), 0) {
			return infra.WrapRepoErr("failed to create user", nil, infra.KindDuplicateKey)
		}
		d.userSeq++
		id = d.userSeq
		d.users[id] = copyUser(u.WithID(id))
		return nil
	})
	return id, err
}

func (r *userRepo) Update(_ context.Context, u *user.User) error {
	return r.t.write(func(d *data) error {
		if _, ok := d.users[u.ID()]; !ok {
			return notFound("user")
		}
		if emailTaken(d, u.Email().Value(), u.ID()) {
			return infra.WrapRepoErr("failed to update user", nil, infra.KindDuplicateKey)
		}
		d.users[u.ID()] = copyUser(u)
		return nil
	})
}

// Delete cascades like the foreign keys of the schema.
func (r *userRepo) Delete(_ context.Context, id int64) error {
	return r.t.write(func(d *data) error {
		if _, ok := d.users[id]; !ok {
			return notFound("user")
		}
		delete(d.users, id)

		for itemID, it := range d.items {
			if it.OwnerID() == id {
				deleteItem(d, itemID)
			}
		}
		for bid, b := range d.bookings {
			if b.BookerID() == id {
				delete(d.bookings, bid)
			}
		}
		for cid, c := range d.comments {
			if c.AuthorID() == id {
				delete(d.comments, cid)
			}
		}
		for rid, req := range d.requests {
			if req.RequesterID() == id {
				deleteRequest(d, rid)
			}
		}
		return nil
	})
}

func (r *userRepo) FindByID(_ context.Context, id int64) (*user.User, error) {
	var out *user.User
	err := r.t.read(func(d *data) error {
		u, ok := d.users[id]
		if !ok {
			return notFound("user")
		}
		out = copyUser(u)
		return nil
	})
	return out, err
}

func (r *userRepo) FindByIDs(_ context.Context, ids []int64) (map[int64]*user.User, error) {
	out := make(map[int64]*user.User, len(ids))
	err := r.t.read(func(d *data) error {
		for _, id := range ids {
			if u, ok := d.users[id]; ok {
				out[id] = copyUser(u)
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepo) List(_ context.Context) ([]*user.User, error) {
	var out []*user.User
	err := r.t.read(func(d *data) error {
		out = make([]*user.User, 0, len(d.users))
		for _, u := range d.users {
			out = append(out, copyUser(u))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, err
}

func emailTaken(d *data, email string, except int64) bool {
	for id, u := range d.users {
		if id != except && u.Email().Value() == email {
			return true
		}
	}
	return false
}

type itemRepo struct{ t *memTx }

func (r *itemRepo) Create(_ context.Context, it *item.Item) (int64, error) {
	var id int64
	err := r.t.write(func(d *data) error {
		if err := checkItemRefs(d, it); err != nil {
			return err
		}
		d.itemSeq++
		id = d.itemSeq
		d.items[id] = copyItem(it.WithID(id))
		return nil
	})
	return id, err
}

func (r *itemRepo) Update(_ context.Context, it *item.Item) error {
	return r.t.write(func(d *data) error {
		if _, ok := d.items[it.ID()]; !ok {
			return notFound("item")
		}
		if err := checkItemRefs(d, it); err != nil {
			return err
		}
		d.items[it.ID()] = copyItem(it)
		return nil
	})
}

func (r *itemRepo) Delete(_ context.Context, id int64) error {
	return r.t.write(func(d *data) error {
		if _, ok := d.items[id]; !ok {
			return notFound("item")
		}
		deleteItem(d, id)
		return nil
	})
}

func (r *itemRepo) FindByID(_ context.Context, id int64) (*item.Item, error) {
	var out *item.Item
	err := r.t.read(func(d *data) error {
		it, ok := d.items[id]
		if !ok {
			return notFound("item")
		}
		out = copyItem(it)
		return nil
	})
	return out, err
}

func (r *itemRepo) FindByIDs(_ context.Context, ids []int64) (map[int64]*item.Item, error) {
	out := make(map[int64]*item.Item, len(ids))
	err := r.t.read(func(d *data) error {
		for _, id := range ids {
			if it, ok := d.items[id]; ok {
				out[id] = copyItem(it)
			}
		}
		return nil
	})
	return out, err
}

func (r *itemRepo) ListByOwner(_ context.Context, ownerID int64) ([]*item.Item, error) {
	return r.filter(func(it *item.Item) bool { return it.OwnerID() == ownerID })
}

func (r *itemRepo) ListByRequests(_ context.Context, requestIDs []int64) ([]*item.Item, error) {
	wanted := toSet(requestIDs)
	return r.filter(func(it *item.Item) bool {
		return it.RequestID() != nil && wanted[*it.RequestID()]
	})
}

func (r *itemRepo) Search(_ context.Context, text string, offset, limit int) ([]*item.Item, error) {
	needle := strings.ToLower(text)
	found, err := r.filter(func(it *item.Item) bool {
		return it.Available() &&
			(strings.Contains(strings.ToLower(it.Name().Value()), needle) ||
				strings.Contains(strings.ToLower(it.Description().Value()), needle))
	})
	if err != nil {
		return nil, err
	}
	return window(found, offset, limit), nil
}

func (r *itemRepo) filter(keep func(*item.Item) bool) ([]*item.Item, error) {
	out := []*item.Item{}
	err := r.t.read(func(d *data) error {
		for _, it := range d.items {
			if keep(it) {
				out = append(out, copyItem(it))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, err
}

func checkItemRefs(d *data, it *item.Item) error {
	if _, ok := d.users[it.OwnerID()]; !ok {
		return infra.WrapRepoErr("item owner does not exist", nil, infra.KindForeignKeyViolated)
	}
	if it.RequestID() != nil {
		if _, ok := d.requests[*it.RequestID()]; !ok {
			return infra.WrapRepoErr("item request does not exist", nil, infra.KindForeignKeyViolated)
		}
	}
	return nil
}

func deleteItem(d *data, id int64) {
	delete(d.items, id)
	for bid, b := range d.bookings {
		if b.ItemID() == id {
			delete(d.bookings, bid)
		}
	}
	for cid, c := range d.comments {
		if c.ItemID() == id {
			delete(d.comments, cid)
		}
	}
}

// deleteRequest detaches answering items, as ON DELETE SET NULL does.
func deleteRequest(d *data, id int64) {
	delete(d.requests, id)
	for itemID, it := range d.items {
		if it.RequestID() != nil && *it.RequestID() == id {
			d.items[itemID] = item.Reconstruct(it.ID(), it.OwnerID(), it.Name().Value(), it.Description().Value(), it.Available(), nil)
		}
	}
}

type bookingRepo struct{ t *memTx }

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) (int64, error) {
	var id int64
	err := r.t.write(func(d *data) error {
		if _, ok := d.items[b.ItemID()]; !ok {
			return infra.WrapRepoErr("booked item does not exist", nil, infra.KindForeignKeyViolated)
		}
		if _, ok := d.users[b.BookerID()]; !ok {
			return infra.WrapRepoErr("booker does not exist", nil, infra.KindForeignKeyViolated)
		}
		if b.Status() == booking.StatusApproved && approvedOverlap(d, b.ItemID(), b.Period(), 0) {
			return infra.WrapRepoErr("failed to create booking", nil, infra.KindExclusionViolated)
		}
		d.bookingSeq++
		id = d.bookingSeq
		d.bookings[id] = copyBooking(b.WithID(id))
		return nil
	})
	return id, err
}

func (r *bookingRepo) UpdateStatus(_ context.Context, id int64, status booking.Status) error {
	return r.t.write(func(d *data) error {
		b, ok := d.bookings[id]
		if !ok {
			return notFound("booking")
		}
		if status == booking.StatusApproved && approvedOverlap(d, b.ItemID(), b.Period(), id) {
			return infra.WrapRepoErr("failed to update booking status", nil, infra.KindExclusionViolated)
		}
		d.bookings[id] = booking.Reconstruct(b.ID(), b.ItemID(), b.BookerID(), b.Period(), status)
		return nil
	})
}

func (r *bookingRepo) FindByID(_ context.Context, id int64) (*booking.Booking, error) {
	var out *booking.Booking
	err := r.t.read(func(d *data) error {
		b, ok := d.bookings[id]
		if !ok {
			return notFound("booking")
		}
		out = copyBooking(b)
		return nil
	})
	return out, err
}

func (r *bookingRepo) HasApprovedOverlap(_ context.Context, itemID int64, period booking.TimeRange, excludeBookingID int64) (bool, error) {
	var found bool
	err := r.t.read(func(d *data) error {
		found = approvedOverlap(d, itemID, period, excludeBookingID)
		return nil
	})
	return found, err
}

func (r *bookingRepo) ListByBooker(_ context.Context, bookerID int64, f booking.Filter) ([]*booking.Booking, error) {
	all, err := r.filter(func(b *booking.Booking) bool { return b.BookerID() == bookerID })
	if err != nil {
		return nil, err
	}
	return f.Apply(all), nil
}

func (r *bookingRepo) ListByItems(_ context.Context, itemIDs []int64, f booking.Filter) ([]*booking.Booking, error) {
	wanted := toSet(itemIDs)
	all, err := r.filter(func(b *booking.Booking) bool { return wanted[b.ItemID()] })
	if err != nil {
		return nil, err
	}
	return f.Apply(all), nil
}

func (r *bookingRepo) HasFinishedApproved(_ context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	found, err := r.filter(func(b *booking.Booking) bool {
		return b.ItemID() == itemID && b.IsFinishedFor(bookerID, now)
	})
	return len(found) > 0, err
}

func (r *bookingRepo) AdjacentApproved(_ context.Context, itemIDs []int64, now time.Time) (map[int64]shared.AdjacentBookings, error) {
	wanted := toSet(itemIDs)
	approved, err := r.filter(func(b *booking.Booking) bool {
		return wanted[b.ItemID()] && b.Status() == booking.StatusApproved
	})
	if err != nil {
		return nil, err
	}

	out := make(map[int64]shared.AdjacentBookings)
	for _, b := range approved {
		adj := out[b.ItemID()]
		switch {
		case b.Start().Before(now):
			if adj.Last == nil || b.Start().After(adj.Last.Start()) {
				adj.Last = b
			}
		case b.Start().After(now):
			if adj.Next == nil || b.Start().Before(adj.Next.Start()) {
				adj.Next = b
			}
		}
		out[b.ItemID()] = adj
	}
	return out, nil
}

func (r *bookingRepo) filter(keep func(*booking.Booking) bool) ([]*booking.Booking, error) {
	out := []*booking.Booking{}
	err := r.t.read(func(d *data) error {
		for _, b := range d.bookings {
			if keep(b) {
				out = append(out, copyBooking(b))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, err
}

func approvedOverlap(d *data, itemID int64, period booking.TimeRange, exclude int64) bool {
	for id, b := range d.bookings {
		if id == exclude || b.ItemID() != itemID || b.Status() != booking.StatusApproved {
			continue
		}
		if b.Period().Overlaps(period) {
			return true
		}
	}
	return false
}

type requestRepo struct{ t *memTx }

func (r *requestRepo) Create(_ context.Context, req *request.ItemRequest) (int64, error) {
	var id int64
	err := r.t.write(func(d *data) error {
		if _, ok := d.users[req.RequesterID()]; !ok {
			return infra.WrapRepoErr("requester does not exist", nil, infra.KindForeignKeyViolated)
		}
		d.requestSeq++
		id = d.requestSeq
		d.requests[id] = copyRequest(req.WithID(id))
		return nil
	})
	return id, err
}

func (r *requestRepo) FindByID(_ context.Context, id int64) (*request.ItemRequest, error) {
	var out *request.ItemRequest
	err := r.t.read(func(d *data) error {
		req, ok := d.requests[id]
		if !ok {
			return notFound("item request")
		}
		out = copyRequest(req)
		return nil
	})
	return out, err
}

func (r *requestRepo) ListByRequester(_ context.Context, requesterID int64) ([]*request.ItemRequest, error) {
	return r.newestFirst(func(req *request.ItemRequest) bool { return req.RequesterID() == requesterID })
}

func (r *requestRepo) ListExcludingRequester(_ context.Context, requesterID int64, offset, limit int) ([]*request.ItemRequest, error) {
	out, err := r.newestFirst(func(req *request.ItemRequest) bool { return req.RequesterID() != requesterID })
	if err != nil {
		return nil, err
	}
	return window(out, offset, limit), nil
}

func (r *requestRepo) newestFirst(keep func(*request.ItemRequest) bool) ([]*request.ItemRequest, error) {
	out := []*request.ItemRequest{}
	err := r.t.read(func(d *data) error {
		for _, req := range d.requests {
			if keep(req) {
				out = append(out, copyRequest(req))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].ID() > out[j].ID()
		}
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, err
}

type commentRepo struct{ t *memTx }

func (r *commentRepo) Create(_ context.Context, c *item.Comment) (int64, error) {
	var id int64
	err := r.t.write(func(d *data) error {
		if _, ok := d.items[c.ItemID()]; !ok {
			return infra.WrapRepoErr("commented item does not exist", nil, infra.KindForeignKeyViolated)
		}
		if _, ok := d.users[c.AuthorID()]; !ok {
			return infra.WrapRepoErr("comment author does not exist", nil, infra.KindForeignKeyViolated)
		}
		d.commentSeq++
		id = d.commentSeq
		d.comments[id] = copyComment(c.WithID(id))
		return nil
	})
	return id, err
}

func (r *commentRepo) ListByItems(_ context.Context, itemIDs []int64) ([]*item.Comment, error) {
	wanted := toSet(itemIDs)
	out := []*item.Comment{}
	err := r.t.read(func(d *data) error {
		for _, c := range d.comments {
			if wanted[c.ItemID()] {
				out = append(out, copyComment(c))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].ID() < out[j].ID()
		}
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, err
}

func toSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// window applies an offset and limit; limit 0 means no limit.
func window[T any](rows []T, offset, limit int) []T {
	if offset > 0 {
		if offset >= len(rows) {
			return []T{}
		}
		rows = rows[offset:]
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
