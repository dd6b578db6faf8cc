// Package memory keeps all data in process. It backs STORAGE_DRIVER=memory
// and the usecase tests, and mirrors the constraints of the Postgres schema.
package memory

import (
	"context"
	"sync"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/domain/request"
	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/usecase/shared"
)

type Store struct {
	mu sync.RWMutex
	d  *data
}

func NewStore() *Store {
	return &Store{d: newData()}
}

type data struct {
	users    map[int64]*user.User
	items    map[int64]*item.Item
	bookings map[int64]*booking.Booking
	requests map[int64]*request.ItemRequest
	comments map[int64]*item.Comment

	userSeq, itemSeq, bookingSeq, requestSeq, commentSeq int64
}

func newData() *data {
	return &data{
		users:    map[int64]*user.User{},
		items:    map[int64]*item.Item{},
		bookings: map[int64]*booking.Booking{},
		requests: map[int64]*request.ItemRequest{},
		comments: map[int64]*item.Comment{},
	}
}

// clone copies every entity so a failed unit of work can be rolled back.
func (d *data) clone() *data {
	cp := newData()
	for id, u := range d.users {
		cp.users[id] = copyUser(u)
	}
	for id, it := range d.items {
		cp.items[id] = copyItem(it)
	}
	for id, b := range d.bookings {
		cp.bookings[id] = copyBooking(b)
	}
	for id, r := range d.requests {
		cp.requests[id] = copyRequest(r)
	}
	for id, c := range d.comments {
		cp.comments[id] = copyComment(c)
	}
	cp.userSeq, cp.itemSeq, cp.bookingSeq = d.userSeq, d.itemSeq, d.bookingSeq
	cp.requestSeq, cp.commentSeq = d.requestSeq, d.commentSeq
	return cp
}

type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) shared.UnitOfWork {
	return &UnitOfWork{store: store}
}

// Within serializes writers; the data is restored when fn fails.
func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	snapshot := u.store.d.clone()
	if err := fn(ctx, &memTx{d: u.store.d}); err != nil {
		u.store.d = snapshot
		return err
	}
	return nil
}

func (u *UnitOfWork) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	return fn(ctx, &memTx{d: u.store.d, readOnly: true})
}

func (u *UnitOfWork) Reads() shared.Tx {
	return &memTx{store: u.store}
}

// memTx either works on data already guarded by a unit of work, or, when
// store is set, takes the store lock around every call.
type memTx struct {
	store    *Store
	d        *data
	readOnly bool
}

func (t *memTx) read(fn func(d *data) error) error {
	if t.store != nil {
		t.store.mu.RLock()
		defer t.store.mu.RUnlock()
		return fn(t.store.d)
	}
	return fn(t.d)
}

func (t *memTx) write(fn func(d *data) error) error {
	if t.readOnly {
		return infra.WrapRepoErr("write attempted in read-only transaction", nil, infra.KindDBFailure)
	}
	if t.store != nil {
		t.store.mu.Lock()
		defer t.store.mu.Unlock()
		return fn(t.store.d)
	}
	return fn(t.d)
}

func (t *memTx) Users() shared.UserRepository       { return &userRepo{t: t} }
func (t *memTx) Items() shared.ItemRepository       { return &itemRepo{t: t} }
func (t *memTx) Bookings() shared.BookingRepository { return &bookingRepo{t: t} }
func (t *memTx) Requests() shared.RequestRepository { return &requestRepo{t: t} }
func (t *memTx) Comments() shared.CommentRepository { return &commentRepo{t: t} }

func copyUser(u *user.User) *user.User {
	return user.Reconstruct(u.ID(), u.Name().Value(), u.Email().Value())
}

func copyItem(it *item.Item) *item.Item {
	var requestID *int64
	if it.RequestID() != nil {
		v := *it.RequestID()
		requestID = &v
	}
	return item.Reconstruct(it.ID(), it.OwnerID(), it.Name().Value(), it.Description().Value(), it.Available(), requestID)
}

func copyBooking(b *booking.Booking) *booking.Booking {
	return booking.Reconstruct(b.ID(), b.ItemID(), b.BookerID(), b.Period(), b.Status())
}

func copyRequest(r *request.ItemRequest) *request.ItemRequest {
	return request.Reconstruct(r.ID(), r.RequesterID(), r.Description(), r.CreatedAt())
}

func copyComment(c *item.Comment) *item.Comment {
	return item.ReconstructComment(c.ID(), c.ItemID(), c.AuthorID(), c.Text().Value(), c.CreatedAt())
}
