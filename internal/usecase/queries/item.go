package queries

import (
	"context"
	"strings"

	"shareit/internal/domain/item"
	"shareit/internal/pkg/clock"
	"shareit/internal/usecase/shared"

	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=item.go -destination=../../../tests/mock/queries/item.go -package=queriesmock
type ItemQueries interface {
	// GetByID includes the adjacent bookings only when viewerID owns the item.
	GetByID(ctx context.Context, viewerID, itemID int64) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID int64, page Page) ([]*ItemView, error)
	Search(ctx context.Context, text string, page Page) ([]*ItemView, error)
}

type itemQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewItemQueries(uow shared.UnitOfWork, clk clock.Clock) ItemQueries {
	return &itemQueriesImpl{uow: uow, clock: clk}
}

func (q *itemQueriesImpl) GetByID(ctx context.Context, viewerID, itemID int64) (*ItemView, error) {
	var view *ItemView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		it, err := tx.Items().FindByID(ctx, itemID)
		if err != nil {
			return shared.NotFoundAs(err, shared.ErrItemNotFound)
		}

		comments, err := tx.Comments().ListByItems(ctx, []int64{itemID})
		if err != nil {
			return err
		}
		byItem, err := commentViews(ctx, tx, comments)
		if err != nil {
			return err
		}

		view = toItemView(it, byItem[itemID])
		if !it.IsOwnedBy(viewerID) {
			return nil
		}

		adjacent, err := tx.Bookings().AdjacentApproved(ctx, []int64{itemID}, q.clock.Now())
		if err != nil {
			return err
		}
		view.LastBooking = toBookingShortView(adjacent[itemID].Last)
		view.NextBooking = toBookingShortView(adjacent[itemID].Next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *itemQueriesImpl) ListByOwner(ctx context.Context, ownerID int64, page Page) ([]*ItemView, error) {
	reads := q.uow.Reads()

	owned, err := reads.Items().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	owned = paginate(owned, page)
	if len(owned) == 0 {
		return []*ItemView{}, nil
	}

	ids := make([]int64, 0, len(owned))
	for _, it := range owned {
		ids = append(ids, it.ID())
	}
	now := q.clock.Now()

	var (
		adjacent map[int64]shared.AdjacentBookings
		byItem   map[int64][]CommentView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		adjacent, err = reads.Bookings().AdjacentApproved(gctx, ids, now)
		return err
	})
	g.Go(func() error {
		comments, err := reads.Comments().ListByItems(gctx, ids)
		if err != nil {
			return err
		}
		byItem, err = commentViews(gctx, reads, comments)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*ItemView, 0, len(owned))
	for _, it := range owned {
		view := toItemView(it, byItem[it.ID()])
		view.LastBooking = toBookingShortView(adjacent[it.ID()].Last)
		view.NextBooking = toBookingShortView(adjacent[it.ID()].Next)
		out = append(out, view)
	}
	return out, nil
}

func (q *itemQueriesImpl) Search(ctx context.Context, text string, page Page) ([]*ItemView, error) {
	if strings.TrimSpace(text) == "" {
		return []*ItemView{}, nil
	}

	page = page.Normalize()
	found, err := q.uow.Reads().Items().Search(ctx, text, page.From, page.Size)
	if err != nil {
		return nil, err
	}
	out := make([]*ItemView, 0, len(found))
	for _, it := range found {
		out = append(out, toItemView(it, nil))
	}
	return out, nil
}

// commentViews groups comments by item and resolves author names.
func commentViews(ctx context.Context, tx shared.Tx, comments []*item.Comment) (map[int64][]CommentView, error) {
	out := make(map[int64][]CommentView)
	if len(comments) == 0 {
		return out, nil
	}

	authorIDs := make([]int64, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.AuthorID())
	}
	authors, err := tx.Users().FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	for _, c := range comments {
		var name string
		if a, ok := authors[c.AuthorID()]; ok {
			name = a.Name().Value()
		}
		out[c.ItemID()] = append(out[c.ItemID()], CommentView{
			ID:         c.ID(),
			Text:       c.Text().Value(),
			AuthorName: name,
			Created:    c.CreatedAt(),
		})
	}
	return out, nil
}

func toItemView(it *item.Item, comments []CommentView) *ItemView {
	if comments == nil {
		comments = []CommentView{}
	}
	return &ItemView{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name().Value(),
		Description: it.Description().Value(),
		Available:   it.Available(),
		RequestID:   it.RequestID(),
		Comments:    comments,
	}
}
