package queries

import (
	"context"

	"shareit/internal/domain/item"
	"shareit/internal/domain/request"
	"shareit/internal/usecase/shared"
)

//go:generate mockgen -source=request.go -destination=../../../tests/mock/queries/request.go -package=queriesmock
type RequestQueries interface {
	GetByID(ctx context.Context, requestID int64) (*RequestView, error)
	ListOwn(ctx context.Context, requesterID int64) ([]*RequestView, error)
	ListAll(ctx context.Context, requesterID int64, page Page) ([]*RequestView, error)
}

type requestQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewRequestQueries(uow shared.UnitOfWork) RequestQueries {
	return &requestQueriesImpl{uow: uow}
}

func (q *requestQueriesImpl) GetByID(ctx context.Context, requestID int64) (*RequestView, error) {
	var view *RequestView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Requests().FindByID(ctx, requestID)
		if err != nil {
			return shared.NotFoundAs(err, shared.ErrRequestNotFound)
		}
		views, err := withItems(ctx, tx, []*request.ItemRequest{r})
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

func (q *requestQueriesImpl) ListOwn(ctx context.Context, requesterID int64) ([]*RequestView, error) {
	var views []*RequestView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		rs, err := tx.Requests().ListByRequester(ctx, requesterID)
		if err != nil {
			return err
		}
		views, err = withItems(ctx, tx, rs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *requestQueriesImpl) ListAll(ctx context.Context, requesterID int64, page Page) ([]*RequestView, error) {
	page = page.Normalize()

	var views []*RequestView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		rs, err := tx.Requests().ListExcludingRequester(ctx, requesterID, page.From, page.Size)
		if err != nil {
			return err
		}
		views, err = withItems(ctx, tx, rs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// withItems attaches the items created in answer to each request.
func withItems(ctx context.Context, tx shared.Tx, rs []*request.ItemRequest) ([]*RequestView, error) {
	out := make([]*RequestView, 0, len(rs))
	if len(rs) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.ID())
	}
	answered, err := tx.Items().ListByRequests(ctx, ids)
	if err != nil {
		return nil, err
	}

	byRequest := make(map[int64][]RequestItemView, len(rs))
	for _, it := range answered {
		if it.RequestID() == nil {
			continue
		}
		rid := *it.RequestID()
		byRequest[rid] = append(byRequest[rid], toRequestItemView(it))
	}

	for _, r := range rs {
		items := byRequest[r.ID()]
		if items == nil {
			items = []RequestItemView{}
		}
		out = append(out, &RequestView{
			ID:          r.ID(),
			Description: r.Description(),
			Created:     r.CreatedAt(),
			Items:       items,
		})
	}
	return out, nil
}

func toRequestItemView(it *item.Item) RequestItemView {
	return RequestItemView{
		ID:      it.ID(),
		Name:    it.Name().Value(),
		OwnerID: it.OwnerID(),
	}
}
