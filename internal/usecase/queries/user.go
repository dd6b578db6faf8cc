package queries

import (
	"context"

	"shareit/internal/domain/user"
	"shareit/internal/usecase/shared"
)

//go:generate mockgen -source=user.go -destination=../../../tests/mock/queries/user.go -package=queriesmock
type UserQueries interface {
	GetByID(ctx context.Context, id int64) (*UserView, error)
	List(ctx context.Context) ([]*UserView, error)
}

type userQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewUserQueries(uow shared.UnitOfWork) UserQueries {
	return &userQueriesImpl{uow: uow}
}

func (q *userQueriesImpl) GetByID(ctx context.Context, id int64) (*UserView, error) {
	u, err := q.uow.Reads().Users().FindByID(ctx, id)
	if err != nil {
		return nil, shared.NotFoundAs(err, shared.ErrUserNotFound)
	}
	return toUserView(u), nil
}

func (q *userQueriesImpl) List(ctx context.Context) ([]*UserView, error) {
	users, err := q.uow.Reads().Users().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*UserView, 0, len(users))
	for _, u := range users {
		out = append(out, toUserView(u))
	}
	return out, nil
}

func toUserView(u *user.User) *UserView {
	return &UserView{
		ID:    u.ID(),
		Name:  u.Name().Value(),
		Email: u.Email().Value(),
	}
}
