package commands

import (
	"context"

	"shareit/internal/domain/request"
	"shareit/internal/pkg/clock"
	"shareit/internal/usecase/shared"
)

//go:generate mockgen -source=request.go -destination=../../../tests/mock/commands/request.go -package=commandsmock
type RequestCommands interface {
	Create(ctx context.Context, requesterID int64, description string) (int64, error)
}

type requestUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewRequestUseCase(uow shared.UnitOfWork, clk clock.Clock) RequestCommands {
	return &requestUseCaseImpl{uow: uow, clock: clk}
}

func (uc *requestUseCaseImpl) Create(ctx context.Context, requesterID int64, description string) (int64, error) {
	r, err := request.NewItemRequest(requesterID, description, uc.clock.Now())
	if err != nil {
		return 0, err
	}

	var id int64
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Users().FindByID(ctx, requesterID); err != nil {
			return shared.NotFoundAs(err, shared.ErrUserNotFound)
		}
		created, err := tx.Requests().Create(ctx, r)
		if err != nil {
			return err
		}
		id = created
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}
