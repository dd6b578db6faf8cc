package commands

import (
	"context"
	"log/slog"

	"shareit/internal/domain/item"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/patch"
	"shareit/internal/usecase/shared"
)

type CreateItemInput struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// UpdateItemInput leaves a field untouched when it is nil.
type UpdateItemInput struct {
	Name        *string
	Description *string
	Available   *bool
	RequestID   *int64
}

//go:generate mockgen -source=item.go -destination=../../../tests/mock/commands/item.go -package=commandsmock
type ItemCommands interface {
	Create(ctx context.Context, ownerID int64, in CreateItemInput) (int64, error)
	Update(ctx context.Context, ownerID, itemID int64, in UpdateItemInput) error
	Delete(ctx context.Context, ownerID, itemID int64) error
	AddComment(ctx context.Context, authorID, itemID int64, text string) (int64, error)
}

type itemUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewItemUseCase(uow shared.UnitOfWork, clk clock.Clock) ItemCommands {
	return &itemUseCaseImpl{uow: uow, clock: clk}
}

func (uc *itemUseCaseImpl) Create(ctx context.Context, ownerID int64, in CreateItemInput) (int64, error) {
	name, err := item.NewName(in.Name)
	if err != nil {
		return 0, err
	}
	description, err := item.NewDescription(in.Description)
	if err != nil {
		return 0, err
	}

	var id int64
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Users().FindByID(ctx, ownerID); err != nil {
			return shared.NotFoundAs(err, shared.ErrUserNotFound)
		}
		if in.RequestID != nil {
			if _, err := tx.Requests().FindByID(ctx, *in.RequestID); err != nil {
				return shared.NotFoundAs(err, shared.ErrRequestNotFound)
			}
		}

		created, err := tx.Items().Create(ctx, item.NewItem(ownerID, name, description, in.Available, in.RequestID))
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

func (uc *itemUseCaseImpl) Update(ctx context.Context, ownerID, itemID int64, in UpdateItemInput) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		it, err := tx.Items().FindByID(ctx, itemID)
		if err != nil {
			return shared.NotFoundAs(err, shared.ErrItemNotFound)
		}
		if err := it.EnsureOwner(ownerID); err != nil {
			slog.WarnContext(ctx, "item update by non-owner", "item_id", itemID, "user_id", ownerID)
			return err
		}

		if patch.Changed(in.Name, it.Name().Value()) {
			name, err := item.NewName(*in.Name)
			if err != nil {
				return err
			}
			it.Rename(name)
		}
		if patch.Changed(in.Description, it.Description().Value()) {
			description, err := item.NewDescription(*in.Description)
			if err != nil {
				return err
			}
			it.Describe(description)
		}
		if patch.Changed(in.Available, it.Available()) {
			it.SetAvailable(*in.Available)
		}
		if in.RequestID != nil {
			if _, err := tx.Requests().FindByID(ctx, *in.RequestID); err != nil {
				return shared.NotFoundAs(err, shared.ErrRequestNotFound)
			}
			it.AttachRequest(*in.RequestID)
		}

		if err := tx.Items().Update(ctx, it); err != nil {
			return shared.NotFoundAs(err, shared.ErrItemNotFound)
		}
		return nil
	})
}

func (uc *itemUseCaseImpl) Delete(ctx context.Context, ownerID, itemID int64) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		it, err := tx.Items().FindByID(ctx, itemID)
		if err != nil {
			return shared.NotFoundAs(err, shared.ErrItemNotFound)
		}
		if err := it.EnsureOwner(ownerID); err != nil {
			return err
		}
		if err := tx.Items().Delete(ctx, itemID); err != nil {
			return shared.NotFoundAs(err, shared.ErrItemNotFound)
		}
		return nil
	})
}

// AddComment accepts a comment only from a user whose approved booking of
// the item has already ended.
func (uc *itemUseCaseImpl) AddComment(ctx context.Context, authorID, itemID int64, text string) (int64, error) {
	body, err := item.NewCommentText(text)
	if err != nil {
		return 0, err
	}
	now := uc.clock.Now()

	var id int64
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Users().FindByID(ctx, authorID); err != nil {
			return shared.NotFoundAs(err, shared.ErrUserNotFound)
		}
		if _, err := tx.Items().FindByID(ctx, itemID); err != nil {
			return shared.NotFoundAs(err, shared.ErrItemNotFound)
		}

		finished, err := tx.Bookings().HasFinishedApproved(ctx, authorID, itemID, now)
		if err != nil {
			return err
		}
		if !finished {
			slog.WarnContext(ctx, "comment without finished booking", "item_id", itemID, "user_id", authorID)
			return item.ErrCommentNotAllowed
		}

		created, err := tx.Comments().Create(ctx, item.NewComment(itemID, authorID, body, now))
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
