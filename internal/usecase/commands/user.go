package commands

import (
	"context"

	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/usecase/shared"
)

type CreateUserInput struct {
	Name  string
	Email string
}

// UpdateUserInput leaves a field untouched when it is nil.
type UpdateUserInput struct {
	Name  *string
	Email *string
}

//go:generate mockgen -source=user.go -destination=../../../tests/mock/commands/user.go -package=commandsmock
type UserCommands interface {
	Create(ctx context.Context, in CreateUserInput) (int64, error)
	Update(ctx context.Context, id int64, in UpdateUserInput) error
	Delete(ctx context.Context, id int64) error
}

type userUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewUserUseCase(uow shared.UnitOfWork) UserCommands {
	return &userUseCaseImpl{uow: uow}
}

func (uc *userUseCaseImpl) Create(ctx context.Context, in CreateUserInput) (int64, error) {
	name, err := user.NewName(in.Name)
	if err != nil {
		return 0, err
	}
	email, err := user.NewEmail(in.Email)
	if err != nil {
		return 0, err
	}

	var id int64
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, derr := tx.Users().Create(ctx, user.NewUser(name, email))
		if derr != nil {
			return emailTakenOr(derr)
		}
		id = created
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (uc *userUseCaseImpl) Update(ctx context.Context, id int64, in UpdateUserInput) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByID(ctx, id)
		if err != nil {
			return shared.NotFoundAs(err, shared.ErrUserNotFound)
		}

		if in.Name != nil {
			name, err := user.NewName(*in.Name)
			if err != nil {
				return err
			}
			u.Rename(name)
		}
		if in.Email != nil {
			email, err := user.NewEmail(*in.Email)
			if err != nil {
				return err
			}
			u.ChangeEmail(email)
		}

		if err := tx.Users().Update(ctx, u); err != nil {
			return shared.NotFoundAs(emailTakenOr(err), shared.ErrUserNotFound)
		}
		return nil
	})
}

func (uc *userUseCaseImpl) Delete(ctx context.Context, id int64) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().Delete(ctx, id); err != nil {
			return shared.NotFoundAs(err, shared.ErrUserNotFound)
		}
		return nil
	})
}

func emailTakenOr(err error) error {
	if infra.IsKind(err, infra.KindDuplicateKey) {
		return shared.ErrEmailTaken
	}
	return err
}
