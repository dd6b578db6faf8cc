package repository

import (
	"context"

	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/infra/repository/converter"

	"github.com/jackc/pgx/v5"
)

const userColumns = "id, name, email"

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id`,
		u.Name().Value(), u.Email().Value(),
	).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET name = $2, email = $3 WHERE id = $1`,
		u.ID(), u.Name().Value(), u.Email().Value(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.UserRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return row.ToDomain(), nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*user.User, error) {
	out := make(map[int64]*user.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find users", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.UserRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan users", err)
	}
	for _, row := range found {
		out[row.ID] = row.ToDomain()
	}
	return out, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.UserRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan users", err)
	}
	out := make([]*user.User, 0, len(found))
	for _, row := range found {
		out = append(out, row.ToDomain())
	}
	return out, nil
}
