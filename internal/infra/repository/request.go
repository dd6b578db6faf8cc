package repository

import (
	"context"

	"shareit/internal/domain/request"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/infra/repository/converter"
	"shareit/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
)

const requestColumns = "id, requester_id, description, created_at"

type RequestRepository struct {
	db db.DBTX
}

func NewRequestRepository(dbtx db.DBTX) *RequestRepository {
	return &RequestRepository{db: dbtx}
}

func (r *RequestRepository) Create(ctx context.Context, req *request.ItemRequest) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO requests (requester_id, description, created_at) VALUES ($1, $2, $3) RETURNING id`,
		req.RequesterID(), req.Description(), pgconv.TimeToPgtype(req.CreatedAt()),
	).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create request", err)
	}
	return id, nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id int64) (*request.ItemRequest, error) {
	rows, err := r.db.Query(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = $1`, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find request", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.RequestRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find request", err)
	}
	return row.ToDomain(), nil
}

func (r *RequestRepository) ListByRequester(ctx context.Context, requesterID int64) ([]*request.ItemRequest, error) {
	return r.list(ctx, "failed to list own requests",
		`SELECT `+requestColumns+` FROM requests WHERE requester_id = $1 ORDER BY created_at DESC, id DESC`,
		requesterID)
}

func (r *RequestRepository) ListExcludingRequester(ctx context.Context, requesterID int64, offset, limit int) ([]*request.ItemRequest, error) {
	return r.list(ctx, "failed to list requests",
		`SELECT `+requestColumns+` FROM requests WHERE requester_id <> $1
		 ORDER BY created_at DESC, id DESC OFFSET $2 LIMIT NULLIF($3::bigint, 0)`,
		requesterID, offset, limit)
}

func (r *RequestRepository) list(ctx context.Context, msg, sql string, args ...any) ([]*request.ItemRequest, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.RequestRow])
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	out := make([]*request.ItemRequest, 0, len(found))
	for _, row := range found {
		out = append(out, row.ToDomain())
	}
	return out, nil
}
