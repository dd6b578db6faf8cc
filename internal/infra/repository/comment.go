package repository

import (
	"context"

	"shareit/internal/domain/item"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/infra/repository/converter"
	"shareit/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
)

type CommentRepository struct {
	db db.DBTX
}

func NewCommentRepository(dbtx db.DBTX) *CommentRepository {
	return &CommentRepository{db: dbtx}
}

func (r *CommentRepository) Create(ctx context.Context, c *item.Comment) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO comments (item_id, author_id, text, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		c.ItemID(), c.AuthorID(), c.Text().Value(), pgconv.TimeToPgtype(c.CreatedAt()),
	).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create comment", err)
	}
	return id, nil
}

func (r *CommentRepository) ListByItems(ctx context.Context, itemIDs []int64) ([]*item.Comment, error) {
	if len(itemIDs) == 0 {
		return []*item.Comment{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, item_id, author_id, text, created_at FROM comments
		 WHERE item_id = ANY($1) ORDER BY created_at, id`,
		itemIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list comments", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.CommentRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan comments", err)
	}
	out := make([]*item.Comment, 0, len(found))
	for _, row := range found {
		out = append(out, row.ToDomain())
	}
	return out, nil
}
