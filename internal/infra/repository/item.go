package repository

import (
	"context"
	"strings"

	"shareit/internal/domain/item"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/infra/repository/converter"
	"shareit/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
)

const itemColumns = "id, owner_id, name, description, available, request_id"

type ItemRepository struct {
	db db.DBTX
}

func NewItemRepository(dbtx db.DBTX) *ItemRepository {
	return &ItemRepository{db: dbtx}
}

func (r *ItemRepository) Create(ctx context.Context, it *item.Item) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO items (owner_id, name, description, available, request_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		it.OwnerID(), it.Name().Value(), it.Description().Value(), it.Available(),
		pgconv.Int8PtrToPgtype(it.RequestID()),
	).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create item", err)
	}
	return id, nil
}

func (r *ItemRepository) Update(ctx context.Context, it *item.Item) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE items SET name = $2, description = $3, available = $4, request_id = $5 WHERE id = $1`,
		it.ID(), it.Name().Value(), it.Description().Value(), it.Available(),
		pgconv.Int8PtrToPgtype(it.RequestID()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*item.Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find item", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.ItemRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find item", err)
	}
	return row.ToDomain(), nil
}

func (r *ItemRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*item.Item, error) {
	out := make(map[int64]*item.Item, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	found, err := r.list(ctx, "failed to find items",
		`SELECT `+itemColumns+` FROM items WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	for _, it := range found {
		out[it.ID()] = it
	}
	return out, nil
}

func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*item.Item, error) {
	return r.list(ctx, "failed to list items by owner",
		`SELECT `+itemColumns+` FROM items WHERE owner_id = $1 ORDER BY id`, ownerID)
}

func (r *ItemRepository) ListByRequests(ctx context.Context, requestIDs []int64) ([]*item.Item, error) {
	if len(requestIDs) == 0 {
		return []*item.Item{}, nil
	}
	return r.list(ctx, "failed to list items by request",
		`SELECT `+itemColumns+` FROM items WHERE request_id = ANY($1) ORDER BY id`, requestIDs)
}

func (r *ItemRepository) Search(ctx context.Context, text string, offset, limit int) ([]*item.Item, error) {
	return r.list(ctx, "failed to search items",
		`SELECT `+itemColumns+` FROM items
		 WHERE available AND (name ILIKE $1 ESCAPE '\' OR description ILIKE $1 ESCAPE '\')
		 ORDER BY id OFFSET $2 LIMIT NULLIF($3::bigint, 0)`,
		containsPattern(text), offset, limit)
}

func (r *ItemRepository) list(ctx context.Context, msg, sql string, args ...any) ([]*item.Item, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.ItemRow])
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	out := make([]*item.Item, 0, len(found))
	for _, row := range found {
		out = append(out, row.ToDomain())
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching text literally anywhere.
func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}
