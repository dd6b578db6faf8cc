package repository

import (
	"context"
	"fmt"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/infra/repository/converter"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
)

const bookingColumns = "id, item_id, booker_id, start_at, end_at, status"

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO bookings (item_id, booker_id, start_at, end_at, status)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		b.ItemID(), b.BookerID(), pgconv.TimeToPgtype(b.Start()), pgconv.TimeToPgtype(b.End()), b.Status().String(),
	).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status booking.Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE bookings SET status = $2 WHERE id = $1`, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*booking.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.BookingRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	b, err := row.ToDomain()
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt booking row", err, infra.KindDBFailure)
	}
	return b, nil
}

func (r *BookingRepository) HasApprovedOverlap(ctx context.Context, itemID int64, period booking.TimeRange, excludeBookingID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE item_id = $1 AND status = 'APPROVED' AND id <> $4
			  AND end_at > $2 AND start_at < $3
		)`,
		itemID, pgconv.TimeToPgtype(period.Start()), pgconv.TimeToPgtype(period.End()), excludeBookingID,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking overlap", err)
	}
	return exists, nil
}

func (r *BookingRepository) ListByBooker(ctx context.Context, bookerID int64, f booking.Filter) ([]*booking.Booking, error) {
	where, args := filterClause(f, bookerID)
	return r.list(ctx, "failed to list bookings by booker",
		`SELECT `+bookingColumns+` FROM bookings WHERE booker_id = $1`+where+pageClause(f), args...)
}

func (r *BookingRepository) ListByItems(ctx context.Context, itemIDs []int64, f booking.Filter) ([]*booking.Booking, error) {
	if len(itemIDs) == 0 {
		return []*booking.Booking{}, nil
	}
	where, args := filterClause(f, itemIDs)
	return r.list(ctx, "failed to list bookings by items",
		`SELECT `+bookingColumns+` FROM bookings WHERE item_id = ANY($1)`+where+pageClause(f), args...)
}

func (r *BookingRepository) HasFinishedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE booker_id = $1 AND item_id = $2 AND status = 'APPROVED' AND end_at < $3
		)`,
		bookerID, itemID, pgconv.TimeToPgtype(now),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check finished booking", err)
	}
	return exists, nil
}

func (r *BookingRepository) AdjacentApproved(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]shared.AdjacentBookings, error) {
	out := make(map[int64]shared.AdjacentBookings, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	last, err := r.list(ctx, "failed to load last bookings",
		`SELECT DISTINCT ON (item_id) `+bookingColumns+` FROM bookings
		 WHERE item_id = ANY($1) AND status = 'APPROVED' AND start_at < $2
		 ORDER BY item_id, start_at DESC`,
		itemIDs, pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, err
	}
	next, err := r.list(ctx, "failed to load next bookings",
		`SELECT DISTINCT ON (item_id) `+bookingColumns+` FROM bookings
		 WHERE item_id = ANY($1) AND status = 'APPROVED' AND start_at > $2
		 ORDER BY item_id, start_at ASC`,
		itemIDs, pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, err
	}

	for _, b := range last {
		adj := out[b.ItemID()]
		adj.Last = b
		out[b.ItemID()] = adj
	}
	for _, b := range next {
		adj := out[b.ItemID()]
		adj.Next = b
		out[b.ItemID()] = adj
	}
	return out, nil
}

func (r *BookingRepository) list(ctx context.Context, msg, sql string, args ...any) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.BookingRow])
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	out, err := converter.BookingsToDomain(found)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt booking row", err, infra.KindDBFailure)
	}
	return out, nil
}

// filterClause renders the state condition of f. The owning column's value
// is always $1; the returned args start with it.
func filterClause(f booking.Filter, owner any) (string, []any) {
	args := []any{owner}
	switch f.State {
	case booking.StateCurrent:
		args = append(args, pgconv.TimeToPgtype(f.Now))
		return " AND start_at < $2 AND end_at > $2", args
	case booking.StatePast:
		args = append(args, pgconv.TimeToPgtype(f.Now))
		return " AND end_at < $2", args
	case booking.StateFuture:
		args = append(args, pgconv.TimeToPgtype(f.Now))
		return " AND start_at > $2", args
	case booking.StateWaiting:
		args = append(args, booking.StatusWaiting.String())
		return " AND status = $2", args
	case booking.StateRejected:
		args = append(args, booking.StatusRejected.String())
		return " AND status = $2", args
	default:
		return "", args
	}
}

func pageClause(f booking.Filter) string {
	clause := " ORDER BY start_at DESC, id DESC"
	if f.Offset > 0 {
		clause += fmt.Sprintf(" OFFSET %d", f.Offset)
	}
	if f.Limit > 0 {
		clause += fmt.Sprintf(" LIMIT %d", f.Limit)
	}
	return clause
}
