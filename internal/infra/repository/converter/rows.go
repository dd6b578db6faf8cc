package converter

import (
	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/domain/request"
	"shareit/internal/domain/user"
	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type UserRow struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
}

func (r UserRow) ToDomain() *user.User {
	return user.Reconstruct(r.ID, r.Name, r.Email)
}

type ItemRow struct {
	ID          int64       `db:"id"`
	OwnerID     int64       `db:"owner_id"`
	Name        string      `db:"name"`
	Description string      `db:"description"`
	Available   bool        `db:"available"`
	RequestID   pgtype.Int8 `db:"request_id"`
}

func (r ItemRow) ToDomain() *item.Item {
	return item.Reconstruct(r.ID, r.OwnerID, r.Name, r.Description, r.Available, pgconv.Int8PtrFromPgtype(r.RequestID))
}

type BookingRow struct {
	ID       int64              `db:"id"`
	ItemID   int64              `db:"item_id"`
	BookerID int64              `db:"booker_id"`
	StartAt  pgtype.Timestamptz `db:"start_at"`
	EndAt    pgtype.Timestamptz `db:"end_at"`
	Status   string             `db:"status"`
}

// ToDomain fails only on rows the schema constraints should have rejected.
func (r BookingRow) ToDomain() (*booking.Booking, error) {
	period, err := booking.NewTimeRange(pgconv.TimeFromPgtype(r.StartAt), pgconv.TimeFromPgtype(r.EndAt))
	if err != nil {
		return nil, errs.Wrapf(err, "booking %d", r.ID)
	}
	status, err := booking.ParseStatus(r.Status)
	if err != nil {
		return nil, errs.Wrapf(err, "booking %d", r.ID)
	}
	return booking.Reconstruct(r.ID, r.ItemID, r.BookerID, period, status), nil
}

func BookingsToDomain(rows []BookingRow) ([]*booking.Booking, error) {
	out := make([]*booking.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := row.ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

type RequestRow struct {
	ID          int64              `db:"id"`
	RequesterID int64              `db:"requester_id"`
	Description string             `db:"description"`
	CreatedAt   pgtype.Timestamptz `db:"created_at"`
}

func (r RequestRow) ToDomain() *request.ItemRequest {
	return request.Reconstruct(r.ID, r.RequesterID, r.Description, pgconv.TimeFromPgtype(r.CreatedAt))
}

type CommentRow struct {
	ID        int64              `db:"id"`
	ItemID    int64              `db:"item_id"`
	AuthorID  int64              `db:"author_id"`
	Text      string             `db:"text"`
	CreatedAt pgtype.Timestamptz `db:"created_at"`
}

func (r CommentRow) ToDomain() *item.Comment {
	return item.ReconstructComment(r.ID, r.ItemID, r.AuthorID, r.Text, pgconv.TimeFromPgtype(r.CreatedAt))
}
