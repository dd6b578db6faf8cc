package queries

import (
	"time"
)

type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BookingShortView is the booking summary shown next to an item.
type BookingShortView struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type CommentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemView struct {
	ID          int64             `json:"id"`
	OwnerID     int64             `json:"ownerId"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	RequestID   *int64            `json:"requestId,omitempty"`
	LastBooking *BookingShortView `json:"lastBooking,omitempty"`
	NextBooking *BookingShortView `json:"nextBooking,omitempty"`
	Comments    []CommentView     `json:"comments"`
}

type BookerView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookedItemView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

type BookingView struct {
	ID     int64          `json:"id"`
	Start  time.Time      `json:"start"`
	End    time.Time      `json:"end"`
	Status string         `json:"status"`
	Booker BookerView     `json:"booker"`
	Item   BookedItemView `json:"item"`
}

// RequestItemView is an item listed in answer to a request.
type RequestItemView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}

type RequestView struct {
	ID          int64             `json:"id"`
	Description string            `json:"description"`
	Created     time.Time         `json:"created"`
	Items       []RequestItemView `json:"items"`
}

// Page is an offset window. A zero Size means no limit.
type Page struct {
	From int
	Size int
}

const MaxPageSize = 200

func (p Page) Normalize() Page {
	if p.From < 0 {
		p.From = 0
	}
	if p.Size < 0 {
		p.Size = 0
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func paginate[T any](rows []T, p Page) []T {
	p = p.Normalize()
	if p.From >= len(rows) {
		return []T{}
	}
	rows = rows[p.From:]
	if p.Size > 0 && p.Size < len(rows) {
		rows = rows[:p.Size]
	}
	return rows
}
