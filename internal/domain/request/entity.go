package request

import (
	"strings"
	"time"
	"unicode/utf8"

	"shareit/internal/pkg/errs"
)

const MaxDescriptionLength = 400

var (
	ErrEmptyDescription   = errs.Validation("request description must not be blank")
	ErrDescriptionTooLong = errs.Validation("request description must be at most 400 characters")
)

// ItemRequest is a borrower's ask for an item nobody has listed yet.
type ItemRequest struct {
	id          int64
	requesterID int64
	description string
	createdAt   time.Time
}

func NewItemRequest(requesterID int64, description string, now time.Time) (*ItemRequest, error) {
	d := strings.TrimSpace(description)
	if d == "" {
		return nil, ErrEmptyDescription
	}
	if utf8.RuneCountInString(d) > MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}
	return &ItemRequest{
		requesterID: requesterID,
		description: d,
		createdAt:   now,
	}, nil
}

func Reconstruct(id, requesterID int64, description string, createdAt time.Time) *ItemRequest {
	return &ItemRequest{
		id:          id,
		requesterID: requesterID,
		description: description,
		createdAt:   createdAt,
	}
}

func (r *ItemRequest) WithID(id int64) *ItemRequest {
	cp := *r
	cp.id = id
	return &cp
}

func (r *ItemRequest) ID() int64            { return r.id }
func (r *ItemRequest) RequesterID() int64   { return r.requesterID }
func (r *ItemRequest) Description() string  { return r.description }
func (r *ItemRequest) CreatedAt() time.Time { return r.createdAt }
