package item

import (
	"time"

	"shareit/internal/pkg/errs"
)

// ErrCommentNotAllowed: the author has no finished, approved booking of the item.
var ErrCommentNotAllowed = errs.Validation("user has not completed an approved booking of this item")

type Comment struct {
	id        int64
	itemID    int64
	authorID  int64
	text      CommentText
	createdAt time.Time
}

func NewComment(itemID, authorID int64, text CommentText, now time.Time) *Comment {
	return &Comment{
		itemID:    itemID,
		authorID:  authorID,
		text:      text,
		createdAt: now,
	}
}

func ReconstructComment(id, itemID, authorID int64, text string, createdAt time.Time) *Comment {
	return &Comment{
		id:        id,
		itemID:    itemID,
		authorID:  authorID,
		text:      CommentText{value: text},
		createdAt: createdAt,
	}
}

func (c *Comment) WithID(id int64) *Comment {
	cp := *c
	cp.id = id
	return &cp
}

func (c *Comment) ID() int64            { return c.id }
func (c *Comment) ItemID() int64        { return c.itemID }
func (c *Comment) AuthorID() int64      { return c.authorID }
func (c *Comment) Text() CommentText    { return c.text }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
