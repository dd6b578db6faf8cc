package item

import (
	"strings"
	"unicode/utf8"

	"shareit/internal/pkg/errs"
)

const (
	MaxNameLength        = 30
	MaxDescriptionLength = 400
	MaxCommentLength     = 400
)

var (
	ErrEmptyName          = errs.Validation("item name must not be blank")
	ErrNameTooLong        = errs.Validation("item name must be at most 30 characters")
	ErrEmptyDescription   = errs.Validation("item description must not be blank")
	ErrDescriptionTooLong = errs.Validation("item description must be at most 400 characters")
	ErrEmptyComment       = errs.Validation("comment must not be blank")
	ErrCommentTooLong     = errs.Validation("comment must be at most 400 characters")
)

type Name struct {
	value string
}

func NewName(s string) (Name, error) {
	v, err := boundedText(s, MaxNameLength, ErrEmptyName, ErrNameTooLong)
	if err != nil {
		return Name{}, err
	}
	return Name{value: v}, nil
}

func (n Name) Value() string { return n.value }

type Description struct {
	value string
}

func NewDescription(s string) (Description, error) {
	v, err := boundedText(s, MaxDescriptionLength, ErrEmptyDescription, ErrDescriptionTooLong)
	if err != nil {
		return Description{}, err
	}
	return Description{value: v}, nil
}

func (d Description) Value() string { return d.value }

type CommentText struct {
	value string
}

func NewCommentText(s string) (CommentText, error) {
	v, err := boundedText(s, MaxCommentLength, ErrEmptyComment, ErrCommentTooLong)
	if err != nil {
		return CommentText{}, err
	}
	return CommentText{value: v}, nil
}

func (c CommentText) Value() string { return c.value }

func boundedText(s string, maxLen int, errEmpty, errTooLong error) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", errEmpty
	}
	if utf8.RuneCountInString(t) > maxLen {
		return "", errTooLong
	}
	return t, nil
}
