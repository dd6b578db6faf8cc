package user

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"shareit/internal/pkg/errs"
)

const (
	MaxNameLength  = 50
	MaxEmailLength = 150
)

var (
	ErrEmptyName    = errs.Validation("user name must not be blank")
	ErrNameTooLong  = errs.Validation("user name must be at most 50 characters")
	ErrInvalidEmail = errs.Validation("invalid email format")
	ErrEmailTooLong = errs.Validation("email must be at most 150 characters")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Name struct {
	value string
}

func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Name{}, ErrEmptyName
	}
	if utf8.RuneCountInString(s) > MaxNameLength {
		return Name{}, ErrNameTooLong
	}
	return Name{value: s}, nil
}

func (n Name) Value() string {
	return n.value
}

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxEmailLength {
		return Email{}, ErrEmailTooLong
	}
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}
