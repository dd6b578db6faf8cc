package shared

import (
	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
)

var (
	ErrUserNotFound    = errs.NotFound("user not found")
	ErrItemNotFound    = errs.NotFound("item not found")
	ErrBookingNotFound = errs.NotFound("booking not found")
	ErrRequestNotFound = errs.NotFound("item request not found")
	ErrEmailTaken      = errs.Conflict("email is already registered")
)

// NotFoundAs replaces a repository NOT_FOUND with the given sentinel and
// passes any other error through.
func NotFoundAs(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return sentinel
	}
	return err
}
