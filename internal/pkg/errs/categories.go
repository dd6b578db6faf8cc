package errs

// Categories drive the HTTP status of an error. Domain and usecase sentinels carry
// exactly one of them as a mark.
var (
	ErrNotFound   = New("not found")
	ErrValidation = New("validation failed")
	ErrForbidden  = New("forbidden")
	ErrConflict   = New("conflict")
)

func NotFound(msg string) error {
	return Mark(New(msg), ErrNotFound)
}

func Validation(msg string) error {
	return Mark(New(msg), ErrValidation)
}

func Forbidden(msg string) error {
	return Mark(New(msg), ErrForbidden)
}

func Conflict(msg string) error {
	return Mark(New(msg), ErrConflict)
}

// Category returns the category mark carried by err, or nil when err is unclassified.
func Category(err error) error {
	for _, c := range []error{ErrNotFound, ErrValidation, ErrForbidden, ErrConflict} {
		if Is(err, c) {
			return c
		}
	}
	return nil
}
