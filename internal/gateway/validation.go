package gateway

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
	clock    clock.Clock
}

func NewValidator(clk clock.Clock) *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		clock:    clk,
	}
	v.validate.RegisterTagNameFunc(jsonFieldName)
	if err := v.validate.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}
	v.validate.RegisterStructValidation(v.bookingWindow, BookingInput{})
	return v
}

// Struct returns a validation error describing every failed field of s.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.Wrap(err, "validate input")
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return errs.Validation(strings.Join(msgs, "; "))
}

func (v *Validator) bookingWindow(sl validator.StructLevel) {
	in := sl.Current().Interface().(BookingInput)
	if in.Start == nil || in.End == nil {
		return
	}
	now := v.clock.Now()
	if in.Start.Before(now) {
		sl.ReportError(in.Start, "start", "Start", "futureorpresent", "")
	}
	if !in.End.After(now) {
		sl.ReportError(in.End, "end", "End", "future", "")
	}
	if in.Start.After(in.End.Time) {
		sl.ReportError(in.Start, "start", "Start", "beforeend", "")
	}
}

func notBlank(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(f.String()) != ""
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "notblank":
		return field + " must not be blank"
	case "email":
		return field + " must be a valid email"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return field + " must be positive"
	case "futureorpresent":
		return field + " must not be in the past"
	case "future":
		return field + " must be in the future"
	case "beforeend":
		return field + " must not be after end"
	default:
		return fmt.Sprintf("%s failed on %s", field, fe.Tag())
	}
}
