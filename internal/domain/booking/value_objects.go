package booking

import (
	"fmt"
	"time"

	"shareit/internal/pkg/errs"
)

var ErrInvalidTimeRange = errs.Validation("booking start must be before its end")

// TimeRange is the half-open window [start, end).
type TimeRange struct {
	start time.Time
	end   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{start: start, end: end}, nil
}

func (r TimeRange) Start() time.Time {
	return r.start
}

func (r TimeRange) End() time.Time {
	return r.end
}

// Overlaps uses the half-open rule: windows that only touch do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return other.end.After(r.start) && other.start.Before(r.end)
}

func (r TimeRange) String() string {
	return fmt.Sprintf("[%s,%s)", r.start.Format(time.RFC3339), r.end.Format(time.RFC3339))
}
