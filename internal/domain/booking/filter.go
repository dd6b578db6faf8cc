package booking

import (
	"sort"
	"time"
)

// Filter narrows a booking listing. Limit 0 means no limit.
type Filter struct {
	State  State
	Now    time.Time
	Offset int
	Limit  int
}

func (s State) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateCurrent:
		return b.Start().Before(now) && b.End().After(now)
	case StatePast:
		return b.End().Before(now)
	case StateFuture:
		return b.Start().After(now)
	case StateWaiting:
		return b.status == StatusWaiting
	case StateRejected:
		return b.status == StatusRejected
	default:
		return true
	}
}

// Apply filters bookings by state, orders them by start descending and cuts
// the requested page. Stores that cannot push the filter down use it as is.
func (f Filter) Apply(bookings []*Booking) []*Booking {
	out := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if f.State.Matches(b, f.Now) {
			out = append(out, b)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start().Equal(out[j].Start()) {
			return out[i].id > out[j].id
		}
		return out[i].Start().After(out[j].Start())
	})

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []*Booking{}
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out
}
