package booking

import (
	"strings"

	"shareit/internal/pkg/errs"
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", errs.Newf("invalid booking status %q", s)
	}
	return status, nil
}

// State selects bookings relative to the current time or by status.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

func (s State) String() string {
	return string(s)
}

// ParseState is case-insensitive and treats an empty value as ALL.
func ParseState(s string) (State, error) {
	if strings.TrimSpace(s) == "" {
		return StateAll, nil
	}
	state := State(strings.ToUpper(strings.TrimSpace(s)))
	switch state {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return state, nil
	default:
		return "", errs.Validation("Unknown state: " + s)
	}
}
