package domain

import "strings"

// Status is the single authoritative order state. Order.Completed and the
// production plan status are caches of it.
type Status string

const (
	StatusPending      Status = "pending"
	StatusInProduction Status = "in_production"
	StatusCompleted    Status = "completed"
)

var forwardTransitions = map[Status]Status{
	StatusPending:      StatusInProduction,
	StatusInProduction: StatusCompleted,
}

func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	switch status {
	case StatusPending, StatusInProduction, StatusCompleted:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

// LegacyStatus derives a status for orders stored before status rows existed.
func LegacyStatus(completed bool) Status {
	if completed {
		return StatusCompleted
	}
	return StatusPending
}

// CanTransition reports whether from may move to to. Without strict every
// move is allowed; with strict only one step forward or staying put is.
func CanTransition(from, to Status, strict bool) bool {
	if !strict || from == to {
		return true
	}
	next, ok := forwardTransitions[from]
	return ok && next == to
}
