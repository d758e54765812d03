package model

type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusNoShow     Status = "NO_SHOW"
)

// transitions lists the legal next statuses per current status.
// COMPLETED is reachable only through check-out, so it never
// appears as a target here.
var transitions = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// ActiveStatuses are the statuses that occupy employee time.
// Appointments in any of these block overlapping bookings.
var ActiveStatuses = []Status{StatusScheduled, StatusConfirmed, StatusInProgress}

func (s Status) Valid() bool {
	_, ok := transitions[s]

	return ok
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}

	return false
}

func (s Status) Terminal() bool {
	return len(transitions[s]) == 0 && s.Valid()
}

func (s Status) Active() bool {
	for _, active := range ActiveStatuses {
		if s == active {
			return true
		}
	}

	return false
}

// CanCheckIn reports whether check-in is allowed from this status.
// Check-in is permitted straight from SCHEDULED without an explicit
// confirmation step.
func (s Status) CanCheckIn() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// Cancellable reports whether the appointment can still be cancelled.
func (s Status) Cancellable() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

func (s Status) String() string {
	return string(s)
}

func ActiveStatusStrings() []string {
	statuses := make([]string, len(ActiveStatuses))
	for i, status := range ActiveStatuses {
		statuses[i] = string(status)
	}

	return statuses
}
