package domain

import "fmt"

// Session is one scheduled meeting of a course. ID is the course code used
// for reporting and does not have to be unique.
type Session struct {
	ID     string
	Period Period
}

func NewSession(id string, period Period) (Session, error) {
	if err := period.Validate(); err != nil {
		return Session{}, fmt.Errorf("session %s: %w", id, err)
	}
	return Session{ID: id, Period: period}, nil
}

type Status int

const (
	StatusUnassigned Status = iota
	StatusAssigned
	StatusUnassignable
)

func (s Status) String() string {
	switch s {
	case StatusUnassigned:
		return "unassigned"
	case StatusAssigned:
		return "assigned"
	case StatusUnassignable:
		return "unassignable"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

func ParseStatus(value string) (Status, error) {
	switch value {
	case "unassigned":
		return StatusUnassigned, nil
	case "assigned":
		return StatusAssigned, nil
	case "unassignable":
		return StatusUnassignable, nil
	}
	return StatusUnassigned, fmt.Errorf("unknown status %q", value)
}

// Outcome pairs a session with the result of its allocation. The room is
// only reachable through Room, which reports false unless the session was
// assigned.
type Outcome struct {
	Session Session
	Status  Status
	room    Room
}

func Pending(s Session) Outcome {
	return Outcome{Session: s, Status: StatusUnassigned}
}

func Assigned(s Session, r Room) Outcome {
	return Outcome{Session: s, Status: StatusAssigned, room: r}
}

func Unassignable(s Session) Outcome {
	return Outcome{Session: s, Status: StatusUnassignable}
}

func (o Outcome) Room() (Room, bool) {
	if o.Status != StatusAssigned {
		return Room{}, false
	}
	return o.room, true
}
