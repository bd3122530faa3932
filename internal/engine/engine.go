package engine

import (
	"fmt"

	"github.com/hperssn/roomalloc/internal/domain"
)

// AssignAll gives each session, in input order, the first room free for its
// period. Earlier sessions claim rooms first and nothing is reassigned.
// Neither input slice is modified.
//
// Every session and the room pool are validated before any allocation; a
// session without a free room yields an Unassignable outcome, not an error.
// The pass is O(n²) in the number of sessions.
func AssignAll(sessions []domain.Session, rooms []domain.Room) ([]domain.Outcome, error) {
	if err := domain.ValidateRooms(rooms); err != nil {
		return nil, err
	}
	for i, s := range sessions {
		if err := s.Period.Validate(); err != nil {
			return nil, fmt.Errorf("session %d (%s): %w", i, s.ID, err)
		}
	}

	outcomes := make([]domain.Outcome, len(sessions))
	for i, s := range sessions {
		outcomes[i] = domain.Pending(s)
	}

	for i := range outcomes {
		s := outcomes[i].Session
		if room, ok := FindFreeRoom(s.Period, outcomes, rooms); ok {
			outcomes[i] = domain.Assigned(s, room)
		} else {
			outcomes[i] = domain.Unassignable(s)
		}
	}

	return outcomes, nil
}

type Summary struct {
	Total        int `json:"total"`
	Assigned     int `json:"assigned"`
	Unassignable int `json:"unassignable"`
}

func Summarize(outcomes []domain.Outcome) Summary {
	sum := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		switch o.Status {
		case domain.StatusAssigned:
			sum.Assigned++
		case domain.StatusUnassignable:
			sum.Unassignable++
		}
	}
	return sum
}
