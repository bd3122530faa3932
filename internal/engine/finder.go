package engine

import "github.com/hperssn/roomalloc/internal/domain"

// FindFreeRoom returns the first room, in the given order, that no assigned
// outcome occupies during target. Outcomes that are still pending or were
// unassignable hold no room and are ignored.
func FindFreeRoom(target domain.Period, outcomes []domain.Outcome, rooms []domain.Room) (domain.Room, bool) {
	occupied := make(map[string]struct{})

	for _, o := range outcomes {
		room, ok := o.Room()
		if !ok {
			continue
		}
		if domain.Overlaps(target, o.Session.Period) {
			occupied[room.Code] = struct{}{}
		}
	}

	for _, room := range rooms {
		if _, taken := occupied[room.Code]; !taken {
			return room, true
		}
	}

	return domain.Room{}, false
}
