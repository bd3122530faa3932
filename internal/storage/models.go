package storage

import (
	"fmt"
	"time"

	"github.com/hperssn/roomalloc/internal/domain"
)

type RunRecord struct {
	ID           string          `json:"id"`
	RequestedBy  string          `json:"requestedBy"`
	Rooms        []string        `json:"rooms"`
	Assigned     int             `json:"assigned"`
	Unassignable int             `json:"unassignable"`
	StartedAt    time.Time       `json:"startedAt"`
	CompletedAt  time.Time       `json:"completedAt"`
	Outcomes     []OutcomeRecord `json:"outcomes"`
}

type OutcomeRecord struct {
	Position  int     `json:"position"`
	SessionID string  `json:"sessionId"`
	Weekday   int     `json:"weekday"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Status    string  `json:"status"`
	RoomCode  string  `json:"roomCode,omitempty"`
}

// NewRunRecord flattens a completed run into its persisted form.
func NewRunRecord(id, requestedBy string, rooms []domain.Room, outcomes []domain.Outcome, startedAt, completedAt time.Time) *RunRecord {
	codes := make([]string, len(rooms))
	for i, r := range rooms {
		codes[i] = r.Code
	}

	record := &RunRecord{
		ID:          id,
		RequestedBy: requestedBy,
		Rooms:       codes,
		StartedAt:   startedAt,
		CompletedAt: completedAt,
		Outcomes:    make([]OutcomeRecord, len(outcomes)),
	}

	for i, o := range outcomes {
		rec := OutcomeRecord{
			Position:  i,
			SessionID: o.Session.ID,
			Weekday:   o.Session.Period.Weekday,
			Start:     o.Session.Period.Start,
			End:       o.Session.Period.End,
			Status:    o.Status.String(),
		}
		switch o.Status {
		case domain.StatusAssigned:
			room, _ := o.Room()
			rec.RoomCode = room.Code
			record.Assigned++
		case domain.StatusUnassignable:
			record.Unassignable++
		}
		record.Outcomes[i] = rec
	}

	return record
}

// Outcome rebuilds the domain value stored in r.
func (r OutcomeRecord) Outcome() (domain.Outcome, error) {
	status, err := domain.ParseStatus(r.Status)
	if err != nil {
		return domain.Outcome{}, err
	}

	s := domain.Session{
		ID:     r.SessionID,
		Period: domain.Period{Weekday: r.Weekday, Start: r.Start, End: r.End},
	}

	switch status {
	case domain.StatusAssigned:
		if r.RoomCode == "" {
			return domain.Outcome{}, fmt.Errorf("outcome %d: assigned without room", r.Position)
		}
		return domain.Assigned(s, domain.Room{Code: r.RoomCode}), nil
	case domain.StatusUnassignable:
		return domain.Unassignable(s), nil
	default:
		return domain.Pending(s), nil
	}
}

func (r *RunRecord) DomainOutcomes() ([]domain.Outcome, error) {
	out := make([]domain.Outcome, len(r.Outcomes))
	for i, rec := range r.Outcomes {
		o, err := rec.Outcome()
		if err != nil {
			return nil, err
		}
		out[i] = o
	}
	return out, nil
}

// accumulate folds a record into stats; used by stores that cannot
// aggregate in a query.
func (s *RunStats) accumulate(r *RunRecord) {
	s.TotalRuns++
	s.TotalSessions += len(r.Outcomes)
	s.AssignedCount += r.Assigned
	s.UnassignableCount += r.Unassignable
	if r.Unassignable == 0 {
		s.FullyAssignedRuns++
	}
}

func (s *RunStats) finish() {
	if s.TotalSessions > 0 {
		s.AssignmentRate = float64(s.AssignedCount) / float64(s.TotalSessions) * 100
	}
}
