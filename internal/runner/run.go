package runner

import (
	"time"

	"github.com/hperssn/roomalloc/internal/domain"
	"github.com/hperssn/roomalloc/internal/engine"
)

// Run is one pass of the assignment engine over a request. A Run owns its
// own copies of the rooms and sessions it was given.
type Run struct {
	ID          string
	RequestedBy string
	Rooms       []domain.Room
	Sessions    []domain.Session
	Outcomes    []domain.Outcome
	Summary     engine.Summary
	StartedAt   time.Time
	CompletedAt time.Time
}

func (r *Run) clone() *Run {
	c := *r
	c.Rooms = append([]domain.Room(nil), r.Rooms...)
	c.Sessions = append([]domain.Session(nil), r.Sessions...)
	c.Outcomes = append([]domain.Outcome(nil), r.Outcomes...)
	return &c
}

type OutcomeEvent struct {
	Index     int     `json:"index"`
	SessionID string  `json:"sessionId"`
	Weekday   int     `json:"weekday"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Status    string  `json:"status"`
	RoomCode  string  `json:"roomCode,omitempty"`
}

func newOutcomeEvent(idx int, o domain.Outcome) OutcomeEvent {
	ev := OutcomeEvent{
		Index:     idx,
		SessionID: o.Session.ID,
		Weekday:   o.Session.Period.Weekday,
		Start:     o.Session.Period.Start,
		End:       o.Session.Period.End,
		Status:    o.Status.String(),
	}
	if room, ok := o.Room(); ok {
		ev.RoomCode = room.Code
	}
	return ev
}

func (r *Run) OutcomeEvents() []OutcomeEvent {
	events := make([]OutcomeEvent, len(r.Outcomes))
	for i, o := range r.Outcomes {
		events[i] = newOutcomeEvent(i, o)
	}
	return events
}

// replay returns a closed channel holding one event per outcome, in order.
func (r *Run) replay() <-chan OutcomeEvent {
	events := make(chan OutcomeEvent, len(r.Outcomes))
	for _, ev := range r.OutcomeEvents() {
		events <- ev
	}
	close(events)
	return events
}
