package report

import (
	"fmt"
	"io"

	"github.com/hperssn/roomalloc/internal/domain"
)

// StatusLine describes one outcome the way the allocation is announced to
// staff.
func StatusLine(o domain.Outcome) string {
	switch o.Status {
	case domain.StatusAssigned:
		room, _ := o.Room()
		return fmt.Sprintf("Course %s is assigned to room %s.", o.Session.ID, room.Code)
	case domain.StatusUnassignable:
		return fmt.Sprintf("Assignment impossible for course %s, no room available for period %s.", o.Session.ID, o.Session.Period)
	default:
		return fmt.Sprintf("Course %s has not been processed.", o.Session.ID)
	}
}

func WriteStatusLines(w io.Writer, outcomes []domain.Outcome) error {
	for _, o := range outcomes {
		if _, err := fmt.Fprintln(w, StatusLine(o)); err != nil {
			return err
		}
	}
	return nil
}
