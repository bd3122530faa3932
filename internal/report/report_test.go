package report

import (
	"bytes"
	"testing"

	"github.com/hperssn/roomalloc/internal/domain"
)

func TestWriteStatusLines(t *testing.T) {
	s1 := domain.Session{ID: "420-1D6-VI", Period: domain.Period{Weekday: 1, Start: 8.25, End: 10.08}}
	s2 := domain.Session{ID: "201-1A3-VI", Period: domain.Period{Weekday: 1, Start: 9.25, End: 11.08}}

	var buf bytes.Buffer
	err := WriteStatusLines(&buf, []domain.Outcome{
		domain.Assigned(s1, domain.Room{Code: "C205"}),
		domain.Unassignable(s2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Course 420-1D6-VI is assigned to room C205.\n" +
		"Assignment impossible for course 201-1A3-VI, no room available for period day 1, 9.25-11.08.\n"
	if buf.String() != want {
		t.Fatalf("output = %q\nwant %q", buf.String(), want)
	}
}
