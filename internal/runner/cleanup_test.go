package runner

import (
	"testing"
	"time"

	"github.com/hperssn/roomalloc/internal/catalog"
)

func TestCleanupOldRuns(t *testing.T) {
	m := NewRunManager(WithRetention(time.Hour))
	defer m.Close()

	clock := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	sample := catalog.Sample()
	old, err := m.Submit("alice", sample.Rooms, sample.Sessions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock = clock.Add(90 * time.Minute)
	fresh, err := m.Submit("alice", sample.Rooms, sample.Sessions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.cleanupOldRuns()

	if _, ok := m.GetRun(old.ID); ok {
		t.Errorf("expected old run to be evicted")
	}
	if _, ok := m.GetRun(fresh.ID); !ok {
		t.Errorf("expected fresh run to be kept")
	}

	runs := m.ListRuns()
	if len(runs) != 1 || runs[0].ID != fresh.ID {
		t.Fatalf("unexpected runs after cleanup: %d", len(runs))
	}
}
