package runner

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hperssn/roomalloc/internal/domain"
	"github.com/hperssn/roomalloc/internal/engine"
	"github.com/hperssn/roomalloc/internal/metrics"
	"github.com/hperssn/roomalloc/internal/storage"
)

var (
	ErrRunNotFound = errors.New("run not found")
)

type Option func(*RunManager)

func WithRepository(repo storage.Repository) Option {
	return func(m *RunManager) { m.repo = repo }
}

func WithLogger(logger *zap.Logger) Option {
	return func(m *RunManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithRetention(d time.Duration) Option {
	return func(m *RunManager) {
		if d > 0 {
			m.retention = d
		}
	}
}

// RunManager executes assignment runs and keeps the recent ones in memory.
// Runs never share session slices, so concurrent Submit calls are safe.
type RunManager struct {
	mu   sync.Mutex
	runs map[string]*Run

	repo      storage.Repository
	logger    *zap.Logger
	retention time.Duration
	now       func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func NewRunManager(opts ...Option) *RunManager {
	m := &RunManager{
		runs:      make(map[string]*Run),
		logger:    zap.NewNop(),
		retention: time.Hour,
		now:       time.Now,
		stop:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	go m.cleanupLoop()

	return m
}

func (m *RunManager) cleanupLoop() {
	interval := 5 * time.Minute
	if m.retention < interval {
		interval = m.retention
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanupOldRuns()
		case <-m.stop:
			return
		}
	}
}

func (m *RunManager) cleanupOldRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.retention)

	for id, run := range m.runs {
		if run.CompletedAt.Before(cutoff) {
			delete(m.runs, id)
			m.logger.Debug("evicted run", zap.String("run_id", id))
		}
	}
}

// Close stops the background cleanup. Runs already held stay readable.
func (m *RunManager) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// Submit assigns rooms to sessions and records the run. Invalid input is
// returned as an error and nothing is recorded; sessions left without a
// room are part of a successful run. A failure to persist the run is
// logged and does not fail the submission.
func (m *RunManager) Submit(requestedBy string, rooms []domain.Room, sessions []domain.Session) (*Run, error) {
	run := &Run{
		ID:          uuid.New().String(),
		RequestedBy: requestedBy,
		Rooms:       append([]domain.Room(nil), rooms...),
		Sessions:    append([]domain.Session(nil), sessions...),
		StartedAt:   m.now().UTC(),
	}

	outcomes, err := engine.AssignAll(run.Sessions, run.Rooms)
	if err != nil {
		metrics.ObserveRejected()
		m.logger.Warn("rejected assignment request",
			zap.String("requested_by", requestedBy),
			zap.Int("rooms", len(rooms)),
			zap.Int("sessions", len(sessions)),
			zap.Error(err),
		)
		return nil, err
	}

	run.Outcomes = outcomes
	run.Summary = engine.Summarize(outcomes)
	run.CompletedAt = m.now().UTC()
	metrics.ObserveRun(run.Summary)

	m.logger.Info("assignment run completed",
		zap.String("run_id", run.ID),
		zap.String("requested_by", requestedBy),
		zap.Int("assigned", run.Summary.Assigned),
		zap.Int("unassignable", run.Summary.Unassignable),
		zap.Duration("elapsed", run.CompletedAt.Sub(run.StartedAt)),
	)
	for _, o := range outcomes {
		if o.Status == domain.StatusUnassignable {
			m.logger.Debug("no room available",
				zap.String("run_id", run.ID),
				zap.String("session", o.Session.ID),
				zap.Stringer("period", o.Session.Period),
			)
		}
	}

	m.mu.Lock()
	m.runs[run.ID] = run
	m.mu.Unlock()

	if m.repo != nil {
		record := storage.NewRunRecord(run.ID, run.RequestedBy, run.Rooms, run.Outcomes, run.StartedAt, run.CompletedAt)
		if err := m.repo.SaveRun(record); err != nil {
			m.logger.Error("failed to persist run", zap.String("run_id", run.ID), zap.Error(err))
		}
	}

	return run.clone(), nil
}

func (m *RunManager) GetRun(id string) (*Run, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, exists := m.runs[id]
	if !exists {
		return nil, false
	}
	return r.clone(), true
}

// ListRuns returns the runs held in memory, most recent first.
func (m *RunManager) ListRuns() []*Run {
	m.mu.Lock()
	runs := make([]*Run, 0, len(m.runs))
	for _, r := range m.runs {
		runs = append(runs, r.clone())
	}
	m.mu.Unlock()

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs
}

func (m *RunManager) DeleteRun(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.runs[id]; !exists {
		return ErrRunNotFound
	}
	delete(m.runs, id)
	return nil
}

func (m *RunManager) Events(id string) (<-chan OutcomeEvent, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.runs[id]
	if !ok {
		return nil, false
	}

	return r.replay(), true
}
