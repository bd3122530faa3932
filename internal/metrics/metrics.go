package metrics

import (
	"expvar"

	"github.com/hperssn/roomalloc/internal/engine"
)

var (
	runsTotal          = expvar.NewInt("assignment_runs_total")
	runsRejected       = expvar.NewInt("assignment_runs_rejected")
	sessionsAssigned   = expvar.NewInt("sessions_assigned_total")
	sessionsUnassigned = expvar.NewInt("sessions_unassignable_total")
)

// ObserveRun records the totals of a completed assignment run.
func ObserveRun(sum engine.Summary) {
	runsTotal.Add(1)
	sessionsAssigned.Add(int64(sum.Assigned))
	sessionsUnassigned.Add(int64(sum.Unassignable))
}

// ObserveRejected counts a run refused for invalid input.
func ObserveRejected() {
	runsRejected.Add(1)
}

type Snapshot struct {
	Runs               int64
	Rejected           int64
	SessionsAssigned   int64
	SessionsUnassigned int64
}

func Read() Snapshot {
	return Snapshot{
		Runs:               runsTotal.Value(),
		Rejected:           runsRejected.Value(),
		SessionsAssigned:   sessionsAssigned.Value(),
		SessionsUnassigned: sessionsUnassigned.Value(),
	}
}
