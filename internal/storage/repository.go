package storage

import "errors"

var ErrRunNotFound = errors.New("run not found")

type Repository interface {
	SaveRun(record *RunRecord) error

	GetRun(id string) (*RunRecord, error)

	GetRunsByRequester(requestedBy string) ([]RunRecord, error)

	GetRunStats(requestedBy string) (*RunStats, error)

	Close() error
}

type RunStats struct {
	TotalRuns         int     `json:"totalRuns"`
	FullyAssignedRuns int     `json:"fullyAssignedRuns"`
	TotalSessions     int     `json:"totalSessions"`
	AssignedCount     int     `json:"assignedCount"`
	UnassignableCount int     `json:"unassignableCount"`
	AssignmentRate    float64 `json:"assignmentRate"`
}
