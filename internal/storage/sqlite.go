package storage

import (
	"database/sql"
	"encoding/json"
	"errors"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *SQLiteRepository) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		requested_by TEXT NOT NULL,
		rooms_json TEXT NOT NULL,
		assigned INTEGER NOT NULL,
		unassignable INTEGER NOT NULL,
		started_at DATETIME NOT NULL,
		completed_at DATETIME NOT NULL,
		outcomes_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_requested_by ON runs(requested_by);
	CREATE INDEX IF NOT EXISTS idx_runs_completed_at ON runs(completed_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

func (r *SQLiteRepository) SaveRun(record *RunRecord) error {
	roomsJSON, err := json.Marshal(record.Rooms)
	if err != nil {
		return err
	}
	outcomesJSON, err := json.Marshal(record.Outcomes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO runs (id, requested_by, rooms_json, assigned, unassignable, started_at, completed_at, outcomes_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(
		query,
		record.ID,
		record.RequestedBy,
		string(roomsJSON),
		record.Assigned,
		record.Unassignable,
		record.StartedAt,
		record.CompletedAt,
		string(outcomesJSON),
	)

	return err
}

func (r *SQLiteRepository) GetRun(id string) (*RunRecord, error) {
	query := `
		SELECT id, requested_by, rooms_json, assigned, unassignable, started_at, completed_at, outcomes_json
		FROM runs
		WHERE id = ?
	`

	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records, err := r.scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrRunNotFound
	}
	return &records[0], nil
}

func (r *SQLiteRepository) GetRunsByRequester(requestedBy string) ([]RunRecord, error) {
	query := `
		SELECT id, requested_by, rooms_json, assigned, unassignable, started_at, completed_at, outcomes_json
		FROM runs
		WHERE requested_by = ?
		ORDER BY completed_at DESC
	`

	rows, err := r.db.Query(query, requestedBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanRuns(rows)
}

func (r *SQLiteRepository) GetRunStats(requestedBy string) (*RunStats, error) {
	query := `
		SELECT
			COUNT(*) as total,
			SUM(CASE WHEN unassignable = 0 THEN 1 ELSE 0 END) as complete,
			SUM(assigned) as assigned,
			SUM(unassignable) as unassignable
		FROM runs
		WHERE requested_by = ?
	`

	var stats RunStats
	var complete, assigned, unassignable sql.NullInt64

	err := r.db.QueryRow(query, requestedBy).Scan(
		&stats.TotalRuns,
		&complete,
		&assigned,
		&unassignable,
	)
	if err != nil {
		return nil, err
	}

	stats.FullyAssignedRuns = int(complete.Int64)
	stats.AssignedCount = int(assigned.Int64)
	stats.UnassignableCount = int(unassignable.Int64)
	stats.TotalSessions = stats.AssignedCount + stats.UnassignableCount
	stats.finish()

	return &stats, nil
}

func (r *SQLiteRepository) scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	var records []RunRecord

	for rows.Next() {
		var record RunRecord
		var roomsJSON, outcomesJSON string

		err := rows.Scan(
			&record.ID,
			&record.RequestedBy,
			&roomsJSON,
			&record.Assigned,
			&record.Unassignable,
			&record.StartedAt,
			&record.CompletedAt,
			&outcomesJSON,
		)
		if err != nil {
			return nil, err
		}

		if err := errors.Join(
			json.Unmarshal([]byte(roomsJSON), &record.Rooms),
			json.Unmarshal([]byte(outcomesJSON), &record.Outcomes),
		); err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
