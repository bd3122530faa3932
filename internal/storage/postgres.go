package storage

import (
	"database/sql"
	"encoding/json"
	"errors"

	_ "github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(connStr string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	repo := &PostgresRepository{db: db}
	if err := repo.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *PostgresRepository) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		requested_by TEXT NOT NULL,
		rooms_json JSONB NOT NULL,
		assigned INTEGER NOT NULL,
		unassignable INTEGER NOT NULL,
		started_at TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ NOT NULL,
		outcomes_json JSONB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_requested_by ON runs(requested_by);
	CREATE INDEX IF NOT EXISTS idx_runs_completed_at ON runs(completed_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

func (r *PostgresRepository) SaveRun(record *RunRecord) error {
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
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

func (r *PostgresRepository) GetRun(id string) (*RunRecord, error) {
	query := `
		SELECT id, requested_by, rooms_json, assigned, unassignable, started_at, completed_at, outcomes_json
		FROM runs
		WHERE id = $1
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

func (r *PostgresRepository) GetRunsByRequester(requestedBy string) ([]RunRecord, error) {
	query := `
		SELECT id, requested_by, rooms_json, assigned, unassignable, started_at, completed_at, outcomes_json
		FROM runs
		WHERE requested_by = $1
		ORDER BY completed_at DESC
	`

	rows, err := r.db.Query(query, requestedBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanRuns(rows)
}

func (r *PostgresRepository) GetRunStats(requestedBy string) (*RunStats, error) {
	query := `
		SELECT
			COUNT(*) as total,
			SUM(CASE WHEN unassignable = 0 THEN 1 ELSE 0 END) as complete,
			SUM(assigned) as assigned,
			SUM(unassignable) as unassignable
		FROM runs
		WHERE requested_by = $1
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

func (r *PostgresRepository) scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	var records []RunRecord

	for rows.Next() {
		var record RunRecord
		var roomsJSON, outcomesJSON []byte

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
			json.Unmarshal(roomsJSON, &record.Rooms),
			json.Unmarshal(outcomesJSON, &record.Outcomes),
		); err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}
