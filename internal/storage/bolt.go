package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.etcd.io/bbolt"
)

var runsBucket = []byte("Runs")

// BoltRepository keeps run records as JSON values keyed by run ID in a
// single bbolt bucket.
type BoltRepository struct {
	db *bbolt.DB
}

func NewBoltRepository(path string) (*BoltRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltRepository{db: db}, nil
}

func (r *BoltRepository) SaveRun(record *RunRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(runsBucket).Put([]byte(record.ID), data)
	})
}

func (r *BoltRepository) GetRun(id string) (*RunRecord, error) {
	var record RunRecord
	err := r.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(runsBucket).Get([]byte(id))
		if v == nil {
			return ErrRunNotFound
		}
		return json.Unmarshal(v, &record)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *BoltRepository) GetRunsByRequester(requestedBy string) ([]RunRecord, error) {
	var records []RunRecord
	err := r.forEach(func(record *RunRecord) {
		if record.RequestedBy == requestedBy {
			records = append(records, *record)
		}
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CompletedAt.After(records[j].CompletedAt)
	})
	return records, nil
}

func (r *BoltRepository) GetRunStats(requestedBy string) (*RunStats, error) {
	var stats RunStats
	err := r.forEach(func(record *RunRecord) {
		if record.RequestedBy == requestedBy {
			stats.accumulate(record)
		}
	})
	if err != nil {
		return nil, err
	}

	stats.finish()
	return &stats, nil
}

func (r *BoltRepository) forEach(fn func(*RunRecord)) error {
	return r.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(runsBucket).ForEach(func(_, v []byte) error {
			var record RunRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return err
			}
			fn(&record)
			return nil
		})
	})
}

func (r *BoltRepository) Close() error {
	return r.db.Close()
}
