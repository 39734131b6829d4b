package data

import (
	"database/sql"

	"odbcprobe/internal/core"
)

type RunRepo struct {
	db *sql.DB
}

func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) Create(run *core.Run) error {
	res, err := r.db.Exec(`INSERT INTO runs (timestamp, kind, target, query, status, rows, duration_ms, error_message) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Timestamp, run.Kind, run.Target, run.Query, run.Status, run.Rows, run.DurationMs, run.ErrorMsg)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	run.ID = id
	return nil
}

// GetRecent returns up to limit runs, newest first
func (r *RunRepo) GetRecent(limit int) ([]core.Run, error) {
	rows, err := r.db.Query(`SELECT id, timestamp, kind, target, query, status, rows, duration_ms, error_message FROM runs ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []core.Run
	for rows.Next() {
		var run core.Run
		var query, errMsg sql.NullString
		if err := rows.Scan(&run.ID, &run.Timestamp, &run.Kind, &run.Target, &query, &run.Status, &run.Rows, &run.DurationMs, &errMsg); err != nil {
			return nil, err
		}
		run.Query = query.String
		run.ErrorMsg = errMsg.String

		// SQLite hands back UTC
		run.Timestamp = run.Timestamp.Local()

		runs = append(runs, run)
	}
	return runs, rows.Err()
}
