package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tarstars/boundary_search/golang/boundary_search/bsl"
)

//ErrRunNotFound is returned for an unknown run id.
var ErrRunNotFound = errors.New("store: run not found")

//Run summarises a stored boundary search.
type Run struct {
	ID         int64
	Name       string
	CreatedAt  string
	Method     string
	Seed       uint64
	Dims       int
	PointCount int
	Stats      bsl.Stats
}

//SaveRun stores a finished search under name and returns its id. The trace is not stored.
func (d *DB) SaveRun(name string, result bsl.Result) (int64, error) {
	config, err := json.Marshal(result.Config)
	if err != nil {
		return 0, fmt.Errorf("store: failed to encode config: %w", err)
	}
	box, err := json.Marshal(result.Box)
	if err != nil {
		return 0, fmt.Errorf("store: failed to encode box: %w", err)
	}
	stats, err := json.Marshal(result.Stats)
	if err != nil {
		return 0, fmt.Errorf("store: failed to encode stats: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("store: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO runs (name, method, seed, dims, point_count, config, box, stats) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		name, result.Config.Method, int64(result.Seed), result.Box.Dims(), len(result.Points), string(config), string(box), string(stats),
	)
	if err != nil {
		return 0, fmt.Errorf("store: failed to insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: failed to get run id: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO points (run_id, idx, coords) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("store: failed to prepare point insert: %w", err)
	}
	defer stmt.Close()
	for idx, point := range result.Points {
		if _, err := stmt.Exec(id, idx, Float64SliceToBytes(point)); err != nil {
			return 0, fmt.Errorf("store: failed to insert point %d: %w", idx, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: failed to commit run: %w", err)
	}
	return id, nil
}

//LoadRun restores the result stored under id.
func (d *DB) LoadRun(id int64) (bsl.Result, error) {
	var (
		seed                int64
		config, box, stats string
	)
	err := d.db.QueryRow("SELECT seed, config, box, stats FROM runs WHERE id = ?", id).Scan(&seed, &config, &box, &stats)
	if errors.Is(err, sql.ErrNoRows) {
		return bsl.Result{}, fmt.Errorf("store: run %d: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return bsl.Result{}, fmt.Errorf("store: failed to query run %d: %w", id, err)
	}

	result := bsl.Result{Seed: uint64(seed)}
	if err := json.Unmarshal([]byte(config), &result.Config); err != nil {
		return bsl.Result{}, fmt.Errorf("store: failed to decode config of run %d: %w", id, err)
	}
	if err := json.Unmarshal([]byte(box), &result.Box); err != nil {
		return bsl.Result{}, fmt.Errorf("store: failed to decode box of run %d: %w", id, err)
	}
	if err := json.Unmarshal([]byte(stats), &result.Stats); err != nil {
		return bsl.Result{}, fmt.Errorf("store: failed to decode stats of run %d: %w", id, err)
	}

	rows, err := d.db.Query("SELECT coords FROM points WHERE run_id = ? ORDER BY idx", id)
	if err != nil {
		return bsl.Result{}, fmt.Errorf("store: failed to query points of run %d: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var coords []byte
		if err := rows.Scan(&coords); err != nil {
			return bsl.Result{}, fmt.Errorf("store: failed to scan point: %w", err)
		}
		point, err := BytesToFloat64Slice(coords)
		if err != nil {
			return bsl.Result{}, err
		}
		result.Points = append(result.Points, point)
	}
	if err := rows.Err(); err != nil {
		return bsl.Result{}, fmt.Errorf("store: failed to read points of run %d: %w", id, err)
	}
	return result, nil
}

//ListRuns returns all runs, newest first.
func (d *DB) ListRuns() ([]Run, error) {
	rows, err := d.db.Query("SELECT id, name, created_at, method, seed, dims, point_count, stats FROM runs ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("store: failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r     Run
			seed  int64
			stats string
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.CreatedAt, &r.Method, &seed, &r.Dims, &r.PointCount, &stats); err != nil {
			return nil, fmt.Errorf("store: failed to scan run: %w", err)
		}
		r.Seed = uint64(seed)
		if err := json.Unmarshal([]byte(stats), &r.Stats); err != nil {
			return nil, fmt.Errorf("store: failed to decode stats of run %d: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

//DeleteRun removes a run together with its points.
func (d *DB) DeleteRun(id int64) error {
	res, err := d.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("store: failed to delete run %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: failed to delete run %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("store: run %d: %w", id, ErrRunNotFound)
	}
	return nil
}
