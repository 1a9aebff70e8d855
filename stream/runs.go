package stream

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/pubweb/core"
	"github.com/katalvlaran/pubweb/event"
)

// RunParams records how a run was generated.
type RunParams struct {
	Nodes          int     `json:"nodes"`
	DenseAreas     int     `json:"dense_areas"`
	Radius         float64 `json:"radius"`
	MaxNeighbors   int     `json:"max_neighbors"`
	Seed           int64   `json:"seed"`
	Snapshot       bool    `json:"snapshot"`
	DeleteFraction float64 `json:"delete_fraction"`
	InsertFraction float64 `json:"insert_fraction"`
}

// RunInfo describes a stored run.
type RunInfo struct {
	ID        string
	CreatedAt time.Time
	Params    RunParams
	Events    int
}

// CreateRun inserts a run and returns its id (UUIDv7, so ids sort by creation).
func (s *Store) CreateRun(ctx context.Context, params RunParams) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, params) VALUES (?, ?, ?)`,
		id.String(), time.Now().UTC().Format(time.RFC3339Nano), string(raw))
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}

	return id.String(), nil
}

// AppendEvents stores events after those already in the run. Sequence
// numbers continue from the last stored event; an event's step is the number
// of TimeStep markers stored before it, so a marker shares the step it closes.
//
// Errors: ErrRunNotFound, or a database error. Nothing is stored on error.
func (s *Store) AppendEvents(ctx context.Context, runID string, events []event.GraphEvent) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append events: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = runExists(ctx, tx, runID); err != nil {
		return fmt.Errorf("append events: %w", err)
	}

	var seq, step int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq) + 1, 0), COUNT(CASE WHEN type = ? THEN 1 END) FROM events WHERE run_id = ?`,
		event.TimeStep.String(), runID).Scan(&seq, &step)
	if err != nil {
		return fmt.Errorf("append events: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events (run_id, seq, step, type, u, v, weight) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("append events: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err = stmt.ExecContext(ctx, runID, seq, step, ev.Type.String(), int64(ev.U), int64(ev.V), ev.Weight); err != nil {
			return fmt.Errorf("append events: seq %d: %w", seq, err)
		}
		seq++
		if ev.Type == event.TimeStep {
			step++
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("append events: %w", err)
	}

	return nil
}

// LoadEvents returns the run's events in sequence order.
func (s *Store) LoadEvents(ctx context.Context, runID string) ([]event.GraphEvent, error) {
	return s.loadEvents(ctx, runID, `SELECT type, u, v, weight FROM events WHERE run_id = ? ORDER BY seq`, runID)
}

// LoadStep returns the events of one step (0-based), its TimeStep included.
func (s *Store) LoadStep(ctx context.Context, runID string, step int) ([]event.GraphEvent, error) {
	return s.loadEvents(ctx, runID,
		`SELECT type, u, v, weight FROM events WHERE run_id = ? AND step = ? ORDER BY seq`, runID, step)
}

func (s *Store) loadEvents(ctx context.Context, runID, query string, args ...any) ([]event.GraphEvent, error) {
	if err := runExists(ctx, s.db, runID); err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	defer rows.Close()

	var out []event.GraphEvent
	for rows.Next() {
		var (
			typ  string
			u, v int64
			w    float64
		)
		if err := rows.Scan(&typ, &u, &v, &w); err != nil {
			return nil, fmt.Errorf("load events: %w", err)
		}
		t, err := event.ParseType(typ)
		if err != nil {
			return nil, fmt.Errorf("load events: %w", err)
		}
		out = append(out, event.GraphEvent{Type: t, U: core.NodeID(u), V: core.NodeID(v), Weight: w})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	return out, nil
}

// SaveCoordinates stores node positions for the run, replacing earlier ones.
func (s *Store) SaveCoordinates(ctx context.Context, runID string, coords map[core.NodeID]r2.Vec) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save coordinates: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = runExists(ctx, tx, runID); err != nil {
		return fmt.Errorf("save coordinates: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO coordinates (run_id, node, x, y) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("save coordinates: %w", err)
	}
	defer stmt.Close()

	for id, p := range coords {
		if _, err = stmt.ExecContext(ctx, runID, int64(id), p.X, p.Y); err != nil {
			return fmt.Errorf("save coordinates: node %d: %w", id, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("save coordinates: %w", err)
	}

	return nil
}

// LoadCoordinates returns every stored position of the run.
func (s *Store) LoadCoordinates(ctx context.Context, runID string) (map[core.NodeID]r2.Vec, error) {
	if err := runExists(ctx, s.db, runID); err != nil {
		return nil, fmt.Errorf("load coordinates: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, `SELECT node, x, y FROM coordinates WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("load coordinates: %w", err)
	}
	defer rows.Close()

	out := make(map[core.NodeID]r2.Vec)
	for rows.Next() {
		var (
			id   int64
			x, y float64
		)
		if err := rows.Scan(&id, &x, &y); err != nil {
			return nil, fmt.Errorf("load coordinates: %w", err)
		}
		out[core.NodeID(id)] = r2.Vec{X: x, Y: y}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load coordinates: %w", err)
	}

	return out, nil
}

// Runs lists stored runs, oldest first.
func (s *Store) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.created_at, r.params, COUNT(e.seq)
		FROM runs r LEFT JOIN events e ON e.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at, r.id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var (
			info    RunInfo
			created string
			params  string
		)
		if err := rows.Scan(&info.ID, &created, &params, &info.Events); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		if info.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("list runs: %s: %w", info.ID, err)
		}
		if err := json.Unmarshal([]byte(params), &info.Params); err != nil {
			return nil, fmt.Errorf("list runs: %s: %w", info.ID, err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	return out, nil
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func runExists(ctx context.Context, q queryer, runID string) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, runID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", runID, ErrRunNotFound)
	}

	return err
}
