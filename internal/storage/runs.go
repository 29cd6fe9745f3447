package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is the persisted summary of one finished run.
type Run struct {
	RunID      string
	GameID     string
	Difficulty string
	Seed       int64
	Score      int
	Distance   float64
	Hits       int
	Passed     int
	Jumps      int
	LaneSwaps  int
	Pickups    int
	Duration   float64 // Seconds
	CreatedAt  time.Time
}

const runColumns = `run_id, game_id, difficulty, seed, score, distance, hits, passed,
	jumps, lane_swaps, pickups, duration_secs, created_at`

// SaveRun records a finished run. A RunID is generated when empty.
// Returns the run ID.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, game_id, difficulty, seed, score, distance, hits, passed, jumps, lane_swaps, pickups, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.GameID,
		run.Difficulty,
		run.Seed,
		run.Score,
		run.Distance,
		run.Hits,
		run.Passed,
		run.Jumps,
		run.LaneSwaps,
		run.Pickups,
		run.Duration,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.RunID, nil
}

// TopRuns retrieves the best runs for a game, ordered by score then distance.
// An empty difficulty matches every difficulty.
func (s *Store) TopRuns(gameID, difficulty string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ? AND (? = '' OR difficulty = ?)
		 ORDER BY score DESC, distance DESC
		 LIMIT ?`,
		gameID, difficulty, difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(runID string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var createdAt any
	err := sc.Scan(
		&r.RunID,
		&r.GameID,
		&r.Difficulty,
		&r.Seed,
		&r.Score,
		&r.Distance,
		&r.Hits,
		&r.Passed,
		&r.Jumps,
		&r.LaneSwaps,
		&r.Pickups,
		&r.Duration,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan run: %w", err)
	}
	r.CreatedAt = parseTimestamp(createdAt)
	return r, nil
}
