package posturedb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run records a single rebuild of a recording session: where the input
// streams came from, the body model height, and how many frames of each
// coverage class the rebuild produced.
type Run struct {
	RunID        string  `json:"run_id"`
	DeviceFile   string  `json:"device_file"`
	HandFile     string  `json:"hand_file"`
	UserHeightM  float64 `json:"user_height_m"`
	Notes        string  `json:"notes,omitempty"`
	FrameCount   int     `json:"frame_count"`
	BothHands    int     `json:"both_hands_count"`
	LeftOnly     int     `json:"left_only_count"`
	RightOnly    int     `json:"right_only_count"`
	CreatedAtNs  int64   `json:"created_at_ns"`
	FinishedAtNs *int64  `json:"finished_at_ns,omitempty"`
}

// RunStore provides persistence for rebuild runs.
type RunStore struct {
	db *sql.DB
}

// NewRunStore creates a new RunStore.
func NewRunStore(db *sql.DB) *RunStore {
	return &RunStore{db: db}
}

// InsertRun creates a new run in the database.
// If run.RunID is empty, a new UUID is generated.
func (s *RunStore) InsertRun(run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAtNs == 0 {
		run.CreatedAtNs = time.Now().UnixNano()
	}

	query := `
		INSERT INTO posture_runs (
			run_id, device_file, hand_file, user_height_m, notes,
			frame_count, both_hands_count, left_only_count, right_only_count,
			created_at_ns, finished_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		run.RunID,
		run.DeviceFile,
		run.HandFile,
		run.UserHeightM,
		nullString(run.Notes),
		run.FrameCount,
		run.BothHands,
		run.LeftOnly,
		run.RightOnly,
		run.CreatedAtNs,
		nullInt64(run.FinishedAtNs),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	return nil
}

// FinishRun stamps the run as finished and records the final frame and
// coverage counts.
func (s *RunStore) FinishRun(runID string, frames, bothHands, leftOnly, rightOnly int) error {
	query := `
		UPDATE posture_runs
		SET frame_count = ?,
		    both_hands_count = ?,
		    left_only_count = ?,
		    right_only_count = ?,
		    finished_at_ns = ?
		WHERE run_id = ?
	`

	finishedAtNs := time.Now().UnixNano()
	result, err := s.db.Exec(query, frames, bothHands, leftOnly, rightOnly, finishedAtNs, runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("run not found: %s", runID)
	}

	return nil
}

// GetRun retrieves a run by ID.
func (s *RunStore) GetRun(runID string) (*Run, error) {
	query := `
		SELECT run_id, device_file, hand_file, user_height_m, notes,
		       frame_count, both_hands_count, left_only_count, right_only_count,
		       created_at_ns, finished_at_ns
		FROM posture_runs
		WHERE run_id = ?
	`

	var run Run
	var notes sql.NullString
	var finishedAtNs sql.NullInt64

	err := s.db.QueryRow(query, runID).Scan(
		&run.RunID,
		&run.DeviceFile,
		&run.HandFile,
		&run.UserHeightM,
		&notes,
		&run.FrameCount,
		&run.BothHands,
		&run.LeftOnly,
		&run.RightOnly,
		&run.CreatedAtNs,
		&finishedAtNs,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}

	// Map nullable fields
	if notes.Valid {
		run.Notes = notes.String
	}
	if finishedAtNs.Valid {
		v := finishedAtNs.Int64
		run.FinishedAtNs = &v
	}

	return &run, nil
}

// ListRuns retrieves all runs, newest first.
func (s *RunStore) ListRuns() ([]*Run, error) {
	query := `
		SELECT run_id, device_file, hand_file, user_height_m, notes,
		       frame_count, both_hands_count, left_only_count, right_only_count,
		       created_at_ns, finished_at_ns
		FROM posture_runs
		ORDER BY created_at_ns DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var notes sql.NullString
		var finishedAtNs sql.NullInt64

		err := rows.Scan(
			&run.RunID,
			&run.DeviceFile,
			&run.HandFile,
			&run.UserHeightM,
			&notes,
			&run.FrameCount,
			&run.BothHands,
			&run.LeftOnly,
			&run.RightOnly,
			&run.CreatedAtNs,
			&finishedAtNs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}

		if notes.Valid {
			run.Notes = notes.String
		}
		if finishedAtNs.Valid {
			v := finishedAtNs.Int64
			run.FinishedAtNs = &v
		}

		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs rows: %w", err)
	}

	return runs, nil
}

// Helper functions for nullable values

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullInt64(i *int64) interface{} {
	if i == nil {
		return nil
	}
	return *i
}

func nullFloat64(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}
