package posturedb

import (
	"database/sql"
	"fmt"

	"github.com/armature-data/posture.report/internal/mocap"
	"github.com/armature-data/posture.report/internal/mocap/l4skeleton"
	"github.com/armature-data/posture.report/internal/mocap/l5records"
)

// Frame is one reconstructed frame's posture angles as stored per run.
// Angles the frame could not compute (missing hand, degenerate geometry)
// stay nil and land as NULLs.
type Frame struct {
	RunID              string   `json:"run_id"`
	Frame              int      `json:"frame"`
	TMono              float64  `json:"t_mono"`
	TWall              *float64 `json:"t_wall,omitempty"`
	LeftElbowAngle     *float64 `json:"left_elbow_angle,omitempty"`
	RightElbowAngle    *float64 `json:"right_elbow_angle,omitempty"`
	LeftShoulderAngle  *float64 `json:"left_shoulder_angle,omitempty"`
	RightShoulderAngle *float64 `json:"right_shoulder_angle,omitempty"`
	SpineBendAngle     *float64 `json:"spine_bend_angle,omitempty"`
	HasLeftHand        bool     `json:"has_left_hand"`
	HasRightHand       bool     `json:"has_right_hand"`
}

// NewFrame maps a pipeline frame record onto its stored form. Hand
// presence uses the same wrist-observation test as the run coverage
// counts, so per-frame flags sum to the run totals.
func NewFrame(runID string, rec l5records.FrameRecord) Frame {
	f := Frame{
		RunID:        runID,
		Frame:        rec.Frame,
		TMono:        rec.Timestamp,
		HasLeftHand:  rec.Left.Has(mocap.ForearmWrist),
		HasRightHand: rec.Right.Has(mocap.ForearmWrist),
	}
	if rec.WallTime != 0 {
		v := rec.WallTime
		f.TWall = &v
	}

	assign := func(dst **float64, name l4skeleton.AngleName) {
		if v, ok := rec.Angles[name]; ok {
			val := v
			*dst = &val
		}
	}
	assign(&f.LeftElbowAngle, l4skeleton.AngleLeftElbow)
	assign(&f.RightElbowAngle, l4skeleton.AngleRightElbow)
	assign(&f.LeftShoulderAngle, l4skeleton.AngleLeftShoulder)
	assign(&f.RightShoulderAngle, l4skeleton.AngleRightShoulder)
	assign(&f.SpineBendAngle, l4skeleton.AngleSpineBend)

	return f
}

// FrameStore provides persistence for per-frame posture angles.
type FrameStore struct {
	db *sql.DB
}

// NewFrameStore creates a new FrameStore.
func NewFrameStore(db *sql.DB) *FrameStore {
	return &FrameStore{db: db}
}

// InsertFrames writes all frames for a run inside a single transaction.
// A run's frames are written once, after the rebuild finishes, so there
// is no upsert path.
func (s *FrameStore) InsertFrames(frames []Frame) error {
	if len(frames) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin insert frames: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO posture_frames (
			run_id, frame, t_mono, t_wall,
			left_elbow_angle, right_elbow_angle,
			left_shoulder_angle, right_shoulder_angle, spine_bend_angle,
			has_left_hand, has_right_hand
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("prepare insert frames: %w", err)
	}
	defer stmt.Close()

	for i := range frames {
		f := &frames[i]
		_, err := stmt.Exec(
			f.RunID,
			f.Frame,
			f.TMono,
			nullFloat64(f.TWall),
			nullFloat64(f.LeftElbowAngle),
			nullFloat64(f.RightElbowAngle),
			nullFloat64(f.LeftShoulderAngle),
			nullFloat64(f.RightShoulderAngle),
			nullFloat64(f.SpineBendAngle),
			boolToInt(f.HasLeftHand),
			boolToInt(f.HasRightHand),
		)
		if err != nil {
			return fmt.Errorf("insert frame %d: %w", f.Frame, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert frames: %w", err)
	}

	return nil
}

// GetFrames retrieves all frames for a run in frame order.
func (s *FrameStore) GetFrames(runID string) ([]Frame, error) {
	query := `
		SELECT run_id, frame, t_mono, t_wall,
		       left_elbow_angle, right_elbow_angle,
		       left_shoulder_angle, right_shoulder_angle, spine_bend_angle,
		       has_left_hand, has_right_hand
		FROM posture_frames
		WHERE run_id = ?
		ORDER BY frame
	`

	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("get frames: %w", err)
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var f Frame
		var tWall sql.NullFloat64
		var leftElbow, rightElbow, leftShoulder, rightShoulder, spineBend sql.NullFloat64
		var hasLeft, hasRight int

		err := rows.Scan(
			&f.RunID,
			&f.Frame,
			&f.TMono,
			&tWall,
			&leftElbow,
			&rightElbow,
			&leftShoulder,
			&rightShoulder,
			&spineBend,
			&hasLeft,
			&hasRight,
		)
		if err != nil {
			return nil, fmt.Errorf("scan frame row: %w", err)
		}

		f.TWall = floatPtr(tWall)
		f.LeftElbowAngle = floatPtr(leftElbow)
		f.RightElbowAngle = floatPtr(rightElbow)
		f.LeftShoulderAngle = floatPtr(leftShoulder)
		f.RightShoulderAngle = floatPtr(rightShoulder)
		f.SpineBendAngle = floatPtr(spineBend)
		f.HasLeftHand = hasLeft != 0
		f.HasRightHand = hasRight != 0

		frames = append(frames, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get frames rows: %w", err)
	}

	return frames, nil
}

// AnglePoint is one sample of a stored angle series.
type AnglePoint struct {
	TMono float64
	Value float64
}

// angleColumns whitelists the queryable angle columns; the angle name is
// interpolated into SQL and must never come from user input unchecked.
var angleColumns = map[string]bool{
	string(l4skeleton.AngleLeftElbow):     true,
	string(l4skeleton.AngleRightElbow):    true,
	string(l4skeleton.AngleLeftShoulder):  true,
	string(l4skeleton.AngleRightShoulder): true,
	string(l4skeleton.AngleSpineBend):     true,
}

// AngleSeries returns the time-ordered non-NULL samples of one angle for
// a run, ready for plotting.
func (s *FrameStore) AngleSeries(runID, angle string) ([]AnglePoint, error) {
	if !angleColumns[angle] {
		return nil, fmt.Errorf("unknown angle column: %s", angle)
	}

	query := fmt.Sprintf(`
		SELECT t_mono, %s
		FROM posture_frames
		WHERE run_id = ? AND %s IS NOT NULL
		ORDER BY t_mono
	`, angle, angle)

	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("angle series: %w", err)
	}
	defer rows.Close()

	var points []AnglePoint
	for rows.Next() {
		var p AnglePoint
		if err := rows.Scan(&p.TMono, &p.Value); err != nil {
			return nil, fmt.Errorf("scan angle point: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("angle series rows: %w", err)
	}

	return points, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
