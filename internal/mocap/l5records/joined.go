package l5records

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/armature-data/posture.report/internal/mocap"
	"github.com/armature-data/posture.report/internal/mocap/l4skeleton"
)

// joinedSides orders the raw hand blocks in the joined file: left first,
// then right, matching the capture joiner's layout.
var joinedSides = []mocap.Side{mocap.SideLeft, mocap.SideRight}

// JoinedWriter writes joined rows: the calculated columns plus the raw
// device pose and raw hand landmark groups matched by exact t_mono. The
// finger passthrough block of the calculated file is omitted here because
// the raw hand blocks carry the same data under their native names.
//
// Joining is a left join from calculated rows on exact timestamp
// equality; a device row only matches when both streams stamped the same
// monotonic instant, and unmatched raw columns stay empty.
type JoinedWriter struct {
	w      *csv.Writer
	device map[float64]mocap.PoseSample
}

// NewJoinedWriter creates a joined-record writer on w. The device samples
// are indexed by timestamp for the join; duplicate timestamps resolve to
// the last sample.
func NewJoinedWriter(w io.Writer, device []mocap.PoseSample) *JoinedWriter {
	index := make(map[float64]mocap.PoseSample, len(device))
	for _, s := range device {
		index[s.Timestamp] = s
	}
	return &JoinedWriter{w: csv.NewWriter(w), device: index}
}

// WriteHeader writes the joined file's header row.
func (j *JoinedWriter) WriteHeader() error {
	return j.w.Write(JoinedHeader())
}

// WriteRecord writes one joined row.
func (j *JoinedWriter) WriteRecord(rec FrameRecord) error {
	row := make([]string, 0, len(JoinedHeader()))
	row = append(row, fmt.Sprintf("%d", rec.Frame), cell(rec.Timestamp), cell(rec.WallTime))
	row = append(row, jointCells(rec.Skeleton)...)
	row = append(row, headQuatCells(rec.Skeleton)...)
	row = append(row, angleCells(rec.Angles)...)
	row = append(row, j.deviceCells(rec.Timestamp)...)
	for _, side := range joinedSides {
		row = append(row, rawHandCells(rec.Hand(side))...)
	}
	return j.w.Write(row)
}

// Flush flushes buffered rows and reports any write error.
func (j *JoinedWriter) Flush() error {
	j.w.Flush()
	return j.w.Error()
}

// JoinedHeader returns the joined file's fixed column layout.
func JoinedHeader() []string {
	header := []string{"frame", "t_mono", "t_wall"}
	header = append(header, jointHeader("")...)
	header = append(header, "head_qx", "head_qy", "head_qz", "head_qw")
	for _, name := range l4skeleton.AngleNames {
		header = append(header, string(name))
	}
	header = append(header,
		"head_tracked_x", "head_tracked_y", "head_tracked_z",
		"head_tracked_qx", "head_tracked_qy", "head_tracked_qz", "head_tracked_qw")
	for _, side := range joinedSides {
		for _, lm := range mocap.HandLandmarks {
			base := string(side) + "_" + string(lm)
			header = append(header, base+"_px", base+"_py", base+"_pz",
				base+"_qx", base+"_qy", base+"_qz", base+"_qw")
		}
	}
	return header
}

// deviceCells renders the raw device pose matched to t, or empty cells
// when no device row carries exactly that timestamp.
func (j *JoinedWriter) deviceCells(t float64) []string {
	s, ok := j.device[t]
	if !ok {
		return []string{"", "", "", "", "", "", ""}
	}
	return []string{
		cell(s.Position.X), cell(s.Position.Y), cell(s.Position.Z),
		cell(s.Orientation.Imag), cell(s.Orientation.Jmag),
		cell(s.Orientation.Kmag), cell(s.Orientation.Real),
	}
}

// rawHandCells renders the seven native cells for every hand landmark of
// one side. A nil hand yields all-empty cells.
func rawHandCells(hand *mocap.HandFrame) []string {
	cells := make([]string, 0, len(mocap.HandLandmarks)*7)
	for _, lm := range mocap.HandLandmarks {
		pose, ok := hand.Landmark(lm)
		if !ok {
			cells = append(cells, "", "", "", "", "", "", "")
			continue
		}
		cells = append(cells,
			cell(pose.Position.X), cell(pose.Position.Y), cell(pose.Position.Z),
			cell(pose.Orientation.Imag), cell(pose.Orientation.Jmag),
			cell(pose.Orientation.Kmag), cell(pose.Orientation.Real))
	}
	return cells
}
