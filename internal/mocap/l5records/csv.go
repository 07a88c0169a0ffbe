package l5records

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/armature-data/posture.report/internal/mocap"
	"github.com/armature-data/posture.report/internal/mocap/l4skeleton"
)

// passthroughSides orders the finger landmark blocks in the calculated
// file: right first, then left, matching the capture viewer's layout.
var passthroughSides = []mocap.Side{mocap.SideRight, mocap.SideLeft}

// CSVWriter writes calculated frame records: skeleton joints, posture
// angles, the interpolated head orientation and the raw finger landmarks.
// The header is fixed; absent values are empty cells.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter creates a calculated-record writer on w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// WriteHeader writes the calculated file's header row.
func (c *CSVWriter) WriteHeader() error {
	return c.w.Write(CalculatedHeader())
}

// WriteRecord writes one calculated row.
func (c *CSVWriter) WriteRecord(rec FrameRecord) error {
	row := make([]string, 0, 2+len(l4skeleton.JointNames)*3+4+len(l4skeleton.AngleNames)+len(passthroughSides)*len(mocap.FingerLandmarks)*7)
	row = append(row, fmt.Sprintf("%d", rec.Frame), cell(rec.Timestamp))
	row = append(row, jointCells(rec.Skeleton)...)
	row = append(row, headQuatCells(rec.Skeleton)...)
	row = append(row, angleCells(rec.Angles)...)
	for _, side := range passthroughSides {
		row = append(row, fingerCells(rec.Hand(side))...)
	}
	return c.w.Write(row)
}

// Flush flushes buffered rows and reports any write error.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

// CalculatedHeader returns the calculated file's fixed column layout.
func CalculatedHeader() []string {
	header := []string{"frame", "t_mono"}
	header = append(header, jointHeader("")...)
	header = append(header, "head_qx", "head_qy", "head_qz", "head_qw")
	for _, name := range l4skeleton.AngleNames {
		header = append(header, string(name))
	}
	for _, side := range passthroughSides {
		for _, lm := range mocap.FingerLandmarks {
			base := string(side) + "_" + string(lm)
			header = append(header, base+"_x", base+"_y", base+"_z",
				base+"_qx", base+"_qy", base+"_qz", base+"_qw")
		}
	}
	return header
}

// jointHeader returns the x/y/z column names for every skeleton joint,
// each prefixed with prefix.
func jointHeader(prefix string) []string {
	header := make([]string, 0, len(l4skeleton.JointNames)*3)
	for _, name := range l4skeleton.JointNames {
		header = append(header, prefix+string(name)+"_x", prefix+string(name)+"_y", prefix+string(name)+"_z")
	}
	return header
}

func cell(v float64) string {
	return fmt.Sprintf("%.6f", v)
}

// jointCells renders every joint's x/y/z cells, empty for absent joints.
func jointCells(skeleton l4skeleton.SkeletonFrame) []string {
	cells := make([]string, 0, len(l4skeleton.JointNames)*3)
	for _, name := range l4skeleton.JointNames {
		if pos, ok := skeleton.Joint(name); ok {
			cells = append(cells, cell(pos.X), cell(pos.Y), cell(pos.Z))
		} else {
			cells = append(cells, "", "", "")
		}
	}
	return cells
}

// headQuatCells renders the interpolated head orientation in qx,qy,qz,qw
// order.
func headQuatCells(skeleton l4skeleton.SkeletonFrame) []string {
	q := skeleton.HeadOrientation
	return []string{cell(q.Imag), cell(q.Jmag), cell(q.Kmag), cell(q.Real)}
}

// angleCells renders every posture angle's cell, empty for absent angles.
func angleCells(angles map[l4skeleton.AngleName]float64) []string {
	cells := make([]string, 0, len(l4skeleton.AngleNames))
	for _, name := range l4skeleton.AngleNames {
		if v, ok := angles[name]; ok {
			cells = append(cells, cell(v))
		} else {
			cells = append(cells, "")
		}
	}
	return cells
}

// fingerCells renders the seven passthrough cells for every finger
// landmark of one hand. A nil hand yields all-empty cells.
func fingerCells(hand *mocap.HandFrame) []string {
	cells := make([]string, 0, len(mocap.FingerLandmarks)*7)
	for _, lm := range mocap.FingerLandmarks {
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
