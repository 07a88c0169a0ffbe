package l5records

import (
	"github.com/armature-data/posture.report/internal/mocap"
	"github.com/armature-data/posture.report/internal/mocap/l4skeleton"
)

// FrameRecord is one fully reconstructed output frame: the skeleton and
// angles derived at one hand timestamp plus the raw hand frames that fed
// it, kept for landmark passthrough.
type FrameRecord struct {
	Frame     int
	Timestamp float64
	WallTime  float64

	Skeleton l4skeleton.SkeletonFrame
	Angles   map[l4skeleton.AngleName]float64

	Left  *mocap.HandFrame
	Right *mocap.HandFrame
}

// Hand returns the record's raw hand frame for one side, or nil.
func (r *FrameRecord) Hand(side mocap.Side) *mocap.HandFrame {
	if side == mocap.SideLeft {
		return r.Left
	}
	return r.Right
}
