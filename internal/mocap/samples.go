package mocap

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// PoseSample is one observed or interpolated 6-DoF pose: a position and a
// unit-norm orientation at a monotonic capture timestamp (seconds).
type PoseSample struct {
	Timestamp   float64
	Position    r3.Vector
	Orientation quat.Number
}

// Side identifies which hand a landmark frame belongs to.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// ParseSide converts a chirality column value into a Side.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideLeft:
		return SideLeft, nil
	case SideRight:
		return SideRight, nil
	}
	return "", fmt.Errorf("unknown chirality %q", s)
}

// Landmark is a named anatomical tracking point reported directly by the
// headset, as opposed to a derived joint computed by reconstruction.
type Landmark string

// The two forearm landmarks drive elbow/wrist reconstruction; the finger
// landmarks are passed through to the output verbatim.
const (
	ForearmWrist Landmark = "forearmWrist"
	ForearmArm   Landmark = "forearmArm"
)

// FingerLandmarks lists the 24 finger joints in the order the capture app
// emits them: four thumb joints, then five joints for each remaining finger.
var FingerLandmarks = []Landmark{
	"thumbKnuckle", "thumbIntermediateBase", "thumbIntermediateTip", "thumbTip",
	"indexFingerMetacarpal", "indexFingerKnuckle", "indexFingerIntermediateBase",
	"indexFingerIntermediateTip", "indexFingerTip",
	"middleFingerMetacarpal", "middleFingerKnuckle", "middleFingerIntermediateBase",
	"middleFingerIntermediateTip", "middleFingerTip",
	"ringFingerMetacarpal", "ringFingerKnuckle", "ringFingerIntermediateBase",
	"ringFingerIntermediateTip", "ringFingerTip",
	"littleFingerMetacarpal", "littleFingerKnuckle", "littleFingerIntermediateBase",
	"littleFingerIntermediateTip", "littleFingerTip",
}

// HandLandmarks is the full landmark set of one hand-stream row: the two
// forearm landmarks followed by the finger joints.
var HandLandmarks = func() []Landmark {
	all := make([]Landmark, 0, 2+len(FingerLandmarks))
	all = append(all, ForearmWrist, ForearmArm)
	return append(all, FingerLandmarks...)
}()

// LandmarkPose is the observed pose of a single landmark. A landmark is
// either fully present (position and orientation) or fully absent; partial
// observations do not occur in the capture format.
type LandmarkPose struct {
	Position    r3.Vector
	Orientation quat.Number
}

// HandFrame is everything one hand reported at one timestamp. Landmarks
// maps only the landmarks actually observed; an absent landmark has no
// entry, never a zero-valued one.
type HandFrame struct {
	Timestamp float64
	WallTime  float64
	Side      Side
	Landmarks map[Landmark]LandmarkPose
}

// Landmark returns the named landmark pose and whether it was observed.
func (f *HandFrame) Landmark(name Landmark) (LandmarkPose, bool) {
	if f == nil || f.Landmarks == nil {
		return LandmarkPose{}, false
	}
	p, ok := f.Landmarks[name]
	return p, ok
}

// Has reports whether the named landmark was observed in this frame.
func (f *HandFrame) Has(name Landmark) bool {
	_, ok := f.Landmark(name)
	return ok
}
