package l4skeleton

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// AngleName identifies one posture angle.
type AngleName string

const (
	AngleLeftElbow     AngleName = "left_elbow_angle"
	AngleRightElbow    AngleName = "right_elbow_angle"
	AngleLeftShoulder  AngleName = "left_shoulder_angle"
	AngleRightShoulder AngleName = "right_shoulder_angle"
	AngleSpineBend     AngleName = "spine_bend_angle"
)

// AngleNames lists every posture angle in canonical record order.
var AngleNames = []AngleName{
	AngleLeftElbow, AngleRightElbow,
	AngleLeftShoulder, AngleRightShoulder,
	AngleSpineBend,
}

// AngleAt returns the interior angle at vertex formed by the rays toward
// p1 and p2, in degrees within [0, 180]. The cosine is clamped before
// acos so collinear points with rounding error never produce NaN. A limb
// of zero length has no direction and yields an error.
func AngleAt(p1, vertex, p2 r3.Vector) (float64, error) {
	v1 := p1.Sub(vertex)
	v2 := p2.Sub(vertex)

	n1 := v1.Norm()
	n2 := v2.Norm()
	if n1 == 0 || n2 == 0 {
		return 0, fmt.Errorf("angle undefined: zero-length limb at vertex %v", vertex)
	}

	cos := v1.Dot(v2) / (n1 * n2)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi, nil
}

// ComputeAngles derives the posture angles a skeleton frame supports.
// Elbow and shoulder angles need that side's arm joints; the spine bend
// uses joints that always exist. Degenerate geometry (coincident joints)
// drops the affected angle rather than reporting garbage.
func ComputeAngles(frame SkeletonFrame) map[AngleName]float64 {
	angles := make(map[AngleName]float64, len(AngleNames))

	put := func(name AngleName, p1, vertex, p2 r3.Vector) {
		if angle, err := AngleAt(p1, vertex, p2); err == nil {
			angles[name] = angle
		}
	}

	if frame.LeftElbow != nil {
		if frame.LeftWrist != nil {
			put(AngleLeftElbow, frame.LeftShoulder, *frame.LeftElbow, *frame.LeftWrist)
		}
		put(AngleLeftShoulder, frame.UpperSpine, frame.LeftShoulder, *frame.LeftElbow)
	}
	if frame.RightElbow != nil {
		if frame.RightWrist != nil {
			put(AngleRightElbow, frame.RightShoulder, *frame.RightElbow, *frame.RightWrist)
		}
		put(AngleRightShoulder, frame.UpperSpine, frame.RightShoulder, *frame.RightElbow)
	}
	put(AngleSpineBend, frame.Neck, frame.MidSpine, frame.LowerSpine)

	return angles
}
