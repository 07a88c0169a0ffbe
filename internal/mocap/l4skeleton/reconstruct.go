package l4skeleton

import (
	"github.com/armature-data/posture.report/internal/mocap"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// elbowDegenerateEps is the shoulder-to-forearm distance below which the
// aiming direction is meaningless and the elbow falls back to a fixed
// offset along world Z.
const elbowDegenerateEps = 1e-6

// JointName identifies one skeleton joint.
type JointName string

const (
	JointHead          JointName = "head"
	JointNeck          JointName = "neck"
	JointUpperSpine    JointName = "upper_spine"
	JointMidSpine      JointName = "mid_spine"
	JointLowerSpine    JointName = "lower_spine"
	JointLeftShoulder  JointName = "left_shoulder"
	JointRightShoulder JointName = "right_shoulder"
	JointLeftElbow     JointName = "left_elbow"
	JointRightElbow    JointName = "right_elbow"
	JointLeftWrist     JointName = "left_wrist"
	JointRightWrist    JointName = "right_wrist"
)

// JointNames lists every skeleton joint in canonical record order.
var JointNames = []JointName{
	JointHead, JointNeck,
	JointUpperSpine, JointMidSpine, JointLowerSpine,
	JointLeftShoulder, JointRightShoulder,
	JointLeftElbow, JointRightElbow,
	JointLeftWrist, JointRightWrist,
}

// SkeletonFrame is the reconstructed upper body at one instant. Head,
// spine and shoulder joints always exist; elbows and wrists are nil on
// sides where the hand was not observed.
type SkeletonFrame struct {
	Timestamp float64

	Head       r3.Vector
	Neck       r3.Vector
	UpperSpine r3.Vector
	MidSpine   r3.Vector
	LowerSpine r3.Vector

	LeftShoulder  r3.Vector
	RightShoulder r3.Vector

	LeftElbow  *r3.Vector
	RightElbow *r3.Vector
	LeftWrist  *r3.Vector
	RightWrist *r3.Vector

	HeadOrientation quat.Number
}

// Joint returns the named joint's position. ok is false for an elbow or
// wrist on a side without hand data, and for unknown names.
func (f *SkeletonFrame) Joint(name JointName) (r3.Vector, bool) {
	switch name {
	case JointHead:
		return f.Head, true
	case JointNeck:
		return f.Neck, true
	case JointUpperSpine:
		return f.UpperSpine, true
	case JointMidSpine:
		return f.MidSpine, true
	case JointLowerSpine:
		return f.LowerSpine, true
	case JointLeftShoulder:
		return f.LeftShoulder, true
	case JointRightShoulder:
		return f.RightShoulder, true
	case JointLeftElbow:
		return deref(f.LeftElbow)
	case JointRightElbow:
		return deref(f.RightElbow)
	case JointLeftWrist:
		return deref(f.LeftWrist)
	case JointRightWrist:
		return deref(f.RightWrist)
	}
	return r3.Vector{}, false
}

func deref(v *r3.Vector) (r3.Vector, bool) {
	if v == nil {
		return r3.Vector{}, false
	}
	return *v, true
}

// Reconstruct builds the skeleton for one instant from the resampled head
// pose and whichever hand frames were observed then. Either hand frame may
// be nil; the corresponding arm joints stay absent.
func Reconstruct(head mocap.PoseSample, left, right *mocap.HandFrame, model BodyModel) SkeletonFrame {
	frame := SkeletonFrame{
		Timestamp:       head.Timestamp,
		Head:            head.Position,
		HeadOrientation: head.Orientation,
	}

	down := mocap.RotateVector(head.Orientation, r3.Vector{Y: -1}).Normalize()
	frame.Neck = frame.Head.Add(down.Mul(model.NeckLength))
	frame.UpperSpine = frame.Neck.Add(down.Mul(model.UpperSpineLength))
	frame.MidSpine = frame.UpperSpine.Add(down.Mul(model.MidSpineLength))
	frame.LowerSpine = frame.MidSpine.Add(down.Mul(model.LowerSpineLength))

	rightward := mocap.RotateVector(head.Orientation, r3.Vector{X: 1}).Normalize()
	halfWidth := model.ShoulderWidth / 2
	frame.LeftShoulder = frame.UpperSpine.Sub(rightward.Mul(halfWidth))
	frame.RightShoulder = frame.UpperSpine.Add(rightward.Mul(halfWidth))

	frame.LeftElbow, frame.LeftWrist = reconstructArm(frame.LeftShoulder, left, model)
	frame.RightElbow, frame.RightWrist = reconstructArm(frame.RightShoulder, right, model)

	return frame
}

// reconstructArm places one arm's elbow and wrist. Both forearm landmarks
// must be present; otherwise the whole arm is absent. The wrist passes
// through from the capture, and the elbow sits one upper-arm length from
// the shoulder toward the observed forearm.
func reconstructArm(shoulder r3.Vector, hand *mocap.HandFrame, model BodyModel) (elbow, wrist *r3.Vector) {
	if hand == nil {
		return nil, nil
	}
	forearmPose, ok := hand.Landmark(mocap.ForearmArm)
	if !ok {
		return nil, nil
	}
	wristPose, ok := hand.Landmark(mocap.ForearmWrist)
	if !ok {
		return nil, nil
	}

	toForearm := forearmPose.Position.Sub(shoulder)
	var elbowPos r3.Vector
	if toForearm.Norm() < elbowDegenerateEps {
		elbowPos = shoulder.Add(r3.Vector{Z: model.UpperArmLength})
	} else {
		elbowPos = shoulder.Add(toForearm.Normalize().Mul(model.UpperArmLength))
	}

	wristPos := wristPose.Position
	return &elbowPos, &wristPos
}
