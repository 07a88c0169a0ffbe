package mocap

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

const floatTol = 1e-9

func vecApproxEqual(a, b r3.Vector, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func quatApproxEqual(a, b quat.Number, tol float64) bool {
	return math.Abs(a.Real-b.Real) < tol &&
		math.Abs(a.Imag-b.Imag) < tol &&
		math.Abs(a.Jmag-b.Jmag) < tol &&
		math.Abs(a.Kmag-b.Kmag) < tol
}

// quatAboutX returns a rotation of the given angle (radians) about +X.
func quatAboutX(angle float64) quat.Number {
	return quat.Number{Real: math.Cos(angle / 2), Imag: math.Sin(angle / 2)}
}

func TestRotateVectorIdentity(t *testing.T) {
	identity := quat.Number{Real: 1}
	v := r3.Vector{X: 0.3, Y: -1.2, Z: 4.5}

	got := RotateVector(identity, v)
	if !vecApproxEqual(got, v, floatTol) {
		t.Errorf("RotateVector(identity, %v) = %v, want %v", v, got, v)
	}
}

func TestRotateVectorQuarterTurnAboutZ(t *testing.T) {
	// 90° about +Z maps +X onto +Y.
	halfAngle := math.Pi / 4
	q := quat.Number{Real: math.Cos(halfAngle), Kmag: math.Sin(halfAngle)}

	got := RotateVector(q, r3.Vector{X: 1})
	want := r3.Vector{Y: 1}
	if !vecApproxEqual(got, want, floatTol) {
		t.Errorf("RotateVector(90° about Z, +X) = %v, want %v", got, want)
	}
}

func TestRotateVectorPreservesLength(t *testing.T) {
	q := NormalizeQuat(quat.Number{Real: 0.4, Imag: -0.1, Jmag: 0.7, Kmag: 0.2})
	v := r3.Vector{X: 2, Y: -3, Z: 6} // length 7

	got := RotateVector(q, v)
	if math.Abs(got.Norm()-7) > floatTol {
		t.Errorf("rotated length = %v, want 7", got.Norm())
	}
}

func TestNormalizeQuat(t *testing.T) {
	q := quat.Number{Real: 2, Imag: 0, Jmag: 0, Kmag: 0}
	got := NormalizeQuat(q)
	if !quatApproxEqual(got, quat.Number{Real: 1}, floatTol) {
		t.Errorf("NormalizeQuat(%v) = %v, want identity", q, got)
	}

	if n := quat.Abs(NormalizeQuat(quat.Number{Real: 0.3, Imag: 0.1, Jmag: -0.4, Kmag: 0.2})); math.Abs(n-1) > floatTol {
		t.Errorf("normalised magnitude = %v, want 1", n)
	}

	// Zero input must not produce NaNs.
	got = NormalizeQuat(quat.Number{})
	if !quatApproxEqual(got, quat.Number{Real: 1}, floatTol) {
		t.Errorf("NormalizeQuat(zero) = %v, want identity", got)
	}
}

func TestSlerpEndpoints(t *testing.T) {
	q1 := quatAboutX(0)
	q2 := quatAboutX(math.Pi / 2)

	if got := Slerp(q1, q2, 0); !quatApproxEqual(got, q1, floatTol) {
		t.Errorf("Slerp(q1, q2, 0) = %v, want %v", got, q1)
	}
	if got := Slerp(q1, q2, 1); !quatApproxEqual(got, q2, floatTol) {
		t.Errorf("Slerp(q1, q2, 1) = %v, want %v", got, q2)
	}
}

func TestSlerpMidpoint(t *testing.T) {
	q1 := quatAboutX(0)
	q2 := quatAboutX(math.Pi / 2)

	got := Slerp(q1, q2, 0.5)
	want := quatAboutX(math.Pi / 4)
	if !quatApproxEqual(got, want, floatTol) {
		t.Errorf("Slerp midpoint = %v, want %v", got, want)
	}
}

func TestSlerpShortestArc(t *testing.T) {
	// Halfway between +45° and -45° about X is the identity, and the
	// interpolation must go through it rather than the long way round.
	q1 := quatAboutX(math.Pi / 4)
	q2 := quat.Conj(q1)

	got := Slerp(q1, q2, 0.5)
	want := quat.Number{Real: 1}
	if !quatApproxEqual(got, want, floatTol) {
		t.Errorf("Slerp(+45°, -45°, 0.5) = %v, want identity", got)
	}
}

func TestSlerpNegatedEndpointTakesShortWay(t *testing.T) {
	// q and -q encode the same rotation; interpolating toward a negated
	// endpoint must not swing through a half turn.
	q1 := quatAboutX(math.Pi / 6)
	q2 := quat.Scale(-1, quatAboutX(math.Pi/3))

	got := Slerp(q1, q2, 0.5)
	want := quatAboutX(math.Pi / 4)
	if !quatApproxEqual(got, want, floatTol) {
		t.Errorf("Slerp with negated endpoint = %v, want %v", got, want)
	}
}

func TestSlerpNearlyParallelFallsBackToNlerp(t *testing.T) {
	q1 := quatAboutX(0)
	q2 := quatAboutX(1e-8)

	got := Slerp(q1, q2, 0.5)
	if math.Abs(quat.Abs(got)-1) > floatTol {
		t.Errorf("near-parallel slerp magnitude = %v, want 1", quat.Abs(got))
	}
	if !quatApproxEqual(got, quatAboutX(5e-9), 1e-12) {
		t.Errorf("near-parallel slerp = %v, want %v", got, quatAboutX(5e-9))
	}
}

func TestParseSide(t *testing.T) {
	tests := []struct {
		in      string
		want    Side
		wantErr bool
	}{
		{"left", SideLeft, false},
		{"right", SideRight, false},
		{"Left", "", true},
		{"", "", true},
		{"both", "", true},
	}
	for _, tc := range tests {
		got, err := ParseSide(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseSide(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseSide(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHandLandmarkTables(t *testing.T) {
	if len(FingerLandmarks) != 24 {
		t.Fatalf("len(FingerLandmarks) = %d, want 24", len(FingerLandmarks))
	}
	if len(HandLandmarks) != 26 {
		t.Fatalf("len(HandLandmarks) = %d, want 26", len(HandLandmarks))
	}
	if HandLandmarks[0] != ForearmWrist || HandLandmarks[1] != ForearmArm {
		t.Errorf("HandLandmarks must start with forearm landmarks, got %v", HandLandmarks[:2])
	}
}

func TestHandFrameLandmarkAbsent(t *testing.T) {
	f := &HandFrame{Timestamp: 1.5, Side: SideRight, Landmarks: map[Landmark]LandmarkPose{
		ForearmWrist: {Position: r3.Vector{X: 1}},
	}}

	if !f.Has(ForearmWrist) {
		t.Error("Has(ForearmWrist) = false, want true")
	}
	if f.Has(ForearmArm) {
		t.Error("Has(ForearmArm) = true, want false")
	}

	var nilFrame *HandFrame
	if nilFrame.Has(ForearmWrist) {
		t.Error("nil frame Has() = true, want false")
	}
}
