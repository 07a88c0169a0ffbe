package l4skeleton

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func TestAngleAt(t *testing.T) {
	tests := []struct {
		name           string
		p1, vertex, p2 r3.Vector
		want           float64
	}{
		{
			name: "right angle",
			p1:   r3.Vector{X: 1}, vertex: r3.Vector{}, p2: r3.Vector{Y: 1},
			want: 90,
		},
		{
			name: "opposite rays",
			p1:   r3.Vector{X: -1}, vertex: r3.Vector{}, p2: r3.Vector{X: 1},
			want: 180,
		},
		{
			name: "same direction",
			p1:   r3.Vector{X: 1}, vertex: r3.Vector{}, p2: r3.Vector{X: 5},
			want: 0,
		},
		{
			name: "sixty degrees",
			p1:   r3.Vector{X: 1}, vertex: r3.Vector{}, p2: r3.Vector{X: 0.5, Y: math.Sqrt(3) / 2},
			want: 60,
		},
		{
			name: "offset vertex",
			p1:   r3.Vector{X: 2, Y: 1, Z: 3}, vertex: r3.Vector{X: 1, Y: 1, Z: 3}, p2: r3.Vector{X: 1, Y: 4, Z: 3},
			want: 90,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AngleAt(tt.p1, tt.vertex, tt.p2)
			if err != nil {
				t.Fatalf("AngleAt() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AngleAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAngleAtClampsRoundingError(t *testing.T) {
	// Parallel limbs of different lengths can push the computed cosine a
	// hair past 1; the clamp keeps acos defined.
	p1 := r3.Vector{X: 0.1, Y: 0.2, Z: 0.3}
	p2 := r3.Vector{X: 0.3, Y: 0.6, Z: 0.9}

	got, err := AngleAt(p1, r3.Vector{}, p2)
	if err != nil {
		t.Fatalf("AngleAt() error = %v", err)
	}
	if math.IsNaN(got) {
		t.Fatal("AngleAt() = NaN, want clamped angle")
	}
	if math.Abs(got) > 1e-6 {
		t.Errorf("AngleAt() = %v, want ~0", got)
	}
}

func TestAngleAtZeroLengthLimb(t *testing.T) {
	v := r3.Vector{X: 1, Y: 2, Z: 3}
	if _, err := AngleAt(v, v, r3.Vector{X: 9}); err == nil {
		t.Error("AngleAt() with p1 at vertex, want error")
	}
}

// bentArmFrame builds a frame whose right arm runs along +X with the
// forearm dropping straight down, and whose spine is straight.
func bentArmFrame() SkeletonFrame {
	elbow := r3.Vector{X: 0.61, Y: -0.3}
	wrist := r3.Vector{X: 0.61, Y: -0.62}
	return SkeletonFrame{
		Head:          r3.Vector{},
		Neck:          r3.Vector{Y: -0.1},
		UpperSpine:    r3.Vector{Y: -0.3},
		MidSpine:      r3.Vector{Y: -0.5},
		LowerSpine:    r3.Vector{Y: -0.7},
		LeftShoulder:  r3.Vector{X: -0.25, Y: -0.3},
		RightShoulder: r3.Vector{X: 0.25, Y: -0.3},
		RightElbow:    &elbow,
		RightWrist:    &wrist,
	}
}

func TestComputeAngles(t *testing.T) {
	angles := ComputeAngles(bentArmFrame())

	if got, ok := angles[AngleRightElbow]; !ok || math.Abs(got-90) > 1e-9 {
		t.Errorf("right_elbow_angle = %v (present=%v), want 90", got, ok)
	}
	if got, ok := angles[AngleRightShoulder]; !ok || math.Abs(got-180) > 1e-9 {
		t.Errorf("right_shoulder_angle = %v (present=%v), want 180", got, ok)
	}
	if got, ok := angles[AngleSpineBend]; !ok || math.Abs(got-180) > 1e-9 {
		t.Errorf("spine_bend_angle = %v (present=%v), want 180", got, ok)
	}

	if _, ok := angles[AngleLeftElbow]; ok {
		t.Error("left_elbow_angle present, want absent without left arm")
	}
	if _, ok := angles[AngleLeftShoulder]; ok {
		t.Error("left_shoulder_angle present, want absent without left arm")
	}
}

func TestComputeAnglesRange(t *testing.T) {
	for name, angle := range ComputeAngles(bentArmFrame()) {
		if angle < 0 || angle > 180 {
			t.Errorf("%s = %v, want within [0, 180]", name, angle)
		}
	}
}

func TestComputeAnglesSkipsDegenerateGeometry(t *testing.T) {
	frame := bentArmFrame()
	// Wrist collapsed onto the elbow leaves the elbow angle undefined but
	// the shoulder angle intact.
	frame.RightWrist = frame.RightElbow

	angles := ComputeAngles(frame)
	if _, ok := angles[AngleRightElbow]; ok {
		t.Error("right_elbow_angle present, want dropped for coincident wrist")
	}
	if _, ok := angles[AngleRightShoulder]; !ok {
		t.Error("right_shoulder_angle absent, want present")
	}
}
