package l1streams

import (
	"fmt"
	"strings"
	"testing"

	"github.com/armature-data/posture.report/internal/mocap"
	"github.com/golang/geo/r3"
)

// handHeader builds a hand capture header with the seven-column group for
// each named landmark.
func handHeader(landmarks ...mocap.Landmark) string {
	cols := []string{"t_mono", "t_wall", "chirality"}
	for _, name := range landmarks {
		for _, suffix := range landmarkSuffixes {
			cols = append(cols, string(name)+suffix)
		}
	}
	return strings.Join(cols, ",")
}

// filledGroup renders a landmark group's seven cells from a base value:
// positions base, base+1, base+2 and an identity quaternion.
func filledGroup(base float64) string {
	return fmt.Sprintf("%g,%g,%g,0,0,0,1", base, base+1, base+2)
}

// emptyGroup renders a landmark group with all seven cells empty.
func emptyGroup() string {
	return ",,,,,,"
}

func TestReadHandRows(t *testing.T) {
	path := writeTempCSV(t, []string{
		handHeader(mocap.ForearmWrist, mocap.ForearmArm, "thumbTip"),
		"0.10,100.10,right," + filledGroup(1) + "," + filledGroup(4) + "," + filledGroup(7),
		"0.12,100.12,left," + filledGroup(10) + "," + emptyGroup() + "," + filledGroup(13),
	})

	frames, err := ReadHandRows(path)
	if err != nil {
		t.Fatalf("ReadHandRows() error = %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("len(frames) = %d, want 2", len(frames))
	}

	right := frames[0]
	if right.Side != mocap.SideRight {
		t.Errorf("frames[0].Side = %q, want %q", right.Side, mocap.SideRight)
	}
	if right.Timestamp != 0.10 || right.WallTime != 100.10 {
		t.Errorf("frames[0] times = (%v, %v), want (0.10, 100.10)", right.Timestamp, right.WallTime)
	}
	wrist, ok := right.Landmark(mocap.ForearmWrist)
	if !ok {
		t.Fatal("frames[0] missing forearmWrist")
	}
	wantPos := r3.Vector{X: 1, Y: 2, Z: 3}
	if wrist.Position != wantPos {
		t.Errorf("forearmWrist position = %v, want %v", wrist.Position, wantPos)
	}
	if wrist.Orientation.Real != 1 {
		t.Errorf("forearmWrist orientation real = %v, want 1", wrist.Orientation.Real)
	}

	left := frames[1]
	if left.Side != mocap.SideLeft {
		t.Errorf("frames[1].Side = %q, want %q", left.Side, mocap.SideLeft)
	}
	if left.Has(mocap.ForearmArm) {
		t.Error("frames[1] has forearmArm, want absent for all-empty group")
	}
	if !left.Has(mocap.ForearmWrist) || !left.Has("thumbTip") {
		t.Error("frames[1] missing landmarks that were filled")
	}
}

func TestReadHandRowsPartialGroup(t *testing.T) {
	// forearmWrist has only its px cell filled.
	path := writeTempCSV(t, []string{
		handHeader(mocap.ForearmWrist),
		"0.10,100.10,right,1.0,,,,,,",
	})

	_, err := ReadHandRows(path)
	if err == nil {
		t.Fatal("ReadHandRows() with partial landmark group, want error")
	}
	if !strings.Contains(err.Error(), "forearmWrist") || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q does not name the landmark and line", err)
	}
}

func TestReadHandRowsBadChirality(t *testing.T) {
	path := writeTempCSV(t, []string{
		handHeader(mocap.ForearmWrist),
		"0.10,100.10,both," + filledGroup(1),
	})

	if _, err := ReadHandRows(path); err == nil {
		t.Error("ReadHandRows() with unknown chirality, want error")
	}
}

func TestReadHandRowsWithoutWallTime(t *testing.T) {
	lines := []string{
		"t_mono,chirality," + strings.Join(func() []string {
			var cols []string
			for _, suffix := range landmarkSuffixes {
				cols = append(cols, string(mocap.ForearmArm)+suffix)
			}
			return cols
		}(), ","),
		"0.50,left," + filledGroup(2),
	}
	path := writeTempCSV(t, lines)

	frames, err := ReadHandRows(path)
	if err != nil {
		t.Fatalf("ReadHandRows() error = %v", err)
	}
	if frames[0].WallTime != 0 {
		t.Errorf("WallTime = %v, want 0 when t_wall column absent", frames[0].WallTime)
	}
	if !frames[0].Has(mocap.ForearmArm) {
		t.Error("frame missing forearmArm")
	}
}

func TestReadHandRowsIgnoresGroupsMissingFromHeader(t *testing.T) {
	// Only the thumbTip group appears in the header; other landmarks can
	// never be present but the file still reads cleanly.
	path := writeTempCSV(t, []string{
		handHeader("thumbTip"),
		"0.10,100.10,right," + filledGroup(1),
	})

	frames, err := ReadHandRows(path)
	if err != nil {
		t.Fatalf("ReadHandRows() error = %v", err)
	}
	if len(frames[0].Landmarks) != 1 {
		t.Errorf("len(Landmarks) = %d, want 1", len(frames[0].Landmarks))
	}
	if frames[0].Has(mocap.ForearmWrist) {
		t.Error("frame has forearmWrist, want absent when columns missing")
	}
}
