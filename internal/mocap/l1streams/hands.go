package l1streams

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/armature-data/posture.report/internal/mocap"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// landmarkSuffixes are the per-landmark column suffixes, position first
// then quaternion, matching the capture file layout.
var landmarkSuffixes = []string{"_px", "_py", "_pz", "_qx", "_qy", "_qz", "_qw"}

// landmarkColumns holds the resolved header indices for one landmark's
// seven-column group.
type landmarkColumns struct {
	name mocap.Landmark
	idx  [7]int
}

// ReadHandRows reads a hand landmark capture CSV into frames in file order.
// Each row yields one frame for the side named by its chirality column.
// A landmark is present in a frame when its entire seven-column group is
// filled; an all-empty group marks the landmark as not observed. Landmark
// groups missing from the header entirely are tolerated and simply never
// appear in any frame.
func ReadHandRows(path string) ([]mocap.HandFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hand landmark file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read hand landmark file: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("hand landmark file %s is empty", path)
	}

	cols, err := resolveColumns(records[0], []string{"t_mono", "chirality"})
	if err != nil {
		return nil, fmt.Errorf("hand landmark file %s: %w", path, err)
	}
	wallCol, hasWall := cols["t_wall"]
	groups := resolveLandmarkGroups(cols)

	frames := make([]mocap.HandFrame, 0, len(records)-1)
	for i, record := range records[1:] {
		line := i + 2

		t, err := strconv.ParseFloat(record[cols["t_mono"]], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid t_mono at line %d: %v", line, err)
		}
		side, err := mocap.ParseSide(record[cols["chirality"]])
		if err != nil {
			return nil, fmt.Errorf("invalid chirality at line %d: %v", line, err)
		}
		var wall float64
		if hasWall && record[wallCol] != "" {
			wall, err = strconv.ParseFloat(record[wallCol], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid t_wall at line %d: %v", line, err)
			}
		}

		frame := mocap.HandFrame{
			Timestamp: t,
			WallTime:  wall,
			Side:      side,
			Landmarks: make(map[mocap.Landmark]mocap.LandmarkPose, len(groups)),
		}
		for _, group := range groups {
			pose, present, err := parseLandmarkGroup(record, group)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", line, err)
			}
			if present {
				frame.Landmarks[group.name] = pose
			}
		}
		frames = append(frames, frame)
	}

	return frames, nil
}

// resolveLandmarkGroups finds the landmark column groups present in the
// header. A group counts only when all seven of its columns exist.
func resolveLandmarkGroups(cols map[string]int) []landmarkColumns {
	groups := make([]landmarkColumns, 0, len(mocap.HandLandmarks))
	for _, name := range mocap.HandLandmarks {
		group := landmarkColumns{name: name}
		complete := true
		for j, suffix := range landmarkSuffixes {
			idx, ok := cols[string(name)+suffix]
			if !ok {
				complete = false
				break
			}
			group.idx[j] = idx
		}
		if complete {
			groups = append(groups, group)
		}
	}
	return groups
}

// parseLandmarkGroup parses one landmark's seven cells from a record.
// All-empty means not observed; a partially filled group is a corrupt row.
func parseLandmarkGroup(record []string, group landmarkColumns) (mocap.LandmarkPose, bool, error) {
	filled := 0
	for _, idx := range group.idx {
		if record[idx] != "" {
			filled++
		}
	}
	if filled == 0 {
		return mocap.LandmarkPose{}, false, nil
	}
	if filled != len(group.idx) {
		return mocap.LandmarkPose{}, false, fmt.Errorf("landmark %s has %d of %d cells filled", group.name, filled, len(group.idx))
	}

	var values [7]float64
	for j, idx := range group.idx {
		v, err := strconv.ParseFloat(record[idx], 64)
		if err != nil {
			return mocap.LandmarkPose{}, false, fmt.Errorf("invalid %s%s: %v", group.name, landmarkSuffixes[j], err)
		}
		values[j] = v
	}
	return mocap.LandmarkPose{
		Position:    r3.Vector{X: values[0], Y: values[1], Z: values[2]},
		Orientation: quat.Number{Real: values[6], Imag: values[3], Jmag: values[4], Kmag: values[5]},
	}, true, nil
}
