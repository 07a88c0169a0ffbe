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

// deviceColumns are the required columns of a head pose capture file.
// Files may carry extras (t_wall, battery levels) which are ignored.
var deviceColumns = []string{"t_mono", "x", "y", "z", "qx", "qy", "qz", "qw"}

// ReadDevicePoses reads a head pose capture CSV into pose samples in file
// order. Orientations are normalized on read; capture files occasionally
// carry rounding drift away from unit length.
func ReadDevicePoses(path string) ([]mocap.PoseSample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open device pose file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read device pose file: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("device pose file %s is empty", path)
	}

	cols, err := resolveColumns(records[0], deviceColumns)
	if err != nil {
		return nil, fmt.Errorf("device pose file %s: %w", path, err)
	}

	samples := make([]mocap.PoseSample, 0, len(records)-1)
	for i, record := range records[1:] {
		line := i + 2
		values := make([]float64, len(deviceColumns))
		for j, name := range deviceColumns {
			v, err := strconv.ParseFloat(record[cols[name]], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid %s at line %d: %v", name, line, err)
			}
			values[j] = v
		}
		samples = append(samples, mocap.PoseSample{
			Timestamp: values[0],
			Position:  r3.Vector{X: values[1], Y: values[2], Z: values[3]},
			Orientation: mocap.NormalizeQuat(quat.Number{
				Real: values[7], Imag: values[4], Jmag: values[5], Kmag: values[6],
			}),
		})
	}

	return samples, nil
}

// resolveColumns maps required column names to their indices in a header
// row. Unknown columns in the header are ignored.
func resolveColumns(header []string, required []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return cols, nil
}
