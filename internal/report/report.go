// Package report renders posture angle series into shareable artifacts:
// an HTML page of interactive charts and an optional static PNG. Series
// arrive keyed by angle column name so the package works identically
// whether the caller pulled them from a capture database or a
// calculated CSV.
package report

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/armature-data/posture.report/internal/mocap/l4skeleton"
)

// TimedValue is one angle sample: monotonic capture time and degrees.
type TimedValue struct {
	T     float64
	Value float64
}

// RunSummary carries the run metadata shown in the report header.
type RunSummary struct {
	Title       string
	UserHeightM float64
	Frames      int
	BothHands   int
	LeftOnly    int
	RightOnly   int
}

// HeadOnly returns the frames where neither hand was observed.
func (s RunSummary) HeadOnly() int {
	n := s.Frames - s.BothHands - s.LeftOnly - s.RightOnly
	if n < 0 {
		return 0
	}
	return n
}

// AngleStats summarizes one angle series.
type AngleStats struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Stats computes summary statistics for one series. A single sample has
// no spread, so StdDev is 0 rather than NaN.
func Stats(series []TimedValue) AngleStats {
	if len(series) == 0 {
		return AngleStats{}
	}

	vals := make([]float64, len(series))
	min, max := series[0].Value, series[0].Value
	for i, v := range series {
		vals[i] = v.Value
		if v.Value < min {
			min = v.Value
		}
		if v.Value > max {
			max = v.Value
		}
	}

	stddev := 0.0
	if len(vals) > 1 {
		stddev = stat.StdDev(vals, nil)
	}

	return AngleStats{
		Count:  len(vals),
		Mean:   stat.Mean(vals, nil),
		StdDev: stddev,
		Min:    min,
		Max:    max,
	}
}

// orderedNames returns the series keys in canonical angle order, with any
// unrecognized keys appended alphabetically so nothing is silently dropped.
func orderedNames(series map[string][]TimedValue) []string {
	var names []string
	seen := make(map[string]bool, len(series))
	for _, name := range l4skeleton.AngleNames {
		if _, ok := series[string(name)]; ok {
			names = append(names, string(name))
			seen[string(name)] = true
		}
	}

	var extra []string
	for name := range series {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)

	return append(names, extra...)
}
