package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const tol = 1e-9

func sampleSeries() map[string][]TimedValue {
	return map[string][]TimedValue{
		"right_elbow_angle": {
			{T: 0.5, Value: 90.0},
			{T: 0.7, Value: 95.0},
			{T: 0.9, Value: 100.0},
		},
		"spine_bend_angle": {
			{T: 0.5, Value: 180.0},
			{T: 0.7, Value: 178.0},
		},
	}
}

func TestStats(t *testing.T) {
	st := Stats([]TimedValue{
		{T: 0, Value: 10},
		{T: 1, Value: 20},
		{T: 2, Value: 30},
	})

	if st.Count != 3 {
		t.Errorf("Count = %d, want 3", st.Count)
	}
	if math.Abs(st.Mean-20) > tol {
		t.Errorf("Mean = %v, want 20", st.Mean)
	}
	if math.Abs(st.StdDev-10) > tol {
		t.Errorf("StdDev = %v, want 10", st.StdDev)
	}
	if st.Min != 10 || st.Max != 30 {
		t.Errorf("Min, Max = %v, %v, want 10, 30", st.Min, st.Max)
	}
}

func TestStatsSingleSample(t *testing.T) {
	st := Stats([]TimedValue{{T: 0, Value: 42}})

	if st.Count != 1 {
		t.Errorf("Count = %d, want 1", st.Count)
	}
	if st.StdDev != 0 {
		t.Errorf("StdDev = %v, want 0 for a single sample", st.StdDev)
	}
	if st.Mean != 42 || st.Min != 42 || st.Max != 42 {
		t.Errorf("Mean, Min, Max = %v, %v, %v, want all 42", st.Mean, st.Min, st.Max)
	}
}

func TestStatsEmpty(t *testing.T) {
	st := Stats(nil)
	if st != (AngleStats{}) {
		t.Errorf("Stats(nil) = %+v, want zero value", st)
	}
}

func TestRunSummaryHeadOnly(t *testing.T) {
	s := RunSummary{Frames: 10, BothHands: 5, LeftOnly: 2, RightOnly: 1}
	if got := s.HeadOnly(); got != 2 {
		t.Errorf("HeadOnly = %d, want 2", got)
	}

	// Inconsistent counts clamp to zero instead of going negative.
	s = RunSummary{Frames: 3, BothHands: 5}
	if got := s.HeadOnly(); got != 0 {
		t.Errorf("HeadOnly = %d, want 0 when counts exceed frames", got)
	}
}

func TestOrderedNames(t *testing.T) {
	series := map[string][]TimedValue{
		"spine_bend_angle":  {{T: 0, Value: 1}},
		"left_elbow_angle":  {{T: 0, Value: 1}},
		"right_elbow_angle": {{T: 0, Value: 1}},
		"custom_metric":     {{T: 0, Value: 1}},
	}

	got := orderedNames(series)
	want := []string{"left_elbow_angle", "right_elbow_angle", "spine_bend_angle", "custom_metric"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("orderedNames = %v, want %v", got, want)
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	summary := RunSummary{Title: "session1", UserHeightM: 1.82, Frames: 3, BothHands: 2, RightOnly: 1}

	if err := WriteHTML(&buf, summary, sampleSeries()); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}

	page := buf.String()
	for _, want := range []string{"Joint Coverage", "right_elbow_angle", "spine_bend_angle", "session1"} {
		if !strings.Contains(page, want) {
			t.Errorf("report page missing %q", want)
		}
	}

	// Coverage chart leads the page; angle charts follow in canonical order.
	coverageAt := strings.Index(page, "Joint Coverage")
	elbowAt := strings.Index(page, "right_elbow_angle")
	spineAt := strings.Index(page, "spine_bend_angle")
	if !(coverageAt < elbowAt && elbowAt < spineAt) {
		t.Errorf("chart order wrong: coverage=%d elbow=%d spine=%d", coverageAt, elbowAt, spineAt)
	}
}

func TestWriteHTMLSkipsEmptySeries(t *testing.T) {
	var buf bytes.Buffer
	series := map[string][]TimedValue{
		"spine_bend_angle": {{T: 0.5, Value: 180.0}},
		"left_elbow_angle": {},
	}

	if err := WriteHTML(&buf, RunSummary{Title: "r"}, series); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}

	if strings.Contains(buf.String(), "left_elbow_angle") {
		t.Error("empty series should not produce a chart")
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "angles.png")

	if err := SavePNG(path, sampleSeries()); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat plot file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}

func TestSavePNGNoSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")

	err := SavePNG(path, map[string][]TimedValue{"spine_bend_angle": {}})
	if err == nil {
		t.Fatal("expected error for series without samples")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file should be written when there is nothing to plot")
	}
}
