// posture-report renders the angle series of a rebuild into an HTML
// report and optionally a static PNG plot. Series come either from a
// posture database run or directly from a calculated skeleton CSV.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/armature-data/posture.report/internal/mocap/l4skeleton"
	"github.com/armature-data/posture.report/internal/posturedb"
	"github.com/armature-data/posture.report/internal/report"
	"github.com/armature-data/posture.report/internal/version"
)

func main() {
	dbFile := flag.String("db", "", "Posture database file to read a run from")
	runID := flag.String("run", "", "Run ID to report on (defaults to the latest run)")
	input := flag.String("input", "", "Calculated skeleton CSV to report on (instead of -db)")
	output := flag.String("output", "posture_report.html", "Output path for the HTML report")
	pngFile := flag.String("png", "", "Optional output path for a static PNG plot")
	showVersion := flag.Bool("version", false, "Print build version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("posture-report %s\n", version.String())
		return
	}

	if (*dbFile == "") == (*input == "") {
		flag.Usage()
		log.Fatalf("exactly one of -db or -input is required")
	}

	var (
		summary report.RunSummary
		series  map[string][]report.TimedValue
		err     error
	)
	if *dbFile != "" {
		summary, series, err = seriesFromDB(*dbFile, *runID)
	} else {
		summary, series, err = seriesFromCSV(*input)
	}
	if err != nil {
		log.Fatalf("Could not load angle series: %v", err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Could not create %s: %v", *output, err)
	}
	defer f.Close()

	if err := report.WriteHTML(f, summary, series); err != nil {
		log.Fatalf("Could not render report: %v", err)
	}
	log.Printf("Report: %s (%d angle series, %d frames)", *output, len(series), summary.Frames)

	if *pngFile != "" {
		if err := report.SavePNG(*pngFile, series); err != nil {
			log.Fatalf("Could not save plot: %v", err)
		}
		log.Printf("Plot: %s", *pngFile)
	}
}

// seriesFromDB loads a run's summary and angle series from a posture
// database. An empty runID selects the most recent run.
func seriesFromDB(path, runID string) (report.RunSummary, map[string][]report.TimedValue, error) {
	db, err := posturedb.Open(path)
	if err != nil {
		return report.RunSummary{}, nil, err
	}
	defer db.Close()

	runs := posturedb.NewRunStore(db.DB)
	if runID == "" {
		all, err := runs.ListRuns()
		if err != nil {
			return report.RunSummary{}, nil, err
		}
		if len(all) == 0 {
			return report.RunSummary{}, nil, fmt.Errorf("no runs in %s", path)
		}
		runID = all[0].RunID
		log.Printf("Using latest run %s", runID)
	}

	run, err := runs.GetRun(runID)
	if err != nil {
		return report.RunSummary{}, nil, err
	}

	frames := posturedb.NewFrameStore(db.DB)
	series := make(map[string][]report.TimedValue)
	for _, name := range l4skeleton.AngleNames {
		points, err := frames.AngleSeries(runID, string(name))
		if err != nil {
			return report.RunSummary{}, nil, err
		}
		if len(points) == 0 {
			continue
		}
		sv := make([]report.TimedValue, len(points))
		for i, p := range points {
			sv[i] = report.TimedValue{T: p.TMono, Value: p.Value}
		}
		series[string(name)] = sv
	}

	summary := report.RunSummary{
		Title:       run.RunID,
		UserHeightM: run.UserHeightM,
		Frames:      run.FrameCount,
		BothHands:   run.BothHands,
		LeftOnly:    run.LeftOnly,
		RightOnly:   run.RightOnly,
	}

	return summary, series, nil
}

// seriesFromCSV loads angle series straight from a calculated skeleton
// CSV. Coverage counts use wrist joint presence, the closest signal the
// calculated columns carry.
func seriesFromCSV(path string) (report.RunSummary, map[string][]report.TimedValue, error) {
	f, err := os.Open(path)
	if err != nil {
		return report.RunSummary{}, nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return report.RunSummary{}, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return report.RunSummary{}, nil, fmt.Errorf("%s has no header row", path)
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[name] = i
	}
	tMono, ok := index["t_mono"]
	if !ok {
		return report.RunSummary{}, nil, fmt.Errorf("%s has no t_mono column", path)
	}
	leftWrist, hasLeftWrist := index["left_wrist_x"]
	rightWrist, hasRightWrist := index["right_wrist_x"]

	summary := report.RunSummary{Title: filepath.Base(path), Frames: len(rows) - 1}
	series := make(map[string][]report.TimedValue)

	for i, row := range rows[1:] {
		t, err := strconv.ParseFloat(row[tMono], 64)
		if err != nil {
			return report.RunSummary{}, nil, fmt.Errorf("invalid t_mono at line %d: %v", i+2, err)
		}

		for _, name := range l4skeleton.AngleNames {
			col, ok := index[string(name)]
			if !ok || row[col] == "" {
				continue
			}
			v, err := strconv.ParseFloat(row[col], 64)
			if err != nil {
				return report.RunSummary{}, nil, fmt.Errorf("invalid %s at line %d: %v", name, i+2, err)
			}
			series[string(name)] = append(series[string(name)], report.TimedValue{T: t, Value: v})
		}

		left := hasLeftWrist && row[leftWrist] != ""
		right := hasRightWrist && row[rightWrist] != ""
		switch {
		case left && right:
			summary.BothHands++
		case left:
			summary.LeftOnly++
		case right:
			summary.RightOnly++
		}
	}

	return summary, series, nil
}
