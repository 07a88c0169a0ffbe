// skeleton-rebuild reconstructs an upper-body skeleton from a recording
// session's head-tracking and hand-landmark CSV streams. It writes the
// calculated skeleton CSV, optionally a joined calculated+raw CSV, and
// optionally records the run in a posture database.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/armature-data/posture.report/internal/config"
	"github.com/armature-data/posture.report/internal/mocap/l5records"
	"github.com/armature-data/posture.report/internal/mocap/pipeline"
	"github.com/armature-data/posture.report/internal/posturedb"
	"github.com/armature-data/posture.report/internal/version"
)

var (
	deviceData       = flag.String("device-data", "", "Path to the head-tracking device CSV")
	handData         = flag.String("hand-data", "", "Path to the hand landmark CSV")
	outputCalculated = flag.String("output-calculated", "calculated_skeleton.csv", "Output path for the calculated skeleton CSV")
	outputJoined     = flag.String("output-joined", "", "Optional output path for the joined calculated+raw CSV")
	userHeight       = flag.Float64("user-height", 1.75, "Subject height in meters for the body model")
	bodyConfig       = flag.String("body-config", "", "Optional JSON file overriding body segment ratios")
	workers          = flag.Int("workers", 0, "Reconstruction worker count (0 = all CPUs)")
	dbFile           = flag.String("db", "", "Optional SQLite database file to record the run in")
	notes            = flag.String("notes", "", "Free-form notes stored with the database run")
	verbose          = flag.Bool("verbose", false, "Log verbose pipeline diagnostics to stderr")
	showVersion      = flag.Bool("version", false, "Print build version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("skeleton-rebuild %s\n", version.String())
		return
	}

	if *deviceData == "" || *handData == "" {
		flag.Usage()
		log.Fatalf("both -device-data and -hand-data are required")
	}

	if *verbose {
		pipeline.SetDebugLogger(os.Stderr)
	}

	var tuning *config.BodyTuning
	if *bodyConfig != "" {
		t, err := config.LoadBodyTuning(*bodyConfig)
		if err != nil {
			log.Fatalf("Could not load body config %s: %v", *bodyConfig, err)
		}
		tuning = t
		log.Printf("Loaded body ratios from %s", *bodyConfig)
	}

	result, err := pipeline.Run(pipeline.Config{
		DevicePath: *deviceData,
		HandPath:   *handData,
		UserHeight: *userHeight,
		Tuning:     tuning,
		Workers:    *workers,
	})
	if err != nil {
		log.Fatalf("Rebuild failed: %v", err)
	}

	cov := result.Coverage
	log.Printf("Reconstructed %d frames (both=%d left=%d right=%d)",
		cov.Frames, cov.BothHands, cov.LeftOnly, cov.RightOnly)

	if err := writeCalculated(*outputCalculated, result); err != nil {
		log.Fatalf("Could not write %s: %v", *outputCalculated, err)
	}
	log.Printf("Calculated: %s (%d rows x %d columns)",
		*outputCalculated, len(result.Records), len(l5records.CalculatedHeader()))

	if *outputJoined != "" {
		if err := writeJoined(*outputJoined, result); err != nil {
			log.Fatalf("Could not write %s: %v", *outputJoined, err)
		}
		log.Printf("Joined: %s (%d rows x %d columns)",
			*outputJoined, len(result.Records), len(l5records.JoinedHeader()))
	}

	if *dbFile != "" {
		runID, err := persistRun(*dbFile, result)
		if err != nil {
			log.Fatalf("Could not record run in %s: %v", *dbFile, err)
		}
		log.Printf("Recorded run %s in %s", runID, *dbFile)
	}
}

func writeCalculated(path string, result *pipeline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := l5records.NewCSVWriter(f)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	for _, rec := range result.Records {
		if err := w.WriteRecord(rec); err != nil {
			return err
		}
	}
	return w.Flush()
}

func writeJoined(path string, result *pipeline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := l5records.NewJoinedWriter(f, result.Device)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	for _, rec := range result.Records {
		if err := w.WriteRecord(rec); err != nil {
			return err
		}
	}
	return w.Flush()
}

// persistRun records the run and its per-frame angles, returning the
// generated run ID.
func persistRun(path string, result *pipeline.Result) (string, error) {
	db, err := posturedb.Open(path)
	if err != nil {
		return "", err
	}
	defer db.Close()

	if err := db.MigrateUp(); err != nil {
		return "", err
	}

	runs := posturedb.NewRunStore(db.DB)
	run := &posturedb.Run{
		DeviceFile:  *deviceData,
		HandFile:    *handData,
		UserHeightM: *userHeight,
		Notes:       *notes,
	}
	if err := runs.InsertRun(run); err != nil {
		return "", err
	}

	frames := make([]posturedb.Frame, len(result.Records))
	for i, rec := range result.Records {
		frames[i] = posturedb.NewFrame(run.RunID, rec)
	}
	if err := posturedb.NewFrameStore(db.DB).InsertFrames(frames); err != nil {
		return "", err
	}

	cov := result.Coverage
	if err := runs.FinishRun(run.RunID, cov.Frames, cov.BothHands, cov.LeftOnly, cov.RightOnly); err != nil {
		return "", err
	}

	return run.RunID, nil
}
