package pipeline

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/armature-data/posture.report/internal/config"
	"github.com/armature-data/posture.report/internal/mocap"
	"github.com/armature-data/posture.report/internal/mocap/l1streams"
	"github.com/armature-data/posture.report/internal/mocap/l2timeline"
	"github.com/armature-data/posture.report/internal/mocap/l3fusion"
	"github.com/armature-data/posture.report/internal/mocap/l4skeleton"
	"github.com/armature-data/posture.report/internal/mocap/l5records"
	"gonum.org/v1/gonum/stat"
)

// progressInterval is how many frames pass between progress log lines.
const progressInterval = 500

// Config selects the inputs and knobs of one rebuild run.
type Config struct {
	// DevicePath is the head pose capture CSV.
	DevicePath string
	// HandPath is the hand landmark capture CSV.
	HandPath string
	// UserHeight is the subject's standing height in meters.
	UserHeight float64
	// Tuning optionally overrides the anthropometric ratios.
	Tuning *config.BodyTuning
	// Workers bounds the reconstruction pool. Zero or negative means one
	// worker per CPU.
	Workers int
}

// Coverage counts how many output frames carried wrist data per side.
type Coverage struct {
	Frames    int
	BothHands int
	LeftOnly  int
	RightOnly int
}

// AngleStats aggregates one posture angle across a run.
type AngleStats struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Result is the outcome of one rebuild run.
type Result struct {
	// Records holds one frame per merged hand timestamp, in timeline order.
	Records []l5records.FrameRecord
	// Device is the raw head stream, kept for the joined output.
	Device []mocap.PoseSample
	// Model is the body model the run reconstructed with.
	Model l4skeleton.BodyModel

	Coverage   Coverage
	AngleStats map[l4skeleton.AngleName]AngleStats
}

// Run executes the full rebuild for one capture pair.
func Run(cfg Config) (*Result, error) {
	if cfg.DevicePath == "" {
		return nil, fmt.Errorf("device data path is required")
	}
	if cfg.HandPath == "" {
		return nil, fmt.Errorf("hand data path is required")
	}

	model, err := l4skeleton.BodyModelFromTuning(cfg.UserHeight, cfg.Tuning)
	if err != nil {
		return nil, fmt.Errorf("build body model: %w", err)
	}

	device, err := l1streams.ReadDevicePoses(cfg.DevicePath)
	if err != nil {
		return nil, fmt.Errorf("read device data: %w", err)
	}
	hands, err := l1streams.ReadHandRows(cfg.HandPath)
	if err != nil {
		return nil, fmt.Errorf("read hand data: %w", err)
	}
	debugf("loaded %d device poses, %d hand rows", len(device), len(hands))

	head, err := l3fusion.NewResampler("head", device)
	if err != nil {
		return nil, fmt.Errorf("fit head stream: %w", err)
	}

	slots := l2timeline.Align(hands)
	debugf("merged hand timeline: %d frames", len(slots))

	records := reconstructAll(slots, head, model, cfg.Workers)

	result := &Result{
		Records: records,
		Device:  device,
		Model:   model,
	}
	result.Coverage = countCoverage(records)
	result.AngleStats = aggregateAngles(records)
	debugf("reconstructed %d frames (both=%d left=%d right=%d)",
		result.Coverage.Frames, result.Coverage.BothHands,
		result.Coverage.LeftOnly, result.Coverage.RightOnly)

	return result, nil
}

// reconstructAll fans frame reconstruction out across a bounded worker
// pool. Each worker writes into its own slice index, so the output order
// is the timeline order regardless of scheduling.
func reconstructAll(slots []l2timeline.Slot, head *l3fusion.Resampler, model l4skeleton.BodyModel, workers int) []l5records.FrameRecord {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	records := make([]l5records.FrameRecord, len(slots))
	jobs := make(chan int)
	var done atomic.Int64

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				slot := slots[i]
				pose := head.At(slot.Timestamp)
				skeleton := l4skeleton.Reconstruct(pose, slot.Left, slot.Right, model)
				records[i] = l5records.FrameRecord{
					Frame:     i,
					Timestamp: slot.Timestamp,
					WallTime:  slot.WallTime(),
					Skeleton:  skeleton,
					Angles:    l4skeleton.ComputeAngles(skeleton),
					Left:      slot.Left,
					Right:     slot.Right,
				}
				if n := done.Add(1); n%progressInterval == 0 {
					debugf("processed %d/%d frames", n, len(slots))
				}
			}
		}()
	}
	for i := range slots {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return records
}

// countCoverage tallies wrist presence per side, the same health numbers
// the capture tooling prints after organizing a recording.
func countCoverage(records []l5records.FrameRecord) Coverage {
	cov := Coverage{Frames: len(records)}
	for i := range records {
		left := records[i].Left.Has(mocap.ForearmWrist)
		right := records[i].Right.Has(mocap.ForearmWrist)
		switch {
		case left && right:
			cov.BothHands++
		case left:
			cov.LeftOnly++
		case right:
			cov.RightOnly++
		}
	}
	return cov
}

// aggregateAngles computes per-angle summary statistics over a run.
// Angles absent from every frame get no entry.
func aggregateAngles(records []l5records.FrameRecord) map[l4skeleton.AngleName]AngleStats {
	series := make(map[l4skeleton.AngleName][]float64, len(l4skeleton.AngleNames))
	for i := range records {
		for name, v := range records[i].Angles {
			series[name] = append(series[name], v)
		}
	}

	stats := make(map[l4skeleton.AngleName]AngleStats, len(series))
	for name, vals := range series {
		s := AngleStats{Count: len(vals), Mean: stat.Mean(vals, nil), Min: vals[0], Max: vals[0]}
		if len(vals) > 1 {
			s.StdDev = stat.StdDev(vals, nil)
		}
		for _, v := range vals[1:] {
			if v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
		}
		stats[name] = s
	}
	return stats
}
