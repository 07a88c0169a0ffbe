package l3fusion

import (
	"errors"
	"fmt"
	"sort"

	"github.com/armature-data/posture.report/internal/mocap"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/num/quat"
)

// minSamples is the smallest stream a Resampler can be fitted to.
const minSamples = 2

var (
	// ErrInsufficientSamples reports a stream too short to interpolate.
	ErrInsufficientSamples = errors.New("insufficient samples")
	// ErrNonMonotonicTimestamps reports a stream whose timestamps are not
	// strictly increasing.
	ErrNonMonotonicTimestamps = errors.New("non-monotonic timestamps")
)

// Resampler evaluates a recorded pose stream at arbitrary instants.
// A fitted Resampler is immutable and safe for concurrent use.
type Resampler struct {
	name       string
	timestamps []float64
	orients    []quat.Number
	x, y, z    interp.NaturalCubic
}

// NewResampler fits a resampler to a pose stream. The stream must hold at
// least two samples with strictly increasing timestamps; violations are
// reported as ErrInsufficientSamples or ErrNonMonotonicTimestamps wrapped
// with the stream name.
func NewResampler(name string, samples []mocap.PoseSample) (*Resampler, error) {
	if len(samples) < minSamples {
		return nil, fmt.Errorf("%s stream has %d samples, need at least %d: %w",
			name, len(samples), minSamples, ErrInsufficientSamples)
	}

	r := &Resampler{
		name:       name,
		timestamps: make([]float64, len(samples)),
		orients:    make([]quat.Number, len(samples)),
	}
	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	zs := make([]float64, len(samples))
	for i, s := range samples {
		if i > 0 && s.Timestamp <= r.timestamps[i-1] {
			return nil, fmt.Errorf("%s stream timestamps not strictly increasing at index %d (%.6f then %.6f): %w",
				name, i, r.timestamps[i-1], s.Timestamp, ErrNonMonotonicTimestamps)
		}
		r.timestamps[i] = s.Timestamp
		r.orients[i] = s.Orientation
		xs[i] = s.Position.X
		ys[i] = s.Position.Y
		zs[i] = s.Position.Z
	}

	if err := r.x.Fit(r.timestamps, xs); err != nil {
		return nil, fmt.Errorf("fit %s x axis: %w", name, err)
	}
	if err := r.y.Fit(r.timestamps, ys); err != nil {
		return nil, fmt.Errorf("fit %s y axis: %w", name, err)
	}
	if err := r.z.Fit(r.timestamps, zs); err != nil {
		return nil, fmt.Errorf("fit %s z axis: %w", name, err)
	}

	return r, nil
}

// Bounds returns the first and last timestamps of the fitted stream.
func (r *Resampler) Bounds() (start, end float64) {
	return r.timestamps[0], r.timestamps[len(r.timestamps)-1]
}

// At evaluates the stream at time t. Queries outside the fitted range are
// clamped to the nearest endpoint before evaluation; the returned sample
// keeps the requested timestamp either way.
func (r *Resampler) At(t float64) mocap.PoseSample {
	clamped := t
	if start, end := r.Bounds(); clamped < start {
		clamped = start
	} else if clamped > end {
		clamped = end
	}

	return mocap.PoseSample{
		Timestamp: t,
		Position: r3.Vector{
			X: r.x.Predict(clamped),
			Y: r.y.Predict(clamped),
			Z: r.z.Predict(clamped),
		},
		Orientation: r.orientationAt(clamped),
	}
}

// orientationAt interpolates orientation spherically between the two
// samples bracketing t. t must already be clamped to the fitted range.
func (r *Resampler) orientationAt(t float64) quat.Number {
	i := sort.SearchFloat64s(r.timestamps, t)
	if i < len(r.timestamps) && r.timestamps[i] == t {
		return r.orients[i]
	}
	// SearchFloat64s returned the insertion point, so the bracket is
	// (i-1, i) and both ends exist for a clamped t.
	t0, t1 := r.timestamps[i-1], r.timestamps[i]
	u := (t - t0) / (t1 - t0)
	return mocap.Slerp(r.orients[i-1], r.orients[i], u)
}
