package l4skeleton

import (
	"fmt"

	"github.com/armature-data/posture.report/internal/config"
)

// BodyModel holds the segment lengths, in meters, that the reconstruction
// uses to place joints the capture cannot observe directly.
type BodyModel struct {
	Height           float64
	NeckLength       float64
	ShoulderWidth    float64
	UpperArmLength   float64
	ForearmLength    float64
	UpperSpineLength float64
	MidSpineLength   float64
	LowerSpineLength float64
}

// NewBodyModel derives segment lengths from standing height using the
// default anthropometric ratios.
func NewBodyModel(heightM float64) (BodyModel, error) {
	return BodyModelFromTuning(heightM, nil)
}

// BodyModelFromTuning derives segment lengths from standing height using
// ratios from a tuning config. A nil config uses the defaults throughout.
func BodyModelFromTuning(heightM float64, cfg *config.BodyTuning) (BodyModel, error) {
	if heightM <= 0 {
		return BodyModel{}, fmt.Errorf("height must be positive, got %f", heightM)
	}
	return BodyModel{
		Height:           heightM,
		NeckLength:       heightM * cfg.GetNeckRatio(),
		ShoulderWidth:    heightM * cfg.GetShoulderWidthRatio(),
		UpperArmLength:   heightM * cfg.GetUpperArmRatio(),
		ForearmLength:    heightM * cfg.GetForearmRatio(),
		UpperSpineLength: heightM * cfg.GetUpperSpineRatio(),
		MidSpineLength:   heightM * cfg.GetMidSpineRatio(),
		LowerSpineLength: heightM * cfg.GetLowerSpineRatio(),
	}, nil
}
