package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Default body segment ratios as fractions of standing height. These match
// the anthropometric tables the capture pipeline was calibrated against and
// are the values used when no tuning file overrides them.
const (
	DefaultNeckRatio          = 0.05
	DefaultShoulderWidthRatio = 0.25
	DefaultUpperArmRatio      = 0.18
	DefaultForearmRatio       = 0.16
	DefaultUpperSpineRatio    = 0.10
	DefaultMidSpineRatio      = 0.10
	DefaultLowerSpineRatio    = 0.10
)

// BodyTuning overrides the default body segment ratios. Fields are
// pointers so a partial JSON file only overrides what it names; the Get*
// methods provide fallback defaults for everything else.
type BodyTuning struct {
	NeckRatio          *float64 `json:"neck_ratio,omitempty"`
	ShoulderWidthRatio *float64 `json:"shoulder_width_ratio,omitempty"`
	UpperArmRatio      *float64 `json:"upper_arm_ratio,omitempty"`
	ForearmRatio       *float64 `json:"forearm_ratio,omitempty"`
	UpperSpineRatio    *float64 `json:"upper_spine_ratio,omitempty"`
	MidSpineRatio      *float64 `json:"mid_spine_ratio,omitempty"`
	LowerSpineRatio    *float64 `json:"lower_spine_ratio,omitempty"`
}

// LoadBodyTuning loads a BodyTuning from a JSON file. Fields omitted from
// the file retain their default values, so partial configs are safe.
func LoadBodyTuning(path string) (*BodyTuning, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("body tuning file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read body tuning file: %w", err)
	}

	cfg := &BodyTuning{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse body tuning JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid body tuning: %w", err)
	}

	return cfg, nil
}

// Validate checks that every ratio override is a sane fraction of height.
func (c *BodyTuning) Validate() error {
	checks := []struct {
		name  string
		value *float64
	}{
		{"neck_ratio", c.NeckRatio},
		{"shoulder_width_ratio", c.ShoulderWidthRatio},
		{"upper_arm_ratio", c.UpperArmRatio},
		{"forearm_ratio", c.ForearmRatio},
		{"upper_spine_ratio", c.UpperSpineRatio},
		{"mid_spine_ratio", c.MidSpineRatio},
		{"lower_spine_ratio", c.LowerSpineRatio},
	}
	for _, check := range checks {
		if check.value == nil {
			continue
		}
		if *check.value <= 0 || *check.value >= 1 {
			return fmt.Errorf("%s must be between 0 and 1 exclusive, got %f", check.name, *check.value)
		}
	}
	return nil
}

// GetNeckRatio returns the neck_ratio value or the default.
func (c *BodyTuning) GetNeckRatio() float64 {
	if c == nil || c.NeckRatio == nil {
		return DefaultNeckRatio
	}
	return *c.NeckRatio
}

// GetShoulderWidthRatio returns the shoulder_width_ratio value or the default.
func (c *BodyTuning) GetShoulderWidthRatio() float64 {
	if c == nil || c.ShoulderWidthRatio == nil {
		return DefaultShoulderWidthRatio
	}
	return *c.ShoulderWidthRatio
}

// GetUpperArmRatio returns the upper_arm_ratio value or the default.
func (c *BodyTuning) GetUpperArmRatio() float64 {
	if c == nil || c.UpperArmRatio == nil {
		return DefaultUpperArmRatio
	}
	return *c.UpperArmRatio
}

// GetForearmRatio returns the forearm_ratio value or the default.
func (c *BodyTuning) GetForearmRatio() float64 {
	if c == nil || c.ForearmRatio == nil {
		return DefaultForearmRatio
	}
	return *c.ForearmRatio
}

// GetUpperSpineRatio returns the upper_spine_ratio value or the default.
func (c *BodyTuning) GetUpperSpineRatio() float64 {
	if c == nil || c.UpperSpineRatio == nil {
		return DefaultUpperSpineRatio
	}
	return *c.UpperSpineRatio
}

// GetMidSpineRatio returns the mid_spine_ratio value or the default.
func (c *BodyTuning) GetMidSpineRatio() float64 {
	if c == nil || c.MidSpineRatio == nil {
		return DefaultMidSpineRatio
	}
	return *c.MidSpineRatio
}

// GetLowerSpineRatio returns the lower_spine_ratio value or the default.
func (c *BodyTuning) GetLowerSpineRatio() float64 {
	if c == nil || c.LowerSpineRatio == nil {
		return DefaultLowerSpineRatio
	}
	return *c.LowerSpineRatio
}
