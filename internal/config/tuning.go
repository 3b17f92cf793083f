// Package config loads seeding tuning parameters from JSON files.
//
// All fields are pointers so a file can override any subset of the
// built-in defaults; omitted fields keep their current values.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/trackseed/internal/seeding"
)

// DefaultTuningPath is the canonical tuning defaults file.
const DefaultTuningPath = "config/tuning.defaults.json"

// MaxTuningFileSize bounds how much of a tuning file is read.
const MaxTuningFileSize = 1 << 20

// Tuning mirrors the seeding configuration with optional fields.
type Tuning struct {
	RMax               *float64 `json:"r_max,omitempty"`
	DeltaRMin          *float64 `json:"delta_r_min,omitempty"`
	DeltaRMax          *float64 `json:"delta_r_max,omitempty"`
	CollisionRegionMin *float64 `json:"collision_region_min,omitempty"`
	CollisionRegionMax *float64 `json:"collision_region_max,omitempty"`
	ZMin               *float64 `json:"z_min,omitempty"`
	ZMax               *float64 `json:"z_max,omitempty"`
	CotThetaMax        *float64 `json:"cot_theta_max,omitempty"`
	MinPt              *float64 `json:"min_pt,omitempty"`
	BFieldInZ          *float64 `json:"b_field_in_z,omitempty"`
	BeamPosX           *float64 `json:"beam_pos_x,omitempty"`
	BeamPosY           *float64 `json:"beam_pos_y,omitempty"`
	ImpactMax          *float64 `json:"impact_max,omitempty"`
	SigmaScattering    *float64 `json:"sigma_scattering,omitempty"`
	RadLengthPerSeed   *float64 `json:"rad_length_per_seed,omitempty"`

	// Filter params
	DeltaInvHelixDiameter *float64 `json:"delta_inv_helix_diameter,omitempty"`
	ImpactWeightFactor    *float64 `json:"impact_weight_factor,omitempty"`
	CompatSeedWeight      *float64 `json:"compat_seed_weight,omitempty"`
	FilterDeltaRMin       *float64 `json:"filter_delta_r_min,omitempty"`
	MaxSeedsPerSpM        *int     `json:"max_seeds_per_sp_m,omitempty"`
	CompatSeedLimit       *int     `json:"compat_seed_limit,omitempty"`
}

// Load reads a tuning file. The path must have a .json extension and
// stay under MaxTuningFileSize.
func Load(path string) (*Tuning, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("tuning file must have .json extension, got %q", ext)
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat tuning file: %w", err)
	}
	if info.Size() > MaxTuningFileSize {
		return nil, fmt.Errorf("tuning file %s exceeds %d bytes", cleanPath, MaxTuningFileSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read tuning file: %w", err)
	}
	var t Tuning
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse tuning file %s: %w", cleanPath, err)
	}
	return &t, nil
}

// Apply overlays the tuning onto cfg and returns the result. Fields
// left nil in the tuning keep their cfg values.
func (t *Tuning) Apply(cfg seeding.Config) seeding.Config {
	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setF(&cfg.RMax, t.RMax)
	setF(&cfg.DeltaRMin, t.DeltaRMin)
	setF(&cfg.DeltaRMax, t.DeltaRMax)
	setF(&cfg.CollisionRegionMin, t.CollisionRegionMin)
	setF(&cfg.CollisionRegionMax, t.CollisionRegionMax)
	setF(&cfg.ZMin, t.ZMin)
	setF(&cfg.ZMax, t.ZMax)
	setF(&cfg.CotThetaMax, t.CotThetaMax)
	setF(&cfg.MinPt, t.MinPt)
	setF(&cfg.BFieldInZ, t.BFieldInZ)
	setF(&cfg.BeamPosX, t.BeamPosX)
	setF(&cfg.BeamPosY, t.BeamPosY)
	setF(&cfg.ImpactMax, t.ImpactMax)
	setF(&cfg.SigmaScattering, t.SigmaScattering)
	setF(&cfg.RadLengthPerSeed, t.RadLengthPerSeed)

	setF(&cfg.Filter.DeltaInvHelixDiameter, t.DeltaInvHelixDiameter)
	setF(&cfg.Filter.ImpactWeightFactor, t.ImpactWeightFactor)
	setF(&cfg.Filter.CompatSeedWeight, t.CompatSeedWeight)
	setF(&cfg.Filter.DeltaRMin, t.FilterDeltaRMin)
	if t.MaxSeedsPerSpM != nil {
		cfg.Filter.MaxSeedsPerSpM = *t.MaxSeedsPerSpM
	}
	if t.CompatSeedLimit != nil {
		cfg.Filter.CompatSeedLimit = *t.CompatSeedLimit
	}
	return cfg
}
