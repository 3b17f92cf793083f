package seeding

import (
	"fmt"
	"math"

	"github.com/banshee-data/trackseed/internal/units"
)

// Default configuration values for a compact silicon barrel at 2 T.
const (
	DefaultRMax               = 160.0
	DefaultDeltaRMin          = 5.0
	DefaultDeltaRMax          = 160.0
	DefaultCollisionRegionMin = -250.0
	DefaultCollisionRegionMax = 250.0
	DefaultZMin               = -2800.0
	DefaultZMax               = 2800.0
	// DefaultCotThetaMax corresponds to |eta| < 2.7.
	DefaultCotThetaMax      = 7.40627
	DefaultMinPt            = 500.0
	DefaultBFieldInZ        = 0.00199724
	DefaultImpactMax        = 10.0
	DefaultSigmaScattering  = 1.0
	DefaultRadLengthPerSeed = 0.05
)

// Default filter values.
const (
	DefaultDeltaInvHelixDiameter = 0.00003
	DefaultImpactWeightFactor    = 1.0
	DefaultCompatSeedWeight      = 200.0
	DefaultFilterDeltaRMin       = 5.0
	DefaultMaxSeedsPerSpM        = 10
	DefaultCompatSeedLimit       = 2
)

// FilterConfig holds the seed filter parameters.
type FilterConfig struct {
	// DeltaInvHelixDiameter is the allowed difference between two
	// inverse helix diameters for their seeds to be considered
	// compatible (same track).
	DeltaInvHelixDiameter float64

	// ImpactWeightFactor scales the impact parameter penalty
	// subtracted from the seed weight.
	ImpactWeightFactor float64

	// CompatSeedWeight is the bonus added per compatible top point.
	CompatSeedWeight float64

	// DeltaRMin is the minimum radial distance between two top
	// points for them to count as distinct compatible seeds.
	DeltaRMin float64

	// MaxSeedsPerSpM caps the seeds kept per middle space point.
	MaxSeedsPerSpM int

	// CompatSeedLimit caps the number of compatibility bonuses a
	// single triplet can accumulate.
	CompatSeedLimit int
}

// DefaultFilterConfig returns the default filter parameters.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		DeltaInvHelixDiameter: DefaultDeltaInvHelixDiameter,
		ImpactWeightFactor:    DefaultImpactWeightFactor,
		CompatSeedWeight:      DefaultCompatSeedWeight,
		DeltaRMin:             DefaultFilterDeltaRMin,
		MaxSeedsPerSpM:        DefaultMaxSeedsPerSpM,
		CompatSeedLimit:       DefaultCompatSeedLimit,
	}
}

// Config holds all seed finder parameters. Values use natural units:
// millimetres, MeV, kilotesla.
//
// The three derived fields (MinHelixDiameter2, MaxScatteringAngle2,
// PT2PerRadius) are normally left zero and filled by Derive from
// (MinPt, BFieldInZ, RadLengthPerSeed); a non-zero value pins them.
type Config struct {
	// RMax is the maximum transverse radius considered.
	RMax float64

	// DeltaRMin and DeltaRMax bound the radial gap of a duplet.
	DeltaRMin float64
	DeltaRMax float64

	// CollisionRegionMin and CollisionRegionMax bound the allowed
	// z origin on the beam axis.
	CollisionRegionMin float64
	CollisionRegionMax float64

	// ZMin and ZMax bound the z acceptance of the grid.
	ZMin float64
	ZMax float64

	// CotThetaMax limits the forward angle of a duplet.
	CotThetaMax float64

	// MinPt is the lower transverse momentum bound; it sizes the
	// phi binning and the minimum helix diameter.
	MinPt float64

	// BFieldInZ is the solenoid field along z, in kilotesla.
	BFieldInZ float64

	// BeamPosX and BeamPosY locate the interaction region in the
	// transverse plane.
	BeamPosX float64
	BeamPosY float64

	// ImpactMax is the maximum transverse impact parameter.
	ImpactMax float64

	// SigmaScattering scales the multiple-scattering budget.
	SigmaScattering float64

	// RadLengthPerSeed is the material budget, in fractional
	// radiation lengths, assumed per seed for the Highland term.
	RadLengthPerSeed float64

	// MinHelixDiameter2 is the squared helix diameter of a MinPt
	// track. Derived.
	MinHelixDiameter2 float64

	// MaxScatteringAngle2 is the squared scattering angle budget of
	// a MinPt track. Derived.
	MaxScatteringAngle2 float64

	// PT2PerRadius is the squared Highland term divided by
	// (PtPerHelixRadius * BFieldInZ)^2; times 4/D^2 for a fitted helix
	// diameter D it gives the squared scattering angle at that helix's
	// transverse momentum. Derived.
	PT2PerRadius float64

	// Filter configures the seed filter stage.
	Filter FilterConfig

	// Cuts is the optional experiment-specific plug-in; nil selects
	// NoCuts.
	Cuts ExperimentCuts
}

// DefaultConfig returns the default finder configuration.
func DefaultConfig() Config {
	return Config{
		RMax:               DefaultRMax,
		DeltaRMin:          DefaultDeltaRMin,
		DeltaRMax:          DefaultDeltaRMax,
		CollisionRegionMin: DefaultCollisionRegionMin,
		CollisionRegionMax: DefaultCollisionRegionMax,
		ZMin:               DefaultZMin,
		ZMax:               DefaultZMax,
		CotThetaMax:        DefaultCotThetaMax,
		MinPt:              DefaultMinPt,
		BFieldInZ:          DefaultBFieldInZ,
		ImpactMax:          DefaultImpactMax,
		SigmaScattering:    DefaultSigmaScattering,
		RadLengthPerSeed:   DefaultRadLengthPerSeed,
		Filter:             DefaultFilterConfig(),
	}
}

// Derive validates the configuration and fills the derived kinematic
// quantities. It returns a new Config; the receiver is not modified.
func (c Config) Derive() (Config, error) {
	if err := c.validate(); err != nil {
		return Config{}, err
	}

	minHelixRadius := units.HelixRadius(c.MinPt, c.BFieldInZ)
	if c.MinHelixDiameter2 == 0 {
		d := 2 * minHelixRadius
		c.MinHelixDiameter2 = d * d
	}
	highland := units.HighlandTerm(c.RadLengthPerSeed)
	if c.MaxScatteringAngle2 == 0 {
		a := highland / c.MinPt
		c.MaxScatteringAngle2 = a * a
	}
	if c.PT2PerRadius == 0 {
		p := highland / (units.PtPerHelixRadius * c.BFieldInZ)
		c.PT2PerRadius = p * p
	}
	if c.Cuts == nil {
		c.Cuts = NoCuts{}
	}

	// The phi bin width derivation breaks down when a minimum-pT
	// track can curl up inside the detector radius.
	if 2*minHelixRadius <= c.RMax {
		return Config{}, fmt.Errorf("%w: minPt %g too low for rMax %g at bFieldInZ %g",
			ErrConfigInvalid, c.MinPt, c.RMax, c.BFieldInZ)
	}
	return c, nil
}

func (c Config) validate() error {
	fields := map[string]float64{
		"rMax":               c.RMax,
		"deltaRMin":          c.DeltaRMin,
		"deltaRMax":          c.DeltaRMax,
		"collisionRegionMin": c.CollisionRegionMin,
		"collisionRegionMax": c.CollisionRegionMax,
		"zMin":               c.ZMin,
		"zMax":               c.ZMax,
		"cotThetaMax":        c.CotThetaMax,
		"minPt":              c.MinPt,
		"bFieldInZ":          c.BFieldInZ,
		"beamPosX":           c.BeamPosX,
		"beamPosY":           c.BeamPosY,
		"impactMax":          c.ImpactMax,
		"sigmaScattering":    c.SigmaScattering,
		"radLengthPerSeed":   c.RadLengthPerSeed,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrConfigInvalid, name)
		}
	}
	switch {
	case c.RMax <= 0:
		return fmt.Errorf("%w: rMax %g must be positive", ErrConfigInvalid, c.RMax)
	case c.DeltaRMin < 0:
		return fmt.Errorf("%w: deltaRMin %g must be non-negative", ErrConfigInvalid, c.DeltaRMin)
	case c.DeltaRMax <= c.DeltaRMin:
		return fmt.Errorf("%w: deltaRMax %g must exceed deltaRMin %g", ErrConfigInvalid, c.DeltaRMax, c.DeltaRMin)
	case c.ZMin >= c.ZMax:
		return fmt.Errorf("%w: zMin %g must be below zMax %g", ErrConfigInvalid, c.ZMin, c.ZMax)
	case c.CollisionRegionMin > c.CollisionRegionMax:
		return fmt.Errorf("%w: collision region [%g, %g] is empty", ErrConfigInvalid, c.CollisionRegionMin, c.CollisionRegionMax)
	case c.CotThetaMax <= 0:
		return fmt.Errorf("%w: cotThetaMax %g must be positive", ErrConfigInvalid, c.CotThetaMax)
	case c.MinPt <= 0:
		return fmt.Errorf("%w: minPt %g must be positive", ErrConfigInvalid, c.MinPt)
	case c.BFieldInZ <= 0:
		return fmt.Errorf("%w: bFieldInZ %g must be positive", ErrConfigInvalid, c.BFieldInZ)
	case c.ImpactMax < 0:
		return fmt.Errorf("%w: impactMax %g must be non-negative", ErrConfigInvalid, c.ImpactMax)
	case c.SigmaScattering <= 0:
		return fmt.Errorf("%w: sigmaScattering %g must be positive", ErrConfigInvalid, c.SigmaScattering)
	case c.RadLengthPerSeed <= 0 || c.RadLengthPerSeed >= 1:
		return fmt.Errorf("%w: radLengthPerSeed %g must be in (0, 1)", ErrConfigInvalid, c.RadLengthPerSeed)
	}

	f := c.Filter
	for name, v := range map[string]float64{
		"filter.deltaInvHelixDiameter": f.DeltaInvHelixDiameter,
		"filter.impactWeightFactor":    f.ImpactWeightFactor,
		"filter.compatSeedWeight":      f.CompatSeedWeight,
		"filter.deltaRMin":             f.DeltaRMin,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrConfigInvalid, name)
		}
	}
	switch {
	case f.DeltaInvHelixDiameter <= 0:
		return fmt.Errorf("%w: filter.deltaInvHelixDiameter %g must be positive", ErrConfigInvalid, f.DeltaInvHelixDiameter)
	case f.DeltaRMin < 0:
		return fmt.Errorf("%w: filter.deltaRMin %g must be non-negative", ErrConfigInvalid, f.DeltaRMin)
	case f.MaxSeedsPerSpM < 1:
		return fmt.Errorf("%w: filter.maxSeedsPerSpM %d must be at least 1", ErrConfigInvalid, f.MaxSeedsPerSpM)
	case f.CompatSeedLimit < 0:
		return fmt.Errorf("%w: filter.compatSeedLimit %d must be non-negative", ErrConfigInvalid, f.CompatSeedLimit)
	}
	return nil
}
