package seeding

import (
	"fmt"
	"math"
)

// RadiusConsistencyTolerance is the maximum allowed relative deviation
// between a space point's stored radius and the radius recomputed from
// its (x, y) coordinates.
const RadiusConsistencyTolerance = 1e-6

// SpacePoint is a three-dimensional measurement reconstructed from one
// or more detector hits, with positional variances. Coordinates are in
// the detector frame; R is the transverse radius sqrt(x^2+y^2).
type SpacePoint struct {
	X float64
	Y float64
	Z float64
	R float64

	// Layer tags the detector layer that produced the measurement.
	Layer int

	VarianceR float64
	VarianceZ float64
}

// NewSpacePoint builds a space point with R derived from (x, y).
func NewSpacePoint(x, y, z float64, layer int, varianceR, varianceZ float64) SpacePoint {
	return SpacePoint{
		X:         x,
		Y:         y,
		Z:         z,
		R:         math.Hypot(x, y),
		Layer:     layer,
		VarianceR: varianceR,
		VarianceZ: varianceZ,
	}
}

// Validate reports whether the point is usable as pipeline input.
// Non-finite coordinates, negative variances, and a radius that
// disagrees with (x, y) are all rejected.
func (sp *SpacePoint) Validate() error {
	for _, v := range [...]float64{sp.X, sp.Y, sp.Z, sp.R, sp.VarianceR, sp.VarianceZ} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value in point (x=%g y=%g z=%g)", ErrInputInvalid, sp.X, sp.Y, sp.Z)
		}
	}
	if sp.VarianceR < 0 || sp.VarianceZ < 0 {
		return fmt.Errorf("%w: negative variance (varR=%g varZ=%g)", ErrInputInvalid, sp.VarianceR, sp.VarianceZ)
	}
	r := math.Hypot(sp.X, sp.Y)
	if diff := math.Abs(sp.R - r); diff > RadiusConsistencyTolerance*(1+r) {
		return fmt.Errorf("%w: radius %g inconsistent with (x, y) radius %g", ErrInputInvalid, sp.R, r)
	}
	return nil
}

// InternalSpacePoint is the pipeline's working copy of a space point,
// expressed in the beam frame (beam spot subtracted from x and y) and
// augmented with a quality slot. Identity is the Source pointer.
type InternalSpacePoint struct {
	X float64
	Y float64
	Z float64
	R float64

	VarianceR float64
	VarianceZ float64

	// Quality records the best seed weight this point has appeared
	// in. Zero until the caller records emitted seeds via
	// Grid.RecordSeedQuality.
	Quality float64

	Source *SpacePoint
}

// newInternalSpacePoint shifts sp into the beam frame given the beam
// spot position (beamX, beamY).
func newInternalSpacePoint(sp *SpacePoint, beamX, beamY float64) InternalSpacePoint {
	x := sp.X - beamX
	y := sp.Y - beamY
	return InternalSpacePoint{
		X:         x,
		Y:         y,
		Z:         sp.Z,
		R:         math.Hypot(x, y),
		VarianceR: sp.VarianceR,
		VarianceZ: sp.VarianceZ,
		Source:    sp,
	}
}
