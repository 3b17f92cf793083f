// Package units provides the natural-unit conventions used by the
// seeding pipeline (lengths in millimetres, momenta in MeV, magnetic
// field in kilotesla) and small kinematics helpers built on them.
package units

import "math"

// Length units, expressed in millimetres.
const (
	Millimetre = 1.0
	Centimetre = 10.0 * Millimetre
	Metre      = 1000.0 * Millimetre
)

// Momentum units, expressed in MeV.
const (
	MeV = 1.0
	GeV = 1000.0 * MeV
)

// Magnetic field units, expressed in kilotesla. A 2 T solenoid field
// is 2 * Tesla = 0.002 in natural units.
const (
	Kilotesla = 1.0
	Tesla     = 1e-3 * Kilotesla
)

// PtPerHelixRadius is the conversion factor between transverse
// momentum and helix radius: pT[MeV] = PtPerHelixRadius * B[kT] * R[mm].
const PtPerHelixRadius = 300.0

// HelixRadius returns the bending radius in millimetres of a track
// with transverse momentum pt (MeV) in a solenoid field bz (kT).
func HelixRadius(pt, bz float64) float64 {
	return pt / (PtPerHelixRadius * bz)
}

// PtFromHelixRadius is the inverse of HelixRadius.
func PtFromHelixRadius(radius, bz float64) float64 {
	return radius * PtPerHelixRadius * bz
}

// CotThetaFromEta converts pseudorapidity to the cotangent of the
// polar angle.
func CotThetaFromEta(eta float64) float64 {
	return math.Sinh(eta)
}

// EtaFromCotTheta converts the cotangent of the polar angle to
// pseudorapidity.
func EtaFromCotTheta(cotTheta float64) float64 {
	return math.Asinh(cotTheta)
}

// HighlandScatteringAngle returns the Highland parameterisation of the
// RMS multiple-scattering angle for a track of transverse momentum pt
// (MeV) crossing radLength fractional radiation lengths of material.
func HighlandScatteringAngle(pt, radLength float64) float64 {
	return HighlandTerm(radLength) / pt
}

// HighlandTerm is the material-only part of the Highland formula,
// 13.6 MeV * sqrt(x/X0) * (1 + 0.038 ln(x/X0)).
func HighlandTerm(radLength float64) float64 {
	return 13.6 * math.Sqrt(radLength) * (1 + 0.038*math.Log(radLength))
}
