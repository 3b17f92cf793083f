// Package seeding implements a track seed finder for silicon tracking
// detectors.
//
// Responsibilities: binning reconstructed space points in a cylindrical
// (phi, z) grid, pairing middle points with compatible bottom and top
// partners, fitting candidate triplets with a conformal transform, and
// scoring/reducing the surviving triplets into seeds for a downstream
// track fit.
//
// The pipeline is a pure function of its inputs: the grid is read-only
// after construction, configuration is shared immutable, and all
// per-middle scratch state is owned by the call frame, so disjoint
// bin groups may be processed from parallel goroutines.
package seeding
