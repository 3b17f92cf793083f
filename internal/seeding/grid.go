package seeding

import (
	"math"
	"sort"

	"github.com/banshee-data/trackseed/internal/units"
)

// BinCoord identifies a grid cell by its phi and z bin indices.
type BinCoord struct {
	Phi int
	Z   int
}

// Grid is a two-dimensional (phi, z) binning of space points in the
// beam frame. Within each bin, points are ordered by ascending
// transverse radius. Apart from the quality slots written by
// RecordSeedQuality, the grid is read-only after BuildGrid and may be
// shared across goroutines.
type Grid struct {
	phiBins int
	zBins   int

	phiBinSize float64
	zMin       float64
	zMax       float64
	zBinSize   float64

	// points backs every bin; bins hold pointers into it.
	points []InternalSpacePoint
	bins   [][]*InternalSpacePoint

	numBinned int
}

// BuildGrid places each input point into the bin containing its
// (phi, z) in the beam frame. Points outside the z acceptance or
// beyond RMax are dropped. The phi bin count is sized from the
// maximum bending arc of a MinPt track across the detector radius, so
// a duplet partner can never sit more than one phi bin away.
//
// The configuration is validated and derived internally; an invalid
// configuration or input point aborts the build with no partial grid.
func BuildGrid(points []SpacePoint, cfg Config) (*Grid, error) {
	cfg, err := cfg.Derive()
	if err != nil {
		return nil, err
	}

	phiBins := phiBinCount(cfg)
	zBinSize := cfg.CotThetaMax * cfg.DeltaRMax
	zBins := int(math.Floor((cfg.ZMax - cfg.ZMin) / zBinSize))
	if zBins < 1 {
		zBins = 1
	}

	g := &Grid{
		phiBins:    phiBins,
		zBins:      zBins,
		phiBinSize: 2 * math.Pi / float64(phiBins),
		zMin:       cfg.ZMin,
		zMax:       cfg.ZMax,
		zBinSize:   (cfg.ZMax - cfg.ZMin) / float64(zBins),
		bins:       make([][]*InternalSpacePoint, phiBins*zBins),
	}

	// Validate and transform first; the backing slice must not
	// reallocate once bins start holding pointers into it.
	g.points = make([]InternalSpacePoint, 0, len(points))
	coords := make([]BinCoord, 0, len(points))
	for i := range points {
		sp := &points[i]
		if err := sp.Validate(); err != nil {
			return nil, err
		}
		isp := newInternalSpacePoint(sp, cfg.BeamPosX, cfg.BeamPosY)
		if isp.R > cfg.RMax {
			continue
		}
		if isp.Z < cfg.ZMin || isp.Z > cfg.ZMax {
			continue
		}
		g.points = append(g.points, isp)
		coords = append(coords, g.binCoord(isp.Phi(), isp.Z))
	}

	for i := range g.points {
		idx := g.binIndex(coords[i])
		g.bins[idx] = append(g.bins[idx], &g.points[i])
	}
	g.numBinned = len(g.points)

	// Ascending radius inside each bin; ties broken on coordinates
	// so output is independent of input order.
	for _, bin := range g.bins {
		sort.Slice(bin, func(i, j int) bool {
			a, b := bin[i], bin[j]
			if a.R != b.R {
				return a.R < b.R
			}
			if a.Z != b.Z {
				return a.Z < b.Z
			}
			if a.X != b.X {
				return a.X < b.X
			}
			return a.Y < b.Y
		})
	}
	return g, nil
}

// phiBinCount sizes the phi binning so the azimuthal walk of a track
// at the minimum transverse momentum, between the inner and outer
// duplet radii, stays within one bin.
func phiBinCount(cfg Config) int {
	minHelixRadius := units.HelixRadius(cfg.MinPt, cfg.BFieldInZ)

	maxR2 := cfg.RMax * cfg.RMax
	xOuter := maxR2 / (2 * minHelixRadius)
	yOuter := math.Sqrt(maxR2 - xOuter*xOuter)
	outerAngle := math.Atan(xOuter / yOuter)

	innerAngle := 0.0
	if cfg.RMax > cfg.DeltaRMax {
		innerR := cfg.RMax - cfg.DeltaRMax
		innerR2 := innerR * innerR
		xInner := innerR2 / (2 * minHelixRadius)
		yInner := math.Sqrt(innerR2 - xInner*xInner)
		innerAngle = math.Atan(xInner / yInner)
	}

	n := int(math.Floor(2 * math.Pi / (outerAngle - innerAngle)))
	if n < 1 {
		n = 1
	}
	return n
}

// Phi returns the azimuth of the point in the beam frame.
func (sp *InternalSpacePoint) Phi() float64 {
	return math.Atan2(sp.Y, sp.X)
}

func (g *Grid) binCoord(phi, z float64) BinCoord {
	ip := int(math.Floor((phi + math.Pi) / g.phiBinSize))
	if ip >= g.phiBins {
		ip = g.phiBins - 1
	}
	if ip < 0 {
		ip = 0
	}
	iz := int(math.Floor((z - g.zMin) / g.zBinSize))
	if iz >= g.zBins {
		iz = g.zBins - 1
	}
	if iz < 0 {
		iz = 0
	}
	return BinCoord{Phi: ip, Z: iz}
}

func (g *Grid) binIndex(c BinCoord) int {
	return c.Z*g.phiBins + c.Phi
}

// PhiBins returns the number of phi bins.
func (g *Grid) PhiBins() int { return g.phiBins }

// ZBins returns the number of z bins.
func (g *Grid) ZBins() int { return g.zBins }

// NumPoints returns the number of points binned (after acceptance).
func (g *Grid) NumPoints() int { return g.numBinned }

// Bin returns the points in the given cell, ordered by ascending
// radius. The returned slice is shared; callers must not modify it.
func (g *Grid) Bin(c BinCoord) []*InternalSpacePoint {
	if c.Phi < 0 || c.Phi >= g.phiBins || c.Z < 0 || c.Z >= g.zBins {
		return nil
	}
	return g.bins[g.binIndex(c)]
}

// RecordSeedQuality raises the quality slot of every point used by
// the given seeds to the best weight it appeared with. Quality is the
// only mutable per-point state; call this sequentially after group
// results have been accumulated, not from parallel workers.
func (g *Grid) RecordSeedQuality(seeds []Seed) {
	bySource := make(map[*SpacePoint]*InternalSpacePoint, len(g.points))
	for i := range g.points {
		bySource[g.points[i].Source] = &g.points[i]
	}
	for _, s := range seeds {
		for _, src := range [...]*SpacePoint{s.Bottom, s.Middle, s.Top} {
			if isp, ok := bySource[src]; ok && s.Weight > isp.Quality {
				isp.Quality = s.Weight
			}
		}
	}
}
