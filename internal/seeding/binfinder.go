package seeding

// BinFinder resolves the neighbourhood of a grid cell from which
// duplet partners are drawn. Phi wraps around the cylinder; z clamps
// at the detector ends.
type BinFinder struct {
	// PhiRange and ZRange extend the neighbourhood by that many
	// bins on each side of the centre. The default (1, 1) gives the
	// 3x3 neighbourhood.
	PhiRange int
	ZRange   int
}

// NewBinFinder returns the default 3x3 neighbourhood finder.
func NewBinFinder() BinFinder {
	return BinFinder{PhiRange: 1, ZRange: 1}
}

// FindBins returns the neighbourhood cells of centre, ascending in z
// then in phi offset. The centre cell is included.
func (f BinFinder) FindBins(g *Grid, centre BinCoord) []BinCoord {
	phiSpan := 2*f.PhiRange + 1
	if phiSpan > g.PhiBins() {
		phiSpan = g.PhiBins()
	}
	out := make([]BinCoord, 0, phiSpan*(2*f.ZRange+1))

	for dz := -f.ZRange; dz <= f.ZRange; dz++ {
		z := centre.Z + dz
		if z < 0 || z >= g.ZBins() {
			continue
		}
		// Phi wraps; when the grid is narrower than the requested
		// span, emit each column once.
		nPhi := g.PhiBins()
		lo, hi := -f.PhiRange, f.PhiRange
		if hi-lo+1 > nPhi {
			lo, hi = 0, nPhi-1
		}
		for dp := lo; dp <= hi; dp++ {
			p := ((centre.Phi+dp)%nPhi + nPhi) % nPhi
			out = append(out, BinCoord{Phi: p, Z: z})
		}
	}
	return out
}
