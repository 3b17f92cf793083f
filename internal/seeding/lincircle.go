package seeding

import "math"

// LinCircle holds the conformal (u, v) coordinates of one duplet,
// linearised around the middle point. In this space a circle through
// the middle point becomes the straight line v = A*u + B, so the
// three-point helix fit reduces to a line fit.
type LinCircle struct {
	// Zo is the z origin on the beam axis extrapolated from the
	// duplet.
	Zo float64

	// CotTheta is the duplet forward slope dz/dr, sign-flipped for
	// bottom duplets so it is monotone across duplets of one track.
	CotTheta float64

	// IDeltaR is the inverse transverse separation of the pair.
	IDeltaR float64

	// Er is the combined variance term of the pair, scaled by
	// IDeltaR^2.
	Er float64

	U float64
	V float64
}

// dupletRole selects which side of the middle point a partner search
// covers.
type dupletRole int

const (
	bottomDuplet dupletRole = iota
	topDuplet
)

// searchDuplets appends to dst the partners from bins that are
// geometrically compatible with middle under role: radial gap within
// [DeltaRMin, DeltaRMax], forward angle within CotThetaMax, and beam
// origin inside the collision region. Bin order and in-bin order are
// preserved.
func searchDuplets(role dupletRole, bins [][]*InternalSpacePoint, m *InternalSpacePoint, cfg *Config, dst []*InternalSpacePoint) []*InternalSpacePoint {
	for _, bin := range bins {
		for _, sp := range bin {
			var deltaR, cotTheta float64
			switch role {
			case bottomDuplet:
				deltaR = m.R - sp.R
			case topDuplet:
				deltaR = sp.R - m.R
			}
			if deltaR < cfg.DeltaRMin || deltaR > cfg.DeltaRMax {
				continue
			}
			// Equal radii would divide by zero below; DeltaRMin
			// of zero lets them through the gap check.
			if deltaR == 0 {
				continue
			}
			switch role {
			case bottomDuplet:
				cotTheta = (m.Z - sp.Z) / deltaR
			case topDuplet:
				cotTheta = (sp.Z - m.Z) / deltaR
			}
			if math.Abs(cotTheta) > cfg.CotThetaMax {
				continue
			}
			zOrigin := m.Z - m.R*cotTheta
			if zOrigin < cfg.CollisionRegionMin || zOrigin > cfg.CollisionRegionMax {
				continue
			}
			dst = append(dst, sp)
		}
	}
	return dst
}

// transformCoordinates maps each (middle, partner) pair into a
// LinCircle with the middle point as origin of the conformal frame.
// Results are appended to dst in partner order.
func transformCoordinates(partners []*InternalSpacePoint, m *InternalSpacePoint, role dupletRole, dst []LinCircle) []LinCircle {
	cosPhiM := m.X / m.R
	sinPhiM := m.Y / m.R
	sign := 1.0
	if role == bottomDuplet {
		sign = -1.0
	}

	for _, sp := range partners {
		deltaX := sp.X - m.X
		deltaY := sp.Y - m.Y
		deltaZ := sp.Z - m.Z

		// Rotate into the frame whose u axis points radially
		// through the middle point.
		uLocal := deltaX*cosPhiM + deltaY*sinPhiM
		vLocal := -deltaX*sinPhiM + deltaY*cosPhiM

		iDeltaR2 := 1 / (deltaX*deltaX + deltaY*deltaY)
		iDeltaR := math.Sqrt(iDeltaR2)
		cotTheta := deltaZ * iDeltaR * sign

		dst = append(dst, LinCircle{
			Zo:       m.Z - m.R*cotTheta,
			CotTheta: cotTheta,
			IDeltaR:  iDeltaR,
			Er: ((m.VarianceZ + sp.VarianceZ) +
				cotTheta*cotTheta*(m.VarianceR+sp.VarianceR)) * iDeltaR2,
			U: uLocal * iDeltaR2,
			V: vLocal * iDeltaR2,
		})
	}
	return dst
}
