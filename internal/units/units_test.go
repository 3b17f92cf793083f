package units

import (
	"math"
	"testing"
)

func TestHelixRadiusRoundTrip(t *testing.T) {
	// 500 MeV in a 2 T field bends with roughly 833 mm radius.
	r := HelixRadius(500, 2*Tesla)
	if math.Abs(r-833.333) > 0.5 {
		t.Errorf("HelixRadius = %g, want ~833.3", r)
	}
	if pt := PtFromHelixRadius(r, 2*Tesla); math.Abs(pt-500) > 1e-9 {
		t.Errorf("round trip pt = %g, want 500", pt)
	}
}

func TestEtaCotThetaRoundTrip(t *testing.T) {
	for _, eta := range []float64{-2.7, -1, 0, 0.5, 2.7} {
		cot := CotThetaFromEta(eta)
		if back := EtaFromCotTheta(cot); math.Abs(back-eta) > 1e-12 {
			t.Errorf("eta %g round-tripped to %g", eta, back)
		}
	}
	// |eta| = 2.7 is the usual barrel acceptance edge.
	if cot := CotThetaFromEta(2.7); math.Abs(cot-7.40627) > 1e-4 {
		t.Errorf("cotTheta(2.7) = %g, want ~7.40627", cot)
	}
}

func TestHighlandScattering(t *testing.T) {
	term := HighlandTerm(0.05)
	if term <= 0 {
		t.Fatalf("Highland term must be positive, got %g", term)
	}
	// More material scatters more; higher momentum scatters less.
	if HighlandTerm(0.1) <= term {
		t.Error("Highland term must grow with material")
	}
	if HighlandScatteringAngle(1000, 0.05) >= HighlandScatteringAngle(500, 0.05) {
		t.Error("scattering angle must shrink with momentum")
	}
}

func TestUnitConstants(t *testing.T) {
	if Metre != 1000*Millimetre {
		t.Error("metre must be 1000 mm")
	}
	if GeV != 1000*MeV {
		t.Error("GeV must be 1000 MeV")
	}
	if Tesla != 1e-3*Kilotesla {
		t.Error("tesla must be 1e-3 kT")
	}
}
