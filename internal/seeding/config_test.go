package seeding

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultConfigDerives(t *testing.T) {
	cfg, err := DefaultConfig().Derive()
	if err != nil {
		t.Fatalf("default config must derive: %v", err)
	}
	if cfg.MinHelixDiameter2 <= 0 {
		t.Errorf("minHelixDiameter2 not derived: %g", cfg.MinHelixDiameter2)
	}
	if cfg.MaxScatteringAngle2 <= 0 {
		t.Errorf("maxScatteringAngle2 not derived: %g", cfg.MaxScatteringAngle2)
	}
	if cfg.PT2PerRadius <= 0 {
		t.Errorf("pT2perRadius not derived: %g", cfg.PT2PerRadius)
	}
	if cfg.Cuts == nil {
		t.Error("nil cuts must default to NoCuts")
	}

	// A 500 MeV track at 0.00199724 kT bends with radius ~834 mm.
	wantDiameter2 := math.Pow(2*500/(300*0.00199724), 2)
	if math.Abs(cfg.MinHelixDiameter2-wantDiameter2) > 1e-6*wantDiameter2 {
		t.Errorf("minHelixDiameter2 = %g, want %g", cfg.MinHelixDiameter2, wantDiameter2)
	}
}

func TestDerivePreservesPinnedValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxScatteringAngle2 = 0.0123
	derived, err := cfg.Derive()
	if err != nil {
		t.Fatal(err)
	}
	if derived.MaxScatteringAngle2 != 0.0123 {
		t.Errorf("pinned maxScatteringAngle2 overwritten: %g", derived.MaxScatteringAngle2)
	}
}

func TestConfigValidation(t *testing.T) {
	mutate := map[string]func(*Config){
		"nan rMax":                 func(c *Config) { c.RMax = math.NaN() },
		"zero rMax":                func(c *Config) { c.RMax = 0 },
		"inf zMax":                 func(c *Config) { c.ZMax = math.Inf(1) },
		"zMin above zMax":          func(c *Config) { c.ZMin, c.ZMax = 100, -100 },
		"deltaR inverted":          func(c *Config) { c.DeltaRMin, c.DeltaRMax = 50, 10 },
		"negative deltaRMin":       func(c *Config) { c.DeltaRMin = -1 },
		"collision region empty":   func(c *Config) { c.CollisionRegionMin, c.CollisionRegionMax = 10, -10 },
		"zero cotThetaMax":         func(c *Config) { c.CotThetaMax = 0 },
		"zero minPt":               func(c *Config) { c.MinPt = 0 },
		"negative bField":          func(c *Config) { c.BFieldInZ = -0.002 },
		"negative impactMax":       func(c *Config) { c.ImpactMax = -1 },
		"zero sigmaScattering":     func(c *Config) { c.SigmaScattering = 0 },
		"radLength out of range":   func(c *Config) { c.RadLengthPerSeed = 1.5 },
		"zero maxSeedsPerSpM":      func(c *Config) { c.Filter.MaxSeedsPerSpM = 0 },
		"zero deltaInvHelix":       func(c *Config) { c.Filter.DeltaInvHelixDiameter = 0 },
		"negative compatSeedLimit": func(c *Config) { c.Filter.CompatSeedLimit = -1 },
		"minPt below rMax bend":    func(c *Config) { c.MinPt = 10 },
	}
	for name, fn := range mutate {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			fn(&cfg)
			_, err := cfg.Derive()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrConfigInvalid) {
				t.Errorf("expected ErrConfigInvalid, got %v", err)
			}
		})
	}
}
