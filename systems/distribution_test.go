package systems

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/memorytree/components"
	"github.com/pthm-cable/memorytree/config"
)

func testDistribution() *Distribution {
	return NewDistribution(config.DistributionConfig{
		Decor: config.Band{Inner: 14, Outer: 22},
		Dust:  config.Band{Inner: 10, Outer: 30},
		Photo: config.Band{Inner: 20, Outer: 26},
	})
}

func finite(v r3.Vec) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func TestAnchorIsPure(t *testing.T) {
	d := testDistribution()
	kinds := []components.Kind{components.KindDecor, components.KindDust, components.KindPhoto}
	for _, kind := range kinds {
		for _, total := range []int{1, 2, 7, 1500} {
			for slot := 0; slot < total && slot < 50; slot++ {
				a := d.Anchor(kind, slot, total)
				b := d.Anchor(kind, slot, total)
				if a != b {
					t.Fatalf("%s slot %d/%d: %+v != %+v", kind, slot, total, a, b)
				}
			}
		}
	}
}

func TestAnchorSingleParticleIsPole(t *testing.T) {
	d := testDistribution()
	for _, kind := range []components.Kind{components.KindDecor, components.KindDust, components.KindPhoto} {
		a := d.Anchor(kind, 0, 1)
		if !finite(a) {
			t.Fatalf("%s: anchor not finite: %+v", kind, a)
		}
		if a.X != 0 || a.Z != 0 || a.Y != d.Band(kind).Inner {
			t.Errorf("%s: expected pole (0, %f, 0), got %+v", kind, d.Band(kind).Inner, a)
		}
	}
}

func TestAnchorDegenerateTotals(t *testing.T) {
	d := testDistribution()
	for _, total := range []int{0, -3} {
		if a := d.Anchor(components.KindDust, 0, total); !finite(a) {
			t.Errorf("total %d: anchor not finite: %+v", total, a)
		}
	}
	// Slot past the total (stale photo layouts) stays on the shell
	if a := d.Anchor(components.KindPhoto, 40, 24); !finite(a) {
		t.Errorf("slot past total: anchor not finite: %+v", a)
	}
}

func TestAnchorWithinBand(t *testing.T) {
	d := testDistribution()
	const total = 2500
	for slot := 0; slot < total; slot++ {
		a := d.Anchor(components.KindDust, slot, total)
		r := r3.Norm(a)
		if r < 10-1e-9 || r > 30+1e-9 {
			t.Fatalf("slot %d: radius %f outside dust band [10, 30]", slot, r)
		}
	}
}

func TestAnchorsDoNotCollide(t *testing.T) {
	d := testDistribution()
	const total = 200
	seen := make(map[r3.Vec]int, total)
	for slot := 0; slot < total; slot++ {
		a := d.Anchor(components.KindDecor, slot, total)
		if prev, ok := seen[a]; ok {
			t.Fatalf("slots %d and %d share anchor %+v", prev, slot, a)
		}
		seen[a] = slot
	}
}

func TestAnchorSpreadsOverHemispheres(t *testing.T) {
	d := testDistribution()
	const total = 1000
	var upper int
	for slot := 0; slot < total; slot++ {
		if d.Anchor(components.KindDecor, slot, total).Y > 0 {
			upper++
		}
	}
	if upper < 450 || upper > 550 {
		t.Errorf("expected roughly half the anchors above the equator, got %d/%d", upper, total)
	}
}

func TestPhotoOrbitLanes(t *testing.T) {
	cfg := config.TreeConfig{
		PhotoRadius: 10, PhotoRadiusStep: 1.5, PhotoLanes: 3,
		PhotoHeightMin: -4, PhotoHeightMax: 6,
	}
	for slot := 0; slot < 30; slot++ {
		o := PhotoOrbitFor(slot, cfg)
		wantRadius := 10 + float64(slot%3)*1.5
		if o.Radius != wantRadius {
			t.Errorf("slot %d: radius %f, want %f", slot, o.Radius, wantRadius)
		}
		if o.Height < -4 || o.Height > 6 {
			t.Errorf("slot %d: height %f outside band", slot, o.Height)
		}
		if o.Phase < 0 || o.Phase >= 2*math.Pi {
			t.Errorf("slot %d: phase %f outside [0, 2π)", slot, o.Phase)
		}
	}
	// Neighbouring photos never share a lane
	if PhotoOrbitFor(0, cfg).Radius == PhotoOrbitFor(1, cfg).Radius {
		t.Error("consecutive photos share an orbit lane")
	}
}

func TestSpinForBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		s := SpinFor(rng, 0.02)
		for _, c := range []float64{s.Rate.X, s.Rate.Y, s.Rate.Z} {
			if math.Abs(c) > 0.02 {
				t.Fatalf("spin component %f exceeds 0.02", c)
			}
		}
	}
}
