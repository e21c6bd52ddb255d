package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/memorytree/components"
	"github.com/pthm-cable/memorytree/config"
)

// Distribution places scatter anchors on per-kind spherical shells.
// Anchor is a pure function of its arguments; the registry caches the result per particle.
type Distribution struct {
	bands [components.NumKinds]config.Band
}

// NewDistribution creates a distribution from the configured radius bands.
func NewDistribution(cfg config.DistributionConfig) *Distribution {
	d := &Distribution{}
	d.bands[components.KindDecor] = cfg.Decor
	d.bands[components.KindDust] = cfg.Dust
	d.bands[components.KindPhoto] = cfg.Photo
	return d
}

// Band returns the radius band for a kind.
func (d *Distribution) Band(kind components.Kind) config.Band {
	return d.bands[kind]
}

// Anchor returns the scatter point for slot i of total particles of a kind, using the
// golden-angle spiral: phi = acos(1 - 2i/total), theta = π(1+√5)i.
// A single particle sits on the pole (0, r, 0).
func (d *Distribution) Anchor(kind components.Kind, slot, total int) r3.Vec {
	band := d.bands[kind]
	// Low-discrepancy radial offset keeps neighbours on the spiral at different depths
	r := band.Inner + (band.Outer-band.Inner)*frac(float64(slot)*invPhi)

	if total <= 1 {
		return r3.Vec{Y: r}
	}

	i := float64(slot)
	c := 1 - 2*i/float64(total)
	if c < -1 {
		c = -1
	}
	phi := math.Acos(c)
	theta := goldenTurn * i

	sinPhi := math.Sin(phi)
	return r3.Vec{
		X: r * sinPhi * math.Cos(theta),
		Y: r * c,
		Z: r * sinPhi * math.Sin(theta),
	}
}

// PhotoOrbitFor assigns the TREE-mode orbit lane of a photo. Consecutive photos land in
// different lanes, at different heights and golden-angle phases so panels do not collide.
func PhotoOrbitFor(slot int, cfg config.TreeConfig) components.Orbit {
	lanes := cfg.PhotoLanes
	if lanes < 1 {
		lanes = 1
	}
	lane := slot % lanes
	return components.Orbit{
		Radius: cfg.PhotoRadius + float64(lane)*cfg.PhotoRadiusStep,
		Height: lerp(cfg.PhotoHeightMin, cfg.PhotoHeightMax, frac(float64(slot)*invPhi)),
		Phase:  math.Mod(float64(slot)*goldenAngle, 2*math.Pi),
	}
}

// SpinFor draws a small idle rotation rate in [-maxSpin, maxSpin] per axis.
func SpinFor(rng *rand.Rand, maxSpin float64) components.Spin {
	return components.Spin{Rate: r3.Vec{
		X: (rng.Float64()*2 - 1) * maxSpin,
		Y: (rng.Float64()*2 - 1) * maxSpin,
		Z: (rng.Float64()*2 - 1) * maxSpin,
	}}
}
