package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/memorytree/components"
	"github.com/pthm-cable/memorytree/config"
	"github.com/pthm-cable/memorytree/mode"
)

// BlendFunc returns the fraction of the remaining distance closed in one step of dt seconds.
type BlendFunc func(dt float64) float64

// FixedBlend closes a constant fraction per step regardless of dt, so convergence
// speed follows the call rate.
func FixedBlend(alpha float64) BlendFunc {
	return func(float64) float64 { return alpha }
}

// ExpBlend is the frame-rate independent variant: 1 - exp(-rate*dt).
func ExpBlend(rate float64) BlendFunc {
	return func(dt float64) float64 { return 1 - math.Exp(-rate*dt) }
}

// BlendFromConfig selects the configured blend function.
func BlendFromConfig(cfg config.IntegratorConfig) BlendFunc {
	if cfg.Blend == "exp" {
		return ExpBlend(cfg.ExpRate)
	}
	return FixedBlend(cfg.Alpha)
}

// Integrator moves a current transform toward its target.
type Integrator struct {
	blend BlendFunc
}

// NewIntegrator creates an integrator with the given blend function.
func NewIntegrator(blend BlendFunc) *Integrator {
	return &Integrator{blend: blend}
}

// Advance performs one step: lerp position and scale, slerp orientation unless the
// target leaves it free, then in SCATTER add the idle spin increment.
func (in *Integrator) Advance(cur *components.Transform, tgt *components.Target, spin *components.Spin,
	m mode.Mode, dt float64) {
	a := in.blend(dt)

	cur.Position = lerpVec(cur.Position, tgt.Position, a)
	cur.Scale = lerp(cur.Scale, tgt.Scale, a)
	if !tgt.FreeRotation {
		cur.Rotation = Slerp(cur.Rotation, tgt.Rotation, a)
	}
	if m == mode.Scatter && spin != nil {
		cur.Rotation = normalizeQuat(quat.Mul(cur.Rotation, FromEuler(spin.Rate)))
	}
}

// IntegratorSystem advances every particle each frame.
type IntegratorSystem struct {
	filter     ecs.Filter3[components.Transform, components.Target, components.Spin]
	integrator *Integrator
}

// NewIntegratorSystem creates an integrator system over the world.
func NewIntegratorSystem(w *ecs.World, integrator *Integrator) *IntegratorSystem {
	return &IntegratorSystem{
		filter:     *ecs.NewFilter3[components.Transform, components.Target, components.Spin](w),
		integrator: integrator,
	}
}

// Update advances all particles and returns the summed remaining distance to target
// and the number of particles visited.
func (s *IntegratorSystem) Update(m mode.Mode, dt float64) (residual float64, n int) {
	query := s.filter.Query()
	for query.Next() {
		cur, tgt, spin := query.Get()
		s.integrator.Advance(cur, tgt, spin, m, dt)
		residual += r3.Norm(r3.Sub(tgt.Position, cur.Position))
		n++
	}
	return residual, n
}
