package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/memorytree/components"
	"github.com/pthm-cable/memorytree/config"
	"github.com/pthm-cable/memorytree/mode"
)

// dustIndexFreq spreads the sparkle phase across dust particles.
const dustIndexFreq = 0.37

// SolveInput is the per-frame state shared by every particle's solve.
type SolveInput struct {
	State    mode.State
	Time     float64 // Scene clock, adds slow idle motion
	Snapshot Snapshot
	View     View // Camera basis for the FOCUS slot
}

// TargetSolver computes the pose each particle moves toward in a given mode.
// Solve is pure given its inputs.
type TargetSolver struct {
	tree  config.TreeConfig
	focus config.FocusConfig
}

// NewTargetSolver creates a solver from the layout config.
func NewTargetSolver(tree config.TreeConfig, focus config.FocusConfig) *TargetSolver {
	return &TargetSolver{tree: tree, focus: focus}
}

// FocusSlot returns the presentation slot in front of the given view.
func (s *TargetSolver) FocusSlot(v View) r3.Vec {
	return v.Place(s.focus.SlotX, s.focus.SlotY, s.focus.SlotZ)
}

// Solve returns the target of one particle. orbit must be non-nil for photos.
// In FOCUS mode a zero FocusTarget sends every particle to the background; the mode
// machine resolves that case before the solver runs.
func (s *TargetSolver) Solve(p *components.Particle, anchor *components.Anchor, orbit *components.Orbit,
	in SolveInput) components.Target {
	switch in.State.Mode {
	case mode.Tree:
		return s.treeTarget(p, anchor, orbit, in.Time, in.Snapshot)
	case mode.Focus:
		if in.State.FocusTarget != 0 && p.ID == in.State.FocusTarget {
			// Neutral relative to the viewer: the panel front faces the eye
			return components.Target{Position: s.FocusSlot(in.View), Rotation: in.View.Heading, Scale: s.focus.Scale}
		}
		return components.Target{
			Position:     r3.Scale(s.focus.PushOut, anchor.Point),
			Scale:        s.focus.BackgroundScale,
			FreeRotation: true,
		}
	}
	return components.Target{Position: anchor.Point, Scale: 1, FreeRotation: true}
}

// treeTarget lays particles out on the tree: decor on a helix, photos on orbit lanes
// around the trunk and dust in a shimmering halo.
func (s *TargetSolver) treeTarget(p *components.Particle, anchor *components.Anchor, orbit *components.Orbit,
	t float64, snap Snapshot) components.Target {
	switch p.Kind {
	case components.KindDecor:
		u := slotFraction(p.Slot, snap.Count(components.KindDecor))
		radius := s.tree.Radius * (1 - u)
		angle := u*s.tree.Turns*math.Pi + t*s.tree.Drift
		return components.Target{
			Position: r3.Vec{
				X: radius * math.Cos(angle),
				Y: u*s.tree.Height - s.tree.Height/2,
				Z: radius * math.Sin(angle),
			},
			Rotation: yawQuat(angle),
			Scale:    1,
		}

	case components.KindPhoto:
		if orbit == nil {
			return components.Target{Position: anchor.Point, Scale: 1, FreeRotation: true}
		}
		angle := orbit.Phase + t*s.tree.PhotoSpeed
		return components.Target{
			Position: r3.Vec{
				X: orbit.Radius * math.Cos(angle),
				Y: orbit.Height,
				Z: orbit.Radius * math.Sin(angle),
			},
			// Face outward from the trunk
			Rotation: yawQuat(-angle + math.Pi/2),
			Scale:    1,
		}

	case components.KindDust:
		u := slotFraction(p.Slot, snap.Count(components.KindDust))
		i := float64(p.Slot)
		base := s.tree.Radius*(1-u) + s.tree.DustHaloOffset
		radius := base * (1 + s.tree.DustHaloAmplitude*math.Sin(i*dustIndexFreq+t*s.tree.DustHaloFrequency))
		angle := i*goldenAngle + t*s.tree.Drift
		return components.Target{
			Position: r3.Vec{
				X: radius * math.Cos(angle),
				Y: u*s.tree.Height - s.tree.Height/2,
				Z: radius * math.Sin(angle),
			},
			Scale:        1,
			FreeRotation: true,
		}
	}
	return components.Target{Position: anchor.Point, Scale: 1, FreeRotation: true}
}

// slotFraction returns slot/count in [0,1), treating an empty kind as one particle.
func slotFraction(slot, count int) float64 {
	if count < 1 {
		count = 1
	}
	u := float64(slot) / float64(count)
	if u >= 1 {
		// Slots beyond the count only happen mid-ingestion; pin to the top
		u = float64(count-1) / float64(count)
	}
	return u
}

// TargetSystem writes a target for every particle each frame.
type TargetSystem struct {
	filter   ecs.Filter3[components.Particle, components.Anchor, components.Target]
	orbitMap *ecs.Map[components.Orbit]
	solver   *TargetSolver
}

// NewTargetSystem creates a target system over the world.
func NewTargetSystem(w *ecs.World, solver *TargetSolver) *TargetSystem {
	return &TargetSystem{
		filter:   *ecs.NewFilter3[components.Particle, components.Anchor, components.Target](w),
		orbitMap: ecs.NewMap[components.Orbit](w),
		solver:   solver,
	}
}

// Solver returns the underlying solver.
func (s *TargetSystem) Solver() *TargetSolver {
	return s.solver
}

// Update solves every particle for one frame.
func (s *TargetSystem) Update(in SolveInput) {
	query := s.filter.Query()
	for query.Next() {
		p, anchor, target := query.Get()
		var orbit *components.Orbit
		if p.Kind == components.KindPhoto {
			orbit = s.orbitMap.Get(query.Entity())
		}
		*target = s.solver.Solve(p, anchor, orbit, in)
	}
}
