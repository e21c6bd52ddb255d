package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/memorytree/components"
	"github.com/pthm-cable/memorytree/config"
)

// Snapshot is the registry state the target solver needs for layout formulas.
type Snapshot struct {
	Counts [components.NumKinds]int
}

// Count returns the number of particles of a kind.
func (s Snapshot) Count(kind components.Kind) int {
	return s.Counts[kind]
}

// ParticleRegistry owns every particle in the ECS world.
// It is append-only: particles are never removed and ids are never reused.
type ParticleRegistry struct {
	world *ecs.World

	// DECOR and DUST share one archetype; PHOTO carries its orbit and asset payload.
	baseMapper *ecs.Map5[
		components.Particle,
		components.Anchor,
		components.Transform,
		components.Target,
		components.Spin,
	]
	photoMapper *ecs.Map7[
		components.Particle,
		components.Anchor,
		components.Transform,
		components.Target,
		components.Spin,
		components.Orbit,
		components.Photo,
	]
	viewFilter ecs.Filter2[components.Particle, components.Transform]

	particleMap  *ecs.Map[components.Particle]
	transformMap *ecs.Map[components.Transform]
	targetMap    *ecs.Map[components.Target]
	photoMap     *ecs.Map[components.Photo]

	byID     map[uint32]ecs.Entity
	photoIDs []uint32
	counts   [components.NumKinds]int
	nextID   uint32

	dist    *Distribution
	tree    config.TreeConfig
	scene   config.SceneConfig
	maxSpin float64
	rng     *rand.Rand
}

// NewParticleRegistry creates an empty registry in the given world.
func NewParticleRegistry(w *ecs.World, cfg *config.Config, rng *rand.Rand) *ParticleRegistry {
	return &ParticleRegistry{
		world: w,
		baseMapper: ecs.NewMap5[
			components.Particle,
			components.Anchor,
			components.Transform,
			components.Target,
			components.Spin,
		](w),
		photoMapper: ecs.NewMap7[
			components.Particle,
			components.Anchor,
			components.Transform,
			components.Target,
			components.Spin,
			components.Orbit,
			components.Photo,
		](w),
		viewFilter:   *ecs.NewFilter2[components.Particle, components.Transform](w),
		particleMap:  ecs.NewMap[components.Particle](w),
		transformMap: ecs.NewMap[components.Transform](w),
		targetMap:    ecs.NewMap[components.Target](w),
		photoMap:     ecs.NewMap[components.Photo](w),
		byID:         make(map[uint32]ecs.Entity),
		nextID:       1,
		dist:         NewDistribution(cfg.Distribution),
		tree:         cfg.Tree,
		scene:        cfg.Scene,
		maxSpin:      cfg.Integrator.MaxSpin,
		rng:          rng,
	}
}

// Populate creates n DECOR or DUST particles in bulk. Slots continue from the current
// count and anchors are laid out for the resulting total. Particles start at rest on
// their anchors. PHOTO particles must be added with AddPhoto.
func (r *ParticleRegistry) Populate(kind components.Kind, n int) {
	if kind == components.KindPhoto || n <= 0 {
		return
	}
	first := r.counts[kind]
	total := first + n
	for slot := first; slot < total; slot++ {
		anchor := r.dist.Anchor(kind, slot, total)
		p := components.Particle{ID: r.allocID(), Kind: kind, Slot: slot}
		a := components.Anchor{Point: anchor}
		tr := components.Transform{Position: anchor, Rotation: components.Identity, Scale: 1}
		tg := components.Target{Position: anchor, Rotation: components.Identity, Scale: 1, FreeRotation: true}
		spin := SpinFor(r.rng, r.maxSpin)

		e := r.baseMapper.NewEntity(&p, &a, &tr, &tg, &spin)
		r.byID[p.ID] = e
	}
	r.counts[kind] = total
}

// AddPhoto registers a new PHOTO particle and returns its id. The particle spawns
// below the scene at zero scale; the solver animates it into place.
// Its scatter anchor uses the configured photo capacity (or the new count, if larger)
// and is never recomputed as more photos arrive.
func (r *ParticleRegistry) AddPhoto(photo components.Photo) uint32 {
	slot := r.counts[components.KindPhoto]
	total := r.scene.PhotoCapacity
	if slot+1 > total {
		total = slot + 1
	}
	if photo.Aspect <= 0 {
		photo.Aspect = 1
	}

	p := components.Particle{ID: r.allocID(), Kind: components.KindPhoto, Slot: slot}
	a := components.Anchor{Point: r.dist.Anchor(components.KindPhoto, slot, total)}
	spawn := r3.Vec{Y: -r.scene.SpawnDepth}
	tr := components.Transform{Position: spawn, Rotation: components.Identity, Scale: 0}
	tg := components.Target{Position: spawn, Rotation: components.Identity, Scale: 0}
	spin := SpinFor(r.rng, r.maxSpin)
	orbit := PhotoOrbitFor(slot, r.tree)

	e := r.photoMapper.NewEntity(&p, &a, &tr, &tg, &spin, &orbit, &photo)
	r.byID[p.ID] = e
	r.photoIDs = append(r.photoIDs, p.ID)
	r.counts[components.KindPhoto] = slot + 1
	return p.ID
}

func (r *ParticleRegistry) allocID() uint32 {
	id := r.nextID
	r.nextID++
	return id
}

// Len returns the total number of particles.
func (r *ParticleRegistry) Len() int {
	return len(r.byID)
}

// Count returns the number of particles of a kind.
func (r *ParticleRegistry) Count(kind components.Kind) int {
	return r.counts[kind]
}

// Snapshot returns the per-kind counts.
func (r *ParticleRegistry) Snapshot() Snapshot {
	return Snapshot{Counts: r.counts}
}

// PhotoIDs returns the ids of all PHOTO particles in creation order.
// The returned slice must not be modified.
func (r *ParticleRegistry) PhotoIDs() []uint32 {
	return r.photoIDs
}

// HasPhoto reports whether id refers to a registered PHOTO particle.
func (r *ParticleRegistry) HasPhoto(id uint32) bool {
	e, ok := r.byID[id]
	if !ok {
		return false
	}
	return r.particleMap.Get(e).Kind == components.KindPhoto
}

// Lookup returns the identity and current transform of a particle.
func (r *ParticleRegistry) Lookup(id uint32) (components.Particle, components.Transform, bool) {
	e, ok := r.byID[id]
	if !ok {
		return components.Particle{}, components.Transform{}, false
	}
	return *r.particleMap.Get(e), *r.transformMap.Get(e), true
}

// TargetOf returns the current target of a particle.
func (r *ParticleRegistry) TargetOf(id uint32) (components.Target, bool) {
	e, ok := r.byID[id]
	if !ok {
		return components.Target{}, false
	}
	return *r.targetMap.Get(e), true
}

// PhotoOf returns the asset reference of a PHOTO particle.
func (r *ParticleRegistry) PhotoOf(id uint32) (components.Photo, bool) {
	e, ok := r.byID[id]
	if !ok || !r.photoMap.Has(e) {
		return components.Photo{}, false
	}
	return *r.photoMap.Get(e), true
}

// Each calls fn with the identity and current transform of every particle.
// This is the renderer-facing view; fn must not retain the pointers.
func (r *ParticleRegistry) Each(fn func(p *components.Particle, t *components.Transform)) {
	query := r.viewFilter.Query()
	for query.Next() {
		p, t := query.Get()
		fn(p, t)
	}
}
