// Package components defines ECS components for the particle scene.
package components

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Kind identifies the visual variant of a particle. Fixed for life.
type Kind uint8

const (
	KindDecor Kind = iota
	KindDust
	KindPhoto

	// NumKinds is the number of particle kinds.
	NumKinds = 3
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindDecor:
		return "decor"
	case KindDust:
		return "dust"
	case KindPhoto:
		return "photo"
	}
	return "unknown"
}

// Particle holds the immutable identity of a particle.
type Particle struct {
	ID   uint32 // Stable, never reused; 0 is never assigned
	Kind Kind
	Slot int // Position within the kind's creation order
}

// Anchor is the SCATTER-mode rest point, computed once at creation.
type Anchor struct {
	Point r3.Vec
}

// Transform is a particle's displayed pose. Written only by the integrator.
type Transform struct {
	Position r3.Vec
	Rotation quat.Number // Unit quaternion
	Scale    float64
}

// Target is the pose a particle is moving toward. Written only by the solver.
type Target struct {
	Position r3.Vec
	Rotation quat.Number
	Scale    float64

	// FreeRotation leaves orientation to the integrator (idle spin or hold)
	FreeRotation bool
}

// Spin is the per-frame idle rotation applied in SCATTER mode (radians per axis).
type Spin struct {
	Rate r3.Vec
}

// Orbit is the TREE-mode orbit lane of a PHOTO particle.
type Orbit struct {
	Radius float64
	Height float64
	Phase  float64
}

// Photo references the decoded image owned by the external renderer.
type Photo struct {
	Source string  // Opaque handle chosen by the ingesting collaborator
	Aspect float64 // Width / height, 1 if unknown
}

// Identity is the neutral orientation.
var Identity = quat.Number{Real: 1}
