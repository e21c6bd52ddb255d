package systems

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// goldenTurn is the golden-angle spiral step used by the sphere lattice.
var goldenTurn = math.Pi * (1 + math.Sqrt(5))

// goldenAngle is the classic golden angle (2π/φ²) for planar phase spreading.
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// invPhi is 1/φ, used for low-discrepancy radial jitter.
const invPhi = 0.6180339887498949

// frac returns the fractional part of v.
func frac(v float64) float64 {
	return v - math.Floor(v)
}

// lerp linearly interpolates a toward b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerpVec linearly interpolates a toward b by t.
func lerpVec(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// quatDot is the 4D dot product of two quaternions.
func quatDot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

// normalizeQuat returns q scaled to unit length, or identity for a zero quaternion.
func normalizeQuat(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 || math.IsNaN(n) {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}

// Slerp spherically interpolates unit quaternions a toward b by t along the shortest arc.
func Slerp(a, b quat.Number, t float64) quat.Number {
	dot := quatDot(a, b)
	if dot < 0 {
		b = quat.Scale(-1, b)
		dot = -dot
	}
	// Nearly parallel: fall back to normalized lerp
	if dot > 0.9995 {
		return normalizeQuat(quat.Add(a, quat.Scale(t, quat.Sub(b, a))))
	}
	theta0 := math.Acos(dot)
	sin0 := math.Sin(theta0)
	theta := theta0 * t
	s0 := math.Sin(theta0-theta) / sin0
	s1 := math.Sin(theta) / sin0
	return quat.Add(quat.Scale(s0, a), quat.Scale(s1, b))
}

// FromEuler builds a unit quaternion from XYZ-order Euler angles (radians).
func FromEuler(e r3.Vec) quat.Number {
	c1, s1 := math.Cos(e.X/2), math.Sin(e.X/2)
	c2, s2 := math.Cos(e.Y/2), math.Sin(e.Y/2)
	c3, s3 := math.Cos(e.Z/2), math.Sin(e.Z/2)
	return quat.Number{
		Real: c1*c2*c3 - s1*s2*s3,
		Imag: s1*c2*c3 + c1*s2*s3,
		Jmag: c1*s2*c3 - s1*c2*s3,
		Kmag: c1*c2*s3 + s1*s2*c3,
	}
}

// yawQuat is FromEuler for a pure rotation about Y.
func yawQuat(angle float64) quat.Number {
	return quat.Number{Real: math.Cos(angle / 2), Jmag: math.Sin(angle / 2)}
}

// AngleBetween returns the rotation angle (radians) separating two unit quaternions.
func AngleBetween(a, b quat.Number) float64 {
	d := math.Abs(quatDot(a, b))
	if d > 1 {
		d = 1
	}
	return 2 * math.Acos(d)
}

// AxisAngle decomposes a unit quaternion into a rotation axis and angle (radians).
// The identity yields the Y axis and zero angle.
func AxisAngle(q quat.Number) (r3.Vec, float64) {
	q = normalizeQuat(q)
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	s := math.Sqrt(1 - q.Real*q.Real)
	if s < 1e-9 {
		return r3.Vec{Y: 1}, 0
	}
	return r3.Vec{X: q.Imag / s, Y: q.Jmag / s, Z: q.Kmag / s}, 2 * math.Acos(q.Real)
}
