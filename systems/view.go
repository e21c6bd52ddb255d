package systems

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// View is the camera basis the FOCUS slot is laid out in. The camera always looks
// at the origin.
type View struct {
	Eye     r3.Vec
	Back    r3.Vec // Unit vector from the origin toward the eye
	Right   r3.Vec
	Up      r3.Vec
	Heading quat.Number // Yaw that turns +Z toward the eye
}

// DefaultView looks at the origin from +Z.
var DefaultView = NewView(r3.Vec{Z: 1})

// NewView builds the basis for a camera at eye looking at the origin.
// A degenerate eye (at the origin) falls back to looking from +Z.
func NewView(eye r3.Vec) View {
	back := r3.Vec{Z: 1}
	if n := r3.Norm(eye); n > 1e-9 {
		back = r3.Scale(1/n, eye)
	}
	right := r3.Cross(r3.Vec{Y: 1}, back)
	if n := r3.Norm(right); n > 1e-9 {
		right = r3.Scale(1/n, right)
	} else {
		// Looking straight down or up
		right = r3.Vec{X: 1}
	}
	return View{
		Eye:     eye,
		Back:    back,
		Right:   right,
		Up:      r3.Cross(back, right),
		Heading: yawQuat(math.Atan2(back.X, back.Z)),
	}
}

// Place maps a view-relative offset to world space: x along Right, y along Up and
// z along Back, measured from the origin.
func (v View) Place(x, y, z float64) r3.Vec {
	return r3.Add(r3.Add(r3.Scale(x, v.Right), r3.Scale(y, v.Up)), r3.Scale(z, v.Back))
}

// Depth returns the distance of p in front of the eye along the view direction.
func (v View) Depth(p r3.Vec) float64 {
	return r3.Dot(r3.Sub(p, v.Eye), r3.Scale(-1, v.Back))
}
