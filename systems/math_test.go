package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestFromEulerYawMatchesYawQuat(t *testing.T) {
	for _, a := range []float64{0, 0.3, -1.2, math.Pi, 5} {
		got := FromEuler(r3.Vec{Y: a})
		want := yawQuat(a)
		if AngleBetween(got, want) > 1e-9 {
			t.Errorf("angle %f: FromEuler %+v != yawQuat %+v", a, got, want)
		}
	}
}

func TestFromEulerIsUnit(t *testing.T) {
	q := FromEuler(r3.Vec{X: 0.4, Y: -1.1, Z: 2.3})
	if n := quat.Abs(q); math.Abs(n-1) > 1e-12 {
		t.Errorf("expected unit quaternion, got norm %f", n)
	}
}

func TestSlerpEndpoints(t *testing.T) {
	a := yawQuat(0.2)
	b := FromEuler(r3.Vec{X: 1, Y: 0.5})
	if AngleBetween(Slerp(a, b, 0), a) > 1e-9 {
		t.Error("slerp(t=0) should return a")
	}
	if AngleBetween(Slerp(a, b, 1), b) > 1e-9 {
		t.Error("slerp(t=1) should return b")
	}
}

func TestSlerpHalfway(t *testing.T) {
	a := yawQuat(0)
	b := yawQuat(1)
	mid := Slerp(a, b, 0.5)
	if AngleBetween(mid, yawQuat(0.5)) > 1e-9 {
		t.Errorf("expected halfway yaw 0.5, got %+v", mid)
	}
}

func TestSlerpTakesShortestArc(t *testing.T) {
	a := yawQuat(0.1)
	b := quat.Scale(-1, yawQuat(0.3)) // same rotation, opposite hemisphere
	mid := Slerp(a, b, 0.5)
	if AngleBetween(mid, yawQuat(0.2)) > 1e-9 {
		t.Errorf("expected shortest-arc midpoint yaw 0.2, got %+v", mid)
	}
}

func TestAxisAngleRoundTrip(t *testing.T) {
	axis, angle := AxisAngle(yawQuat(1.3))
	if math.Abs(angle-1.3) > 1e-9 {
		t.Errorf("expected angle 1.3, got %f", angle)
	}
	if math.Abs(axis.Y-1) > 1e-9 {
		t.Errorf("expected Y axis, got %+v", axis)
	}

	_, angle = AxisAngle(quat.Number{Real: 1})
	if angle != 0 {
		t.Errorf("identity should have zero angle, got %f", angle)
	}
}
