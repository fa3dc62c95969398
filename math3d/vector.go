package math3d

import (
	"fmt"
	"math"
)

// Axis indices, for code which walks the dimensions of a vector.
const (
	X = iota
	Y
	Z
)

// Dims is the number of spatial dimensions of a Vector3.
const Dims = 3

type Vector3 struct {
	X float64
	Y float64
	Z float64
}

var (
	ZeroVector3 = Vector3{}
)

func (v Vector3) String() string {
	return fmt.Sprintf("&Vec3{x=%0.3f y=%0.3f z=%0.3f}", v.X, v.Y, v.Z)
}

// Zero returns true if the vector is at 0,0,0.
func (v Vector3) Zero() bool {
	return (v.X == 0) && (v.Y == 0) && (v.Z == 0)
}

// At returns the component on the given axis. It panics if the axis is not
// one of X, Y, or Z.
func (v Vector3) At(dim int) float64 {
	switch dim {
	case X:
		return v.X
	case Y:
		return v.Y
	case Z:
		return v.Z
	default:
		panic("invalid axis")
	}
}

// Set overwrites the component on the given axis.
func (v *Vector3) Set(dim int, val float64) {
	switch dim {
	case X:
		v.X = val
	case Y:
		v.Y = val
	case Z:
		v.Z = val
	default:
		panic("invalid axis")
	}
}

func (v Vector3) Add(vv Vector3) Vector3 {
	return Vector3{
		(v.X + vv.X),
		(v.Y + vv.Y),
		(v.Z + vv.Z),
	}
}

func (v Vector3) Subtract(vv Vector3) Vector3 {
	return Vector3{
		(v.X - vv.X),
		(v.Y - vv.Y),
		(v.Z - vv.Z),
	}
}

func (v Vector3) MultiplyByScalar(s float64) Vector3 {
	return Vector3{
		(v.X * s),
		(v.Y * s),
		(v.Z * s),
	}
}

// Lerp returns the point at fraction r along the line from v to vv.
func (v Vector3) Lerp(vv Vector3, r float64) Vector3 {
	return v.Add(vv.Subtract(v).MultiplyByScalar(r))
}

func (v Vector3) Magnitude() float64 {
	return math.Sqrt((v.X * v.X) + (v.Y * v.Y) + (v.Z * v.Z))
}

// Unit returns the vector scaled to a magnitude of one. The zero vector is
// returned unchanged.
func (v Vector3) Unit() Vector3 {
	m := v.Magnitude()
	if m == 0 {
		return ZeroVector3
	}

	return v.MultiplyByScalar(1 / m)
}

// Distance calculates and returns the distance between this vector and another,
// as a float64.
func (v Vector3) Distance(vv Vector3) float64 {
	return v.Subtract(vv).Magnitude()
}

// MultiplyByMatrix44 returns a new Vector3, by multiplying this vector my a 4x4
// matrix.
func (v Vector3) MultiplyByMatrix44(m Matrix44) Vector3 {
	return Vector3{
		(v.X * m.m11) + (v.Y * m.m21) + (v.Z * m.m31) + m.m41,
		(v.X * m.m12) + (v.Y * m.m22) + (v.Z * m.m32) + m.m42,
		(v.X * m.m13) + (v.Y * m.m23) + (v.Z * m.m33) + m.m43,
	}
}
