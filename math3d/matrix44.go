package math3d

import (
	"fmt"
	"math"
)

// Matrix44 is an affine transform applied to row vectors: v' = v*M. The upper
// 3x3 block holds the rotation, the fourth row holds the translation.
type Matrix44 struct {
	m11 float64 // 0
	m12 float64 // 1
	m13 float64 // 2
	m14 float64 // 3
	m21 float64 // 4
	m22 float64 // 5
	m23 float64 // 6
	m24 float64 // 7
	m31 float64 // 8
	m32 float64 // 9
	m33 float64 // 10
	m34 float64 // 11
	m41 float64 // 12
	m42 float64 // 13
	m43 float64 // 14
	m44 float64 // 15
}

func MakeMatrix44(v Vector3, ea EulerAngles) Matrix44 {
	m := Matrix44{}
	m.SetRotation(ea)
	m.SetTranslation(v)
	return m
}

func (m Matrix44) String() string {
	return fmt.Sprintf(
		"&M44{%+.4f %+.4f %+.4f %+.4f | %+.4f %+.4f %+.4f %+.4f | %+.4f %+.4f %+.4f %+.4f | %+.4f %+.4f %+.4f %+.4f}",
		m.m11, m.m12, m.m13, m.m14,
		m.m21, m.m22, m.m23, m.m24,
		m.m31, m.m32, m.m33, m.m34,
		m.m41, m.m42, m.m43, m.m44)
}

// Elements returns the matrix as a 4D array of float64s. This is pretty much
// only useful for dumping its contents.
func (m Matrix44) Elements() [4][4]float64 {
	return [4][4]float64{
		{m.m11, m.m12, m.m13, m.m14},
		{m.m21, m.m22, m.m23, m.m24},
		{m.m31, m.m32, m.m33, m.m34},
		{m.m41, m.m42, m.m43, m.m44},
	}
}

// RigidInverse returns the inverse of a matrix built from a rotation and a
// translation. The rotation block is orthonormal, so its inverse is its
// transpose, and the translation is rotated back into the local frame.
func (m Matrix44) RigidInverse() Matrix44 {
	inv := Matrix44{
		m11: m.m11, m12: m.m21, m13: m.m31,
		m21: m.m12, m22: m.m22, m23: m.m32,
		m31: m.m13, m32: m.m23, m33: m.m33,
		m44: 1,
	}

	t := Vector3{m.m41, m.m42, m.m43}.MultiplyByMatrix44(inv)
	inv.SetTranslation(t.MultiplyByScalar(-1))
	return inv
}

// SetRotation sets the rotation of a matrix to that of the given Euler angles,
// applied as yaw about Z, then pitch about Y, then roll about X.
func (m *Matrix44) SetRotation(ea EulerAngles) {
	cr := math.Cos(ea.Roll)
	sr := math.Sin(ea.Roll)
	cp := math.Cos(ea.Pitch)
	sp := math.Sin(ea.Pitch)
	cy := math.Cos(ea.Yaw)
	sy := math.Sin(ea.Yaw)

	// Each row is a column of the usual column-vector rotation matrix.
	m.m11 = cy * cp
	m.m12 = sy * cp
	m.m13 = -sp
	m.m14 = 0
	m.m21 = (cy * sp * sr) - (sy * cr)
	m.m22 = (sy * sp * sr) + (cy * cr)
	m.m23 = cp * sr
	m.m24 = 0
	m.m31 = (cy * sp * cr) + (sy * sr)
	m.m32 = (sy * sp * cr) - (cy * sr)
	m.m33 = cp * cr
	m.m34 = 0
	m.m44 = 1
}

// SetTranslation sets the translation of a matrix by overwriting the fourth
// row. Other cells are left alone.
func (m *Matrix44) SetTranslation(v Vector3) {
	m.m41 = v.X
	m.m42 = v.Y
	m.m43 = v.Z
}
