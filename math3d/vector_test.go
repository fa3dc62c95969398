package math3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMagnitude(t *testing.T) {
	type eg struct {
		input Vector3
		exp   float64
	}

	examples := []eg{
		{Vector3{X: 0, Y: 0, Z: 0}, 0},
		{Vector3{X: 1, Y: 1, Z: 1}, 1.732050808},
		{Vector3{X: 1, Y: 2, Z: 3}, 3.741657387},
		{Vector3{X: 4, Y: 5, Z: 6}, 8.774964387},
	}

	for _, x := range examples {
		assert.InDelta(t, x.exp, x.input.Magnitude(), 0.01)
	}
}

func TestDistance(t *testing.T) {
	type eg struct {
		recv Vector3
		arg  Vector3
		out  float64
	}

	examples := []eg{
		{Vector3{X: 1, Y: 1, Z: 1}, Vector3{X: 1, Y: 1, Z: 1}, 0},
		{Vector3{X: 1, Y: 1, Z: 1}, Vector3{X: 2, Y: 2, Z: 2}, 1.732050808},
	}

	for _, x := range examples {
		assert.InDelta(t, x.out, x.recv.Distance(x.arg), 0.01)
	}
}

func TestUnit(t *testing.T) {
	type eg struct {
		in  Vector3
		out Vector3
	}

	examples := []eg{
		{Vector3{X: 0, Y: 0, Z: 0}, ZeroVector3},
		{Vector3{X: 2, Y: 0, Z: 0}, Vector3{X: 1, Y: 0, Z: 0}},
		{Vector3{X: 0, Y: -3, Z: 0}, Vector3{X: 0, Y: -1, Z: 0}},
	}

	for _, x := range examples {
		assert.Equal(t, x.out, x.in.Unit())
	}
}

func TestSubtract(t *testing.T) {
	v1 := Vector3{X: 1, Y: 2, Z: 3}
	v2 := Vector3{X: 4, Y: 5, Z: 6}

	assert.Equal(t, Vector3{X: 3, Y: 3, Z: 3}, v2.Subtract(v1))
}

func TestMultiplyByScalar(t *testing.T) {
	v := Vector3{X: 1, Y: 2, Z: 3}

	assert.Equal(t, Vector3{X: 0.5, Y: 1, Z: 1.5}, v.MultiplyByScalar(0.5))
	assert.Equal(t, Vector3{X: 2, Y: 4, Z: 6}, v.MultiplyByScalar(2))
}

func TestLerp(t *testing.T) {
	a := Vector3{X: 0, Y: 0, Z: 0}
	b := Vector3{X: 2, Y: 4, Z: -8}

	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
	assert.Equal(t, Vector3{X: 1, Y: 2, Z: -4}, a.Lerp(b, 0.5))
}

func TestAtAndSet(t *testing.T) {
	v := Vector3{X: 1, Y: 2, Z: 3}
	for dim, exp := range []float64{1, 2, 3} {
		assert.Equal(t, exp, v.At(dim))
	}

	v.Set(Z, 9)
	assert.Equal(t, Vector3{X: 1, Y: 2, Z: 9}, v)

	assert.Panics(t, func() { v.At(3) })
	assert.Panics(t, func() { v.Set(-1, 0) })
}
