package spline

import (
	"testing"

	"github.com/adammck/stride/math3d"
	"github.com/stretchr/testify/assert"
)

func TestLocate(t *testing.T) {
	type eg struct {
		t     float64
		id    int
		local float64
	}

	durations := []float64{1, 0.5, 2}
	examples := []eg{
		{-1, 0, 0},
		{0, 0, 0},
		{0.25, 0, 0.25},
		{1, 0, 1},
		{1.2, 1, 0.2},
		{1.5, 1, 0.5},
		{2, 2, 0.5},
		{3.5, 2, 2},
		{100, 2, 2},
	}

	for i, x := range examples {
		id, local := Locate(durations, x.t)
		assert.Equal(t, x.id, id, "example #%d: id", i+1)
		assert.InDelta(t, x.local, local, eps, "example #%d: local", i+1)
	}
}

func TestLocateSkipsZeroDurations(t *testing.T) {
	id, local := Locate([]float64{1, 0, 1}, 1.5)
	assert.Equal(t, 2, id)
	assert.InDelta(t, 0.5, local, eps)
}

func TestLocateEmpty(t *testing.T) {
	id, local := Locate(nil, 3)
	assert.Equal(t, 0, id)
	assert.Equal(t, 0.0, local)
}

func TestSequence(t *testing.T) {
	a := math3d.Vector3{X: 0}
	b := math3d.Vector3{X: 1}
	c := math3d.Vector3{X: 1, Z: 1}

	seq := NewSequence([]Spliner3d{
		NewSpliner3d(Quintic, Point3d{Pos: a}, Point3d{Pos: b}, 1),
		NewSpliner3d(Quintic, Point3d{Pos: b}, Point3d{Pos: c}, 2),
	})

	assert.Equal(t, 2, seq.Len())
	assert.Equal(t, []float64{1, 2}, seq.Durations())
	assert.Equal(t, 3.0, seq.TotalTime())

	assertVec(t, a, seq.GetPoint(0).Pos, "start")
	assertVec(t, b, seq.GetPoint(1).Pos, "boundary")
	assertVec(t, b, seq.GetPoint(1+1e-12).Pos, "after boundary")
	assertVec(t, c, seq.GetPoint(3).Pos, "end")
	assertVec(t, c, seq.GetPoint(10).Pos, "clamped")
}

func TestEmptySequence(t *testing.T) {
	seq := NewSequence(nil)
	assert.Equal(t, 0.0, seq.TotalTime())
	assert.Equal(t, Point3d{}, seq.GetPoint(1))
}
