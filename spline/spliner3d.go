package spline

import (
	"github.com/adammck/stride/math3d"
)

// Point3d is the value of a three dimensional curve and its first two time
// derivatives.
type Point3d struct {
	Pos math3d.Vector3
	Vel math3d.Vector3
	Acc math3d.Vector3
}

// Axis returns the one dimensional point along a single axis.
func (p Point3d) Axis(dim int) Point {
	return Point{
		Pos: p.Pos.At(dim),
		Vel: p.Vel.At(dim),
		Acc: p.Acc.At(dim),
	}
}

// Spliner3d moves a point through space along three independent polynomials,
// one per axis. Nothing couples the axes, which is fine for Cartesian body and
// foot motion but not for anything where the axes interact.
type Spliner3d struct {
	axes [math3d.Dims]Polynomial
}

// NewSpliner3d returns a spliner from start to end, taking duration seconds.
func NewSpliner3d(kind Kind, start, end Point3d, duration float64) Spliner3d {
	s := Spliner3d{}
	for dim := range s.axes {
		s.axes[dim] = NewPolynomial(kind, start.Axis(dim), end.Axis(dim), duration)
	}

	return s
}

// Hold returns a spliner which stays at pos for duration seconds.
func Hold(pos math3d.Vector3, duration float64) Spliner3d {
	p := Point3d{Pos: pos}
	return NewSpliner3d(Cubic, p, p, duration)
}

// Duration returns the length of the spline in seconds.
func (s Spliner3d) Duration() float64 {
	return s.axes[0].Duration()
}

// Axis returns the polynomial driving a single dimension.
func (s Spliner3d) Axis(dim int) Polynomial {
	return s.axes[dim]
}

// GetPoint returns the position, velocity and acceleration at local time t.
func (s Spliner3d) GetPoint(t float64) Point3d {
	var p Point3d
	for dim := range s.axes {
		v := s.axes[dim].Evaluate(t)
		p.Pos.Set(dim, v.Pos)
		p.Vel.Set(dim, v.Vel)
		p.Acc.Set(dim, v.Acc)
	}

	return p
}
