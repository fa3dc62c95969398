package spline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const eps = 1e-9

func assertPoint(t *testing.T, exp, act Point, withAcc bool, msg string) {
	t.Helper()
	assert.InDelta(t, exp.Pos, act.Pos, eps, "%s: pos", msg)
	assert.InDelta(t, exp.Vel, act.Vel, eps, "%s: vel", msg)
	if withAcc {
		assert.InDelta(t, exp.Acc, act.Acc, eps, "%s: acc", msg)
	}
}

func TestBoundaryInterpolation(t *testing.T) {
	type eg struct {
		start Point
		end   Point
		T     float64
	}

	examples := []eg{
		{Point{0, 0, 0}, Point{1, 0, 0}, 1},
		{Point{1, -2, 0.5}, Point{3, 1.5, -1}, 0.7},
		{Point{-0.3, 0.2, 4}, Point{-0.3, 0.2, 4}, 2.5},
		{Point{10, 5, -3}, Point{0, 0, 0}, 0.5},
	}

	for i, x := range examples {
		c := NewCubic(x.start, x.end, x.T)
		assertPoint(t, x.start, c.Evaluate(0), false, "cubic start")
		assertPoint(t, x.end, c.Evaluate(x.T), false, "cubic end")
		assert.Equal(t, x.T, c.Duration(), "example #%d", i+1)

		q := NewQuintic(x.start, x.end, x.T)
		assertPoint(t, x.start, q.Evaluate(0), true, "quintic start")
		assertPoint(t, x.end, q.Evaluate(x.T), true, "quintic end")
	}
}

// The closed-form coefficients must agree with solving the boundary conditions
// as a linear system.
func TestQuinticMatchesLinearSolve(t *testing.T) {
	start := Point{Pos: 1, Vel: -2, Acc: 0.5}
	end := Point{Pos: 3, Vel: 1.5, Acc: -1}
	T := 0.7

	a := mat.NewDense(6, 6, []float64{
		1, 0, 0, 0, 0, 0,
		0, 1, 0, 0, 0, 0,
		0, 0, 2, 0, 0, 0,
		1, T, math.Pow(T, 2), math.Pow(T, 3), math.Pow(T, 4), math.Pow(T, 5),
		0, 1, 2 * T, 3 * math.Pow(T, 2), 4 * math.Pow(T, 3), 5 * math.Pow(T, 4),
		0, 0, 2, 6 * T, 12 * math.Pow(T, 2), 20 * math.Pow(T, 3),
	})
	b := mat.NewVecDense(6, []float64{start.Pos, start.Vel, start.Acc, end.Pos, end.Vel, end.Acc})

	var x mat.VecDense
	require.NoError(t, x.SolveVec(a, b))

	c := NewQuintic(start, end, T).Coefficients()
	for i := range c {
		assert.InDelta(t, x.AtVec(i), c[i], 1e-6, "coefficient %d", i)
	}
}

func TestCubicIgnoresAcceleration(t *testing.T) {
	a := NewCubic(Point{Pos: 0, Vel: 1}, Point{Pos: 2, Vel: 0}, 1)
	b := NewCubic(Point{Pos: 0, Vel: 1, Acc: 9}, Point{Pos: 2, Vel: 0, Acc: -9}, 1)
	assert.Equal(t, a.Coefficients(), b.Coefficients())
	assert.Equal(t, [6]float64{0, 1, 4, -3, 0, 0}, a.Coefficients())
}

func TestZeroDurationCollapses(t *testing.T) {
	for _, T := range []float64{0, -1, 1e-12} {
		for _, p := range []Polynomial{
			NewCubic(Point{Pos: 1, Vel: 3}, Point{Pos: 2, Vel: 4}, T),
			NewQuintic(Point{Pos: 1, Vel: 3}, Point{Pos: 2, Vel: 4, Acc: 5}, T),
		} {
			assert.Equal(t, 0.0, p.Duration())
			for _, lt := range []float64{0, 0.5, -1} {
				act := p.Evaluate(lt)
				assert.Equal(t, Point{Pos: 2}, act)
				assert.False(t, math.IsNaN(act.Pos))
			}
		}
	}
}

func TestEvaluateExtrapolates(t *testing.T) {
	// A constant velocity segment keeps going past its end.
	p := NewCubic(Point{Pos: 0, Vel: 1}, Point{Pos: 1, Vel: 1}, 1)
	assertPoint(t, Point{Pos: 2, Vel: 1}, p.Evaluate(2), true, "after")
	assertPoint(t, Point{Pos: -1, Vel: 1}, p.Evaluate(-1), true, "before")
}

func TestNewPolynomialDispatch(t *testing.T) {
	s := Point{Pos: 0}
	e := Point{Pos: 1}
	assert.Equal(t, Cubic, NewPolynomial(Cubic, s, e, 1).Kind())
	assert.Equal(t, Quintic, NewPolynomial(Quintic, s, e, 1).Kind())
	assert.Equal(t, "quintic", Quintic.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}
