package spline

import "fmt"

// Kind selects how many boundary derivatives a polynomial matches on each
// side.
type Kind int

const (
	// Cubic matches position and velocity at both ends.
	Cubic Kind = iota

	// Quintic matches position, velocity and acceleration at both ends.
	Quintic
)

func (k Kind) String() string {
	switch k {
	case Cubic:
		return "cubic"
	case Quintic:
		return "quintic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Durations shorter than this are treated as zero, and the polynomial
// collapses to a constant. This keeps every coefficient computation away from
// dividing by (nearly) zero.
const minDuration = 1e-9

// Point is the value of a one dimensional curve and its first two time
// derivatives.
type Point struct {
	Pos float64
	Vel float64
	Acc float64
}

// Polynomial is one segment of a piecewise polynomial curve over a single
// dimension, evaluated at a local time offset from its start.
type Polynomial struct {
	kind     Kind
	duration float64
	c        [6]float64
}

// NewCubic returns the cubic which passes through start and end with their
// velocities, taking duration seconds. Accelerations are ignored.
func NewCubic(start, end Point, duration float64) Polynomial {
	if duration < minDuration {
		return constant(Cubic, end.Pos)
	}

	T := duration
	T2 := T * T
	T3 := T2 * T
	dp := end.Pos - start.Pos

	return Polynomial{
		kind:     Cubic,
		duration: T,
		c: [6]float64{
			start.Pos,
			start.Vel,
			(3*dp - (2*start.Vel+end.Vel)*T) / T2,
			(-2*dp + (start.Vel+end.Vel)*T) / T3,
		},
	}
}

// NewQuintic returns the quintic which passes through start and end with
// their velocities and accelerations, taking duration seconds.
func NewQuintic(start, end Point, duration float64) Polynomial {
	if duration < minDuration {
		return constant(Quintic, end.Pos)
	}

	T := duration
	T2 := T * T
	T3 := T2 * T

	// What the quadratic part (fixed by the start point) leaves for the higher
	// order terms to make up at t=T.
	h := end.Pos - start.Pos - start.Vel*T - start.Acc*T2/2
	dv := end.Vel - start.Vel - start.Acc*T
	da := end.Acc - start.Acc

	return Polynomial{
		kind:     Quintic,
		duration: T,
		c: [6]float64{
			start.Pos,
			start.Vel,
			start.Acc / 2,
			(10*h - 4*dv*T + da*T2/2) / T3,
			(-15*h + 7*dv*T - da*T2) / (T3 * T),
			(6*h - 3*dv*T + da*T2/2) / (T3 * T2),
		},
	}
}

// NewPolynomial dispatches on kind.
func NewPolynomial(kind Kind, start, end Point, duration float64) Polynomial {
	if kind == Quintic {
		return NewQuintic(start, end, duration)
	}

	return NewCubic(start, end, duration)
}

func constant(kind Kind, pos float64) Polynomial {
	return Polynomial{kind: kind, c: [6]float64{pos}}
}

func (p Polynomial) Kind() Kind {
	return p.kind
}

// Duration returns the length of the segment in seconds. It is zero for a
// collapsed segment.
func (p Polynomial) Duration() float64 {
	return p.duration
}

// Coefficients returns c, such that pos(t) = c[0] + c[1]t + ... + c[5]t^5.
func (p Polynomial) Coefficients() [6]float64 {
	return p.c
}

// Evaluate returns the position, velocity and acceleration at local time t.
// Times outside [0, Duration] extrapolate the same polynomial; clamping is up
// to the caller.
func (p Polynomial) Evaluate(t float64) Point {
	c := &p.c

	// Horner's method, for each derivative.
	pos := ((((c[5]*t+c[4])*t+c[3])*t+c[2])*t+c[1])*t + c[0]
	vel := (((5*c[5]*t+4*c[4])*t+3*c[3])*t+2*c[2])*t + c[1]
	acc := ((20*c[5]*t+12*c[4])*t+6*c[3])*t + 2*c[2]

	return Point{Pos: pos, Vel: vel, Acc: acc}
}
