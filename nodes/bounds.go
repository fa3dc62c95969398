package nodes

import (
	"fmt"
	"math"

	"github.com/adammck/stride/math3d"
	"github.com/adammck/stride/utils"
)

// Bound limits one scalar of the variable vector to [Lower, Upper]. Infinite
// limits are open.
type Bound struct {
	Lower float64
	Upper float64
}

var (
	// BoundZero pins a variable to exactly zero.
	BoundZero = Bound{0, 0}

	// NoBound leaves a variable free.
	NoBound = Bound{math.Inf(-1), math.Inf(1)}
)

// IsEquality returns true if the bound pins the variable to a single value.
func (b Bound) IsEquality() bool {
	return b.Lower == b.Upper
}

// Clamp returns v moved inside the bound.
func (b Bound) Clamp(v float64) float64 {
	return utils.Clamp(v, b.Lower, b.Upper)
}

func (b Bound) String() string {
	switch {
	case b.IsEquality():
		return fmt.Sprintf("= %g", b.Lower)
	case b == NoBound:
		return "free"
	default:
		return fmt.Sprintf("[%g, %g]", b.Lower, b.Upper)
	}
}

// BoundPolicy decides the bound of a variable from the node scalar that
// represents it and whether that node touches a constant phase.
type BoundPolicy func(nvi NodeValueInfo, constant bool) Bound

// MotionBounds keeps stance feet still: constant nodes have zero velocity.
// Nodes between two swing polynomials have zero vertical velocity, which puts
// the top of the swing at that node (half way through the swing when there
// are two polynomials per swing phase) and gives smoother steps.
func MotionBounds(nvi NodeValueInfo, constant bool) Bound {
	if nvi.Deriv != Vel {
		return NoBound
	}

	if constant || nvi.Dim == math3d.Z {
		return BoundZero
	}

	return NoBound
}

// ForceBounds keeps the force and its rate at zero while the foot is in the
// air.
func ForceBounds(nvi NodeValueInfo, constant bool) Bound {
	if constant {
		return BoundZero
	}

	return NoBound
}

// BoundsFor returns the policy for a quantity.
func BoundsFor(q Quantity) BoundPolicy {
	if q == Force {
		return ForceBounds
	}

	return MotionBounds
}

// computeBounds bounds every variable row by the first node it represents.
func computeBounds(polys []PolyInfo, idx IndexMap, policy BoundPolicy) []Bound {
	bounds := make([]Bound, idx.Rows())
	nodeCount := len(polys) + 1

	for row := range bounds {
		nvi := idx.rows[row][0]
		bounds[row] = policy(nvi, isConstantNode(polys, nodeCount, nvi.ID))
	}

	return bounds
}
