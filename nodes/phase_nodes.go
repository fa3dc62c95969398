package nodes

import (
	"fmt"

	"github.com/adammck/stride/math3d"
	"github.com/adammck/stride/spline"
	"gonum.org/v1/gonum/floats"
)

// Side picks one end of a polynomial.
type Side int

const (
	Start Side = iota
	End
)

// Node is one knot of an end-effector trajectory. For force trajectories Pos
// holds the force and Vel its rate of change.
type Node struct {
	Pos math3d.Vector3
	Vel math3d.Vector3
}

func (n Node) value(nvi NodeValueInfo) float64 {
	if nvi.Deriv == Vel {
		return n.Vel.At(nvi.Dim)
	}

	return n.Pos.At(nvi.Dim)
}

func (n *Node) set(nvi NodeValueInfo, v float64) {
	if nvi.Deriv == Vel {
		n.Vel.Set(nvi.Dim, v)
	} else {
		n.Pos.Set(nvi.Dim, v)
	}
}

// PhaseNodes holds the optimization variables of one end-effector's motion or
// force over a fixed sequence of alternating phases. The phase sequence and
// the bounds are fixed at construction; only the node values (through
// SetValues) and the durations passed in by the caller change between solver
// iterations.
type PhaseNodes struct {
	name     string
	quantity Quantity
	polys    []PolyInfo
	idx      IndexMap
	nodes    []Node
	bounds   []Bound
}

// New builds the phase nodes for an end-effector with phaseCount phases. With
// no phases there are no nodes and no variables.
func New(phaseCount int, contactAtStart bool, name string, polysPerVaryingPhase int, q Quantity) *PhaseNodes {
	polys := Segment(phaseCount, contactAtStart, polysPerVaryingPhase, q)
	idx := BuildIndexMap(polys, math3d.Dims)

	nodeCount := 0
	if len(polys) > 0 {
		nodeCount = len(polys) + 1
	}

	return &PhaseNodes{
		name:     name,
		quantity: q,
		polys:    polys,
		idx:      idx,
		nodes:    make([]Node, nodeCount),
		bounds:   computeBounds(polys, idx, BoundsFor(q)),
	}
}

func (pn *PhaseNodes) Name() string {
	return pn.name
}

func (pn *PhaseNodes) Quantity() Quantity {
	return pn.quantity
}

// IndexMap returns the mapping between variables and node values. It must be
// used to unpack any vector produced from Values.
func (pn *PhaseNodes) IndexMap() IndexMap {
	return pn.idx
}

// PolyInfos returns a copy of the polynomial descriptors.
func (pn *PhaseNodes) PolyInfos() []PolyInfo {
	return append([]PolyInfo(nil), pn.polys...)
}

func (pn *PhaseNodes) PolyCount() int {
	return len(pn.polys)
}

func (pn *PhaseNodes) NodeCount() int {
	return len(pn.nodes)
}

// Nodes returns a copy of the current node values.
func (pn *PhaseNodes) Nodes() []Node {
	return append([]Node(nil), pn.nodes...)
}

// Rows returns the number of optimization variables.
func (pn *PhaseNodes) Rows() int {
	return pn.idx.Rows()
}

// Bounds returns a copy of the bound of every variable.
func (pn *PhaseNodes) Bounds() []Bound {
	return append([]Bound(nil), pn.bounds...)
}

// Values packs the node values into the variable vector.
func (pn *PhaseNodes) Values() []float64 {
	x := make([]float64, pn.idx.Rows())
	for row := range x {
		nvi := pn.idx.rows[row][0]
		x[row] = pn.nodes[nvi.ID].value(nvi)
	}

	return x
}

// SetValues unpacks a variable vector into every node value it backs.
func (pn *PhaseNodes) SetValues(x []float64) error {
	if len(x) != pn.idx.Rows() {
		return fmt.Errorf("%w: got %d, want %d", ErrValueCount, len(x), pn.idx.Rows())
	}

	for row, v := range x {
		for _, nvi := range pn.idx.rows[row] {
			pn.nodes[nvi.ID].set(nvi, v)
		}
	}

	return nil
}

// NodeID returns the node at one end of a polynomial.
func (pn *PhaseNodes) NodeID(polyID int, side Side) int {
	if side == End {
		return polyID + 1
	}

	return polyID
}

// AdjacentPolyIDs returns the polynomials which start or end at a node. Edge
// nodes have only one.
func (pn *PhaseNodes) AdjacentPolyIDs(nodeID int) []int {
	return adjacentPolyIDs(len(pn.nodes), nodeID)
}

func adjacentPolyIDs(nodeCount, nodeID int) []int {
	last := nodeCount - 1

	switch {
	case nodeCount < 2 || nodeID < 0 || nodeID > last:
		return nil
	case nodeID == 0:
		return []int{0}
	case nodeID == last:
		return []int{last - 1}
	default:
		return []int{nodeID - 1, nodeID}
	}
}

// IsConstantNode returns true if either polynomial touching the node belongs
// to a constant phase.
func (pn *PhaseNodes) IsConstantNode(nodeID int) bool {
	return isConstantNode(pn.polys, len(pn.nodes), nodeID)
}

func isConstantNode(polys []PolyInfo, nodeCount, nodeID int) bool {
	for _, polyID := range adjacentPolyIDs(nodeCount, nodeID) {
		if polys[polyID].Constant {
			return true
		}
	}

	return false
}

// IsInConstantPhase returns true if the polynomial belongs to a constant
// phase.
func (pn *PhaseNodes) IsInConstantPhase(polyID int) bool {
	return pn.polys[polyID].Constant
}

// NonConstantNodeIDs returns, in order, the nodes which only touch varying
// polynomials.
func (pn *PhaseNodes) NonConstantNodeIDs() []int {
	ids := []int{}
	for id := range pn.nodes {
		if !pn.IsConstantNode(id) {
			ids = append(ids, id)
		}
	}

	return ids
}

// Phase returns the phase which a non-constant node belongs to. Constant nodes
// sit between two phases, so callers must check IsConstantNode first.
func (pn *PhaseNodes) Phase(nodeID int) (int, error) {
	ids := pn.AdjacentPolyIDs(nodeID)
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: %d", ErrUnknownNode, nodeID)
	}

	if pn.IsConstantNode(nodeID) {
		return 0, fmt.Errorf("%w: node %d", ErrConstantNode, nodeID)
	}

	return pn.polys[ids[0]].Phase, nil
}

// PhaseToPolyDurations splits each phase duration evenly between the
// polynomials of that phase.
func (pn *PhaseNodes) PhaseToPolyDurations(phaseDurations []float64) ([]float64, error) {
	durations := make([]float64, len(pn.polys))

	for i, info := range pn.polys {
		if info.Phase >= len(phaseDurations) {
			return nil, fmt.Errorf("%w: no duration for phase %d (got %d)", ErrDurationCount, info.Phase, len(phaseDurations))
		}

		durations[i] = phaseDurations[info.Phase] * pn.PolyDurationDerivative(i)
	}

	return durations, nil
}

// PolyDurationDerivative returns the derivative of a polynomial's duration
// with respect to the duration of its phase.
func (pn *PhaseNodes) PolyDurationDerivative(polyID int) float64 {
	n := pn.polys[polyID].PolysInPhase
	if n < 1 {
		return 0
	}

	return 1.0 / float64(n)
}

// PrevPolysInPhase returns how many polynomials of the same phase come before
// this one.
func (pn *PhaseNodes) PrevPolysInPhase(polyID int) int {
	return pn.polys[polyID].InPhase
}

// PolyIDAtStartOfPhase returns the first polynomial of a phase.
func (pn *PhaseNodes) PolyIDAtStartOfPhase(phase int) (int, error) {
	for i, info := range pn.polys {
		if info.Phase == phase {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %d", ErrPhaseOutOfRange, phase)
}

// NodeIDAtStartOfPhase returns the node at which a phase begins.
func (pn *PhaseNodes) NodeIDAtStartOfPhase(phase int) (int, error) {
	polyID, err := pn.PolyIDAtStartOfPhase(phase)
	if err != nil {
		return 0, err
	}

	return pn.NodeID(polyID, Start), nil
}

// ValueAtStartOfPhase returns the position (or force) at the start of a phase.
func (pn *PhaseNodes) ValueAtStartOfPhase(phase int) (math3d.Vector3, error) {
	id, err := pn.NodeIDAtStartOfPhase(phase)
	if err != nil {
		return math3d.ZeroVector3, err
	}

	return pn.nodes[id].Pos, nil
}

// InitTowardsGoal sets an initial guess which moves at constant velocity from
// start to goal over the given polynomial durations, then snaps every
// variable into its bound so that stance nodes start out still.
func (pn *PhaseNodes) InitTowardsGoal(start, goal math3d.Vector3, polyDurations []float64) error {
	if len(polyDurations) != len(pn.polys) {
		return fmt.Errorf("%w: got %d, want %d", ErrDurationCount, len(polyDurations), len(pn.polys))
	}

	total := floats.Sum(polyDurations)
	vel := math3d.ZeroVector3
	if total > 0 {
		vel = goal.Subtract(start).MultiplyByScalar(1 / total)
	}

	elapsed := 0.0
	for id := range pn.nodes {
		r := 1.0
		if total > 0 {
			r = elapsed / total
		}

		pn.nodes[id] = Node{Pos: start.Lerp(goal, r), Vel: vel}
		if id < len(polyDurations) {
			elapsed += polyDurations[id]
		}
	}

	x := pn.Values()
	for row := range x {
		x[row] = pn.bounds[row].Clamp(x[row])
	}

	return pn.SetValues(x)
}

// Spline returns the trajectory described by the nodes: one cubic per
// polynomial, matching position and velocity at both ends.
func (pn *PhaseNodes) Spline(polyDurations []float64) (*spline.Sequence, error) {
	if len(polyDurations) != len(pn.polys) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDurationCount, len(polyDurations), len(pn.polys))
	}

	segments := make([]spline.Spliner3d, len(pn.polys))
	for i := range pn.polys {
		from := pn.nodes[pn.NodeID(i, Start)]
		to := pn.nodes[pn.NodeID(i, End)]
		segments[i] = spline.NewSpliner3d(
			spline.Cubic,
			spline.Point3d{Pos: from.Pos, Vel: from.Vel},
			spline.Point3d{Pos: to.Pos, Vel: to.Vel},
			polyDurations[i])
	}

	return spline.NewSequence(segments), nil
}
