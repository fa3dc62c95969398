package player

import (
	"errors"
	"fmt"
	"math"

	"github.com/adammck/stride/math3d"
	"github.com/adammck/stride/spline"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "player",
})

var (
	ErrNotInitialized = errors.New("spliner not initialized")
	ErrInvalidParams  = errors.New("invalid spliner params")
)

// Params shape the swing of each stepping foot.
type Params struct {
	// Upswing is the fraction of a step segment spent lifting the foot to the
	// top of its swing. The rest is spent putting it down.
	Upswing float64 `yaml:"upswing"`

	// LiftHeight is how far above the higher of the old and new foothold the
	// foot is lifted, in meters.
	LiftHeight float64 `yaml:"lift_height"`

	// OutwardSwing is how far the top of the swing is pushed away from the
	// body, sideways, in meters.
	OutwardSwing float64 `yaml:"outward_swing"`
}

func DefaultParams() Params {
	return Params{
		Upswing:      0.5,
		LiftHeight:   0.08,
		OutwardSwing: 0.0,
	}
}

func (p Params) Validate() error {
	if p.Upswing <= 0 || p.Upswing >= 1 {
		return fmt.Errorf("%w: upswing must be within (0, 1), got %g", ErrInvalidParams, p.Upswing)
	}

	if p.LiftHeight < 0 {
		return fmt.Errorf("%w: lift height must not be negative, got %g", ErrInvalidParams, p.LiftHeight)
	}

	return nil
}

// Spliner plays back a sequence of nodes as a continuous trajectory. Splines
// are built once by Init; queries read them without allocating, so any
// number of goroutines may query an initialized Spliner concurrently. Init
// must not run alongside queries.
type Spliner struct {
	params Params

	nodes     []SplineNode
	durations []float64

	pos      []spline.Spliner3d
	ori      []spline.Spliner3d
	feetUp   []LegDataMap[spline.Spliner3d]
	feetDown []LegDataMap[spline.Spliner3d]
}

func NewSpliner(params Params) (*Spliner, error) {
	err := params.Validate()
	if err != nil {
		return nil, err
	}

	return &Spliner{
		params: params,
	}, nil
}

// Params returns the swing parameters.
func (s *Spliner) Params() Params {
	return s.params
}

// Init builds the node sequence and every spline through it, replacing
// anything built by a previous call.
func (s *Spliner) Init(initial State, segments []BodySegment, footholds []Foothold, height float64) error {
	nodes := BuildStateSequence(initial, segments, footholds, height)
	for i, n := range nodes {
		if n.T < 0 || math.IsNaN(n.T) {
			return fmt.Errorf("node %d has invalid duration %g", i, n.T)
		}
	}

	n := len(nodes) - 1
	s.nodes = nodes
	s.durations = make([]float64, n)
	s.pos = make([]spline.Spliner3d, n)
	s.ori = make([]spline.Spliner3d, n)
	s.feetUp = make([]LegDataMap[spline.Spliner3d], n)
	s.feetDown = make([]LegDataMap[spline.Spliner3d], n)

	for i := 0; i < n; i++ {
		from, to := nodes[i], nodes[i+1]
		s.durations[i] = to.T
		s.pos[i] = buildPositionSpline(from, to)
		s.ori[i] = buildOrientationSpline(from, to)
		s.feetUp[i] = s.buildFootstepSplineUp(from, to)
		s.feetDown[i] = s.buildFootstepSplineDown(s.feetUp[i], to)
	}

	log.Debugf("initialized with %d nodes over %.3fs", len(nodes), s.GetTotalTime())
	return nil
}

func (s *Spliner) initialized() bool {
	return len(s.nodes) > 0
}

// Nodes returns a copy of the node sequence.
func (s *Spliner) Nodes() []SplineNode {
	return append([]SplineNode(nil), s.nodes...)
}

// SegmentCount returns the number of segments between nodes.
func (s *Spliner) SegmentCount() int {
	return len(s.durations)
}

// GetTotalTime returns the duration of the whole trajectory, or zero before
// Init.
func (s *Spliner) GetTotalTime() float64 {
	return floats.Sum(s.durations)
}

// GetGoalNode returns the node which the robot is moving towards at time t.
// Past the end, that is the last node.
func (s *Spliner) GetGoalNode(t float64) (SplineNode, error) {
	if !s.initialized() {
		return SplineNode{}, ErrNotInitialized
	}

	if len(s.durations) == 0 {
		return s.nodes[0], nil
	}

	id, _ := spline.Locate(s.durations, t)
	return s.nodes[id+1], nil
}

// GetSplinedState returns the state of the robot at time t, in seconds since
// the first node. Times outside the trajectory are clamped to its ends. A leg
// is reported as swinging while it is in the air, so never at the end of a
// segment.
func (s *Spliner) GetSplinedState(t float64) (State, error) {
	if !s.initialized() {
		return State{}, ErrNotInitialized
	}

	if len(s.durations) == 0 {
		return s.nodes[0].State, nil
	}

	id, local := spline.Locate(s.durations, t)
	goal := s.nodes[id+1]

	var st State
	p := s.pos[id].GetPoint(local)
	st.Base.Pos = p.Pos
	st.Base.Vel = p.Vel
	st.Base.Acc = p.Acc
	st.Base.Ori = math3d.EulerAnglesFromVector(s.ori[id].GetPoint(local).Pos).Quat()

	up := s.feetUp[id]
	for _, leg := range AllLegs {
		tUp := up[leg].Duration()
		if local < tUp {
			st.Feet[leg] = up[leg].GetPoint(local).Pos
		} else {
			st.Feet[leg] = s.feetDown[id][leg].GetPoint(local - tUp).Pos
		}
	}

	// Feet have landed by the end of the segment.
	if local < s.durations[id] {
		st.Swing = goal.State.Swing
	}

	return st, nil
}

func buildPositionSpline(from, to SplineNode) spline.Spliner3d {
	start := spline.Point3d{Pos: from.State.Base.Pos, Vel: from.State.Base.Vel, Acc: from.State.Base.Acc}
	end := spline.Point3d{Pos: to.State.Base.Pos, Vel: to.State.Base.Vel, Acc: to.State.Base.Acc}
	return spline.NewSpliner3d(spline.Quintic, start, end, to.T)
}

// Orientation starts and ends each segment at rest.
func buildOrientationSpline(from, to SplineNode) spline.Spliner3d {
	return spline.NewSpliner3d(spline.Quintic, spline.Point3d{Pos: from.Ori}, spline.Point3d{Pos: to.Ori}, to.T)
}

// swingApex returns the highest point of a step from a to b.
func (s *Spliner) swingApex(leg LegID, a, b math3d.Vector3) math3d.Vector3 {
	apex := a.Lerp(b, 0.5)
	apex.Y += leg.Side() * s.params.OutwardSwing
	apex.Z = math.Max(a.Z, b.Z) + s.params.LiftHeight
	return apex
}

// buildFootstepSplineUp lifts each swinging foot from its old foothold to the
// apex of its swing, over the upswing fraction of the segment. The apex keeps
// the horizontal speed of the step, so the foot does not stop at the top.
// Feet which are not swinging stay where they are.
func (s *Spliner) buildFootstepSplineUp(from, to SplineNode) LegDataMap[spline.Spliner3d] {
	var m LegDataMap[spline.Spliner3d]
	tUp := s.params.Upswing * to.T

	for _, leg := range AllLegs {
		a := from.State.Feet[leg]
		if !to.State.Swing[leg] {
			m[leg] = spline.Hold(a, tUp)
			continue
		}

		b := to.State.Feet[leg]
		apex := spline.Point3d{Pos: s.swingApex(leg, a, b)}
		if to.T > 0 {
			apex.Vel = math3d.Vector3{X: (b.X - a.X) / to.T, Y: (b.Y - a.Y) / to.T}
		}

		m[leg] = spline.NewSpliner3d(spline.Quintic, spline.Point3d{Pos: a}, apex, tUp)
	}

	return m
}

// buildFootstepSplineDown continues each foot from wherever its up spline
// ended to the foothold of the goal node.
func (s *Spliner) buildFootstepSplineDown(up LegDataMap[spline.Spliner3d], to SplineNode) LegDataMap[spline.Spliner3d] {
	var m LegDataMap[spline.Spliner3d]
	tDown := (1 - s.params.Upswing) * to.T

	for _, leg := range AllLegs {
		start := up[leg].GetPoint(up[leg].Duration())
		if !to.State.Swing[leg] {
			m[leg] = spline.Hold(start.Pos, tDown)
			continue
		}

		m[leg] = spline.NewSpliner3d(spline.Quintic, start, spline.Point3d{Pos: to.State.Feet[leg]}, tDown)
	}

	return m
}
