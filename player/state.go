package player

import (
	"fmt"

	"github.com/adammck/stride/math3d"
	"github.com/adammck/stride/spline"
	"gonum.org/v1/gonum/num/quat"
)

// LegID identifies one of the four legs.
type LegID int

const (
	LF LegID = iota
	RF
	LH
	RH
)

// NumLegs is the number of legs on the robot.
const NumLegs = 4

// AllLegs lists every leg in LegID order.
var AllLegs = [NumLegs]LegID{LF, RF, LH, RH}

func (l LegID) String() string {
	switch l {
	case LF:
		return "LF"
	case RF:
		return "RF"
	case LH:
		return "LH"
	case RH:
		return "RH"
	default:
		return fmt.Sprintf("LegID(%d)", int(l))
	}
}

// IsLeft returns true for the legs on the left (+Y) side of the body.
func (l LegID) IsLeft() bool {
	return l == LF || l == LH
}

// IsFront returns true for the front (+X) legs.
func (l LegID) IsFront() bool {
	return l == LF || l == RF
}

// Side returns +1 for left legs and -1 for right legs.
func (l LegID) Side() float64 {
	if l.IsLeft() {
		return 1
	}

	return -1
}

// LegDataMap holds one value per leg, indexed by LegID.
type LegDataMap[T any] [NumLegs]T

// Foothold is the position at which a leg will touch down.
type Foothold struct {
	Leg LegID
	Pos math3d.Vector3
}

func (f Foothold) String() string {
	return fmt.Sprintf("Foothold{%s %s}", f.Leg, f.Pos)
}

// BaseState is the state of the body. Ori is the orientation of the body in
// the world frame as a quaternion, which need not be normalized.
type BaseState struct {
	Pos math3d.Vector3
	Vel math3d.Vector3
	Acc math3d.Vector3
	Ori quat.Number
}

// Euler returns the orientation as roll, pitch and yaw.
func (b BaseState) Euler() math3d.EulerAngles {
	return math3d.EulerAnglesFromQuat(b.Ori)
}

// Pose returns the position and orientation of the body.
func (b BaseState) Pose() math3d.Pose {
	return math3d.Pose{Position: b.Pos, Orientation: b.Euler()}
}

// State is the state of the whole robot at one instant. Feet are in the world
// frame.
type State struct {
	Base  BaseState
	Feet  LegDataMap[math3d.Vector3]
	Swing LegDataMap[bool]
}

// supportOrder walks the feet around the body, so that the stance feet form a
// simple polygon.
var supportOrder = [NumLegs]LegID{LF, RF, RH, LH}

// SupportPolygon returns the feet which are on the ground, in order around the
// body.
func (s State) SupportPolygon() []math3d.Vector3 {
	poly := make([]math3d.Vector3, 0, NumLegs)
	for _, leg := range supportOrder {
		if !s.Swing[leg] {
			poly = append(poly, s.Feet[leg])
		}
	}

	return poly
}

// SegmentKind says whether any leg steps during a body segment.
type SegmentKind int

const (
	// Stance segments move the body with all four feet on the ground.
	Stance SegmentKind = iota

	// Step segments move the body while legs swing to their next footholds.
	Step
)

func (k SegmentKind) String() string {
	switch k {
	case Stance:
		return "stance"
	case Step:
		return "step"
	default:
		return fmt.Sprintf("SegmentKind(%d)", int(k))
	}
}

// BodySegment is one piece of the commanded body trajectory.
type BodySegment struct {
	Kind     SegmentKind
	Duration float64

	// End is the commanded body position, velocity and acceleration at the end
	// of the segment. Only X and Y are used; the height comes from the standing
	// height.
	End spline.Point3d

	// Steps is the number of footholds, taken in order from the schedule, which
	// are reached at the end of a Step segment. Zero means one.
	Steps int
}

func (s BodySegment) steps() int {
	if s.Kind != Step {
		return 0
	}

	if s.Steps < 1 {
		return 1
	}

	return s.Steps
}

// SplineNode is a state which the robot should reach T seconds after the
// previous node.
type SplineNode struct {
	State State

	// Ori is the body orientation as (roll, pitch, yaw).
	Ori math3d.Vector3

	T float64
}
