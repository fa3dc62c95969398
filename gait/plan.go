package gait

import (
	"math"

	"github.com/adammck/stride/math3d"
	"github.com/adammck/stride/player"
	"github.com/adammck/stride/spline"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "gait",
})

// Schedule is everything the trajectory needs to know about a walk: the body
// segments and footholds for the spliner, and the contact phases of each leg
// for the phase nodes.
type Schedule struct {
	Segments  []player.BodySegment
	Footholds []player.Foothold

	// PhaseDurations holds the duration of every phase of each leg, starting
	// with the stance phase it is in at the start.
	PhaseDurations player.LegDataMap[[]float64]
	ContactAtStart player.LegDataMap[bool]

	Height float64
}

// TotalTime returns the duration of the whole walk.
func (s Schedule) TotalTime() float64 {
	total := 0.0
	for _, seg := range s.Segments {
		total += seg.Duration
	}

	return total
}

// Standing returns the robot at rest at the origin, facing +X, with its feet
// at the nominal stance.
func Standing(p Params) player.State {
	x := p.StanceLength / 2
	y := p.StanceWidth / 2

	return player.State{
		Base: player.BaseState{
			Pos: math3d.Vector3{X: 0, Y: 0, Z: p.StandingHeight},
			Ori: math3d.IdentityOrientation.Quat(),
		},
		Feet: player.LegDataMap[math3d.Vector3]{
			player.LF: {X: x, Y: y},
			player.RF: {X: x, Y: -y},
			player.LH: {X: -x, Y: y},
			player.RH: {X: -x, Y: -y},
		},
	}
}

// Plan walks the robot straight ahead (along its heading) from the initial
// state. Each step is preceded by a stance segment in which the body shifts
// forward by its share of the step length, and the walk ends with a stance
// segment in which the body settles.
func Plan(p Params, initial player.State) (Schedule, error) {
	err := p.Validate()
	if err != nil {
		return Schedule{}, err
	}

	gs, _ := groups(p.Kind)
	yaw := initial.Base.Euler().Yaw
	dir := math3d.Vector3{X: math.Cos(yaw), Y: math.Sin(yaw)}
	shift := dir.MultiplyByScalar(p.StepLength / float64(len(gs)))

	s := Schedule{Height: p.StandingHeight}
	body := initial.Base.Pos
	feet := initial.Feet
	b := newPhaseBuilder()

	for step := 0; step < p.Steps; step++ {
		g := gs[step%len(gs)]

		body = body.Add(shift)
		s.Segments = append(s.Segments, bodySegment(player.Stance, p.StanceDuration, body, 0))
		b.stance(p.StanceDuration)

		for _, leg := range g {
			feet[leg] = feet[leg].Add(dir.MultiplyByScalar(p.StepLength))
			s.Footholds = append(s.Footholds, player.Foothold{Leg: leg, Pos: feet[leg]})
		}

		s.Segments = append(s.Segments, bodySegment(player.Step, p.SwingDuration, body, len(g)))
		b.swing(g, p.SwingDuration)
	}

	s.Segments = append(s.Segments, bodySegment(player.Stance, p.StanceDuration, body, 0))
	b.stance(p.StanceDuration)

	s.PhaseDurations = b.finish()
	for _, leg := range player.AllLegs {
		s.ContactAtStart[leg] = true
	}

	log.Debugf("planned %s: %d segments, %d footholds, %.2fs", p.Kind, len(s.Segments), len(s.Footholds), s.TotalTime())
	return s, nil
}

func bodySegment(k player.SegmentKind, d float64, pos math3d.Vector3, steps int) player.BodySegment {
	return player.BodySegment{
		Kind:     k,
		Duration: d,
		End:      spline.Point3d{Pos: pos},
		Steps:    steps,
	}
}

// phaseBuilder accumulates the alternating contact phases of each leg, all of
// which start in stance.
type phaseBuilder struct {
	phases  player.LegDataMap[[]float64]
	current player.LegDataMap[float64]
	inAir   player.LegDataMap[bool]
}

func newPhaseBuilder() *phaseBuilder {
	return &phaseBuilder{}
}

// stance adds time during which every leg is on the ground.
func (b *phaseBuilder) stance(d float64) {
	for _, leg := range player.AllLegs {
		b.enter(leg, false)
		b.current[leg] += d
	}
}

// swing adds time during which the given legs are in the air.
func (b *phaseBuilder) swing(legs []player.LegID, d float64) {
	lifted := player.LegDataMap[bool]{}
	for _, leg := range legs {
		lifted[leg] = true
	}

	for _, leg := range player.AllLegs {
		b.enter(leg, lifted[leg])
		b.current[leg] += d
	}
}

// enter closes the current phase of a leg if its contact state changes.
func (b *phaseBuilder) enter(leg player.LegID, swing bool) {
	if b.inAir[leg] == swing {
		return
	}

	b.phases[leg] = append(b.phases[leg], b.current[leg])
	b.current[leg] = 0
	b.inAir[leg] = swing
}

func (b *phaseBuilder) finish() player.LegDataMap[[]float64] {
	out := player.LegDataMap[[]float64]{}
	for _, leg := range player.AllLegs {
		out[leg] = append(append([]float64(nil), b.phases[leg]...), b.current[leg])
	}

	return out
}
