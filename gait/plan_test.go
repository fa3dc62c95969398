package gait

import (
	"errors"
	"math"
	"testing"

	"github.com/adammck/stride/math3d"
	"github.com/adammck/stride/nodes"
	"github.com/adammck/stride/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func params(k Kind, steps int) Params {
	p := DefaultParams()
	p.Kind = k
	p.Steps = steps
	return p
}

func TestPlanCrawl(t *testing.T) {
	p := params(Crawl, 4)
	initial := Standing(p)

	s, err := Plan(p, initial)
	require.NoError(t, err)

	require.Len(t, s.Segments, 9)
	require.Len(t, s.Footholds, 4)
	assert.InDelta(t, 5.8, s.TotalTime(), 1e-9)
	assert.Equal(t, p.StandingHeight, s.Height)

	order := []player.LegID{player.LH, player.LF, player.RH, player.RF}
	for i, fh := range s.Footholds {
		assert.Equal(t, order[i], fh.Leg)
		exp := initial.Feet[fh.Leg].Add(math3d.Vector3{X: p.StepLength})
		assert.InDelta(t, exp.X, fh.Pos.X, 1e-9)
		assert.InDelta(t, exp.Y, fh.Pos.Y, 1e-9)
	}

	for i, seg := range s.Segments {
		if i%2 == 0 {
			assert.Equal(t, player.Stance, seg.Kind, "segment %d", i)
		} else {
			assert.Equal(t, player.Step, seg.Kind, "segment %d", i)
			assert.Equal(t, 1, seg.Steps, "segment %d", i)
		}
	}

	// A whole crawl cycle moves the body by one step length.
	last := s.Segments[len(s.Segments)-1]
	assert.InDelta(t, p.StepLength, last.End.Pos.X, 1e-9)

	assert.InDeltaSlice(t, []float64{0.6, 0.7, 4.5}, s.PhaseDurations[player.LH], 1e-9)
	assert.InDeltaSlice(t, []float64{1.9, 0.7, 3.2}, s.PhaseDurations[player.LF], 1e-9)
	assert.InDeltaSlice(t, []float64{4.5, 0.7, 0.6}, s.PhaseDurations[player.RF], 1e-9)

	for _, leg := range player.AllLegs {
		assert.True(t, s.ContactAtStart[leg])
		assert.InDelta(t, s.TotalTime(), floats.Sum(s.PhaseDurations[leg]), 1e-9, "%s", leg)
	}
}

func TestPlanTrot(t *testing.T) {
	s, err := Plan(params(Trot, 2), Standing(DefaultParams()))
	require.NoError(t, err)

	require.Len(t, s.Segments, 5)
	assert.Equal(t, 2, s.Segments[1].Steps)
	assert.Equal(t, 2, s.Segments[3].Steps)

	legs := []player.LegID{}
	for _, fh := range s.Footholds {
		legs = append(legs, fh.Leg)
	}
	assert.Equal(t, []player.LegID{player.LF, player.RH, player.RF, player.LH}, legs)

	assert.Len(t, s.PhaseDurations[player.LF], 3)
	assert.Len(t, s.PhaseDurations[player.LH], 3)
}

func TestPlanNoSteps(t *testing.T) {
	p := params(Crawl, 0)
	s, err := Plan(p, Standing(p))
	require.NoError(t, err)

	require.Len(t, s.Segments, 1)
	assert.Empty(t, s.Footholds)
	for _, leg := range player.AllLegs {
		assert.Equal(t, []float64{p.StanceDuration}, s.PhaseDurations[leg])
	}
}

func TestPlanFollowsHeading(t *testing.T) {
	p := params(Trot, 1)
	initial := Standing(p)
	initial.Base.Ori = math3d.EulerAngles{Yaw: math.Pi / 2}.Quat()

	s, err := Plan(p, initial)
	require.NoError(t, err)

	fh := s.Footholds[0]
	assert.InDelta(t, initial.Feet[fh.Leg].X, fh.Pos.X, 1e-9)
	assert.InDelta(t, initial.Feet[fh.Leg].Y+p.StepLength, fh.Pos.Y, 1e-9)
}

func TestPlanInvalid(t *testing.T) {
	p := params("gallop", 1)
	_, err := Plan(p, Standing(p))
	assert.True(t, errors.Is(err, ErrUnknownKind))

	for _, mod := range []func(*Params){
		func(p *Params) { p.Steps = -1 },
		func(p *Params) { p.SwingDuration = 0 },
		func(p *Params) { p.StandingHeight = 0 },
		func(p *Params) { p.StanceWidth = -1 },
	} {
		p := DefaultParams()
		mod(&p)
		assert.True(t, errors.Is(p.Validate(), ErrInvalidParams), "%+v", p)
	}
}

// The schedule drives both consumers: the spliner plays it back, and the
// phase nodes of every leg cover the same time.
func TestScheduleDrivesSplinerAndNodes(t *testing.T) {
	p := params(Crawl, 4)
	initial := Standing(p)
	s, err := Plan(p, initial)
	require.NoError(t, err)

	sp, err := player.NewSpliner(player.DefaultParams())
	require.NoError(t, err)
	require.NoError(t, sp.Init(initial, s.Segments, s.Footholds, s.Height))
	assert.InDelta(t, s.TotalTime(), sp.GetTotalTime(), 1e-9)

	end, err := sp.GetSplinedState(sp.GetTotalTime())
	require.NoError(t, err)
	for _, fh := range s.Footholds {
		assert.InDelta(t, fh.Pos.X, end.Feet[fh.Leg].X, 1e-9)
	}

	for _, leg := range player.AllLegs {
		pn := nodes.New(len(s.PhaseDurations[leg]), s.ContactAtStart[leg], leg.String(), 2, nodes.Motion)
		d, err := pn.PhaseToPolyDurations(s.PhaseDurations[leg])
		require.NoError(t, err)
		assert.InDelta(t, s.TotalTime(), floats.Sum(d), 1e-9)
		assert.Equal(t, []int{2}, pn.NonConstantNodeIDs())
	}
}

func TestPhaseBuilder(t *testing.T) {
	b := newPhaseBuilder()
	b.stance(0.5)
	b.swing([]player.LegID{player.LF}, 0.3)
	b.swing([]player.LegID{player.LF}, 0.2)
	b.stance(0.4)
	b.swing([]player.LegID{player.RH}, 0.1)

	phases := b.finish()
	assert.InDeltaSlice(t, []float64{0.5, 0.5, 0.5}, phases[player.LF], 1e-9)
	assert.InDeltaSlice(t, []float64{1.5}, phases[player.RF], 1e-9)
	assert.InDeltaSlice(t, []float64{1.5}, phases[player.LH], 1e-9)
	assert.InDeltaSlice(t, []float64{1.4, 0.1}, phases[player.RH], 1e-9)
}

// Whole planned walks play back without jumps where one segment hands over
// to the next, and every leg's phases cover the whole walk.
func TestPlannedWalksPlayBackContinuously(t *testing.T) {
	for _, p := range []Params{params(Crawl, 8), params(Trot, 4)} {
		initial := Standing(p)
		s, err := Plan(p, initial)
		require.NoError(t, err)

		sp, err := player.NewSpliner(player.DefaultParams())
		require.NoError(t, err)
		require.NoError(t, sp.Init(initial, s.Segments, s.Footholds, s.Height))

		for _, leg := range player.AllLegs {
			assert.InDelta(t, sp.GetTotalTime(), floats.Sum(s.PhaseDurations[leg]), 1e-9, "%s %s", p.Kind, leg)
		}

		boundary := 0.0
		for _, n := range sp.Nodes()[1 : len(sp.Nodes())-1] {
			boundary += n.T
			before, err := sp.GetSplinedState(boundary - 1e-9)
			require.NoError(t, err)
			after, err := sp.GetSplinedState(boundary + 1e-9)
			require.NoError(t, err)

			assert.InDelta(t, 0, before.Base.Pos.Distance(after.Base.Pos), 1e-6, "%s body at %.2f", p.Kind, boundary)
			for _, leg := range player.AllLegs {
				assert.InDelta(t, 0, before.Feet[leg].Distance(after.Feet[leg]), 1e-6, "%s %s at %.2f", p.Kind, leg, boundary)
			}
		}
	}
}
