package stride

import (
	"fmt"

	"github.com/adammck/stride/config"
	"github.com/adammck/stride/gait"
	"github.com/adammck/stride/nodes"
	"github.com/adammck/stride/player"
	"github.com/adammck/stride/solver"
)

// Fractions of each polynomial at which a fitted trajectory is compared with
// the played back one.
var fitSamples = []float64{0.25, 0.5, 0.75, 1}

// Trajectory is the walk described by a config: the gait schedule, the spliner
// which plays it back, and the phase nodes which parameterize the motion and
// force of each leg over the same phases.
type Trajectory struct {
	Initial  player.State
	Schedule gait.Schedule
	Spliner  *player.Spliner
	Motion   player.LegDataMap[*nodes.PhaseNodes]
	Force    player.LegDataMap[*nodes.PhaseNodes]
}

func Build(cfg *config.Config) (*Trajectory, error) {
	initial := gait.Standing(cfg.Gait)

	sched, err := gait.Plan(cfg.Gait, initial)
	if err != nil {
		return nil, fmt.Errorf("planning: %w", err)
	}

	sp, err := player.NewSpliner(cfg.Spliner)
	if err != nil {
		return nil, err
	}

	err = sp.Init(initial, sched.Segments, sched.Footholds, sched.Height)
	if err != nil {
		return nil, fmt.Errorf("splining: %w", err)
	}

	tr := &Trajectory{
		Initial:  initial,
		Schedule: sched,
		Spliner:  sp,
	}

	nodeSeq := sp.Nodes()
	last := nodeSeq[len(nodeSeq)-1]

	for _, leg := range player.AllLegs {
		phases := sched.PhaseDurations[leg]
		contact := sched.ContactAtStart[leg]

		tr.Motion[leg] = nodes.New(len(phases), contact, fmt.Sprintf("%s/%s", leg, nodes.Motion), cfg.Nodes.PolysPerSwing, nodes.Motion)
		tr.Force[leg] = nodes.New(len(phases), contact, fmt.Sprintf("%s/%s", leg, nodes.Force), cfg.Nodes.PolysPerSwing, nodes.Force)

		d, err := tr.Motion[leg].PhaseToPolyDurations(phases)
		if err != nil {
			return nil, err
		}

		err = tr.Motion[leg].InitTowardsGoal(initial.Feet[leg], last.State.Feet[leg], d)
		if err != nil {
			return nil, err
		}
	}

	log.Debugf("built trajectory: %.2fs, %d footholds", sp.GetTotalTime(), len(sched.Footholds))
	return tr, nil
}

// Variables returns every phase node variable of every leg as one vector:
// the motion of each leg, then the force of each leg.
func (tr *Trajectory) Variables() (*solver.Composite, error) {
	c, err := solver.NewComposite()
	if err != nil {
		return nil, err
	}

	for _, set := range [][player.NumLegs]*nodes.PhaseNodes{tr.Motion, tr.Force} {
		for _, pn := range set {
			err := c.Add(pn)
			if err != nil {
				return nil, err
			}
		}
	}

	return c, nil
}

// Fit moves the motion nodes of every leg so that the curve through them
// follows the foot of the played back trajectory.
func (tr *Trajectory) Fit(s solver.Solver) error {
	for _, leg := range player.AllLegs {
		cost, err := tr.fitCost(leg)
		if err != nil {
			return err
		}

		before := cost()
		err = solver.Optimize(s, tr.Motion[leg], cost)
		if err != nil {
			return fmt.Errorf("fitting %s: %w", leg, err)
		}

		log.Infof("fitted %s: cost %.6f -> %.6f", leg, before, cost())
	}

	return nil
}

// fitCost returns the squared distance between the curve through the motion
// nodes of a leg and the foot of the spliner, summed over samples of every
// polynomial.
func (tr *Trajectory) fitCost(leg player.LegID) (func() float64, error) {
	pn := tr.Motion[leg]
	durations, err := pn.PhaseToPolyDurations(tr.Schedule.PhaseDurations[leg])
	if err != nil {
		return nil, err
	}

	// The target doesn't change, so sample it once.
	times := []float64{}
	start := 0.0
	for _, d := range durations {
		for _, f := range fitSamples {
			times = append(times, start+f*d)
		}
		start += d
	}

	targets := make([]player.State, len(times))
	for i, t := range times {
		targets[i], err = tr.Spliner.GetSplinedState(t)
		if err != nil {
			return nil, err
		}
	}

	return func() float64 {
		seq, err := pn.Spline(durations)
		if err != nil {
			panic(err)
		}

		sum := 0.0
		for i, t := range times {
			d := seq.GetPoint(t).Pos.Subtract(targets[i].Feet[leg])
			sum += d.X*d.X + d.Y*d.Y + d.Z*d.Z
		}

		return sum
	}, nil
}
