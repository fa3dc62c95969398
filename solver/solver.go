package solver

import (
	"fmt"

	"github.com/adammck/stride/nodes"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/optimize"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "solver",
})

// Problem is an unconstrained cost over the flat variable vector. Bounds are
// passed separately.
type Problem struct {
	Cost func(x []float64) float64
}

// Solver finds a vector within bounds which minimizes the cost, starting from
// x0.
type Solver interface {
	Solve(p Problem, x0 []float64, bounds []nodes.Bound) ([]float64, error)
}

// Optimize runs the solver over the current values of vars, and writes the
// result back into them. The cost is evaluated with the candidate vector
// already written into vars, so it can read the nodes directly.
func Optimize(s Solver, vars Variables, cost func() float64) error {
	p := Problem{
		Cost: func(x []float64) float64 {
			err := vars.SetValues(x)
			if err != nil {
				panic(err)
			}

			return cost()
		},
	}

	x, err := s.Solve(p, vars.Values(), vars.Bounds())
	if err != nil {
		return err
	}

	return vars.SetValues(x)
}

// Gonum solves with gonum's optimize package. Variables pinned by an equality
// bound are held at that value and hidden from the method; range bounds are
// enforced by clamping every candidate.
type Gonum struct {
	// Method defaults to Nelder-Mead, which needs no gradient.
	Method optimize.Method

	// FuncEvaluations limits the number of cost evaluations. Zero means no
	// limit.
	FuncEvaluations int
}

func (g *Gonum) Solve(p Problem, x0 []float64, bounds []nodes.Bound) ([]float64, error) {
	if len(x0) != len(bounds) {
		return nil, fmt.Errorf("%w: %d values, %d bounds", ErrValueCount, len(x0), len(bounds))
	}

	full := make([]float64, len(x0))
	free := []int{}
	for i, b := range bounds {
		if b.IsEquality() {
			full[i] = b.Lower
			continue
		}

		full[i] = b.Clamp(x0[i])
		free = append(free, i)
	}

	log.Debugf("solving %d variables (%d fixed)", len(free), len(x0)-len(free))
	if len(free) == 0 {
		return full, nil
	}

	expand := func(z []float64) []float64 {
		x := append([]float64(nil), full...)
		for j, i := range free {
			x[i] = bounds[i].Clamp(z[j])
		}

		return x
	}

	z0 := make([]float64, len(free))
	for j, i := range free {
		z0[j] = full[i]
	}

	method := g.Method
	if method == nil {
		method = &optimize.NelderMead{}
	}

	problem := optimize.Problem{
		Func: func(z []float64) float64 {
			return p.Cost(expand(z))
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: g.FuncEvaluations,
	}

	res, err := optimize.Minimize(problem, z0, settings, method)
	if err != nil {
		return nil, fmt.Errorf("minimize: %w", err)
	}

	log.Debugf("finished: status=%s f=%g evals=%d", res.Status, res.F, res.Stats.FuncEvaluations)
	return expand(res.X), nil
}
