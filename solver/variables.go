package solver

import (
	"errors"
	"fmt"

	"github.com/adammck/stride/nodes"
)

var (
	ErrDuplicateSet = errors.New("duplicate variable set")
	ErrUnknownSet   = errors.New("unknown variable set")
	ErrValueCount   = errors.New("wrong number of variable values")
)

// Variables is one named block of optimization variables, each with a bound.
// nodes.PhaseNodes satisfies it.
type Variables interface {
	Name() string
	Rows() int
	Values() []float64
	SetValues(x []float64) error
	Bounds() []nodes.Bound
}

// Composite concatenates variable sets into one flat vector, in the order they
// were added.
type Composite struct {
	sets    []Variables
	offsets map[string]int
}

func NewComposite(sets ...Variables) (*Composite, error) {
	c := &Composite{
		offsets: map[string]int{},
	}

	for _, s := range sets {
		err := c.Add(s)
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Add appends a variable set to the end of the vector.
func (c *Composite) Add(v Variables) error {
	if _, ok := c.offsets[v.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSet, v.Name())
	}

	c.offsets[v.Name()] = c.Rows()
	c.sets = append(c.sets, v)
	return nil
}

func (c *Composite) Name() string {
	return "composite"
}

func (c *Composite) Rows() int {
	n := 0
	for _, s := range c.sets {
		n += s.Rows()
	}

	return n
}

// Sets returns the variable sets in vector order.
func (c *Composite) Sets() []Variables {
	return append([]Variables(nil), c.sets...)
}

// Get returns the variable set with the given name, and the index of its
// first row in the flat vector.
func (c *Composite) Get(name string) (Variables, int, error) {
	off, ok := c.offsets[name]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrUnknownSet, name)
	}

	for _, s := range c.sets {
		if s.Name() == name {
			return s, off, nil
		}
	}

	return nil, 0, fmt.Errorf("%w: %s", ErrUnknownSet, name)
}

func (c *Composite) Values() []float64 {
	x := make([]float64, 0, c.Rows())
	for _, s := range c.sets {
		x = append(x, s.Values()...)
	}

	return x
}

func (c *Composite) Bounds() []nodes.Bound {
	b := make([]nodes.Bound, 0, c.Rows())
	for _, s := range c.sets {
		b = append(b, s.Bounds()...)
	}

	return b
}

// SetValues scatters a flat vector back into each set.
func (c *Composite) SetValues(x []float64) error {
	if len(x) != c.Rows() {
		return fmt.Errorf("%w: got %d, want %d", ErrValueCount, len(x), c.Rows())
	}

	off := 0
	for _, s := range c.sets {
		n := s.Rows()
		err := s.SetValues(x[off : off+n])
		if err != nil {
			return fmt.Errorf("setting %s: %w", s.Name(), err)
		}

		off += n
	}

	return nil
}
