package gait

import (
	"errors"
	"fmt"

	"github.com/adammck/stride/player"
)

var (
	ErrUnknownKind   = errors.New("unknown gait")
	ErrInvalidParams = errors.New("invalid gait params")
)

type Kind string

const (
	// Crawl lifts one leg at a time, so three feet are always down.
	Crawl Kind = "crawl"

	// Trot lifts diagonal pairs of legs together.
	Trot Kind = "trot"
)

// Params describe a straight walk, in meters and seconds.
type Params struct {
	Kind  Kind `yaml:"kind"`
	Steps int  `yaml:"steps"`

	// StepLength is how far each foot moves per step, and so how far the body
	// moves per full cycle of the gait.
	StepLength float64 `yaml:"step_length"`

	// StanceDuration is how long all four feet are down between steps, while
	// the body shifts forward. SwingDuration is how long each step takes.
	StanceDuration float64 `yaml:"stance_duration"`
	SwingDuration  float64 `yaml:"swing_duration"`

	StandingHeight float64 `yaml:"standing_height"`

	// The nominal distances between the left and right feet, and between the
	// front and hind feet.
	StanceWidth  float64 `yaml:"stance_width"`
	StanceLength float64 `yaml:"stance_length"`
}

func DefaultParams() Params {
	return Params{
		Kind:           Crawl,
		Steps:          8,
		StepLength:     0.15,
		StanceDuration: 0.6,
		SwingDuration:  0.7,
		StandingHeight: 0.58,
		StanceWidth:    0.5,
		StanceLength:   0.75,
	}
}

func (p Params) Validate() error {
	if _, err := groups(p.Kind); err != nil {
		return err
	}

	switch {
	case p.Steps < 0:
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalidParams, p.Steps)
	case p.StanceDuration <= 0 || p.SwingDuration <= 0:
		return fmt.Errorf("%w: durations must be positive", ErrInvalidParams)
	case p.StandingHeight <= 0:
		return fmt.Errorf("%w: standing height must be positive, got %g", ErrInvalidParams, p.StandingHeight)
	case p.StanceWidth <= 0 || p.StanceLength <= 0:
		return fmt.Errorf("%w: stance must have positive width and length", ErrInvalidParams)
	}

	return nil
}

// groups returns the sets of legs which swing together, in the order they
// swing.
func groups(k Kind) ([][]player.LegID, error) {
	switch k {

	// One leg at a time (four groups). Each hind leg steps just before the
	// front leg on the same side, so the front foot always has somewhere to
	// go.
	//
	// |LH|LF|RH|RF|
	case Crawl:
		return [][]player.LegID{
			{player.LH},
			{player.LF},
			{player.RH},
			{player.RF},
		}, nil

	// Diagonal pairs (two groups).
	//
	// |LF+RH|RF+LH|
	case Trot:
		return [][]player.LegID{
			{player.LF, player.RH},
			{player.RF, player.LH},
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
}
