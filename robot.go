package stride

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "stride",
})

type Component interface {
	Boot() error
	Tick(time.Time) error
}

// Finisher is implemented by components which run out of work, such as one
// playing back a trajectory of fixed length.
type Finisher interface {
	Done() bool
}

type Robot struct {
	Components []Component
}

func New() *Robot {
	return &Robot{
		Components: []Component{},
	}
}

// Add registers a component to receive ticks every frame.
func (r *Robot) Add(c Component) {
	r.Components = append(r.Components, c)
}

// Boot calls Boot on each component.
func (r *Robot) Boot() error {
	for _, c := range r.Components {
		err := c.Boot()
		if err != nil {
			return err
		}
	}

	return nil
}

// Tick calls Tick on each component, stopping at the first error.
func (r *Robot) Tick(now time.Time) error {
	for i, c := range r.Components {
		err := c.Tick(now)
		if err != nil {
			return fmt.Errorf("component %d (%T): %w", i, c, err)
		}
	}

	return nil
}

// Finished returns true if there is at least one Finisher, and every one of
// them is done.
func (r *Robot) Finished() bool {
	n := 0
	for _, c := range r.Components {
		f, ok := c.(Finisher)
		if !ok {
			continue
		}

		if !f.Done() {
			return false
		}
		n++
	}

	return n > 0
}

// Run ticks every interval until the context is cancelled, a component fails,
// or every Finisher is done.
func (r *Robot) Run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown requested")
			return nil

		case now := <-t.C:
			err := r.Tick(now)
			if err != nil {
				return err
			}

			if r.Finished() {
				log.Info("all components finished")
				return nil
			}
		}
	}
}
