// Package viz turns a trajectory into display primitives, and draws them.
package viz

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/adammck/stride/math3d"
	"github.com/adammck/stride/player"
)

var ErrInvalidStep = errors.New("sample step must be positive")

type MarkerKind int

const (
	Sphere MarkerKind = iota
	LineStrip
	Polygon
)

func (k MarkerKind) String() string {
	switch k {
	case Sphere:
		return "sphere"
	case LineStrip:
		return "line_strip"
	case Polygon:
		return "polygon"
	default:
		return fmt.Sprintf("MarkerKind(%d)", int(k))
	}
}

// Marker namespaces.
const (
	NSStart     = "start_stance"
	NSFootholds = "footholds"
	NSBody      = "body"
	NSSwing     = "swing"
	NSSupport   = "support"
)

// Marker is one thing to draw, in world coordinates.
type Marker struct {
	Kind   MarkerKind
	NS     string
	Points []math3d.Vector3
	Color  color.RGBA
}

var (
	bodyColor  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	startColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	idleColor  = color.RGBA{R: 200, G: 200, B: 200, A: 96}
)

// LegColor returns the colour used for everything belonging to a leg.
func LegColor(leg player.LegID) color.RGBA {
	switch leg {
	case player.LF:
		return color.RGBA{R: 220, G: 50, B: 47, A: 255}
	case player.RF:
		return color.RGBA{R: 38, G: 139, B: 210, A: 255}
	case player.LH:
		return color.RGBA{R: 133, G: 153, B: 0, A: 255}
	case player.RH:
		return color.RGBA{R: 181, G: 137, B: 0, A: 255}
	default:
		panic("invalid leg")
	}
}

func translucent(c color.RGBA) color.RGBA {
	c.A = 96
	return c
}

// Markers samples the trajectory every dt seconds and returns:
//
//   - the starting stance and every foothold, as spheres
//   - the path of the body, as one line strip
//   - the path of each swing, as a line strip per swing
//   - the support polygon under each node, coloured by the stepping leg
func Markers(sp *player.Spliner, dt float64) ([]Marker, error) {
	if dt <= 0 {
		return nil, ErrInvalidStep
	}

	states, err := Sample(sp, dt)
	if err != nil {
		return nil, err
	}

	nodes := sp.Nodes()
	markers := []Marker{}

	for _, leg := range player.AllLegs {
		markers = append(markers, Marker{
			Kind:   Sphere,
			NS:     NSStart,
			Points: []math3d.Vector3{nodes[0].State.Feet[leg]},
			Color:  startColor,
		})
	}

	for _, n := range nodes[1:] {
		for _, leg := range player.AllLegs {
			if n.State.Swing[leg] {
				markers = append(markers, Marker{
					Kind:   Sphere,
					NS:     NSFootholds,
					Points: []math3d.Vector3{n.State.Feet[leg]},
					Color:  LegColor(leg),
				})
			}
		}
	}

	body := make([]math3d.Vector3, len(states))
	for i, st := range states {
		body[i] = st.Base.Pos
	}
	markers = append(markers, Marker{Kind: LineStrip, NS: NSBody, Points: body, Color: bodyColor})

	markers = append(markers, swingPaths(states)...)

	for _, n := range nodes[1:] {
		poly := n.State.SupportPolygon()
		if len(poly) < 3 {
			continue
		}

		c := idleColor
		for _, leg := range player.AllLegs {
			if n.State.Swing[leg] {
				c = translucent(LegColor(leg))
				break
			}
		}

		markers = append(markers, Marker{Kind: Polygon, NS: NSSupport, Points: poly, Color: c})
	}

	return markers, nil
}

// swingPaths returns one line strip per contiguous run of samples in which a
// leg is swinging. Each starts from the sample before the leg lifted.
func swingPaths(states []player.State) []Marker {
	markers := []Marker{}

	for _, leg := range player.AllLegs {
		var path []math3d.Vector3

		flush := func() {
			if len(path) > 1 {
				markers = append(markers, Marker{Kind: LineStrip, NS: NSSwing, Points: path, Color: LegColor(leg)})
			}
			path = nil
		}

		for i, st := range states {
			if !st.Swing[leg] {
				if path != nil {
					path = append(path, st.Feet[leg])
				}
				flush()
				continue
			}

			if path == nil && i > 0 {
				path = append(path, states[i-1].Feet[leg])
			}
			path = append(path, st.Feet[leg])
		}

		flush()
	}

	return markers
}

// Sample returns the state every dt seconds from the start of the trajectory,
// always including its end.
func Sample(sp *player.Spliner, dt float64) ([]player.State, error) {
	times, err := sampleTimes(sp.GetTotalTime(), dt)
	if err != nil {
		return nil, err
	}

	states := make([]player.State, len(times))
	for i, t := range times {
		st, err := sp.GetSplinedState(t)
		if err != nil {
			return nil, fmt.Errorf("sampling at %.3fs: %w", t, err)
		}

		states[i] = st
	}

	return states, nil
}

func sampleTimes(total, dt float64) ([]float64, error) {
	if dt <= 0 {
		return nil, ErrInvalidStep
	}

	times := []float64{}
	for i := 0; float64(i)*dt < total; i++ {
		times = append(times, float64(i)*dt)
	}

	return append(times, total), nil
}
