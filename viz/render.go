package viz

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adammck/stride/math3d"
	"github.com/adammck/stride/player"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "viz",
})

func xys(points []math3d.Vector3) plotter.XYs {
	pts := make(plotter.XYs, len(points))
	for i, p := range points {
		pts[i] = plotter.XY{X: p.X, Y: p.Y}
	}

	return pts
}

// RenderTop draws the markers from above, onto the X/Y plane, and saves the
// plot to path. The format is chosen by the extension.
func RenderTop(markers []Marker, path string) error {
	p := plot.New()
	p.Title.Text = "Footholds and body path (top)"
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	// Polygons go underneath everything else.
	for _, m := range markers {
		if m.Kind != Polygon {
			continue
		}

		poly, err := plotter.NewPolygon(xys(m.Points))
		if err != nil {
			return err
		}
		poly.Color = m.Color
		poly.LineStyle.Width = vg.Points(0.5)
		poly.LineStyle.Color = m.Color
		p.Add(poly)
	}

	for _, m := range markers {
		switch m.Kind {
		case LineStrip:
			line, err := plotter.NewLine(xys(m.Points))
			if err != nil {
				return err
			}
			line.Color = m.Color
			line.Width = vg.Points(1)
			p.Add(line)

			if m.NS == NSBody {
				p.Legend.Add("body", line)
			}

		case Sphere:
			sc, err := plotter.NewScatter(xys(m.Points))
			if err != nil {
				return err
			}
			sc.GlyphStyle.Color = m.Color
			sc.GlyphStyle.Radius = vg.Points(3)
			sc.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(sc)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return save(p, path)
}

// RenderHeights samples the trajectory every dt seconds and plots the height
// of the body and of each foot against time.
func RenderHeights(sp *player.Spliner, dt float64, path string) error {
	times, err := sampleTimes(sp.GetTotalTime(), dt)
	if err != nil {
		return err
	}

	states, err := Sample(sp, dt)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Heights"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Z (m)"

	body := make(plotter.XYs, len(states))
	feet := player.LegDataMap[plotter.XYs]{}
	for i, st := range states {
		body[i] = plotter.XY{X: times[i], Y: st.Base.Pos.Z}
		for _, leg := range player.AllLegs {
			feet[leg] = append(feet[leg], plotter.XY{X: times[i], Y: st.Feet[leg].Z})
		}
	}

	line, err := plotter.NewLine(body)
	if err != nil {
		return err
	}
	line.Color = bodyColor
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add("body", line)

	for _, leg := range player.AllLegs {
		line, err := plotter.NewLine(feet[leg])
		if err != nil {
			return err
		}
		line.Color = LegColor(leg)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(leg.String(), line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return save(p, path)
}

func save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	log.Infof("wrote %s", path)
	return nil
}
