package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/adammck/stride"
	"github.com/adammck/stride/components/stream"
	fakeserial "github.com/adammck/stride/fake/serial"
	"github.com/adammck/stride/nodes"
	"github.com/adammck/stride/solver"
	"github.com/adammck/stride/viz"
	"github.com/jacobsa/go-serial/serial"
	"github.com/urfave/cli/v2"
)

func plotCommand() *cli.Command {
	return &cli.Command{
		Name:  "plot",
		Usage: "Render the planned trajectory to PNG files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Value: "plots",
				Usage: "directory to write top.png and height.png to",
			},
			&cli.Float64Flag{
				Name:  "dt",
				Value: 0.02,
				Usage: "seconds between samples",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			tr, err := stride.Build(cfg)
			if err != nil {
				return err
			}

			markers, err := viz.Markers(tr.Spliner, c.Float64("dt"))
			if err != nil {
				return err
			}

			out := c.String("out")
			err = viz.RenderTop(markers, filepath.Join(out, "top.png"))
			if err != nil {
				return err
			}

			return viz.RenderHeights(tr.Spliner, c.Float64("dt"), filepath.Join(out, "height.png"))
		},
	}
}

func varsCommand() *cli.Command {
	return &cli.Command{
		Name:  "vars",
		Usage: "Print the optimization variables of every leg",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "fit",
				Usage: "fit the motion nodes to the played back trajectory first",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			tr, err := stride.Build(cfg)
			if err != nil {
				return err
			}

			if c.Bool("fit") {
				err = tr.Fit(&solver.Gonum{FuncEvaluations: cfg.Solver.MaxEvaluations})
				if err != nil {
					return err
				}
			}

			vars, err := tr.Variables()
			if err != nil {
				return err
			}

			return printVariables(c.App.Writer, vars)
		},
	}
}

// printVariables writes one line per variable: the set it belongs to, its
// index in the flat vector, the node scalars it backs, its bound and value.
func printVariables(w io.Writer, vars *solver.Composite) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SET\tROW\tNODES\tBOUND\tVALUE")

	row := 0
	for _, set := range vars.Sets() {
		values := set.Values()
		bounds := set.Bounds()

		idx, ok := set.(interface {
			IndexMap() nodes.IndexMap
		})

		for i := range values {
			backs := "-"
			if ok {
				nvis, err := idx.IndexMap().NodeValues(i)
				if err != nil {
					return err
				}
				backs = fmt.Sprint(nvis)
			}

			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%+.4f\n", set.Name(), row, backs, bounds[i], values[i])
			row++
		}
	}

	return tw.Flush()
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Stream the trajectory to the tracking controller",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "stream to an in-memory port instead of the serial port",
			},
			&cli.StringFlag{
				Name:  "port",
				Usage: "the serial port path (overrides stream.port)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			if c.IsSet("port") {
				cfg.Stream.Port = c.String("port")
			}

			tr, err := stride.Build(cfg)
			if err != nil {
				return err
			}

			var port io.ReadWriteCloser
			var fake *fakeserial.FakeSerial

			if c.Bool("dry-run") {
				fake = fakeserial.New()
				port = fake
			} else {
				sOpts := serial.OpenOptions{
					PortName:              cfg.Stream.Port,
					BaudRate:              cfg.Stream.Baud,
					DataBits:              8,
					StopBits:              1,
					MinimumReadSize:       0,
					InterCharacterTimeout: 100,
				}

				log.Infof("opening serial port %s", cfg.Stream.Port)
				port, err = serial.Open(sOpts)
				if err != nil {
					return fmt.Errorf("error opening serial port: %w", err)
				}
			}
			defer port.Close()

			r := stride.New()
			r.Add(stream.New(tr.Spliner, port))

			log.Info("booting components")
			err = r.Boot()
			if err != nil {
				return fmt.Errorf("error while booting: %w", err)
			}

			// Catch both SIGINT (ctrl+c) and SIGTERM (kill/systemd), so the
			// port is closed before exiting.
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Infof("starting loop at %dHz", cfg.Stream.Rate)
			err = r.Run(ctx, time.Second/time.Duration(cfg.Stream.Rate))
			if err != nil {
				return err
			}

			if fake != nil {
				log.Infof("dry run wrote %d bytes", len(fake.Written()))
			}

			return nil
		},
	}
}
