package main

import (
	"fmt"
	"os"

	"github.com/adammck/stride/config"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "main",
})

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "stride",
		Usage: "plan, inspect and play back legged robot trajectories",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				EnvVars: []string{"STRIDE_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log debug messages",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			plotCommand(),
			varsCommand(),
			playCommand(),
		},
	}
}

// loadConfig returns the config named by --config, or the defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		log.Debug("no config file, using defaults")
		return config.Default(), nil
	}

	log.Debugf("loading config from %s", path)
	return config.Load(path)
}
