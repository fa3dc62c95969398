// Package config loads the YAML file which tunes the walk, the swing and the
// setpoint stream.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/adammck/stride/gait"
	"github.com/adammck/stride/player"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Spliner player.Params `yaml:"spliner"`
	Gait    gait.Params   `yaml:"gait"`
	Nodes   Nodes         `yaml:"nodes"`
	Solver  Solver        `yaml:"solver"`
	Stream  Stream        `yaml:"stream"`
}

type Nodes struct {
	// PolysPerSwing is the number of polynomials in each phase in which the
	// quantity varies.
	PolysPerSwing int `yaml:"polys_per_swing"`
}

type Solver struct {
	// MaxEvaluations limits the cost evaluations spent fitting each leg. Zero
	// means no limit.
	MaxEvaluations int `yaml:"max_evaluations"`
}

type Stream struct {
	Port string `yaml:"port"`
	Baud uint   `yaml:"baud"`

	// Rate is the number of frames sent per second.
	Rate int `yaml:"rate"`
}

func Default() *Config {
	return &Config{
		Spliner: player.DefaultParams(),
		Gait:    gait.DefaultParams(),
		Nodes: Nodes{
			PolysPerSwing: 2,
		},
		Solver: Solver{
			MaxEvaluations: 5000,
		},
		Stream: Stream{
			Port: "/dev/ttyACM0",
			Baud: 1000000,
			Rate: 100,
		},
	}
}

// Load reads a YAML config file over the defaults, expanding environment
// variables first, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("cannot read config file %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Spliner.Validate(); err != nil {
		return fmt.Errorf("spliner: %w", err)
	}

	if err := c.Gait.Validate(); err != nil {
		return fmt.Errorf("gait: %w", err)
	}

	if c.Nodes.PolysPerSwing < 1 {
		return fmt.Errorf("%w: nodes.polys_per_swing must be at least 1, got %d", ErrInvalid, c.Nodes.PolysPerSwing)
	}

	if c.Solver.MaxEvaluations < 0 {
		return fmt.Errorf("%w: solver.max_evaluations must not be negative, got %d", ErrInvalid, c.Solver.MaxEvaluations)
	}

	if c.Stream.Rate < 1 {
		return fmt.Errorf("%w: stream.rate must be at least 1, got %d", ErrInvalid, c.Stream.Rate)
	}

	return nil
}
