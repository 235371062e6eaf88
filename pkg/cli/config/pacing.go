package config

import (
	"time"

	"github.com/m-mizutani/commet/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Pacing holds the minimum visible duration of the progress phases
type Pacing struct {
	Connect time.Duration
	Commits time.Duration
}

// Flags returns CLI flags for pacing configuration
func (c *Pacing) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "pace-connect",
			Usage:       "Minimum duration of the connecting phase",
			Value:       time.Second,
			Destination: &c.Connect,
			Sources:     cli.EnvVars("COMMET_PACE_CONNECT"),
		},
		&cli.DurationFlag{
			Name:        "pace-commits",
			Usage:       "Minimum duration of the commit analysis phase",
			Value:       1500 * time.Millisecond,
			Destination: &c.Commits,
			Sources:     cli.EnvVars("COMMET_PACE_COMMITS"),
		},
	}
}

// Options converts the configuration into analysis use case options
func (c *Pacing) Options() []usecase.AnalysisOption {
	return []usecase.AnalysisOption{
		usecase.WithPhaseDelays(c.Connect, c.Commits),
	}
}
