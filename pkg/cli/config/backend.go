package config

import (
	"time"

	"github.com/m-mizutani/commet/pkg/infra/backend"
	"github.com/urfave/cli/v3"
)

// Backend holds remote analysis server configuration
type Backend struct {
	URL          string
	Timeout      time.Duration
	MultiTimeout time.Duration
}

// Flags returns CLI flags for backend configuration
func (c *Backend) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "backend-url",
			Usage:       "Base URL of the remote analysis server. In-process analysis is used when empty",
			Destination: &c.URL,
			Sources:     cli.EnvVars("COMMET_BACKEND_URL"),
		},
		&cli.DurationFlag{
			Name:        "backend-timeout",
			Usage:       "Timeout of single repository analysis and branch requests",
			Value:       30 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("COMMET_BACKEND_TIMEOUT"),
		},
		&cli.DurationFlag{
			Name:        "backend-multi-timeout",
			Usage:       "Timeout of multi-project analysis",
			Value:       120 * time.Second,
			Destination: &c.MultiTimeout,
			Sources:     cli.EnvVars("COMMET_BACKEND_MULTI_TIMEOUT"),
		},
	}
}

// Enabled reports whether a remote server is configured
func (c *Backend) Enabled() bool {
	return c.URL != ""
}

// NewClient creates a client for the remote analysis server
func (c *Backend) NewClient() *backend.Client {
	return backend.NewClient(c.URL,
		backend.WithTimeout(c.Timeout),
		backend.WithMultiProjectTimeout(c.MultiTimeout),
	)
}
