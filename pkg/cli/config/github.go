package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/commet/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration. Token is the credential obtained
// through OAuth and takes precedence over a token given per request.
type GitHub struct {
	Token   string `masq:"secret"`
	BaseURL string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub OAuth token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("COMMET_GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise Server)",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("COMMET_GITHUB_BASE_URL"),
		},
	}
}

// NewClient creates a GitHub API client
func (c *GitHub) NewClient() (*github.Client, error) {
	var opts []github.Option
	if c.BaseURL != "" {
		opts = append(opts, github.WithBaseURL(c.BaseURL))
	}

	client, err := github.NewClient(opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub client", goerr.V("base_url", c.BaseURL))
	}
	return client, nil
}
