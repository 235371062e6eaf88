package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/commet/pkg/cli/config"
	"github.com/m-mizutani/commet/pkg/domain/interfaces"
	"github.com/m-mizutani/commet/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// services are the use cases shared by the commands
type services struct {
	analysis    interfaces.AnalysisUseCase
	branch      interfaces.BranchUseCase
	backendName string
}

// backendConfig groups the configuration needed to pick an analysis backend
type backendConfig struct {
	backend config.Backend
	github  config.GitHub
	gemini  config.Gemini
	pacing  config.Pacing
}

func (c *backendConfig) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, c.backend.Flags()...)
	flags = append(flags, c.github.Flags()...)
	flags = append(flags, c.gemini.Flags()...)
	flags = append(flags, c.pacing.Flags()...)
	return flags
}

// build wires the remote analysis server when configured and the
// in-process analyzer otherwise
func (c *backendConfig) build(ctx context.Context) (*services, error) {
	logger := ctxlog.From(ctx)

	var (
		analysisBackend interfaces.AnalysisBackend
		repoSource      interfaces.RepositorySource
		name            string
	)

	if c.backend.Enabled() {
		client := c.backend.NewClient()
		analysisBackend, repoSource, name = client, client, "remote"
		logger.Info("Using remote analysis server", "url", c.backend.URL)
	} else {
		gh, err := c.github.NewClient()
		if err != nil {
			return nil, err
		}

		llm, err := c.gemini.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		if llm == nil {
			logger.Warn("Gemini is not configured, analysis requests will fail with service unavailable")
		}

		analyzer, err := usecase.NewLocalAnalyzer(llm, gh, gh, usecase.WithModelName(c.gemini.Model))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create local analyzer")
		}
		analysisBackend, repoSource, name = analyzer, gh, "local"
		logger.Info("Using in-process analysis", "model", c.gemini.Model)
	}

	return &services{
		analysis:    usecase.NewAnalysis(analysisBackend, c.pacing.Options()...),
		branch:      usecase.NewBranch(repoSource),
		backendName: name,
	}, nil
}
