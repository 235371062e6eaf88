package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/commet/pkg/cli/config"
	"github.com/m-mizutani/commet/pkg/domain/model"
	"github.com/m-mizutani/commet/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdAsk() *cli.Command {
	var (
		backendCfg  backendConfig
		req         config.Request
		requestPath string
		examples    bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "question",
			Aliases:     []string{"q"},
			Usage:       "Question about the repositories",
			Destination: &req.Question,
		},
		&cli.StringSliceFlag{
			Name:        "repo",
			Aliases:     []string{"r"},
			Usage:       "Repository in owner/repo form. Repeat for multi mode",
			Destination: &req.Repositories,
		},
		&cli.StringFlag{
			Name:        "mode",
			Aliases:     []string{"m"},
			Usage:       "Analysis mode (single, multi)",
			Destination: &req.Mode,
		},
		&cli.StringFlag{
			Name:        "branch",
			Aliases:     []string{"b"},
			Usage:       "Branch to analyze. The default branch is used when empty",
			Destination: &req.Branch,
		},
		&cli.IntFlag{
			Name:        "commits",
			Usage:       "Number of recent commits to analyze",
			Destination: &req.CommitsLimit,
		},
		&cli.StringFlag{
			Name:        "token",
			Usage:       "GitHub personal access token. --github-token takes precedence",
			Destination: &req.Token,
			Sources:     cli.EnvVars("COMMET_MANUAL_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "request",
			Usage:       "Load the request from a TOML or YAML file. Flags override file values",
			Destination: &requestPath,
		},
		&cli.BoolFlag{
			Name:        "examples",
			Usage:       "Print example questions for the mode and exit",
			Destination: &examples,
		},
	}
	flags = append(flags, backendCfg.Flags()...)

	return &cli.Command{
		Name:    "ask",
		Aliases: []string{"a"},
		Usage:   "Ask a question about one or several repositories",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			out := newPrinter(c.Root().Writer)

			if requestPath != "" {
				fromFile, err := config.LoadRequest(requestPath)
				if err != nil {
					return err
				}
				req.Merge(fromFile)
			}

			mode, err := types.ParseMode(req.Mode)
			if err != nil {
				return err
			}

			if examples {
				out.examples(mode)
				return nil
			}

			if mode == types.ModeSingle && len(req.Repositories) > 1 {
				logger.Warn("Single mode analyzes one repository, extra repositories are ignored",
					"ignored", req.Repositories[1:])
			}

			refs := make([]model.RepositoryRef, 0, len(req.Repositories))
			for _, name := range req.Repositories {
				refs = append(refs, model.RepositoryRef{FullName: name})
			}

			state := model.NewAppState().Apply(
				model.SetOAuthToken{Token: backendCfg.github.Token},
				model.SetManualToken{Token: req.Token},
				model.SetMode{Mode: mode},
				model.SelectRepositories{Repositories: refs},
				model.SetBranch{Branch: req.Branch},
				model.SetCommitsLimit{Limit: req.CommitsLimit},
			)

			svc, err := backendCfg.build(ctx)
			if err != nil {
				return err
			}

			sub := state.Submission(req.Question)
			state = state.Apply(model.SubmissionStarted{})

			result, err := svc.analysis.Submit(ctx, sub, out.observe)
			if err != nil {
				state = state.Apply(model.SubmissionFailed{Err: err})
				out.failure(state)
				return goerr.Wrap(err, "analysis failed", goerr.V("kind", state.ErrorKind))
			}

			state = state.Apply(model.SubmissionSucceeded{Result: result})
			out.result(state.Result)
			return nil
		},
	}
}
