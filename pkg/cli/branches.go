package cli

import (
	"context"

	"github.com/m-mizutani/commet/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdBranches() *cli.Command {
	var (
		backendCfg    backendConfig
		fullName      string
		defaultBranch string
		token         string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "repo",
			Aliases:     []string{"r"},
			Usage:       "Repository in owner/repo form",
			Required:    true,
			Destination: &fullName,
		},
		&cli.StringFlag{
			Name:        "default-branch",
			Usage:       "Default branch of the repository. Looked up when empty",
			Destination: &defaultBranch,
		},
		&cli.StringFlag{
			Name:        "token",
			Usage:       "GitHub personal access token. --github-token takes precedence",
			Destination: &token,
			Sources:     cli.EnvVars("COMMET_MANUAL_TOKEN"),
		},
	}
	flags = append(flags, backendCfg.Flags()...)

	return &cli.Command{
		Name:    "branches",
		Aliases: []string{"b"},
		Usage:   "List branches of a repository",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := model.NewRepositoryRef(fullName)
			if err != nil {
				return err
			}

			svc, err := backendCfg.build(ctx)
			if err != nil {
				return err
			}

			credential := backendCfg.github.Token
			if credential == "" {
				credential = token
			}

			if defaultBranch != "" {
				repo.DefaultBranch = defaultBranch
			} else {
				repo = svc.branch.LookupRepository(ctx, repo.FullName, credential)
			}

			set := svc.branch.ResolveBranches(ctx, repo, credential)
			newPrinter(c.Root().Writer).branches(repo.FullName, set)
			return nil
		},
	}
}
