package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/commet/pkg/domain/interfaces"
	"github.com/m-mizutani/commet/pkg/domain/model"
	"github.com/m-mizutani/commet/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

//go:embed prompts/single_system.md
var singleSystemPrompt string

//go:embed prompts/single_user.md
var singleUserTemplate string

//go:embed prompts/multi_system.md
var multiSystemPrompt string

//go:embed prompts/multi_user.md
var multiUserTemplate string

const defaultFetchConcurrency = 3

type localAnalyzer struct {
	llmClient   gollem.LLMClient
	repos       interfaces.RepositorySource
	commits     interfaces.CommitSource
	modelName   string
	concurrency int

	singleTemplate *template.Template
	multiTemplate  *template.Template
}

// LocalAnalyzerOption configures the in-process analyzer
type LocalAnalyzerOption func(*localAnalyzer)

// WithModelName sets the model name reported in responses
func WithModelName(name string) LocalAnalyzerOption {
	return func(a *localAnalyzer) {
		a.modelName = name
	}
}

// WithFetchConcurrency limits parallel repository fetches in multi-project analysis
func WithFetchConcurrency(n int) LocalAnalyzerOption {
	return func(a *localAnalyzer) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// NewLocalAnalyzer creates an AnalysisBackend that reads repositories
// through the given sources and asks the LLM directly.
func NewLocalAnalyzer(
	llmClient gollem.LLMClient,
	repos interfaces.RepositorySource,
	commits interfaces.CommitSource,
	opts ...LocalAnalyzerOption,
) (interfaces.AnalysisBackend, error) {
	funcs := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}

	single, err := template.New("single").Funcs(funcs).Parse(singleUserTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse single repository prompt template")
	}
	multi, err := template.New("multi").Funcs(funcs).Parse(multiUserTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse multi repository prompt template")
	}

	a := &localAnalyzer{
		llmClient:      llmClient,
		repos:          repos,
		commits:        commits,
		modelName:      "gemini",
		concurrency:    defaultFetchConcurrency,
		singleTemplate: single,
		multiTemplate:  multi,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

type projectContext struct {
	Repository *model.RepositoryInfo
	Type       model.ProjectType
	Commits    []model.Commit
}

// Chat answers a question about one repository
func (a *localAnalyzer) Chat(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	logger := ctxlog.From(ctx)

	project, branch, err := a.fetchProject(ctx, req.Repository, req.Branch, req.CommitsLimit, req.Token)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := a.singleTemplate.Execute(&buf, map[string]any{
		"Repository": project.Repository,
		"Branch":     branch,
		"Commits":    project.Commits,
		"Question":   req.Question,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to execute user prompt template", goerr.T(types.ErrTagUnknown))
	}

	logger.Debug("Calling LLM for repository analysis",
		"repository", req.Repository,
		"branch", branch,
		"commits", len(project.Commits),
		"prompt_length", buf.Len(),
	)

	answer, err := a.generate(ctx, singleSystemPrompt, buf.String())
	if err != nil {
		return nil, err
	}

	return &model.ChatResponse{
		Question:   req.Question,
		Repository: req.Repository,
		Branch:     branch,
		ModelUsed:  a.modelName,
		AnalysisData: model.ChatAnalysisData{
			RepositoryInfo:  project.Repository,
			CommitsAnalyzed: len(project.Commits),
			CommitsLimit:    req.CommitsLimit,
		},
		AIResponse: answer,
	}, nil
}

// ChatMultiProject answers a question about several connected repositories
func (a *localAnalyzer) ChatMultiProject(ctx context.Context, req *model.MultiProjectChatRequest) (*model.MultiProjectChatResponse, error) {
	logger := ctxlog.From(ctx)

	projects := make([]projectContext, len(req.Repositories))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(a.concurrency)
	for i, fullName := range req.Repositories {
		eg.Go(func() error {
			project, _, err := a.fetchProject(egCtx, fullName, req.Branch, req.CommitsLimit, req.Token)
			if err != nil {
				return err
			}
			projects[i] = *project
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	refs := make([]model.RepositoryRef, 0, len(projects))
	total := 0
	for _, p := range projects {
		refs = append(refs, p.Repository.Ref())
		total += len(p.Commits)
	}
	connections := model.ConnectionDescriptions(model.InferConnections(refs))

	var buf bytes.Buffer
	if err := a.multiTemplate.Execute(&buf, map[string]any{
		"Projects":    projects,
		"Connections": connections,
		"Question":    req.Question,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to execute user prompt template", goerr.T(types.ErrTagUnknown))
	}

	logger.Debug("Calling LLM for multi-project analysis",
		"repositories", req.Repositories,
		"connections", connections,
		"total_commits", total,
		"prompt_length", buf.Len(),
	)

	answer, err := a.generate(ctx, multiSystemPrompt, buf.String())
	if err != nil {
		return nil, err
	}

	return &model.MultiProjectChatResponse{
		Question:     req.Question,
		Repositories: req.Repositories,
		ModelUsed:    a.modelName,
		AnalysisData: model.MultiProjectAnalysisData{
			TotalCommitsAnalyzed: total,
			ProjectConnections:   connections,
		},
		AIResponse: answer,
	}, nil
}

// fetchProject reads metadata and recent commits. An empty branch means
// the repository's default branch.
func (a *localAnalyzer) fetchProject(ctx context.Context, fullName, branch string, limit int, credential string) (*projectContext, string, error) {
	info, err := a.repos.GetRepository(ctx, fullName, credential)
	if err != nil {
		return nil, "", err
	}

	if branch == "" {
		branch = info.DefaultBranch
	}
	if branch == "" {
		branch = model.DefaultBranchName
	}
	if limit <= 0 {
		limit = types.DefaultCommitsLimit
	}

	commits, err := a.commits.ListCommits(ctx, fullName, branch, limit, credential)
	if err != nil {
		return nil, "", err
	}

	return &projectContext{
		Repository: info,
		Type:       model.ClassifyProject(info.Ref()),
		Commits:    commits,
	}, branch, nil
}

func (a *localAnalyzer) generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	logger := ctxlog.From(ctx)

	if a.llmClient == nil {
		return "", goerr.New("AI service not available - please check server configuration",
			goerr.T(types.ErrTagServiceUnavailable))
	}

	session, err := a.llmClient.NewSession(ctx,
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		logger.Error("Failed to create LLM session", "error", err)
		return "", goerr.Wrap(err, "AI service not available - please check server configuration",
			goerr.T(types.ErrTagServiceUnavailable))
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(userPrompt))
	if err != nil {
		logger.Error("Failed to generate LLM content", "error", err)
		return "", goerr.Wrap(err, "failed to generate AI response", goerr.T(types.ErrTagUnknown))
	}
	if resp == nil || len(resp.Texts) == 0 {
		return "", goerr.New("no response from LLM", goerr.T(types.ErrTagUnknown))
	}

	return strings.Join(resp.Texts, ""), nil
}
