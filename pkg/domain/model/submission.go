package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/commet/pkg/domain/types"
)

// Submission is the user input for one analysis run
type Submission struct {
	Mode         types.Mode
	Question     string
	Repositories []string
	// Selected carries metadata of the chosen repositories when the caller
	// has it. Connections are inferred from names only otherwise.
	Selected     []RepositoryRef
	Branch       string
	CommitsLimit int
	OAuthToken   string `masq:"secret"`
	ManualToken  string `masq:"secret"`
}

// Validate checks submission preconditions and returns the first violation
func (s *Submission) Validate() error {
	if strings.TrimSpace(s.Question) == "" {
		return goerr.New("please enter a question", goerr.T(types.ErrTagEmptyQuestion))
	}

	if len(s.Repositories) == 0 {
		return goerr.New("please select at least one repository", goerr.T(types.ErrTagMissingRepository))
	}
	for _, repo := range s.Repositories {
		if strings.TrimSpace(repo) == "" {
			return goerr.New("please select at least one repository", goerr.T(types.ErrTagMissingRepository))
		}
	}

	switch s.Mode {
	case types.ModeSingle, "":
		for _, repo := range s.Repositories {
			if !IsValidFullName(strings.TrimSpace(repo)) {
				return goerr.New("please enter a valid repository format (owner/repo)",
					goerr.T(types.ErrTagInvalidRepositoryFormat),
					goerr.V("repository", repo))
			}
		}

	case types.ModeMulti:
		if len(s.Repositories) > types.MaxRepositories {
			return goerr.New("maximum 5 repositories can be analyzed at once",
				goerr.T(types.ErrTagTooManyRepositories),
				goerr.V("count", len(s.Repositories)))
		}
		for _, repo := range s.Repositories {
			if !IsValidFullName(strings.TrimSpace(repo)) {
				return goerr.New("invalid repository format, use 'owner/repo'",
					goerr.T(types.ErrTagInvalidRepositoryFormat),
					goerr.V("repository", repo))
			}
		}

	default:
		return goerr.New("unknown analysis mode", goerr.V("mode", s.Mode))
	}

	return nil
}

// Credential picks the OAuth token over the manually entered one. Empty
// means an unauthenticated call.
func (s *Submission) Credential() string {
	if s.OAuthToken != "" {
		return s.OAuthToken
	}
	return s.ManualToken
}

func (s *Submission) commitsLimit() int {
	if s.CommitsLimit <= 0 {
		return types.DefaultCommitsLimit
	}
	return s.CommitsLimit
}

// repositoryNames returns trimmed names without duplicates, first occurrence first
func (s *Submission) repositoryNames() []string {
	seen := make(map[string]struct{}, len(s.Repositories))
	names := make([]string, 0, len(s.Repositories))
	for _, repo := range s.Repositories {
		repo = strings.TrimSpace(repo)
		if _, ok := seen[repo]; ok {
			continue
		}
		seen[repo] = struct{}{}
		names = append(names, repo)
	}
	return names
}

// RepositoryRefs returns the refs used for classification. Selected
// metadata is preferred; bare names are used otherwise.
func (s *Submission) RepositoryRefs() []RepositoryRef {
	if len(s.Selected) > 0 {
		return s.Selected
	}

	names := s.repositoryNames()
	refs := make([]RepositoryRef, 0, len(names))
	for _, name := range names {
		refs = append(refs, RepositoryRef{FullName: name})
	}
	return refs
}

// ChatRequest assembles the single repository request. Call Validate first.
func (s *Submission) ChatRequest() *ChatRequest {
	return &ChatRequest{
		Question:     s.Question,
		Repository:   strings.TrimSpace(s.Repositories[0]),
		Branch:       strings.TrimSpace(s.Branch),
		CommitsLimit: s.commitsLimit(),
		Token:        s.Credential(),
	}
}

// MultiProjectChatRequest assembles the multi repository request. Call
// Validate first.
func (s *Submission) MultiProjectChatRequest() *MultiProjectChatRequest {
	return &MultiProjectChatRequest{
		Question:     s.Question,
		Repositories: s.repositoryNames(),
		Branch:       strings.TrimSpace(s.Branch),
		CommitsLimit: s.commitsLimit(),
		Token:        s.Credential(),
	}
}
