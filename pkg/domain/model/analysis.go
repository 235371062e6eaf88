package model

import "github.com/m-mizutani/commet/pkg/domain/types"

// ChatRequest asks a question about a single repository
type ChatRequest struct {
	Question     string `json:"question"`
	Repository   string `json:"repo"`
	Branch       string `json:"branch,omitempty"`
	CommitsLimit int    `json:"commits_limit"`
	Token        string `json:"token,omitempty" masq:"secret"`
}

// MultiProjectChatRequest asks a question across connected repositories
type MultiProjectChatRequest struct {
	Question     string   `json:"question"`
	Repositories []string `json:"repositories"`
	Branch       string   `json:"branch,omitempty"`
	CommitsLimit int      `json:"commits_limit"`
	Token        string   `json:"token,omitempty" masq:"secret"`
}

// RepositoryInfo is repository metadata as reported by the analysis endpoint
type RepositoryInfo struct {
	Name          string         `json:"name"`
	FullName      string         `json:"full_name"`
	Description   string         `json:"description"`
	URL           string         `json:"url"`
	Language      string         `json:"language"`
	Languages     map[string]int `json:"languages,omitempty"`
	Stars         int            `json:"stars"`
	Forks         int            `json:"forks"`
	OpenIssues    int            `json:"open_issues"`
	DefaultBranch string         `json:"default_branch"`
	IsPrivate     bool           `json:"is_private"`
	Owner         string         `json:"owner,omitempty"`
}

// Ref converts metadata into a RepositoryRef
func (r *RepositoryInfo) Ref() RepositoryRef {
	return RepositoryRef{
		FullName:      r.FullName,
		DefaultBranch: r.DefaultBranch,
		IsPrivate:     r.IsPrivate,
		Language:      r.Language,
		Description:   r.Description,
	}
}

// ChatAnalysisData is the context the single repository answer was built from
type ChatAnalysisData struct {
	RepositoryInfo  *RepositoryInfo `json:"repository_info,omitempty"`
	CommitsAnalyzed int             `json:"commits_analyzed"`
	CommitsLimit    int             `json:"commits_limit"`
}

// ChatResponse is the single repository analysis result
type ChatResponse struct {
	Question     string           `json:"question"`
	Repository   string           `json:"repository"`
	Branch       string           `json:"branch"`
	ModelUsed    string           `json:"model_used"`
	AnalysisData ChatAnalysisData `json:"analysis_data"`
	AIResponse   string           `json:"ai_response"`
}

// MultiProjectAnalysisData is the context of a multi-project answer
type MultiProjectAnalysisData struct {
	TotalCommitsAnalyzed int      `json:"total_commits_analyzed"`
	ProjectConnections   []string `json:"project_connections"`
}

// MultiProjectChatResponse is the multi repository analysis result
type MultiProjectChatResponse struct {
	Question     string                   `json:"question"`
	Repositories []string                 `json:"repositories"`
	ModelUsed    string                   `json:"model_used"`
	AnalysisData MultiProjectAnalysisData `json:"analysis_data"`
	AIResponse   string                   `json:"ai_response"`
}

// AnalysisResult is what a successful submission returns. Exactly one of
// Single and Multi is set, according to Mode.
type AnalysisResult struct {
	Mode        types.Mode                `json:"mode"`
	Single      *ChatResponse             `json:"single,omitempty"`
	Multi       *MultiProjectChatResponse `json:"multi,omitempty"`
	Connections []Connection              `json:"connections"`
	Session     AnalysisSession           `json:"session"`
}

// AIResponse returns the answer text regardless of mode
func (r *AnalysisResult) AIResponse() string {
	switch {
	case r.Single != nil:
		return r.Single.AIResponse
	case r.Multi != nil:
		return r.Multi.AIResponse
	}
	return ""
}

// ModelUsed returns the model name regardless of mode
func (r *AnalysisResult) ModelUsed() string {
	switch {
	case r.Single != nil:
		return r.Single.ModelUsed
	case r.Multi != nil:
		return r.Multi.ModelUsed
	}
	return ""
}

// Commit is a commit summary used as analysis context
type Commit struct {
	SHA       string `json:"sha"`
	Message   string `json:"message"`
	Author    string `json:"author"`
	Email     string `json:"email"`
	Date      string `json:"date"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}
