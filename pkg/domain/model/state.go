package model

import (
	"slices"

	"github.com/m-mizutani/commet/pkg/domain/types"
)

// AppState holds credentials, the repository selection and the status of
// the latest submission. It is never mutated in place: Apply returns the
// next state.
type AppState struct {
	OAuthToken   string          `json:"-" masq:"secret"`
	ManualToken  string          `json:"-" masq:"secret"`
	Mode         types.Mode      `json:"mode"`
	Selection    []RepositoryRef `json:"selection"`
	Branch       string          `json:"branch,omitempty"`
	Branches     *BranchSet      `json:"branches,omitempty"`
	CommitsLimit int             `json:"commits_limit"`
	Loading      bool            `json:"loading"`
	Error        string          `json:"error,omitempty"`
	ErrorKind    types.ErrorKind `json:"error_kind,omitempty"`
	Result       *AnalysisResult `json:"result,omitempty"`
}

// NewAppState returns the initial state
func NewAppState() AppState {
	return AppState{
		Mode:         types.ModeSingle,
		CommitsLimit: types.DefaultCommitsLimit,
	}
}

// Action is a state transition
type Action interface {
	reduce(s AppState) AppState
}

// Apply runs actions in order and returns the resulting state
func (s AppState) Apply(actions ...Action) AppState {
	next := s
	next.Selection = slices.Clone(s.Selection)
	for _, a := range actions {
		next = a.reduce(next)
	}
	return next
}

// Connections are recomputed from the whole selection every time
func (s AppState) Connections() []Connection {
	return InferConnections(s.Selection)
}

// Submission builds the submission for question from the current state
func (s AppState) Submission(question string) *Submission {
	names := make([]string, 0, len(s.Selection))
	for _, repo := range s.Selection {
		names = append(names, repo.FullName)
	}

	return &Submission{
		Mode:         s.Mode,
		Question:     question,
		Repositories: names,
		Selected:     slices.Clone(s.Selection),
		Branch:       s.Branch,
		CommitsLimit: s.CommitsLimit,
		OAuthToken:   s.OAuthToken,
		ManualToken:  s.ManualToken,
	}
}

type SetOAuthToken struct{ Token string }

func (a SetOAuthToken) reduce(s AppState) AppState {
	s.OAuthToken = a.Token
	return s
}

type SetManualToken struct{ Token string }

func (a SetManualToken) reduce(s AppState) AppState {
	s.ManualToken = a.Token
	return s
}

// SetMode switches mode and drops the selection made for the other mode
type SetMode struct{ Mode types.Mode }

func (a SetMode) reduce(s AppState) AppState {
	if s.Mode == a.Mode {
		return s
	}
	s.Mode = a.Mode
	s.Selection = nil
	s.Branch = ""
	s.Branches = nil
	return s
}

// SelectRepositories replaces the selection. In single mode only the first
// repository is kept and its default branch becomes the selected branch.
type SelectRepositories struct{ Repositories []RepositoryRef }

func (a SelectRepositories) reduce(s AppState) AppState {
	repos := slices.Clone(a.Repositories)
	s.Branches = nil
	if s.Mode == types.ModeMulti {
		s.Selection = repos
		return s
	}

	if len(repos) > 1 {
		repos = repos[:1]
	}
	s.Selection = repos
	s.Branch = ""
	if len(repos) == 1 {
		s.Branch = repos[0].DefaultBranch
	}
	return s
}

// SetBranches replaces the offered branch list
type SetBranches struct{ Branches *BranchSet }

func (a SetBranches) reduce(s AppState) AppState {
	s.Branches = a.Branches
	return s
}

type SetBranch struct{ Branch string }

func (a SetBranch) reduce(s AppState) AppState {
	s.Branch = a.Branch
	return s
}

type SetCommitsLimit struct{ Limit int }

func (a SetCommitsLimit) reduce(s AppState) AppState {
	if a.Limit <= 0 {
		a.Limit = types.DefaultCommitsLimit
	}
	s.CommitsLimit = a.Limit
	return s
}

type SubmissionStarted struct{}

func (a SubmissionStarted) reduce(s AppState) AppState {
	s.Loading = true
	s.Error = ""
	s.ErrorKind = ""
	s.Result = nil
	return s
}

type SubmissionSucceeded struct{ Result *AnalysisResult }

func (a SubmissionSucceeded) reduce(s AppState) AppState {
	s.Loading = false
	s.Result = a.Result
	return s
}

type SubmissionFailed struct{ Err error }

func (a SubmissionFailed) reduce(s AppState) AppState {
	s.Loading = false
	s.Result = nil
	if a.Err != nil {
		s.Error = a.Err.Error()
		s.ErrorKind = types.KindOf(a.Err)
	}
	return s
}

type ClearError struct{}

func (a ClearError) reduce(s AppState) AppState {
	s.Error = ""
	s.ErrorKind = ""
	return s
}
