package model

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/commet/pkg/domain/types"
)

// StepStatus of a single analysis phase
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepActive    StepStatus = "active"
	StepCompleted StepStatus = "completed"
)

// Phase identifies the analysis phases in execution order
type Phase int

const (
	PhaseConnect Phase = iota + 1
	PhaseAnalyzeCommits
	PhaseSynthesize
)

// Step is one phase as presented to the user. ID is 1-based.
type Step struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      StepStatus `json:"status"`
}

// AnalysisSession is the progress of one submission. It is a value type;
// transitions return a new session and leave the receiver untouched.
//
// CurrentStep is the ID of the active step, 0 before the first Advance.
// Steps with a smaller ID are completed, steps with a larger ID are pending.
type AnalysisSession struct {
	ID          string     `json:"id"`
	Mode        types.Mode `json:"mode"`
	Steps       []Step     `json:"steps"`
	CurrentStep int        `json:"current_step"`
}

// NewAnalysisSession returns a session with every step pending
func NewAnalysisSession(id string, mode types.Mode) AnalysisSession {
	connect := Step{
		ID:          int(PhaseConnect),
		Title:       "Connecting to Repository",
		Description: "Fetching repository information and metadata",
	}
	commits := Step{
		ID:          int(PhaseAnalyzeCommits),
		Title:       "Analyzing Commits",
		Description: "Processing recent commits and code changes",
	}
	synth := Step{
		ID:          int(PhaseSynthesize),
		Title:       "AI Analysis",
		Description: "Generating intelligent insights and recommendations",
	}

	if mode == types.ModeMulti {
		connect.Title = "Connecting to Multiple Repositories"
		connect.Description = "Fetching information from all selected repositories"
		synth.Title = "Cross-Project AI Analysis"
		synth.Description = "Analyzing project connections and generating comprehensive insights"
	}

	steps := []Step{connect, commits, synth}
	for i := range steps {
		steps[i].Status = StepPending
	}

	return AnalysisSession{
		ID:    id,
		Mode:  mode,
		Steps: steps,
	}
}

func (s AnalysisSession) clone() AnalysisSession {
	s.Steps = slices.Clone(s.Steps)
	return s
}

// Advance completes the active step and activates the next one
func (s AnalysisSession) Advance() (AnalysisSession, error) {
	if s.CurrentStep >= len(s.Steps) {
		return s, goerr.New("no step left to advance",
			goerr.V("session_id", s.ID),
			goerr.V("current_step", s.CurrentStep))
	}

	next := s.clone()
	if next.CurrentStep > 0 {
		next.Steps[next.CurrentStep-1].Status = StepCompleted
	}
	next.CurrentStep++
	next.Steps[next.CurrentStep-1].Status = StepActive
	return next, nil
}

// CompleteAll marks every step completed
func (s AnalysisSession) CompleteAll() AnalysisSession {
	next := s.clone()
	for i := range next.Steps {
		next.Steps[i].Status = StepCompleted
	}
	next.CurrentStep = len(next.Steps)
	return next
}

// Reset puts every step back to pending
func (s AnalysisSession) Reset() AnalysisSession {
	next := s.clone()
	for i := range next.Steps {
		next.Steps[i].Status = StepPending
	}
	next.CurrentStep = 0
	return next
}

// ActiveStep returns the active step, if any
func (s AnalysisSession) ActiveStep() (Step, bool) {
	for _, step := range s.Steps {
		if step.Status == StepActive {
			return step, true
		}
	}
	return Step{}, false
}

// Completed reports whether the session reached its terminal success state
func (s AnalysisSession) Completed() bool {
	for _, step := range s.Steps {
		if step.Status != StepCompleted {
			return false
		}
	}
	return len(s.Steps) > 0
}
