package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/commet/pkg/domain/model"
	"github.com/m-mizutani/commet/pkg/domain/types"
)

var (
	stepColor    = color.New(color.FgCyan, color.Bold)
	doneColor    = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	headingColor = color.New(color.Bold)
)

// printer renders analysis progress and results for a terminal
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w}
}

// observe is used as a progress observer
func (p *printer) observe(ctx context.Context, s model.AnalysisSession) {
	if s.Completed() {
		doneColor.Fprintln(p.w, "✓ Analysis complete")
		return
	}

	step, ok := s.ActiveStep()
	if !ok {
		return
	}
	stepColor.Fprintf(p.w, "[%d/%d] %s", step.ID, len(s.Steps), step.Title)
	fmt.Fprintf(p.w, " - %s\n", step.Description)
}

func (p *printer) connections(conns []model.Connection) {
	if len(conns) == 0 {
		return
	}
	headingColor.Fprintln(p.w, "Detected connections:")
	for _, c := range conns {
		warnColor.Fprintf(p.w, "  • %s\n", c.Description)
	}
}

func (p *printer) result(result *model.AnalysisResult) {
	fmt.Fprintln(p.w)
	p.connections(result.Connections)
	headingColor.Fprintf(p.w, "Answer (%s):\n", result.ModelUsed())
	fmt.Fprintln(p.w, result.AIResponse())
}

func (p *printer) failure(state model.AppState) {
	errorColor.Fprintf(p.w, "✗ %s\n", state.Error)
	if hint := errorHint(state.ErrorKind, state.Mode); hint != "" {
		warnColor.Fprintln(p.w, hint)
	}
}

func (p *printer) branches(fullName string, set *model.BranchSet) {
	headingColor.Fprintf(p.w, "Branches of %s:\n", fullName)
	for _, name := range set.Names {
		fmt.Fprintf(p.w, "  %s\n", name)
	}
	if set.IsFallback {
		warnColor.Fprintf(p.w, "Live branch list unavailable (%s), showing common branch names\n", set.FallbackReason)
		if hint := errorHint(set.FallbackReason, types.ModeSingle); hint != "" {
			warnColor.Fprintln(p.w, hint)
		}
	}
}

func (p *printer) examples(mode types.Mode) {
	headingColor.Fprintf(p.w, "Example questions (%s):\n", mode)
	for _, q := range model.ExampleQuestions(mode) {
		fmt.Fprintf(p.w, "  - %s\n", q)
	}
}

func errorHint(kind types.ErrorKind, mode types.Mode) string {
	switch kind {
	case types.KindNotFound:
		return "Check the repository name. Private repositories need a token with access."
	case types.KindUnauthorized:
		return "Check that your GitHub token is valid and not expired."
	case types.KindRateLimited:
		return "Sign in or provide a GitHub token to raise the rate limit, then try again later."
	case types.KindTimeout:
		if mode == types.ModeMulti {
			return "Try again with fewer repositories or a simpler question."
		}
		return "Try again in a moment."
	case types.KindServiceUnavailable:
		return "The AI service is not configured on the server."
	}
	return ""
}
