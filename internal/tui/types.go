package tui

import (
	"context"

	"codeberg.org/papergen/server/internal/analysis"
	"codeberg.org/papergen/server/internal/submit"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/glamour"
)

// issues generation requests for the form
type Submitter interface {
	Submit(ctx context.Context, req submit.Request) (*submit.Outcome, error)
	InFlight() bool
}

// which input has keyboard focus
type field int

const (
	fieldRepo field = iota
	fieldDocs
)

// main TUI application model
type Model struct {
	mode   string
	width  int
	height int

	repo  textinput.Model
	docs  textarea.Model
	focus field

	// cancelled on quit so an outstanding submission is abandoned
	ctx    context.Context
	cancel context.CancelFunc

	submitter Submitter
	analyzer  analysis.Analyzer
	renderer  *glamour.TermRenderer
	spinner   spinner.Model

	submitting bool
	analyzing  bool

	// cleared at the start of every submission
	errText   string
	result    string
	savedPath string
	notice    string
}

// sent when a submission completes
type SubmitDoneMsg struct {
	outcome *submit.Outcome
	err     error
}

// sent when the gateway answers an analyze request
type AnalyzeDoneMsg struct {
	analysis *analysis.Analysis
	err      error
}
