package tui

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/papergen/server/internal/analysis"
	"codeberg.org/papergen/server/internal/errors"
	"codeberg.org/papergen/server/internal/submit"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const defaultWidth = 80

func NewApp(mode string, submitter Submitter, analyzer analysis.Analyzer) *Model {
	repo := textinput.New()
	repo.Placeholder = "https://github.com/owner/project"
	repo.CharLimit = 0
	repo.Width = defaultWidth - 6
	repo.Prompt = "> "
	repo.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	repo.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)
	repo.Focus()

	docs := textarea.New()
	docs.Placeholder = "or paste project documentation here..."
	docs.CharLimit = 0
	docs.ShowLineNumbers = false
	docs.SetWidth(defaultWidth - 4)
	docs.SetHeight(8)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorWhite)

	// without a renderer the paper is shown as plain markdown
	renderer, _ := glamour.NewTermRenderer( //nolint:errcheck // nil renderer is handled
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(defaultWidth-6),
	)

	ctx, cancel := context.WithCancel(context.Background())

	return &Model{
		ctx:       ctx,
		cancel:    cancel,
		mode:      mode,
		width:     defaultWidth,
		repo:      repo,
		docs:      docs,
		focus:     fieldRepo,
		submitter: submitter,
		analyzer:  analyzer,
		renderer:  renderer,
		spinner:   sp,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// the request the form currently describes
func (m *Model) request() submit.Request {
	return submit.Request{
		RepoURL:       m.repo.Value(),
		Documentation: m.docs.Value(),
	}
}

// submit is disabled while both inputs are empty or a submission is outstanding
func (m *Model) CanSubmit() bool {
	if m.submitting || m.submitter.InFlight() {
		return false
	}

	return submit.CanSubmit(m.request())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit

		case "tab", "shift+tab":
			m.toggleFocus()
			return m, nil

		case "ctrl+s":
			return m, m.startSubmit()

		case "ctrl+a":
			return m, m.startAnalyze()

		case "ctrl+l":
			m.repo.SetValue("")
			m.docs.SetValue("")
			m.errText, m.result, m.savedPath, m.notice = "", "", "", ""
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case SubmitDoneMsg:
		m.submitting = false

		if msg.err != nil {
			m.errText = errors.DisplayMessage(msg.err)
			return m, nil
		}

		if msg.outcome.SavedPath != "" {
			m.savedPath = msg.outcome.SavedPath
			return m, nil
		}

		m.result = renderOutcome(m.renderer, msg.outcome)
		return m, nil

	case AnalyzeDoneMsg:
		m.analyzing = false

		if msg.err != nil {
			m.errText = errors.DisplayMessage(msg.err)
			return m, nil
		}

		m.notice = msg.analysis.Message
		return m, nil

	case spinner.TickMsg:
		if !m.submitting && !m.analyzing {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, m.updateFocused(msg)
}

func (m *Model) startSubmit() tea.Cmd {
	if !m.CanSubmit() {
		return nil
	}

	m.errText, m.result, m.savedPath, m.notice = "", "", "", ""
	m.submitting = true

	ctx, submitter := m.ctx, m.submitter
	req := m.request()

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		outcome, err := submitter.Submit(ctx, req)
		return SubmitDoneMsg{outcome: outcome, err: err}
	})
}

func (m *Model) startAnalyze() tea.Cmd {
	if m.analyzing || m.analyzer == nil {
		return nil
	}

	repoURL := strings.TrimSpace(m.repo.Value())
	if repoURL == "" {
		m.errText = "enter a repository url to analyze"
		return nil
	}

	m.errText, m.notice = "", ""
	m.analyzing = true

	ctx, analyzer := m.ctx, m.analyzer

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		a, err := analyzer.Analyze(ctx, repoURL)
		return AnalyzeDoneMsg{analysis: a, err: err}
	})
}

func (m *Model) toggleFocus() {
	if m.focus == fieldRepo {
		m.focus = fieldDocs
		m.repo.Blur()
		m.docs.Focus()
		return
	}

	m.focus = fieldRepo
	m.docs.Blur()
	m.repo.Focus()
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if m.focus == fieldRepo {
		m.repo, cmd = m.repo.Update(msg)
	} else {
		m.docs, cmd = m.docs.Update(msg)
	}

	return cmd
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	m.repo.Width = max(10, width-8)
	m.docs.SetWidth(max(10, width-6))

	if m.renderer != nil {
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(max(20, width-8))); err == nil {
			m.renderer = r
		}
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(logo))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("turn a repository or its documentation into an ieee paper"))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("mode: %s", strings.ToUpper(m.mode))))
	b.WriteString("\n\n")

	b.WriteString(m.label("repository url", fieldRepo))
	b.WriteString("\n")
	b.WriteString(borderStyle.Width(max(10, m.width-4)).Render(m.repo.View()))
	b.WriteString("\n\n")

	b.WriteString(m.label("documentation", fieldDocs))
	b.WriteString("\n")
	b.WriteString(borderStyle.Width(max(10, m.width-4)).Render(m.docs.View()))
	b.WriteString("\n\n")

	b.WriteString(m.button())
	b.WriteString("\n")

	switch {
	case m.submitting:
		b.WriteString(infoStyle.Render(m.spinner.View() + " generating paper..."))
	case m.analyzing:
		b.WriteString(infoStyle.Render(m.spinner.View() + " requesting analysis..."))
	case m.errText != "":
		b.WriteString(errorStyle.Render("error: " + m.errText))
	case m.savedPath != "":
		b.WriteString(successStyle.Render("saved " + m.savedPath))
	case m.notice != "":
		b.WriteString(successStyle.Render(m.notice))
	}
	b.WriteString("\n")

	if m.result != "" {
		b.WriteString("\n")
		b.WriteString(m.result)
	}

	b.WriteString(helpStyle.Render("[Tab: Switch field] [Ctrl+S: Generate] [Ctrl+A: Analyze repo] [Ctrl+L: Clear] [Esc: Quit]"))

	return b.String()
}

func (m *Model) label(text string, f field) string {
	if m.focus == f {
		return labelFocusedStyle.Render(text)
	}

	return labelStyle.Render(text)
}

func (m *Model) button() string {
	if m.CanSubmit() {
		return buttonStyle.Render("generate paper")
	}

	return buttonDisabledStyle.Render("generate paper")
}

// fills the form from command line flags
func (m *Model) Prefill(repoURL, documentation string) {
	m.repo.SetValue(repoURL)
	m.docs.SetValue(documentation)
}
