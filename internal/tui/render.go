package tui

import (
	"bytes"
	"encoding/json"
	"strings"

	"codeberg.org/papergen/server/internal/submit"
	"github.com/charmbracelet/glamour"
)

// renders a JSON outcome through glamour, falling back to raw markdown
func renderOutcome(renderer *glamour.TermRenderer, outcome *submit.Outcome) string {
	md := PaperMarkdown(outcome)

	if renderer == nil {
		return md
	}

	out, err := renderer.Render(md)
	if err != nil {
		return md
	}

	return out
}

// formats the paper sections as markdown. responses without any known
// section are shown as an indented json block
func PaperMarkdown(outcome *submit.Outcome) string {
	if outcome == nil {
		return ""
	}

	var b strings.Builder

	if p := outcome.Paper; p != nil {
		if p.Title != "" {
			b.WriteString("# " + p.Title + "\n\n")
		}

		sections := []struct{ heading, body string }{
			{"Abstract", p.Abstract},
			{"Conclusion", p.Conclusion},
			{"References", p.References},
		}

		for _, s := range sections {
			if strings.TrimSpace(s.body) == "" {
				continue
			}
			b.WriteString("## " + s.heading + "\n\n" + s.body + "\n\n")
		}
	}

	if b.Len() > 0 {
		return b.String()
	}

	raw := []byte(outcome.Raw)
	var indented bytes.Buffer
	if err := json.Indent(&indented, raw, "", "  "); err == nil {
		raw = indented.Bytes()
	}

	return "```json\n" + string(raw) + "\n```\n"
}
