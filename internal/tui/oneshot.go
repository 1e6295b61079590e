package tui

import (
	"context"
	"fmt"
	"io"

	"codeberg.org/papergen/server/internal/submit"
)

// submits req once without the interactive form and writes the outcome to out
func RunOnce(ctx context.Context, submitter Submitter, req submit.Request, out io.Writer) error {
	outcome, err := submitter.Submit(ctx, req)
	if err != nil {
		return err
	}

	if outcome.SavedPath != "" {
		_, err = fmt.Fprintf(out, "saved %s\n", outcome.SavedPath)
		return err
	}

	_, err = io.WriteString(out, PaperMarkdown(outcome))
	return err
}
