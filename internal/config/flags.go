package config

import (
	"flag"
)

// parses CLI flags for the tui binary
func ParseTUIFlags(args []string) (Flags, error) {
	fs := flag.NewFlagSet("papergen", flag.ContinueOnError)
	once := fs.Bool("once", false, "submit once and exit instead of starting the interactive ui")
	repo := fs.String("repo", "", "github repository url to generate a paper from")
	docs := fs.String("docs", "", "documentation text to generate a paper from")
	docsFile := fs.String("docs-file", "", "path to a file containing documentation")

	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}

	return Flags{
		Once:     *once,
		Repo:     *repo,
		Docs:     *docs,
		DocsFile: *docsFile,
	}, nil
}
