package analysis

import (
	"context"
	"fmt"

	"codeberg.org/papergen/server/internal/logger"
)

// result of accepting a repository for analysis
type Analysis struct {
	Message string `json:"message"`
	RepoURL string `json:"repoUrl"`
}

// accepts a repository reference and returns an analysis artifact
type Analyzer interface {
	Analyze(ctx context.Context, repoURL string) (*Analysis, error)
}

// records receipt of a repository and acknowledges it.
// no analysis is performed and no backend is contacted
type Acknowledger struct{}

func NewAcknowledger() *Acknowledger {
	return &Acknowledger{}
}

func (a *Acknowledger) Analyze(ctx context.Context, repoURL string) (*Analysis, error) {
	logger.FromContext(ctx).Info("received repository for analysis", "repo_url", repoURL)

	return &Analysis{
		Message: fmt.Sprintf("Started analysis for %s", repoURL),
		RepoURL: repoURL,
	}, nil
}
