package submit

import (
	"fmt"
	"strings"

	apperrors "codeberg.org/papergen/server/internal/errors"
	"codeberg.org/papergen/server/internal/generation"
)

// what the caller typed, read fresh for every submission
type Request struct {
	RepoURL       string
	Documentation string
}

// which generation endpoint a submission goes to
type Mode string

const (
	ModeRepository    Mode = "repository"
	ModeDocumentation Mode = "documentation"
)

// rule for a submission that fills in both inputs
type Policy string

const (
	// reject the submission with a validation error
	PolicyStrict Policy = "strict"
	// use the repository and ignore the documentation
	PolicyRepoFirst Policy = "repo_first"
)

// a chosen endpoint plus the payload to send it
type Selection struct {
	Mode    Mode
	Path    string
	Payload any
}

type repoPayload struct {
	RepoURL string `json:"repo_url"`
}

type documentationPayload struct {
	Documentation string `json:"documentation"`
}

// parses a policy name from configuration
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyStrict, "":
		return PolicyStrict, nil
	case PolicyRepoFirst:
		return PolicyRepoFirst, nil
	default:
		return "", fmt.Errorf("unknown input policy %q", s)
	}
}

// reports whether there is anything to submit
func CanSubmit(req Request) bool {
	return strings.TrimSpace(req.RepoURL) != "" || strings.TrimSpace(req.Documentation) != ""
}

// picks the endpoint and payload for req. pure and deterministic.
// whitespace only decides emptiness; payloads carry the inputs as typed
func Select(req Request, policy Policy) (Selection, error) {
	repo := strings.TrimSpace(req.RepoURL)
	docs := strings.TrimSpace(req.Documentation)

	switch {
	case repo == "" && docs == "":
		return Selection{}, apperrors.ErrEmptySubmission

	case repo != "" && docs != "" && policy != PolicyRepoFirst:
		return Selection{}, apperrors.Wrap(apperrors.ErrValidation,
			"provide either a repository URL or documentation, not both")

	case repo != "":
		return Selection{
			Mode:    ModeRepository,
			Path:    generation.PathFromGitHub,
			Payload: repoPayload{RepoURL: req.RepoURL},
		}, nil

	default:
		return Selection{
			Mode:    ModeDocumentation,
			Path:    generation.PathFromDocumentation,
			Payload: documentationPayload{Documentation: req.Documentation},
		}, nil
	}
}
