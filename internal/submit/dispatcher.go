package submit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	apperrors "codeberg.org/papergen/server/internal/errors"
	"codeberg.org/papergen/server/internal/generation"
	"codeberg.org/papergen/server/internal/metrics"
	"github.com/google/uuid"
)

// sends a request body to a generation endpoint
type Poster interface {
	Post(ctx context.Context, path string, body []byte) (*generation.Result, error)
}

// receives artifacts from successful submissions
type ArtifactSink interface {
	Save(a *generation.Artifact) (string, error)
}

// what a successful submission produced
type Outcome struct {
	Mode  Mode
	Token string

	// set when the service answered with a document
	SavedPath string

	// set when the service answered with JSON
	Paper *generation.Paper
	Raw   json.RawMessage
}

// issues one generation call per submission and holds a single in-flight
// token: a submission made while another is outstanding is rejected, not queued
type Dispatcher struct {
	client Poster
	sink   ArtifactSink
	policy Policy

	mu    sync.Mutex
	token string
}

func NewDispatcher(client Poster, sink ArtifactSink, policy Policy) *Dispatcher {
	return &Dispatcher{
		client: client,
		sink:   sink,
		policy: policy,
	}
}

// reports whether a submission is outstanding
func (d *Dispatcher) InFlight() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.token != ""
}

// returns the outstanding token, or "" when idle
func (d *Dispatcher) Token() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.token
}

func (d *Dispatcher) acquire() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.token != "" {
		return "", false
	}

	d.token = uuid.NewString()
	return d.token, true
}

func (d *Dispatcher) release(token string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.token == token {
		d.token = ""
	}
}

// selects a mode for req, calls the service and routes the answer:
// documents go to the sink, JSON is returned to the caller
func (d *Dispatcher) Submit(ctx context.Context, req Request) (*Outcome, error) {
	selection, err := Select(req, d.policy)
	if err != nil {
		metrics.DispatchTotal.WithLabelValues("none", apperrors.Classify(err).Category()).Inc()
		return nil, err
	}

	token, ok := d.acquire()
	if !ok {
		metrics.DispatchTotal.WithLabelValues(string(selection.Mode), apperrors.CategoryInFlight).Inc()
		return nil, apperrors.ErrInFlight
	}
	defer d.release(token)

	outcome, err := d.dispatch(ctx, selection)
	if err != nil {
		metrics.DispatchTotal.WithLabelValues(string(selection.Mode), apperrors.Classify(err).Category()).Inc()
		return nil, err
	}

	outcome.Token = token
	metrics.DispatchTotal.WithLabelValues(string(selection.Mode), "success").Inc()

	return outcome, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, selection Selection) (*Outcome, error) {
	body, err := json.Marshal(selection.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	result, err := d.client.Post(ctx, selection.Path, body)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Mode: selection.Mode}

	switch result.Kind {
	case generation.KindArtifact:
		path, err := d.sink.Save(result.Artifact)
		if err != nil {
			return nil, err
		}
		outcome.SavedPath = path

	case generation.KindPaper:
		outcome.Paper = result.Paper
		outcome.Raw = result.Raw

	default:
		return nil, fmt.Errorf("%w: unknown response kind %q", apperrors.ErrDecode, result.Kind)
	}

	return outcome, nil
}
