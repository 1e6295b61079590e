package submit

import (
	"context"
	"sync"
	"testing"

	"codeberg.org/papergen/server/internal/artifact"
	apperrors "codeberg.org/papergen/server/internal/errors"
	"codeberg.org/papergen/server/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// implements Poster for testing
type mockPoster struct {
	mu       sync.Mutex
	calls    []mockCall
	postFunc func(ctx context.Context, path string, body []byte) (*generation.Result, error)
}

type mockCall struct {
	path string
	body string
}

func (m *mockPoster) Post(ctx context.Context, path string, body []byte) (*generation.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, mockCall{path: path, body: string(body)})
	m.mu.Unlock()

	if m.postFunc != nil {
		return m.postFunc(ctx, path, body)
	}

	return &generation.Result{
		Kind:     generation.KindArtifact,
		Artifact: &generation.Artifact{Data: []byte("PK\x03\x04docx")},
	}, nil
}

func (m *mockPoster) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.calls)
}

func TestSubmit_ArtifactIsSaved(t *testing.T) {
	poster := &mockPoster{}
	sink := artifact.New(t.TempDir())
	d := NewDispatcher(poster, sink, PolicyStrict)

	outcome, err := d.Submit(context.Background(), Request{RepoURL: "https://github.com/x/y"})

	require.NoError(t, err)
	assert.Equal(t, ModeRepository, outcome.Mode)
	assert.Equal(t, sink.Path(), outcome.SavedPath)
	assert.NotEmpty(t, outcome.Token)
	assert.Nil(t, outcome.Paper)

	require.Equal(t, 1, poster.callCount())
	assert.Equal(t, "/generate_from_github", poster.calls[0].path)
	assert.JSONEq(t, `{"repo_url":"https://github.com/x/y"}`, poster.calls[0].body)

	assert.False(t, d.InFlight(), "flag cleared after success")
	assert.Equal(t, 0, sink.Pending())
}

func TestSubmit_JSONIsReturned(t *testing.T) {
	poster := &mockPoster{
		postFunc: func(_ context.Context, _ string, _ []byte) (*generation.Result, error) {
			return &generation.Result{
				Kind:  generation.KindPaper,
				Raw:   []byte(`{"title":"T"}`),
				Paper: &generation.Paper{Title: "T"},
			}, nil
		},
	}
	d := NewDispatcher(poster, artifact.New(t.TempDir()), PolicyStrict)

	outcome, err := d.Submit(context.Background(), Request{Documentation: "abc"})

	require.NoError(t, err)
	assert.Equal(t, ModeDocumentation, outcome.Mode)
	assert.Empty(t, outcome.SavedPath)
	require.NotNil(t, outcome.Paper)
	assert.Equal(t, "T", outcome.Paper.Title)
	assert.JSONEq(t, `{"title":"T"}`, string(outcome.Raw))
}

func TestSubmit_EmptyIssuesNoCall(t *testing.T) {
	poster := &mockPoster{}
	d := NewDispatcher(poster, artifact.New(t.TempDir()), PolicyStrict)

	_, err := d.Submit(context.Background(), Request{})

	assert.ErrorIs(t, err, apperrors.ErrEmptySubmission)
	assert.Equal(t, 0, poster.callCount())
	assert.False(t, d.InFlight())
}

func TestSubmit_BothFieldsUnderStrictIssuesNoCall(t *testing.T) {
	poster := &mockPoster{}
	d := NewDispatcher(poster, artifact.New(t.TempDir()), PolicyStrict)

	_, err := d.Submit(context.Background(), Request{RepoURL: "https://github.com/x/y", Documentation: "abc"})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, 0, poster.callCount())
}

func TestSubmit_FailureClearsFlag(t *testing.T) {
	poster := &mockPoster{
		postFunc: func(_ context.Context, _ string, _ []byte) (*generation.Result, error) {
			return nil, &apperrors.DownstreamError{StatusCode: 500}
		},
	}
	d := NewDispatcher(poster, artifact.New(t.TempDir()), PolicyStrict)

	_, err := d.Submit(context.Background(), Request{Documentation: "abc"})

	require.Error(t, err)
	assert.Equal(t, "failed to generate paper", apperrors.DisplayMessage(err))
	assert.False(t, d.InFlight(), "flag cleared after failure")
	assert.Empty(t, d.Token())
}

func TestSubmit_SinkFailureClearsFlag(t *testing.T) {
	poster := &mockPoster{
		postFunc: func(_ context.Context, _ string, _ []byte) (*generation.Result, error) {
			return &generation.Result{Kind: generation.KindArtifact, Artifact: &generation.Artifact{}}, nil
		},
	}
	sink := artifact.New(t.TempDir())
	d := NewDispatcher(poster, sink, PolicyStrict)

	_, err := d.Submit(context.Background(), Request{Documentation: "abc"})

	assert.ErrorIs(t, err, apperrors.ErrDecode)
	assert.False(t, d.InFlight())
	assert.Equal(t, 0, sink.Pending())
}

func TestSubmit_SecondSubmissionWhileInFlightIsRejected(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	poster := &mockPoster{
		postFunc: func(_ context.Context, _ string, _ []byte) (*generation.Result, error) {
			close(entered)
			<-release
			return &generation.Result{Kind: generation.KindPaper, Raw: []byte(`{}`), Paper: &generation.Paper{}}, nil
		},
	}
	d := NewDispatcher(poster, artifact.New(t.TempDir()), PolicyStrict)

	done := make(chan error, 1)
	go func() {
		_, err := d.Submit(context.Background(), Request{Documentation: "first"})
		done <- err
	}()

	<-entered
	assert.True(t, d.InFlight())
	firstToken := d.Token()
	assert.NotEmpty(t, firstToken)

	_, err := d.Submit(context.Background(), Request{Documentation: "second"})
	assert.ErrorIs(t, err, apperrors.ErrInFlight)
	assert.Equal(t, 1, poster.callCount(), "second submission issued no call")
	assert.Equal(t, firstToken, d.Token(), "rejected submission does not touch the token")

	close(release)
	require.NoError(t, <-done)
	assert.False(t, d.InFlight())
}

func TestSubmit_TokensAreFreshPerSubmission(t *testing.T) {
	d := NewDispatcher(&mockPoster{}, artifact.New(t.TempDir()), PolicyStrict)

	first, err := d.Submit(context.Background(), Request{Documentation: "a"})
	require.NoError(t, err)

	second, err := d.Submit(context.Background(), Request{Documentation: "b"})
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
}

func TestSubmit_PassesContext(t *testing.T) {
	poster := &mockPoster{
		postFunc: func(ctx context.Context, _ string, _ []byte) (*generation.Result, error) {
			return nil, ctx.Err()
		},
	}
	d := NewDispatcher(poster, artifact.New(t.TempDir()), PolicyStrict)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Submit(ctx, Request{Documentation: "abc"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, d.InFlight())
}
