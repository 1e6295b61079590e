package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/papergen/server/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeClient_Analyze(t *testing.T) {
	var got analyzeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/analyze", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Started analysis for https://github.com/x/y","repoUrl":"https://github.com/x/y"}`)) //nolint:errcheck,gosec // test server
	}))
	defer srv.Close()

	a, err := NewAnalyzeClient(srv.URL+"/").Analyze(context.Background(), "https://github.com/x/y")

	require.NoError(t, err)
	assert.Equal(t, "https://github.com/x/y", got.RepoURL)
	assert.Equal(t, "Started analysis for https://github.com/x/y", a.Message)
}

func TestAnalyzeClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    error
		message string
	}{
		{
			name:    "validation",
			status:  http.StatusBadRequest,
			body:    `{"error":"validation_error","message":"Repository URL is required"}`,
			kind:    errors.ErrValidation,
			message: "Repository URL is required",
		},
		{
			name:    "method",
			status:  http.StatusMethodNotAllowed,
			body:    `{"error":"method_not_allowed","message":"Method not allowed. Use POST."}`,
			kind:    errors.ErrMethodNotAllowed,
			message: "Method not allowed. Use POST.",
		},
		{
			name:    "unstructured",
			status:  http.StatusInternalServerError,
			body:    `oops`,
			kind:    errors.ErrDownstream,
			message: "gateway returned status 500",
		},
		{
			name:    "bad body",
			status:  http.StatusOK,
			body:    `{"message":`,
			kind:    errors.ErrDecode,
			message: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body)) //nolint:errcheck,gosec // test server
			}))
			defer srv.Close()

			_, err := NewAnalyzeClient(srv.URL).Analyze(context.Background(), "https://github.com/x/y")

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind))
			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
		})
	}
}
