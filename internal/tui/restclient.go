package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"codeberg.org/papergen/server/internal/analysis"
	apperrors "codeberg.org/papergen/server/internal/errors"
)

// timeout for analyze requests; the gateway answers without calling out
const analyzeRequestTimeout = 30 * time.Second

// calls the gateway's analyze route. implements analysis.Analyzer
type AnalyzeClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewAnalyzeClient(gatewayURL string) *AnalyzeClient {
	return &AnalyzeClient{
		endpoint: strings.TrimRight(gatewayURL, "/"),
		httpClient: &http.Client{
			Timeout: analyzeRequestTimeout,
		},
	}
}

func (c *AnalyzeClient) Analyze(ctx context.Context, repoURL string) (*analysis.Analysis, error) {
	payload, err := json.Marshal(analyzeRequest{RepoURL: repoURL})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.endpoint + "/api/analyze"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp.StatusCode, body)
	}

	var result analysis.Analysis
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrDecode, err)
	}

	return &result, nil
}

// maps a gateway error body onto the shared taxonomy
func responseError(status int, body []byte) error {
	var errResp apperrors.ErrorResponse
	message := fmt.Sprintf("gateway returned status %d", status)
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		message = errResp.Message
	}

	switch status {
	case http.StatusBadRequest:
		return apperrors.Wrap(apperrors.ErrValidation, message)
	case http.StatusMethodNotAllowed:
		return apperrors.Wrap(apperrors.ErrMethodNotAllowed, message)
	default:
		return apperrors.Wrap(apperrors.ErrDownstream, message)
	}
}

type analyzeRequest struct {
	RepoURL string `json:"repoUrl"`
}
