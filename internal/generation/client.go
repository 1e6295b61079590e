package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	apperrors "codeberg.org/papergen/server/internal/errors"
	"codeberg.org/papergen/server/internal/logger"
	"codeberg.org/papergen/server/internal/metrics"
	"github.com/gabriel-vasile/mimetype"
)

// max bytes of an error body kept for logging
const maxErrorBody = 2048

// talks to the generation service. safe for concurrent use
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// creates a client for the service at baseURL.
// a zero timeout means calls wait until the service answers or ctx ends
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// returns the configured base address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// issues one POST of body to path and classifies the answer.
// non-2xx statuses and transport failures wrap errors.ErrDownstream,
// unreadable bodies wrap errors.ErrDecode
func (c *Client) Post(ctx context.Context, path string, body []byte) (*Result, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, application/octet-stream, */*")

	if id := logger.RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	kind := "error"
	defer func() {
		metrics.GenerationCallDuration.WithLabelValues(path, kind).Observe(time.Since(start).Seconds())
	}()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrDownstream, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", apperrors.ErrDecode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperrors.DownstreamError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(data), maxErrorBody),
		}
	}

	result, err := decode(resp.Header, data)
	if err != nil {
		return nil, err
	}

	result.StatusCode = resp.StatusCode
	kind = string(result.Kind)

	return result, nil
}

// builds a Result from a successful response
func decode(header http.Header, data []byte) (*Result, error) {
	contentType := header.Get("Content-Type")

	switch DetectKind(contentType, data) {
	case KindPaper:
		if !json.Valid(data) {
			return nil, fmt.Errorf("%w: body is not valid JSON", apperrors.ErrDecode)
		}

		result := &Result{Kind: KindPaper, Raw: json.RawMessage(data)}

		// arbitrary JSON is relayed as-is; only objects carry sections
		var paper Paper
		if err := json.Unmarshal(data, &paper); err == nil {
			result.Paper = &paper
		}

		return result, nil

	default:
		if len(data) == 0 {
			return nil, fmt.Errorf("%w: empty artifact", apperrors.ErrDecode)
		}

		if contentType == "" {
			contentType = mimetype.Detect(data).String()
		}

		return &Result{
			Kind: KindArtifact,
			Artifact: &Artifact{
				Data:        data,
				ContentType: contentType,
				Filename:    dispositionFilename(header.Get("Content-Disposition")),
			},
		}, nil
	}
}

// decides whether a response is structured JSON or an opaque artifact.
// a declared content type wins; missing or generic types are sniffed
func DetectKind(contentType string, data []byte) Kind {
	mediaType := ""
	if contentType != "" {
		if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
			mediaType = strings.ToLower(parsed)
		}
	}

	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = mimetype.Detect(data).String()
		if i := strings.IndexByte(mediaType, ';'); i >= 0 {
			mediaType = mediaType[:i]
		}
	}

	if isJSON(mediaType) {
		return KindPaper
	}

	return KindArtifact
}

func isJSON(mediaType string) bool {
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}

	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}

	return params["filename"]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n]
}
