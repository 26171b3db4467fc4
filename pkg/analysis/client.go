package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"ai-laborlaw-be/internal/pkg/logger"
	"ai-laborlaw-be/pkg/evidence"
)

const (
	// MaxFileSize is the hard upload limit the analyzer fleet enforces.
	MaxFileSize = 50 * 1024 * 1024

	requestTimeout = 30 * time.Second
	probeTimeout   = 5 * time.Second
	maxAttempts    = 3
)

// Client ships evidence files to the specialist analyzer services. Transient
// failures (5xx, timeouts, refused connections) are retried with exponential
// backoff; 4xx responses and local validation failures are terminal.
type Client struct {
	httpClient *http.Client
	catalog    *evidence.Catalog
	log        logger.ILogger

	// sleep is swapped out in tests to observe backoff without waiting.
	sleep func(time.Duration)
}

func NewClient(catalog *evidence.Catalog, log logger.ILogger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		catalog:    catalog,
		log:        log,
		sleep:      time.Sleep,
	}
}

// Analyze uploads the file at path to the analyzer for the given category and
// returns the decoded JSON result. The file is validated locally before any
// network traffic happens.
func (c *Client) Analyze(ctx context.Context, category evidence.Category, path string) (map[string]interface{}, error) {
	spec, ok := c.catalog.Spec(category)
	if !ok {
		return nil, fmt.Errorf("%w: category %q", ErrConfigurationMissing, category)
	}
	if !spec.AllowsFile(path) {
		return nil, fmt.Errorf("%w: %s does not accept %s", ErrInvalidFormat, category, filepath.Ext(path))
	}

	data, err := readCapped(path)
	if err != nil {
		return nil, err
	}

	body, contentType, err := multipartBody(spec.FormField, filepath.Base(path), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			c.log.Warn("analysis", "retrying analyzer request", map[string]interface{}{
				"category": string(category),
				"attempt":  attempt + 1,
				"backoff":  backoff.String(),
			})
			c.sleep(backoff)
		}

		result, err := c.post(ctx, spec.Endpoint, contentType, body)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) post(ctx context.Context, endpoint, contentType string, body []byte) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrServerFailure, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: status %d: %s", ErrClientRequest, resp.StatusCode, truncate(payload, 200))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	return result, nil
}

// Healthy probes the analyzer for a category by fetching its base URL. Any
// HTTP response counts as alive; only transport failure means down.
func (c *Client) Healthy(ctx context.Context, category evidence.Category) bool {
	spec, ok := c.catalog.Spec(category)
	if !ok {
		return false
	}
	base, err := baseURL(spec.Endpoint)
	if err != nil {
		return false
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, base, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

func readCapped(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return data, nil
}

func multipartBody(field, filename string, data []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func retryable(err error) bool {
	return errors.Is(err, ErrServerFailure) || errors.Is(err, ErrNetworkFailure)
}

func baseURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	return u.Scheme + "://" + u.Host, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
