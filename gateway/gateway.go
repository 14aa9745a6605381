// Package gateway talks to the card rendering service. It submits validated
// requests and probes the service health; it never retries or queues.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/dl-generator-api/models"
)

const (
	generatePath = "/api/license/generate/card"
	healthPath   = "/api/license/health"

	defaultTimeout = 30 * time.Second
	maxErrorBody   = 4096
)

// ErrUnavailable means the rendering service could not be reached
var ErrUnavailable = errors.New("rendering service unavailable")

// RejectedError carries a structured failure returned by the rendering service
type RejectedError struct {
	Status int
	Body   string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("rendering service rejected request: %d %s", e.Status, e.Body)
}

// Gateway renders license requests into card images
type Gateway interface {
	Submit(ctx context.Context, req models.LicenseRequest) (models.ArtifactBundle, error)
	Probe(ctx context.Context) models.Availability
}

// HTTPClient is the Gateway backed by the rendering service's HTTP API
type HTTPClient struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// NewHTTPClient returns a client for the service at baseURL. A zero timeout
// falls back to 30 seconds.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := &http.Client{Timeout: timeout}
	c := &HTTPClient{
		client:    httpClient,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "dl-generator-api",
	}
	httpClient.Transport = c
	return c
}

// RoundTrip stamps the User-Agent on every outgoing request
func (c *HTTPClient) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	return http.DefaultTransport.RoundTrip(req)
}

// Submit posts a request snapshot and returns the rendered bundle
func (c *HTTPClient) Submit(ctx context.Context, lr models.LicenseRequest) (models.ArtifactBundle, error) {
	var bundle models.ArtifactBundle

	body, err := json.Marshal(lr)
	if err != nil {
		return bundle, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return bundle, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		zap.S().Errorw("rendering service request failed", "url", req.URL.String(), "error", err)
		return bundle, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return bundle, &RejectedError{Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if err := json.NewDecoder(resp.Body).Decode(&bundle); err != nil {
		return bundle, fmt.Errorf("failed to decode response: %w", err)
	}
	return bundle, nil
}

// Probe reports whether the health endpoint answers with a 2xx. Any failure
// counts as unavailable.
func (c *HTTPClient) Probe(ctx context.Context) models.Availability {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return models.Availability{}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		zap.S().Debugw("health probe failed", "error", err)
		return models.Availability{}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return models.Availability{Available: resp.StatusCode >= 200 && resp.StatusCode < 300}
}
