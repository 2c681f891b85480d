package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"cyberintel/cyberintel/config"
	"cyberintel/cyberintel/utils"
)

// StatusError is returned when an endpoint answers with a non-2xx status.
// The response body is not interpreted: every non-success status is a
// terminal transport failure for that invocation.
type StatusError struct {
	Endpoint string
	Code     int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.Code)
}

// Client is a JSON-over-HTTP client for the analysis API. All six endpoints
// hang off a single base path; no authentication headers are sent and no
// retry or backoff is applied. One Client is shared by every panel.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *utils.Logger

	sessionID string
	headers   map[string]string
}

// NewClient creates a Client from the application configuration.
//
// Parameters:
//   - cfg: A pointer to the application's AppConfig. The base URL, request
//     timeout and default headers are taken from it.
//   - logger: A pointer to the Logger for structured logging.
//   - sessionID: The ID of the current UI session, used for logging context.
func NewClient(cfg *config.AppConfig, logger *utils.Logger, sessionID string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		},
		Logger:    logger,
		sessionID: sessionID,
		headers:   cfg.DefaultHeaders,
	}
}

// DashboardStats fetches the aggregate counters and recent-activity feed
// shown on the dashboard view.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	if err := c.call(ctx, http.MethodGet, "/dashboard-stats", "dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeURL submits a URL to the reputation analyzer.
func (c *Client) AnalyzeURL(ctx context.Context, target string) (*URLAnalysis, error) {
	var out URLAnalysis
	if err := c.call(ctx, http.MethodPost, "/analyze-url", "url", urlRequest{URL: target}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzePassword submits a password to the strength analyzer. The full
// current value is sent on every call; the server does not see deltas.
func (c *Client) AnalyzePassword(ctx context.Context, password string) (*PasswordAnalysis, error) {
	var out PasswordAnalysis
	if err := c.call(ctx, http.MethodPost, "/analyze-password", "password", passwordRequest{Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeText submits free text (email or SMS body) to the phishing detector.
func (c *Client) AnalyzeText(ctx context.Context, text string) (*TextAnalysis, error) {
	var out TextAnalysis
	if err := c.call(ctx, http.MethodPost, "/analyze-email", "phishing", textRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckBreach looks an email address up in the breach database.
func (c *Client) CheckBreach(ctx context.Context, email string) (*BreachResult, error) {
	var out BreachResult
	if err := c.call(ctx, http.MethodPost, "/check-breach", "breach", emailRequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Chat sends one user message to the assistant and returns its reply.
func (c *Client) Chat(ctx context.Context, message string) (*ChatReply, error) {
	var out ChatReply
	if err := c.call(ctx, http.MethodPost, "/chat", "chat", chatRequest{Message: message}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// call performs one request/response cycle against `path` and decodes the
// JSON answer into `out`. Failures are logged and returned as-is; callers
// decide whether the user sees them (explicit-submit panels toast, the live
// password path stays silent).
func (c *Client) call(ctx context.Context, method string, path string, panel string, body interface{}, out interface{}) error {
	requestID := uuid.NewString()
	endpoint := c.BaseURL + path

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request for %s: %w", path, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		c.logError("Failed to create request", panel, path, requestID, 0, 0, err)
		return fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	startTime := time.Now()
	resp, err := c.HTTPClient.Do(req)
	latency := time.Since(startTime)

	if err != nil {
		c.logError("Request failed", panel, path, requestID, 0, latency, err)
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Endpoint: path, Code: resp.StatusCode}
		c.logError("Request rejected", panel, path, requestID, resp.StatusCode, latency, statusErr)
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logError("Malformed response body", panel, path, requestID, resp.StatusCode, latency, err)
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}

	if c.Logger != nil {
		c.Logger.Info(utils.LogEntry{
			SessionID:  c.sessionID,
			RequestID:  requestID,
			Message:    "Request completed",
			Panel:      panel,
			Endpoint:   path,
			HTTPStatus: resp.StatusCode,
			DurationMs: latency.Milliseconds(),
			Outcome:    "accepted",
		})
	}
	return nil
}

func (c *Client) logError(message string, panel string, path string, requestID string, status int, latency time.Duration, err error) {
	if c.Logger == nil {
		return
	}
	c.Logger.Error(utils.LogEntry{
		SessionID:  c.sessionID,
		RequestID:  requestID,
		Message:    message,
		Panel:      panel,
		Endpoint:   path,
		HTTPStatus: status,
		DurationMs: latency.Milliseconds(),
		Outcome:    "failed",
		Error:      err.Error(),
	})
}
