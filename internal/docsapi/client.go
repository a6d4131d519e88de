// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package docsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the docs backend client.
type ClientError struct {
	Type ErrorType

	// StatusCode is set for ErrTypeStatus.
	StatusCode int

	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeCanceled
	ErrTypeStatus
	ErrTypeInvalidResponse
	ErrTypeNoBody
)

// String returns a short name for the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConnection:
		return "connection"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeCanceled:
		return "canceled"
	case ErrTypeStatus:
		return "status"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	case ErrTypeNoBody:
		return "no_body"
	default:
		return "unknown"
	}
}

// ErrNoBody is returned by QA when a successful response carries no body.
var ErrNoBody = &ClientError{Type: ErrTypeNoBody, Message: "response has no body"}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the docs backend client.
type ClientConfig struct {
	// BaseURL is the docs site origin, e.g. https://docs.embedbase.xyz
	BaseURL string

	// Endpoint paths (default: /api/buildPrompt and /api/qa)
	BuildPromptPath string
	QAPath          string

	// Token is sent as a bearer token when set.
	Token string

	// Timeout for the build-prompt request (default: 30s). The qa stream is
	// bounded only by its context.
	Timeout time.Duration

	// RequestsPerMinute throttles outgoing requests; 0 disables throttling.
	RequestsPerMinute int

	UserAgent string
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "http://127.0.0.1:3000",
		BuildPromptPath:   "/api/buildPrompt",
		QAPath:            "/api/qa",
		Timeout:           30 * time.Second,
		RequestsPerMinute: 30,
		UserAgent:         "askdocs",
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the build-prompt and qa endpoints.
// It is safe for concurrent use.
type Client struct {
	config       *ClientConfig
	httpClient   *http.Client
	streamClient *http.Client
	limiter      *rate.Limiter
}

// NewClient creates a client for baseURL with default settings.
func NewClient(baseURL string) *Client {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	return NewClientWithConfig(cfg)
}

// NewClientWithConfig creates a client, filling zero values from DefaultConfig.
func NewClientWithConfig(config *ClientConfig) *Client {
	defaults := DefaultConfig()
	if config == nil {
		config = defaults
	}

	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.BuildPromptPath == "" {
		config.BuildPromptPath = defaults.BuildPromptPath
	}
	if config.QAPath == "" {
		config.QAPath = defaults.QAPath
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}

	c := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		// No Timeout: an answer may stream for longer than any fixed limit.
		streamClient: &http.Client{},
	}
	if config.RequestsPerMinute > 0 {
		// Burst of two lets one build-prompt + qa pair through without waiting.
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(config.RequestsPerMinute)), 2)
	}
	return c
}

// BuildPromptURL returns the full build-prompt endpoint URL.
func (c *Client) BuildPromptURL() string {
	return c.config.BaseURL + c.config.BuildPromptPath
}

// QAURL returns the full qa endpoint URL.
func (c *Client) QAURL() string {
	return c.config.BaseURL + c.config.QAPath
}

// =============================================================================
// ENDPOINTS
// =============================================================================

// BuildPrompt sends the raw prompt and returns the refined prompt.
func (c *Client) BuildPrompt(ctx context.Context, prompt string) (string, error) {
	resp, err := c.post(ctx, c.httpClient, c.BuildPromptURL(), prompt)
	if err != nil {
		return "", err
	}
	defer drainAndClose(resp.Body)

	var out PromptResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)
	if !isSuccess(resp.StatusCode) {
		return "", statusError(resp)
	}
	if decodeErr != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode build-prompt response", Cause: decodeErr}
	}
	return out.Prompt, nil
}

// QA sends the refined prompt and returns the answer stream. A non-2xx
// response is returned as an ErrTypeStatus ClientError whose message is the
// HTTP status text; nothing is read from its body. A success without a body
// returns ErrNoBody. The caller must Close the returned stream.
func (c *Client) QA(ctx context.Context, prompt string) (*AnswerStream, error) {
	resp, err := c.post(ctx, c.streamClient, c.QAURL(), prompt)
	if err != nil {
		return nil, err
	}

	if !isSuccess(resp.StatusCode) {
		resp.Body.Close()
		return nil, statusError(resp)
	}
	if resp.Body == nil || resp.Body == http.NoBody || resp.StatusCode == http.StatusNoContent {
		if resp.Body != nil {
			resp.Body.Close()
		}
		return nil, ErrNoBody
	}

	return NewAnswerStream(resp.Body), nil
}

func (c *Client) post(ctx context.Context, hc *http.Client, url, prompt string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, transportError(ctx.Err())
			}
			return nil, &ClientError{Type: ErrTypeTimeout, Message: "rate limit wait exceeds deadline", Cause: err}
		}
	}

	body, err := json.Marshal(PromptRequest{Prompt: prompt})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	return resp, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

// statusError carries the reason phrase alone, e.g. "Internal Server Error".
func statusError(resp *http.Response) *ClientError {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	if text == "" {
		text = "HTTP " + strconv.Itoa(resp.StatusCode)
	}
	return &ClientError{Type: ErrTypeStatus, StatusCode: resp.StatusCode, Message: text}
}

func transportError(err error) *ClientError {
	switch {
	case errors.Is(err, context.Canceled):
		return &ClientError{Type: ErrTypeCanceled, Message: "request canceled", Cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	}
	return &ClientError{Type: ErrTypeConnection, Message: "cannot reach docs backend", Cause: err}
}

// IsStatusError reports whether err is a non-2xx response error.
func IsStatusError(err error) bool {
	return errorType(err) == ErrTypeStatus
}

// IsNotReachable reports whether err means the backend could not be reached.
func IsNotReachable(err error) bool {
	return errorType(err) == ErrTypeConnection
}

// IsTimeout reports whether err is a timeout.
func IsTimeout(err error) bool {
	return errorType(err) == ErrTypeTimeout
}

// IsCanceled reports whether err came from a canceled context.
func IsCanceled(err error) bool {
	return errorType(err) == ErrTypeCanceled || errors.Is(err, context.Canceled)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode
	}
	return 0
}

func errorType(err error) ErrorType {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type
	}
	return ErrTypeUnknown
}

func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, io.LimitReader(r, 64<<10))
	r.Close()
}
