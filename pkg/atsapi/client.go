package atsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/hiredesk/hiredesk/pkg/logger"
)

// maxErrorBody bounds how much of an error response is read when extracting
// the server's message.
const maxErrorBody = 64 << 10

// Client is an HTTP client for the HireDesk REST API. All methods are safe
// for concurrent use.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	source     TokenSource
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. Its transport is wrapped
// with the authenticating transport when a token source is configured.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTokenSource installs the token source consulted on every request.
// Without one, all requests go out unauthenticated.
func WithTokenSource(source TokenSource) Option {
	return func(c *Client) {
		c.source = source
	}
}

// WithLogger sets the client logger. Defaults to a discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates an API client for the given configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrMissingBaseURL
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}

	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	// Wrap the transport so every request observes the current token and
	// 401s trigger the refresh exchange. The shallow copy keeps the caller's
	// client untouched.
	hc := *c.httpClient
	base1 := hc.Transport
	if base1 == nil {
		base1 = http.DefaultTransport
	}
	hc.Transport = &authTransport{
		base:   base1,
		source: c.source,
		refresh: func(ctx context.Context, refreshToken string) (string, error) {
			resp, err := c.RefreshToken(ctx, refreshToken)
			if err != nil {
				return "", err
			}
			return resp.Access, nil
		},
		log: c.log,
	}
	c.httpClient = &hc

	return c, nil
}

// do executes a single JSON round trip. Non-2xx responses are converted into
// *APIError with the server-provided message when one is present.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL.JoinPath(path)
	// JoinPath escapes nothing we use, but drops a trailing slash the API
	// requires; restore it.
	if strings.HasSuffix(path, "/") && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("atsapi: marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("atsapi: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("atsapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := decodeAPIError(resp)
		c.log.DebugContext(ctx, "api request failed",
			"method", method, "path", path, "status", resp.StatusCode)
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("atsapi: decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Error != "":
			apiErr.Message = payload.Error
		case payload.Detail != "":
			apiErr.Message = payload.Detail
		}
	}
	return apiErr
}
