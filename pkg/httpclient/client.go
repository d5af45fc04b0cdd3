// Package httpclient is the HTTP transport used by resource kinds.
//
// A Client is bound to a namespace and resolves the namespace's base URL
// from the configuration registry on every request, so host changes in the
// registry are picked up without rebuilding clients. The client performs
// exactly one round trip per call: it never retries and never interprets the
// status code. Classifying responses is the caller's job.
package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// RequestIDHeader carries a unique id for every outgoing request.
const RequestIDHeader = "X-Request-Id"

// Response is the raw result of a round trip.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Success reports whether the status code is in the 2xx range.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client issues HTTP requests against the host of one namespace.
type Client struct {
	config *Config
	client *http.Client
	logger hclog.Logger
}

// New creates a new Client.
func New(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid HTTP client config: %w", err)
	}

	if cfg.ContentType == "" {
		cfg.ContentType = "application/json"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = cfg.Registry.Logger
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Client{
		config: cfg,
		client: cfg.NewHTTPClient(),
		logger: logger.Named("http").With("namespace", cfg.Namespace),
	}, nil
}

// Host returns the base URL currently configured for the client's namespace.
func (c *Client) Host() (string, error) {
	return c.config.Registry.Host(c.config.Namespace)
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with body.
func (c *Client) Post(ctx context.Context, path string, body []byte) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put issues a PUT request with body.
func (c *Client) Put(ctx context.Context, path string, body []byte) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Do executes a single HTTP request. Non-2xx responses are returned as-is;
// only transport failures produce an error.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (*Response, error) {
	host, err := c.Host()
	if err != nil {
		return nil, err
	}
	endpoint := strings.TrimRight(host, "/") + "/" + strings.TrimLeft(path, "/")

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for name, value := range c.config.Registry.Headers {
		req.Header.Set(name, value)
	}
	req.Header.Set("Accept", c.config.ContentType)
	if body != nil {
		req.Header.Set("Content-Type", c.config.ContentType)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	c.logger.Debug("sending request",
		"method", method,
		"url", endpoint,
		"request_id", requestID,
	)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("received response",
		"method", method,
		"url", endpoint,
		"status", resp.StatusCode,
		"request_id", requestID,
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}
