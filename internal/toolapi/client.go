// Package toolapi is the HTTP client the frontends use to reach a tool's
// REST group. Requests go to baseURL + basePath + endpoint.
package toolapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/utools/internal/dto"
)

const RequestIDHeader = "X-Request-Id"

type Client struct {
	baseURL  string
	basePath string
	http     *http.Client
	log      *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

func New(baseURL, basePath string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		basePath: basePath,
		http:     &http.Client{},
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) URL(endpoint string) string {
	return c.baseURL + c.basePath + endpoint
}

// Do sends one request and decodes a 2xx JSON body into out when out is
// non-nil. data is only encoded for POST and PUT.
func (c *Client) Do(ctx context.Context, method, endpoint string, data, out any) error {
	url := c.URL(endpoint)
	requestID := uuid.NewString()
	log := c.log.With("method", method, "url", url, "request_id", requestID)

	var body io.Reader
	if data != nil && (method == http.MethodPost || method == http.MethodPut) {
		b, err := json.Marshal(data)
		if err != nil {
			return &Error{Method: method, URL: url, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return &Error{Method: method, URL: url, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("api request failed", "error", err)
		return &Error{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Method: method, URL: url, StatusCode: resp.StatusCode, Status: statusText(resp), Err: fmt.Errorf("read response: %w", err)}
	}
	log.Debug("api request completed", "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &Error{Method: method, URL: url, StatusCode: resp.StatusCode, Status: statusText(resp)}
		var env dto.ErrorEnvelope
		if json.Unmarshal(respBody, &env) == nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		log.Warn("api request rejected", "status", resp.StatusCode, "code", apiErr.Code)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{Method: method, URL: url, StatusCode: resp.StatusCode, Status: statusText(resp), Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func Get[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodGet, endpoint, nil, &out)
	return out, err
}

func Post[T any](ctx context.Context, c *Client, endpoint string, data any) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodPost, endpoint, data, &out)
	return out, err
}

func Put[T any](ctx context.Context, c *Client, endpoint string, data any) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodPut, endpoint, data, &out)
	return out, err
}

func Delete[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodDelete, endpoint, nil, &out)
	return out, err
}

func statusText(resp *http.Response) string {
	return http.StatusText(resp.StatusCode)
}
