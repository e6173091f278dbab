// Package api wraps the classroom backend's HTTP/JSON interface. It attaches
// the bearer token to outgoing requests, normalizes error responses, and
// smooths over the envelope variations the backend is known to produce.
// No retries are performed: single attempt, fail fast, let the caller decide
// what to show.
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

	"github.com/vkuzmenko/classmate/internal/logging"
)

// TokenSource supplies the current bearer token. An empty string means
// "no credentials"; the Authorization header is then omitted.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

func New(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// Get fetches path and decodes the JSON response into out (which may be nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	return decodeObject(body, out)
}

// Post sends body as JSON and decodes the response into out (either may be nil).
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	raw, err := c.PostRaw(ctx, path, body)
	if err != nil {
		return err
	}
	return decodeObject(raw, out)
}

// PostRaw sends body as JSON and returns the raw response bytes. Callers that
// need to inspect the response shape themselves (login) use this.
func (c *Client) PostRaw(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, "application/json", payload)
}

// Put sends body as JSON and decodes the response into out (either may be nil).
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	payload, err := encodeBody(body)
	if err != nil {
		return err
	}
	raw, err := c.do(ctx, http.MethodPut, path, "application/json", payload)
	if err != nil {
		return err
	}
	return decodeObject(raw, out)
}

func encodeBody(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return bytes.NewReader(data), nil
}

// do performs a single HTTP request and returns the response body on any
// 2xx status. Transport failures wrap ErrUnavailable; non-2xx responses
// become a *Error carrying the server's message when one is present.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := c.newRequest(ctx, method, path, contentType, body)
	if err != nil {
		return nil, err
	}
	reqID := req.Header.Get(requestIDHeader)

	c.log.Debug(ctx, "issuing request", "method", method, "path", path, "request_id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(resp.StatusCode, data, reqID)
		c.log.Debug(ctx, "request failed", "status", resp.StatusCode, "request_id", reqID, "message", apiErr.Message)
		return nil, apiErr
	}
	return data, nil
}

const requestIDHeader = "X-Request-Id"

func (c *Client) newRequest(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// decodeObject unmarshals a JSON object into out, unwrapping a {"data": {...}}
// envelope when the backend uses one.
func decodeObject(body []byte, out any) error {
	if out == nil {
		return nil
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err == nil {
		if raw, ok := env["data"]; ok {
			inner := bytes.TrimSpace(raw)
			if len(inner) > 0 && (inner[0] == '{' || inner[0] == '[') {
				trimmed = inner
			}
		}
	}

	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
