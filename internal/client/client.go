package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrCouldNotParse reports a response whose body did not match the expected
// shape. It is distinct from a ServerError: the server accepted the request
// but the payload failed decoding or validation.
var ErrCouldNotParse = errors.New("Could not parse data")

// ServerError carries the message the server returned with a non-2xx status.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// envelope mirrors the API's wire shape: {data, message} on success,
// {message} on failure.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client is a typed HTTP client for the API
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option configures a Client
type Option func(*Client)

// WithToken sets the bearer token sent with every request
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a client for the API at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validator checks a decoded response body; returning an error rejects the
// payload as unparseable
type Validator[T any] func(*T) error

// Get performs a GET request and decodes the data field into T
func Get[T any](ctx context.Context, c *Client, path string, validate Validator[T]) (*T, error) {
	return do(ctx, c, http.MethodGet, path, nil, validate)
}

// Post performs a POST request with a JSON body and decodes the data field
// into T
func Post[T any](ctx context.Context, c *Client, path string, body interface{}, validate Validator[T]) (*T, error) {
	return do(ctx, c, http.MethodPost, path, body, validate)
}

func do[T any](ctx context.Context, c *Client, method, path string, body interface{}, validate Validator[T]) (*T, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServerError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(raw, resp.StatusCode),
		}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, ErrCouldNotParse
	}

	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, ErrCouldNotParse
	}
	if validate != nil {
		if err := validate(&out); err != nil {
			return nil, ErrCouldNotParse
		}
	}

	return &out, nil
}

// serverMessage extracts the message from a failure envelope, falling back to
// the HTTP status text when the body isn't one.
func serverMessage(raw []byte, statusCode int) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return http.StatusText(statusCode)
}
