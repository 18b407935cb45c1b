package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-success answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("error: %s", e.Message)
	}
	return fmt.Sprintf("API error (%d)", e.Status)
}

func (e *APIError) UserMessage() string { return e.Message }

// TransportError is a request that never got an answer.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// UserMessage is empty on purpose: transport details are not shown to users.
func (e *TransportError) UserMessage() string { return "" }

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken sets the bearer token sent with every request. An empty token
// sends none.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	return c.do(ctx, http.MethodGet, path, nil, target)
}

func (c *Client) post(ctx context.Context, path string, body, target any) error {
	return c.do(ctx, http.MethodPost, path, body, target)
}

func (c *Client) do(ctx context.Context, method, path string, body, target any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Message: errorMessage(bodyBytes)}
	}

	if target == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if b, ok := target.(*[]byte); ok {
		*b = data
		return nil
	}
	return json.Unmarshal(data, target)
}

// mutate performs a state-changing request and returns the acknowledgement
// text the backend sent, if any.
func (c *Client) mutate(ctx context.Context, method, path string, body any) (string, error) {
	var data []byte
	if err := c.do(ctx, method, path, body, &data); err != nil {
		return "", err
	}
	return ackMessage(data), nil
}

func ackMessage(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ""
	}
	if !json.Valid(data) {
		return string(data)
	}
	var msg MessageResponse
	if err := json.Unmarshal(data, &msg); err == nil {
		return msg.Message
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	return ""
}

// errorMessage extracts the backend's message from a JSON body with a
// message or error field, or uses the plain text body.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}

// decodeList accepts a bare array. With a key it also accepts an object that
// wraps the array under that key; without one, a lone object becomes a
// one-element list.
func decodeList[T any](raw json.RawMessage, key string) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '[' {
		var out []T
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	if key == "" {
		var one T
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil, err
		}
		return []T{one}, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	inner, ok := wrapped[key]
	if !ok {
		return nil, nil
	}
	return decodeList[T](inner, key)
}

func getList[T any](ctx context.Context, c *Client, path, key string) ([]T, error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}
	list, err := decodeList[T](raw, key)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return list, nil
}
