// Package taskclient is a typed client for the taskboard API, with a persisted
// session and an optimistic task board on top.
package taskclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
	language   string

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLanguage sets Accept-Language so server messages come back translated.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New builds a client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// OnUnauthorized registers fn to run after an authenticated call is rejected
// with 401. The token is already cleared when fn runs.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) Register(ctx context.Context, name, email, password string) (AuthResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.authenticate(ctx, "/api/register", body)
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authenticate(ctx, "/api/login", body)
}

func (c *Client) authenticate(ctx context.Context, path string, body interface{}) (AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return AuthResponse{}, err
	}
	c.SetToken(out.Token)
	return out, nil
}

// Logout tells the server and drops the token whatever the outcome.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil, nil)
	c.SetToken("")
	return err
}

func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/api/user", nil, nil, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

func (c *Client) ListTasks(ctx context.Context, params ListParams) (TaskPage, error) {
	var out TaskPage
	if err := c.do(ctx, http.MethodGet, "/api/tasks", params.Values(), nil, &out); err != nil {
		return TaskPage{}, err
	}
	if out.Data == nil {
		out.Data = []Task{}
	}
	return out, nil
}

type dataEnvelope[T any] struct {
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

func (c *Client) GetTask(ctx context.Context, id int64) (Task, error) {
	var out dataEnvelope[Task]
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, nil, &out); err != nil {
		return Task{}, err
	}
	return out.Data, nil
}

func (c *Client) CreateTask(ctx context.Context, input TaskInput) (Task, error) {
	var out dataEnvelope[Task]
	if err := c.do(ctx, http.MethodPost, "/api/tasks", nil, input, &out); err != nil {
		return Task{}, err
	}
	return out.Data, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int64, patch TaskPatch) (Task, error) {
	var out dataEnvelope[Task]
	if err := c.do(ctx, http.MethodPatch, taskPath(id), nil, patch, &out); err != nil {
		return Task{}, err
	}
	return out.Data, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, nil)
}

func (c *Client) Statistics(ctx context.Context) (Statistics, error) {
	var out dataEnvelope[Statistics]
	if err := c.do(ctx, http.MethodGet, "/api/tasks/statistics", nil, nil, &out); err != nil {
		return Statistics{}, err
	}
	return out.Data, nil
}

func taskPath(id int64) string {
	return fmt.Sprintf("/api/tasks/%d", id)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: KindUnknown, Message: "encode request", Err: err}
		}
		body = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return &Error{Kind: KindUnknown, Message: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}
	token := c.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Status: resp.StatusCode, Message: err.Error(), Err: err}
	}

	zap.L().Debug("taskboard api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := errorFromResponse(resp.StatusCode, data)
		if apiErr.Kind == KindUnauthorized && token != "" {
			c.expire(token)
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindUnknown, Status: resp.StatusCode, Message: "decode response", Err: err}
	}
	return nil
}

// expire drops token unless a newer one replaced it in the meantime.
func (c *Client) expire(token string) {
	c.mu.Lock()
	if c.token == token {
		c.token = ""
	}
	hook := c.onUnauthorized
	c.mu.Unlock()

	if hook != nil {
		hook()
	}
}
