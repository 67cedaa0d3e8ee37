package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskman/delivery/rest/dto"
)

// DefaultTimeout bounds every request. The client abandons a request after
// this wait and surfaces the error; it never retries automatically.
const DefaultTimeout = 10 * time.Second

// Client is a typed HTTP client for the task manager API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithTimeout overrides the request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the API at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response from the server
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// Query mirrors the list endpoint's filter parameters. Zero value lists
// everything, newest first.
type Query struct {
	Status   string
	Priority string
	Category string
	Search   string
	SortBy   string
}

func (q Query) values() url.Values {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Priority != "" {
		v.Set("priority", q.Priority)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	return v
}

// ListTasks fetches tasks matching the query
func (c *Client) ListTasks(ctx context.Context, query Query) ([]*dto.TaskResponse, error) {
	path := "/tasks"
	if params := query.values().Encode(); params != "" {
		path += "?" + params
	}

	var tasks []*dto.TaskResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches a single task by id
func (c *Client) GetTask(ctx context.Context, id string) (*dto.TaskResponse, error) {
	var task dto.TaskResponse
	if err := c.do(ctx, http.MethodGet, "/tasks/"+id, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a new task
func (c *Client) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	var task dto.TaskResponse
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update to a task
func (c *Client) UpdateTask(ctx context.Context, id string, req dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	var task dto.TaskResponse
	if err := c.do(ctx, http.MethodPut, "/tasks/"+id, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ToggleTask flips a task's completion flag
func (c *Client) ToggleTask(ctx context.Context, id string) (*dto.TaskResponse, error) {
	var task dto.TaskResponse
	if err := c.do(ctx, http.MethodPatch, "/tasks/"+id+"/toggle", nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task and returns its prior state
func (c *Client) DeleteTask(ctx context.Context, id string) (*dto.TaskResponse, error) {
	var resp dto.DeleteTaskResponse
	if err := c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Task, nil
}

// Stats fetches the statistics snapshot
func (c *Client) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	var stats dto.StatsResponse
	if err := c.do(ctx, http.MethodGet, "/tasks/stats/summary", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Health checks the liveness endpoint
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp dto.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			apiErr.Code = errResp.Error
			apiErr.Message = errResp.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
