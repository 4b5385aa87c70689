package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"taskdeck/internal/task"
)

// TokenSource supplies a fresh bearer token per request. Implemented by
// auth.Manager.
type TokenSource interface {
	FreshToken(ctx context.Context) (string, error)
}

// Client implements Service over HTTP. Every call obtains a fresh token
// first and fails without touching the network when none is available.
// There are no retries and no timeouts beyond the http.Client defaults;
// concurrent calls are independent and not coordinated here.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	log     *logrus.Entry
}

// New creates a client for the task resource under baseURL.
func New(baseURL string, tokens TokenSource, log *logrus.Entry) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		http:    &http.Client{},
		log:     log,
	}
}

// List implements Service.
func (c *Client) List(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/tasks", nil, http.StatusOK, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create implements Service.
func (c *Client) Create(ctx context.Context, input task.CreateInput) (task.Task, error) {
	var created task.Task
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/tasks", input, http.StatusCreated, &created); err != nil {
		return task.Task{}, err
	}
	return created, nil
}

// Update implements Service.
func (c *Client) Update(ctx context.Context, id string, patch task.Patch) (task.Task, error) {
	var updated task.Task
	if err := c.do(ctx, http.MethodPut, c.baseURL+"/tasks/"+id, patch, http.StatusOK, &updated); err != nil {
		return task.Task{}, err
	}
	return updated, nil
}

// Delete implements Service.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/tasks/"+id, nil, http.StatusNoContent, nil)
}

// do issues one authenticated request. body is marshaled as JSON when
// non-nil; the response is decoded into out when out is non-nil and the
// status matches want.
func (c *Client) do(ctx context.Context, method, url string, body any, want int, out any) error {
	token, err := c.tokens.FreshToken(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.WithFields(logrus.Fields{"method": method, "url": url}).Debug("remote store request")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote store unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != want {
		return &RemoteError{Status: resp.StatusCode, Message: remoteMessage(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("invalid response body: %w", err)
		}
	}
	return nil
}

// remoteMessage extracts the error message from a JSON error body, falling
// back to the raw body.
func remoteMessage(data []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &e) == nil && e.Error != "" {
		return e.Error
	}
	return string(bytes.TrimSpace(data))
}
