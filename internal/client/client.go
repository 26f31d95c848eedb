// Package client is a Go client for the task API, used by cmd/client.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/atinyakov/GophTasks/internal/models"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps well-known statuses onto the shared error values so
// callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return models.ErrValidation
	case http.StatusUnauthorized:
		return models.ErrInvalidCredentials
	case http.StatusNotFound:
		return models.ErrNotFound
	case http.StatusConflict:
		return models.ErrConflict
	}
	return nil
}

// Client talks to one task API server.
type Client struct {
	baseURL string
	http    *http.Client
	// Token is sent as a bearer token when non-empty. SignIn sets it.
	Token string
}

// New returns a Client for baseURL using httpClient.
func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// NewHTTPClient returns an HTTP client that additionally trusts the CA
// certificate in caFile. An empty caFile uses the system roots.
func NewHTTPClient(caFile string) (*http.Client, error) {
	if caFile == "" {
		return &http.Client{Timeout: 10 * time.Second}, nil
	}

	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA cert: %w", err)
	}
	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caCert) {
		return nil, errors.New("failed to parse CA cert")
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			RootCAs:    caPool,
			MinVersion: tls.VersionTLS12,
		},
	}
	return &http.Client{Transport: transport, Timeout: 10 * time.Second}, nil
}

// SignUp registers a new account.
func (c *Client) SignUp(ctx context.Context, creds models.Credentials) error {
	return c.do(ctx, http.MethodPost, "/auth/signup", creds, nil)
}

// SignIn obtains an access token and stores it in c.Token.
func (c *Client) SignIn(ctx context.Context, creds models.Credentials) (string, error) {
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/signin", creds, &out); err != nil {
		return "", err
	}
	c.Token = out.AccessToken
	return out.AccessToken, nil
}

// ListTasks returns the caller's tasks. Empty status or search mean no restriction.
func (c *Client) ListTasks(ctx context.Context, status, search string) ([]models.Task, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if search != "" {
		q.Set("search", search)
	}
	path := "/tasks"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches one task.
func (c *Client) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var t models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTask creates a task and returns it.
func (c *Client) CreateTask(ctx context.Context, title, description string) (*models.Task, error) {
	var t models.Task
	req := models.CreateTaskRequest{Title: title, Description: description}
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

// UpdateTaskStatus changes the status of a task and returns the updated task.
func (c *Client) UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error) {
	var t models.Task
	req := models.UpdateStatusRequest{Status: status}
	if err := c.do(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id)+"/status", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// do sends body as JSON and decodes a successful response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
