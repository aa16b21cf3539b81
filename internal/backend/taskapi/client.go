// Package taskapi implements the service.Service interface against the
// task service's REST API.
package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"tada/internal/gateway"
	"tada/internal/service"
)

// Client implements service.Service over a Gateway.
type Client struct {
	gw *gateway.Gateway
}

// New creates a client that dispatches through the given gateway.
func New(gw *gateway.Gateway) *Client {
	return &Client{gw: gw}
}

// Wire shapes. Keeping these explicit catches contract divergence at the
// boundary instead of failing silently downstream.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type updateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

type attachmentsResponse struct {
	Attachments []string `json:"attachments"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Login implements service.Service.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login response carried no token")
	}
	return resp.Token, nil
}

// Signup implements service.Service. The response body is not consumed
// beyond success/failure.
func (c *Client) Signup(ctx context.Context, name, email, password string) error {
	err := c.doJSON(ctx, http.MethodPost, "/signup", signupRequest{Name: name, Email: email, Password: password}, nil)
	if err == nil {
		return nil
	}
	var rejected *statusError
	if errors.As(err, &rejected) && rejected.duplicate() {
		return &service.APIError{Kind: service.ErrDuplicateAccount, Message: rejected.message}
	}
	return err
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.doJSON(ctx, http.MethodGet, "/tasks/", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, title, description string) (service.Task, error) {
	var task service.Task
	req := createTaskRequest{Title: title, Description: description, Completed: false}
	if err := c.doJSON(ctx, http.MethodPost, "/tasks/", req, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask implements service.Service. The response is not consumed.
func (c *Client) UpdateTask(ctx context.Context, id int, patch service.TaskPatch) error {
	req := updateTaskRequest{
		Title:       patch.Title,
		Description: patch.Description,
		Completed:   patch.Completed,
	}
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), req, nil)
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

// ListAttachments implements service.Service.
func (c *Client) ListAttachments(ctx context.Context, taskID int) ([]string, error) {
	var resp attachmentsResponse
	path := fmt.Sprintf("/tasks/%d/attachments", taskID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Attachments, nil
}

// UploadAttachments implements service.Service. Files are sent as a single
// multipart request under the "files" field.
func (c *Client) UploadAttachments(ctx context.Context, taskID int, files []service.FileUpload) error {
	if len(files) == 0 {
		return fmt.Errorf("no files provided")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", f.Name, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return fmt.Errorf("encoding %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("encoding upload: %w", err)
	}

	path := fmt.Sprintf("/tasks/%d/upload", taskID)
	resp, err := c.gw.Do(ctx, http.MethodPost, path, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	return nil
}

// doJSON sends a single JSON request. A nil in skips the request body; a
// nil out discards the response body.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	resp, err := c.gw.Do(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// statusError is a rejection that maps to none of the sentinel errors.
type statusError struct {
	code    int
	status  string
	message string
}

func (e *statusError) Error() string {
	if e.message != "" {
		return fmt.Sprintf("server rejected request (%s): %s", e.status, e.message)
	}
	return fmt.Sprintf("server rejected request (%s)", e.status)
}

// duplicate reports whether the rejection means the account already
// exists. The backend answers 400 with an "already exists" message rather
// than a clean 409, so both are accepted.
func (e *statusError) duplicate() bool {
	return e.code == http.StatusConflict ||
		strings.Contains(strings.ToLower(e.message), "exists")
}

// decodeError maps an error response onto the service error taxonomy,
// preserving the server-provided message when one is present.
func decodeError(resp *http.Response) error {
	var body errorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(data, &body)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &service.APIError{Kind: service.ErrUnauthorized, Message: body.Error}
	case http.StatusNotFound:
		return &service.APIError{Kind: service.ErrTaskNotFound, Message: body.Error}
	}
	return &statusError{code: resp.StatusCode, status: resp.Status, message: body.Error}
}
