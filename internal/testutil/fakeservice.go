// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"

	"tada/internal/service"
)

// FakeService is an in-memory implementation of service.Service for
// testing. It records every call so tests can assert exactly which
// requests were (or were not) issued.
type FakeService struct {
	mu     sync.Mutex
	nextID int
	tasks  []service.Task

	// Accounts maps email -> password for login checks.
	Accounts map[string]string

	// Token is returned by successful logins.
	Token string

	// Attachments maps taskID -> URLs.
	Attachments map[int][]string

	// Calls records each invocation as "Method" or "Method(args)".
	Calls []string

	// Error injection.
	LoginErr       error
	SignupErr      error
	ListTasksErr   error
	CreateTaskErr  error
	UpdateTaskErr  error
	DeleteTaskErr  error
	AttachmentsErr error
	UploadErr      error
}

// NewFakeService creates an empty FakeService with one known account.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID:      1,
		Accounts:    map[string]string{"a@x.com": "pw"},
		Token:       "t1",
		Attachments: make(map[int][]string),
	}
}

// AddTask seeds a task and returns its assigned ID.
func (f *FakeService) AddTask(title, description string, completed bool) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.tasks = append(f.tasks, service.Task{
		ID:          id,
		Title:       title,
		Description: description,
		Completed:   completed,
	})
	return id
}

// TaskByID returns the fake's copy of a task.
func (f *FakeService) TaskByID(id int) (service.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// CallCount returns how many recorded calls start with the given prefix.
func (f *FakeService) CallCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (f *FakeService) record(call string) {
	f.Calls = append(f.Calls, call)
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("Login(%s,%s)", email, password))
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	if pw, ok := f.Accounts[email]; !ok || pw != password {
		return "", &service.APIError{Kind: service.ErrUnauthorized, Message: "Invalid email/password"}
	}
	return f.Token, nil
}

// Signup implements service.Service.
func (f *FakeService) Signup(ctx context.Context, name, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("Signup(%s,%s)", name, email))
	if f.SignupErr != nil {
		return f.SignupErr
	}
	if _, exists := f.Accounts[email]; exists {
		return &service.APIError{Kind: service.ErrDuplicateAccount, Message: "Username or email already exists"}
	}
	f.Accounts[email] = password
	return nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, title, description string) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("CreateTask(%s)", title))
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	task := service.Task{ID: f.nextID, Title: title, Description: description}
	f.nextID++
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int, patch service.TaskPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("UpdateTask(%d)", id))
	if f.UpdateTaskErr != nil {
		return f.UpdateTaskErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		if patch.Title != nil {
			f.tasks[i].Title = *patch.Title
		}
		if patch.Description != nil {
			f.tasks[i].Description = *patch.Description
		}
		if patch.Completed != nil {
			f.tasks[i].Completed = *patch.Completed
		}
		return nil
	}
	return &service.APIError{Kind: service.ErrTaskNotFound}
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("DeleteTask(%d)", id))
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &service.APIError{Kind: service.ErrTaskNotFound}
}

// ListAttachments implements service.Service.
func (f *FakeService) ListAttachments(ctx context.Context, taskID int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("ListAttachments(%d)", taskID))
	if f.AttachmentsErr != nil {
		return nil, f.AttachmentsErr
	}
	return f.Attachments[taskID], nil
}

// UploadAttachments implements service.Service.
func (f *FakeService) UploadAttachments(ctx context.Context, taskID int, files []service.FileUpload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("UploadAttachments(%d,%d files)", taskID, len(files)))
	if f.UploadErr != nil {
		return f.UploadErr
	}
	for _, file := range files {
		// Drain so callers can treat the reader as consumed.
		_, _ = io.Copy(io.Discard, file.Content)
		f.Attachments[taskID] = append(f.Attachments[taskID],
			fmt.Sprintf("https://files.example.com/tasks/%d/%s", taskID, file.Name))
	}
	return nil
}
