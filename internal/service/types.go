// Package service defines the backend-agnostic interface for auth and task
// operations.
package service

import "io"

// Task represents a single task item.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// TaskPatch is a partial task update. Nil fields are left untouched by the
// server.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// FileUpload is a single file to attach to a task.
type FileUpload struct {
	Name        string
	ContentType string
	Content     io.Reader
}
