package service

import "context"

// Service defines the interface for task backend operations.
// All wire calls go through this interface; commands and the TUI never
// touch the HTTP layer directly.
type Service interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)

	// Signup registers a new account. The response body is not consumed
	// beyond success/failure.
	Signup(ctx context.Context, name, email, password string) error

	// ListTasks returns all tasks for the signed-in user.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task and returns it with the server-assigned ID.
	CreateTask(ctx context.Context, title, description string) (Task, error)

	// UpdateTask sends a partial update for the task with the given ID.
	UpdateTask(ctx context.Context, id int, patch TaskPatch) error

	// DeleteTask deletes the task with the given ID.
	DeleteTask(ctx context.Context, id int) error

	// ListAttachments returns the attachment URLs for a task.
	ListAttachments(ctx context.Context, taskID int) ([]string, error)

	// UploadAttachments uploads files as multipart form data under the
	// "files" field. Callers re-fetch the attachment list afterwards.
	UploadAttachments(ctx context.Context, taskID int, files []FileUpload) error
}
