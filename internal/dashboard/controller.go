package dashboard

import (
	"context"

	"tada/internal/service"
	"tada/internal/tasks"
)

// Controller sits between a task store and a view. At most one task is in
// edit mode at any time; task IDs are positive server-assigned integers,
// so 0 encodes "not editing".
type Controller struct {
	store  *tasks.Store
	filter Filter

	editingID  int
	editTitle  string
	editDesc   string

	newTitle string
	newDesc  string
}

// NewController creates a controller in the viewing state with the default
// filter.
func NewController(store *tasks.Store) *Controller {
	return &Controller{store: store}
}

// Store exposes the underlying task store.
func (c *Controller) Store() *tasks.Store { return c.store }

// Filter returns the current filter.
func (c *Controller) Filter() Filter { return c.filter }

// SetFilter switches the visible subset. The canonical list is untouched.
func (c *Controller) SetFilter(f Filter) { c.filter = f }

// Visible returns the current filtered view, order-preserving relative to
// the store's list.
func (c *Controller) Visible() []service.Task {
	return Apply(c.filter, c.store.Tasks())
}

// StartEdit enters edit mode for the given task, seeding the edit fields
// from its current values. Starting an edit while another task is being
// edited overwrites the prior edit. Returns false if the task is unknown.
func (c *Controller) StartEdit(id int) bool {
	task, ok := c.store.Get(id)
	if !ok {
		return false
	}
	c.editingID = task.ID
	c.editTitle = task.Title
	c.editDesc = task.Description
	return true
}

// Editing returns the ID of the task being edited, if any.
func (c *Controller) Editing() (int, bool) {
	return c.editingID, c.editingID != 0
}

// EditFields returns the pending edited title and description.
func (c *Controller) EditFields() (title, description string) {
	return c.editTitle, c.editDesc
}

// SetEditFields overwrites the pending edit values.
func (c *Controller) SetEditFields(title, description string) {
	c.editTitle = title
	c.editDesc = description
}

// SaveEdit pushes the edited fields through the store and leaves edit
// mode. The edit slot is cleared whether or not the update succeeded; the
// error is returned for the view to surface.
func (c *Controller) SaveEdit(ctx context.Context) error {
	id, ok := c.Editing()
	if !ok {
		return nil
	}
	err := c.store.Update(ctx, id, c.editTitle, c.editDesc)
	c.clearEdit()
	return err
}

// CancelEdit leaves edit mode without touching the store.
func (c *Controller) CancelEdit() {
	c.clearEdit()
}

func (c *Controller) clearEdit() {
	c.editingID = 0
	c.editTitle = ""
	c.editDesc = ""
}

// NewTaskFields returns the pending new-task form values.
func (c *Controller) NewTaskFields() (title, description string) {
	return c.newTitle, c.newDesc
}

// SetNewTaskFields overwrites the pending new-task form values.
func (c *Controller) SetNewTaskFields(title, description string) {
	c.newTitle = title
	c.newDesc = description
}

// SubmitNew creates a task from the form fields. The form is cleared only
// on success; a locally rejected empty title leaves it intact for the user
// to fix.
func (c *Controller) SubmitNew(ctx context.Context) (service.Task, error) {
	created, err := c.store.Create(ctx, c.newTitle, c.newDesc)
	if err != nil {
		return service.Task{}, err
	}
	c.newTitle = ""
	c.newDesc = ""
	return created, nil
}
