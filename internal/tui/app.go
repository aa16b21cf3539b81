// Package tui implements the interactive dashboard: a login/signup form
// and a task board with filter tabs, inline edit, toggle, and delete.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tada/internal/dashboard"
	"tada/internal/service"
	"tada/internal/session"
	"tada/internal/tasks"
)

type view int

const (
	viewLogin view = iota
	viewSignup
	viewBoard
	viewAttachments
)

type boardMode int

const (
	modeBrowse boardMode = iota
	modeAdd
	modeEdit
)

// Messages produced by async operations. Every network call runs in a
// tea.Cmd; all model state changes happen in Update.

type authDoneMsg struct{ err error }

type tasksLoadedMsg struct{ err error }

type opDoneMsg struct {
	err error
	// apply patches controller/view state on success; run on the Update
	// goroutine only.
	apply func(*Model)
}

type attachmentsMsg struct {
	taskID int
	urls   []string
	err    error
}

// Model is the top-level bubbletea model.
type Model struct {
	ctx  context.Context
	sess *session.Session
	svc  service.Service
	ctrl *dashboard.Controller

	view   view
	width  int
	height int
	status string

	// auth form: login uses [email password], signup [name email password]
	authInputs []textinput.Model
	authFocus  int

	// board
	rows    []service.Task
	cursor  int
	mode    boardMode
	form    [2]textinput.Model // title, description
	formIdx int

	attachTaskID int
	attachments  []string
}

// Run opens the dashboard and blocks until the user quits.
func Run(ctx context.Context, sess *session.Session, svc service.Service) error {
	store := tasks.NewStore(svc, sess)
	m := newModel(ctx, sess, svc, dashboard.NewController(store))

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func newModel(ctx context.Context, sess *session.Session, svc service.Service, ctrl *dashboard.Controller) Model {
	m := Model{
		ctx:  ctx,
		sess: sess,
		svc:  svc,
		ctrl: ctrl,
		view: viewLogin,
	}
	if sess.Active() {
		m.view = viewBoard
		m.status = "loading tasks..."
	}
	m.resetAuthInputs(false)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.view == viewBoard {
		return m.loadCmd()
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}

	switch m.view {
	case viewLogin, viewSignup:
		return m.updateAuth(msg)
	case viewAttachments:
		return m.updateAttachments(msg)
	default:
		return m.updateBoard(msg)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.view {
	case viewLogin, viewSignup:
		return m.viewAuth()
	case viewAttachments:
		return m.viewAttachmentsScreen()
	default:
		return m.viewBoard()
	}
}

// loadCmd fetches the task list through the store.
func (m Model) loadCmd() tea.Cmd {
	ctx, store := m.ctx, m.ctrl.Store()
	return func() tea.Msg {
		return tasksLoadedMsg{err: store.Load(ctx)}
	}
}

// refreshRows recomputes the filtered view and clamps the cursor.
func (m *Model) refreshRows() {
	m.rows = m.ctrl.Visible()
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// fail routes an operation error: an auth rejection sends the user back to
// the login view (the session is already expired by the store), anything
// else lands in the status line.
func (m *Model) fail(err error) {
	if errors.Is(err, service.ErrUnauthorized) || errors.Is(err, service.ErrNoSession) {
		m.view = viewLogin
		m.resetAuthInputs(false)
		m.status = "session expired, sign in again"
		return
	}
	m.status = errorMessage(err)
}

// errorMessage picks user-facing wording per the error taxonomy: the
// server's own message when it sent one, a generic retry hint for
// transport failures.
func errorMessage(err error) string {
	var apiErr *service.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, service.ErrTransport) {
		return "could not reach the server, try again"
	}
	return fmt.Sprintf("error: %v", err)
}
