package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tada/internal/dashboard"
	"tada/internal/service"
)

func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		m.status = ""
		m.refreshRows()
		return m, nil

	case opDoneMsg:
		if msg.err != nil {
			m.fail(msg.err)
			m.refreshRows()
			return m, nil
		}
		m.status = ""
		if msg.apply != nil {
			msg.apply(&m)
		}
		m.refreshRows()
		return m, nil

	case attachmentsMsg:
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		m.view = viewAttachments
		m.attachTaskID = msg.taskID
		m.attachments = msg.urls
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateForm(msg)
		}
		return m.browseKey(msg)
	}

	return m, nil
}

func (m Model) browseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "1":
		m.ctrl.SetFilter(dashboard.FilterAll)
		m.refreshRows()
	case "2":
		m.ctrl.SetFilter(dashboard.FilterActive)
		m.refreshRows()
	case "3":
		m.ctrl.SetFilter(dashboard.FilterCompleted)
		m.refreshRows()
	case "r":
		m.status = "loading tasks..."
		return m, m.loadCmd()
	case "n":
		m.mode = modeAdd
		title, desc := m.ctrl.NewTaskFields()
		m.openForm(title, desc)
	case "e":
		if t, ok := m.selected(); ok && m.ctrl.StartEdit(t.ID) {
			m.mode = modeEdit
			m.openForm(m.ctrl.EditFields())
		}
	case " ":
		if t, ok := m.selected(); ok {
			ctx, store := m.ctx, m.ctrl.Store()
			id := t.ID
			return m, func() tea.Msg {
				return opDoneMsg{err: store.Toggle(ctx, id)}
			}
		}
	case "d":
		if t, ok := m.selected(); ok {
			ctx, store := m.ctx, m.ctrl.Store()
			id := t.ID
			return m, func() tea.Msg {
				return opDoneMsg{err: store.Delete(ctx, id)}
			}
		}
	case "a":
		if t, ok := m.selected(); ok {
			ctx, svc := m.ctx, m.svc
			id := t.ID
			return m, func() tea.Msg {
				urls, err := svc.ListAttachments(ctx, id)
				return attachmentsMsg{taskID: id, urls: urls, err: err}
			}
		}
	case "L":
		if err := m.sess.Logout(); err != nil {
			m.status = errorMessage(err)
			return m, nil
		}
		m.resetAuthInputs(false)
		m.status = "signed out"
	}
	return m, nil
}

func (m *Model) openForm(title, desc string) {
	mk := func(placeholder, value string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 256
		ti.Width = 40
		ti.SetValue(value)
		return ti
	}
	m.form[0] = mk("title", title)
	m.form[1] = mk("description", desc)
	m.form[0].Focus()
	m.formIdx = 0
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.mode == modeEdit {
			m.ctrl.CancelEdit()
		}
		m.mode = modeBrowse
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab:
		m.form[m.formIdx].Blur()
		m.formIdx = 1 - m.formIdx
		m.form[m.formIdx].Focus()
		return m, nil
	case tea.KeyEnter:
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form[m.formIdx], cmd = m.form[m.formIdx].Update(msg)
	return m, cmd
}

// submitForm kicks off the create or update. Controller state is mutated
// here, on the Update goroutine; only the store call runs in the command.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	title := m.form[0].Value()
	desc := m.form[1].Value()
	ctx, store := m.ctx, m.ctrl.Store()

	if m.mode == modeAdd {
		m.ctrl.SetNewTaskFields(title, desc)
		if strings.TrimSpace(title) == "" {
			// Rejected locally; no request. Keep the form open.
			m.status = "title required"
			return m, nil
		}
		m.mode = modeBrowse
		m.status = "creating..."
		return m, func() tea.Msg {
			_, err := store.Create(ctx, title, desc)
			return opDoneMsg{err: err, apply: func(m *Model) {
				m.ctrl.SetNewTaskFields("", "")
				m.status = "task created"
			}}
		}
	}

	// Edit saves clear the slot whether or not the update succeeds.
	id, ok := m.ctrl.Editing()
	m.ctrl.SetEditFields(title, desc)
	m.ctrl.CancelEdit()
	m.mode = modeBrowse
	if !ok {
		return m, nil
	}
	m.status = "saving..."
	return m, func() tea.Msg {
		return opDoneMsg{err: store.Update(ctx, id, title, desc)}
	}
}

func (m *Model) selected() (service.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return service.Task{}, false
	}
	return m.rows[m.cursor], true
}

func (m Model) viewBoard() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Ta-da List"))
	b.WriteString("  ")
	for i, f := range []dashboard.Filter{dashboard.FilterAll, dashboard.FilterActive, dashboard.FilterCompleted} {
		style := tabStyle
		if m.ctrl.Filter() == f {
			style = activeTabStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%d %s", i+1, f)))
	}
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(descStyle.Render("  no tasks"))
		b.WriteString("\n")
	}
	for i, t := range m.rows {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		title := t.Title
		if t.Completed {
			title = doneStyle.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s%s %3d  %s\n", prefix, box, t.ID, title))
		if t.Description != "" {
			b.WriteString(descStyle.Render("           " + t.Description))
			b.WriteString("\n")
		}
	}

	if m.mode != modeBrowse {
		label := "New task"
		if m.mode == modeEdit {
			label = "Edit task"
		}
		form := label + "\n" + m.form[0].View() + "\n" + m.form[1].View() + "\n" +
			helpStyle.Render("enter save · tab switch field · esc cancel")
		b.WriteString("\n")
		b.WriteString(formStyle.Render(form))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("space toggle · n new · e edit · d delete · a attachments · 1/2/3 filter · r reload · L logout · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) updateAttachments(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q":
			m.view = viewBoard
			return m, nil
		}
	}
	return m, nil
}

func (m Model) viewAttachmentsScreen() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Attachments for task #%d", m.attachTaskID)))
	b.WriteString("\n\n")
	if len(m.attachments) == 0 {
		b.WriteString(descStyle.Render("  no attachments"))
		b.WriteString("\n")
	}
	for _, u := range m.attachments {
		b.WriteString("  " + u + "\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc back"))
	b.WriteString("\n")
	return b.String()
}
