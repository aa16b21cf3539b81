package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// resetAuthInputs rebuilds the auth form. Login has email and password;
// signup adds the name field in front.
func (m *Model) resetAuthInputs(signup bool) {
	var fields []textinput.Model
	mk := func(placeholder string, password bool) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 128
		ti.Width = 32
		if password {
			ti.EchoMode = textinput.EchoPassword
		}
		return ti
	}
	if signup {
		fields = append(fields, mk("name", false))
	}
	fields = append(fields, mk("email", false), mk("password", true))
	fields[0].Focus()

	m.authInputs = fields
	m.authFocus = 0
	if signup {
		m.view = viewSignup
	} else {
		m.view = viewLogin
	}
}

func (m Model) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		if msg.err != nil {
			m.status = errorMessage(msg.err)
			return m, nil
		}
		// Session is active and the gateway carries the token; fetch the
		// board.
		m.view = viewBoard
		m.status = "loading tasks..."
		return m, m.loadCmd()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab, tea.KeyDown:
			m.moveAuthFocus(1)
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.moveAuthFocus(-1)
			return m, nil
		case tea.KeyCtrlS:
			m.status = ""
			m.resetAuthInputs(m.view == viewLogin)
			return m, nil
		case tea.KeyEnter:
			if m.authFocus < len(m.authInputs)-1 {
				m.moveAuthFocus(1)
				return m, nil
			}
			return m, m.submitAuth()
		}
	}

	var cmd tea.Cmd
	m.authInputs[m.authFocus], cmd = m.authInputs[m.authFocus].Update(msg)
	return m, cmd
}

func (m *Model) moveAuthFocus(delta int) {
	m.authInputs[m.authFocus].Blur()
	m.authFocus = (m.authFocus + delta + len(m.authInputs)) % len(m.authInputs)
	m.authInputs[m.authFocus].Focus()
}

// submitAuth runs login or signup in a command. The session does all the
// token bookkeeping; the model only reacts to the result.
func (m *Model) submitAuth() tea.Cmd {
	values := make([]string, len(m.authInputs))
	for i, in := range m.authInputs {
		values[i] = strings.TrimSpace(in.Value())
	}

	ctx, sess := m.ctx, m.sess
	if m.view == viewSignup {
		name, email, password := values[0], values[1], values[2]
		m.status = "signing up..."
		return func() tea.Msg {
			return authDoneMsg{err: sess.Signup(ctx, name, email, password)}
		}
	}
	email, password := values[0], values[1]
	m.status = "signing in..."
	return func() tea.Msg {
		return authDoneMsg{err: sess.Login(ctx, email, password)}
	}
}

func (m Model) viewAuth() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Ta-da List"))
	b.WriteString("\n\n")

	if m.view == viewSignup {
		b.WriteString("Create an account\n\n")
	} else {
		b.WriteString("Sign in\n\n")
	}
	for i := range m.authInputs {
		b.WriteString(m.authInputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	switchHint := "ctrl+s sign up"
	if m.view == viewSignup {
		switchHint = "ctrl+s sign in"
	}
	b.WriteString(helpStyle.Render("enter submit · tab next field · " + switchHint + " · esc quit"))
	b.WriteString("\n")
	return formStyle.Render(b.String())
}
