// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginModel is the password prompt shown while the session is
// unauthenticated. It only collects input; the round trip is started by
// appModel.
type loginModel struct {
	input      textinput.Model
	submitting bool
	errMsg     string
	notice     string
}

func newLoginModel() loginModel {
	in := textinput.New()
	in.Placeholder = "password"
	in.CharLimit = 256
	in.Width = 40
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '*'
	in.Focus()

	return loginModel{input: in}
}

// reset clears the typed password and any message, keeping notice.
func (m *loginModel) reset() {
	m.input.SetValue("")
	m.input.Focus()
	m.submitting = false
	m.errMsg = ""
}

func (m loginModel) password() string {
	return m.input.Value()
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m loginModel) View() string {
	var b strings.Builder
	if m.notice != "" {
		b.WriteString(m.notice)
		b.WriteString("\n\n")
	}
	b.WriteString("Пароль  │ [")
	b.WriteString(m.input.View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Войти...]\n")
	} else {
		b.WriteString("\n[Войти]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Ошибка: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("ВХОД", strings.TrimRight(b.String(), "\n"), "enter: войти")
}
