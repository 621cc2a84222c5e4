package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/tui/styles"
)

const loginFormWidth = 36

// LoginForm collects a username and password
type LoginForm struct {
	username textinput.Model
	password textinput.Model
	focus    int // 0 username, 1 password
	err      string
}

// NewLoginForm creates a login form with the username field focused
func NewLoginForm() LoginForm {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 64
	user.Width = loginFormWidth - 12
	user.Prompt = ""
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.Width = loginFormWidth - 12
	pass.Prompt = ""
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return LoginForm{username: user, password: pass}
}

// Values returns the entered username and password
func (f LoginForm) Values() (string, string) {
	return f.username.Value(), f.password.Value()
}

// SetError shows a message under the fields; "" clears it
func (f *LoginForm) SetError(msg string) {
	f.err = msg
}

// Reset clears both fields and focuses the username
func (f *LoginForm) Reset() tea.Cmd {
	f.username.SetValue("")
	f.password.SetValue("")
	f.err = ""
	return f.setFocus(0)
}

// Focused returns 0 when the username field has focus and 1 for password
func (f LoginForm) Focused() int {
	return f.focus
}

func (f *LoginForm) setFocus(i int) tea.Cmd {
	f.focus = i
	if i == 0 {
		f.password.Blur()
		return f.username.Focus()
	}
	f.username.Blur()
	return f.password.Focus()
}

// Update handles input events, returns (form, cmd, submitted)
func (f LoginForm) Update(msg tea.Msg) (LoginForm, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, FormKeys.Submit):
			if f.focus == 0 {
				return f, f.setFocus(1), false
			}
			return f, nil, true
		case key.Matches(keyMsg, FormKeys.Next), key.Matches(keyMsg, FormKeys.Prev):
			return f, f.setFocus(1 - f.focus), false
		}
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.username, cmd = f.username.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return f, cmd, false
}

// View renders the form as a modal
func (f LoginForm) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted).Width(10)
	focusedLabel := labelStyle.Foreground(styles.Accent).Bold(true)

	f.username.TextStyle = lipgloss.NewStyle().Foreground(styles.Text)
	f.password.TextStyle = f.username.TextStyle
	f.username.PlaceholderStyle = styles.DimStyle
	f.password.PlaceholderStyle = styles.DimStyle

	userLabel, passLabel := labelStyle, labelStyle
	if f.focus == 0 {
		userLabel = focusedLabel
	} else {
		passLabel = focusedLabel
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Sign in to reel"))
	b.WriteString("\n")
	b.WriteString(userLabel.Render("Username") + f.username.View())
	b.WriteString("\n\n")
	b.WriteString(passLabel.Render("Password") + f.password.View())
	b.WriteString("\n\n")
	if f.err != "" {
		b.WriteString(styles.ErrorStyle.Render(f.err))
	} else {
		b.WriteString(styles.DimStyle.Render("Password must be at least 4 characters"))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.HelpKeyStyle.Render("tab") + styles.HelpDescStyle.Render(" switch  ") +
		styles.HelpKeyStyle.Render("enter") + styles.HelpDescStyle.Render(" sign in  ") +
		styles.HelpKeyStyle.Render("C-c") + styles.HelpDescStyle.Render(" quit"))

	return styles.ModalStyle.Width(loginFormWidth + 8).Render(b.String())
}
