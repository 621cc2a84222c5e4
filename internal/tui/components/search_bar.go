package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/tui/styles"
)

const searchBarWidth = 44

// SearchBar is a single-line query modal
type SearchBar struct {
	visible bool
	title   string
	input   textinput.Model
}

// NewSearchBar creates a hidden search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.CharLimit = 100
	ti.Width = searchBarWidth - 2
	ti.Prompt = "› "

	return SearchBar{input: ti}
}

// Show displays the bar with a title and initial text
func (s *SearchBar) Show(title, initial string) tea.Cmd {
	s.visible = true
	s.title = title
	s.input.SetValue(initial)
	s.input.CursorEnd()
	return s.input.Focus()
}

// Hide dismisses the bar
func (s *SearchBar) Hide() {
	s.visible = false
	s.input.Blur()
}

// IsVisible returns whether the bar is shown
func (s SearchBar) IsVisible() bool {
	return s.visible
}

// Value returns the current input value
func (s SearchBar) Value() string {
	return s.input.Value()
}

// Update handles input events, returns (bar, cmd, submitted).
// Esc hides the bar without submitting.
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, bool) {
	if !s.visible {
		return s, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, FormKeys.Submit):
			s.Hide()
			return s, nil, true
		case key.Matches(keyMsg, FormKeys.Cancel):
			s.Hide()
			return s, nil, false
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, false
}

// View renders the bar as a modal
func (s SearchBar) View() string {
	if !s.visible {
		return ""
	}

	s.input.PromptStyle = styles.FilterPromptStyle
	s.input.TextStyle = lipgloss.NewStyle().Foreground(styles.Text)
	s.input.PlaceholderStyle = styles.DimStyle

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(s.title),
		s.input.View(),
		"",
		styles.HelpKeyStyle.Render("enter")+styles.HelpDescStyle.Render(" search  ")+
			styles.HelpKeyStyle.Render("esc")+styles.HelpDescStyle.Render(" cancel"),
	)

	return styles.ModalStyle.Width(searchBarWidth + 4).Render(content)
}
