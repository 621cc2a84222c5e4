package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/filter"
	"github.com/mmcdole/reel/internal/tui/components"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// View renders the current screen
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	// Handle modal states
	if m.ShowHelp {
		return m.renderHelp()
	}
	if m.ConfirmLogout {
		return m.renderLogoutConfirmation()
	}
	if m.SearchBar.IsVisible() {
		return lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.SearchBar.View())
	}

	contentHeight := m.Height - ChromeHeight

	var content string
	switch m.Screen {
	case ScreenLogin:
		content = lipgloss.Place(m.Width, contentHeight,
			lipgloss.Center, lipgloss.Center,
			m.Login.View())
	case ScreenHome:
		content = m.renderHome()
	case ScreenFavorites:
		m.FavoritesList.SetSize(m.Width, contentHeight)
		content = m.FavoritesList.View()
	case ScreenDetail:
		detail := m.Detail
		detail.SetSize(m.Width, contentHeight)
		content = detail.View()
	default:
		content = m.renderNotFound(contentHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		content,
		m.renderFooter(),
	)
}

func (m Model) renderHome() string {
	shown, total := filter.Counts(m.snapshot.Active(), m.snapshot.Filter)
	lines := []string{components.RenderFilterBar(m.snapshot.Filter, shown, total, m.Width)}
	if m.snapshot.Error != "" {
		lines = append(lines, styles.ErrorStyle.Render(styles.Truncate(m.snapshot.Error, m.Width)))
	}
	m.Home.SetSize(m.Width, m.homeListHeight())
	lines = append(lines, m.Home.View())
	return strings.Join(lines, "\n")
}

func (m Model) renderNotFound(height int) string {
	title := "Movie not found"
	if m.notFoundErr != nil && !errors.Is(m.notFoundErr, domain.ErrMovieNotFound) {
		title = "Could not load movie details"
	}

	body := styles.TitleStyle.Render(title)
	if m.notFoundErr != nil {
		body += "\n\n" + styles.DimStyle.Render(styles.Truncate(m.notFoundErr.Error(), max(m.Width-10, 10)))
	}
	body += "\n\n" + styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" back to movies")

	return lipgloss.Place(m.Width, height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(body))
}

// renderHeader renders the app name, screen and signed-in user
func (m Model) renderHeader() string {
	left := styles.AccentStyle.Bold(true).Render("reel") +
		styles.DimStyle.Render("  "+m.Screen.String())

	var rightParts []string
	if sess, ok := m.svc.Session.Current(); ok {
		rightParts = append(rightParts, sess.Username)
	}
	rightParts = append(rightParts, string(styles.Current()))
	right := styles.DimStyle.Render(strings.Join(rightParts, " · "))

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner while fetching, otherwise the status message
	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.snapshot.Loading && m.Screen == ScreenHome:
		left = m.spinner.View() + " " + styles.DimStyle.Render("Loading...")
	case m.StatusMsg != "":
		left = styles.SuccessStyle.Render(m.StatusMsg)
	}

	// Center section: context-specific hints
	var center string
	hint := func(k, desc string) string {
		return styles.AccentStyle.Render(k) + styles.DimStyle.Render(" "+desc)
	}
	switch m.Screen {
	case ScreenHome:
		center = hint("s", "Search") + "  " + hint("b", "Favorite") + "  " + hint("v", "Favorites")
	case ScreenFavorites:
		center = hint("s", "Search") + "  " + hint("b", "Remove") + "  " + hint("esc", "Back")
	case ScreenDetail:
		center = hint("o", "Trailer") + "  " + hint("b", "Favorite") + "  " + hint("esc", "Back")
	}

	// Right side: "? help" hint
	right := hint("?", "help")
	if m.Screen == ScreenLogin {
		right = ""
	}

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	h := m.help
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle
	h.Styles.FullSeparator = styles.DimStyle
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.ShortSeparator = styles.DimStyle
	h.ShowAll = true

	body := styles.ModalTitleStyle.Render("Keys") + "\n" +
		h.View(Keys) + "\n\n" +
		styles.DimStyle.Render("Press any key to return...")

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(body))
}

// renderLogoutConfirmation renders the logout confirmation modal
func (m Model) renderLogoutConfirmation() string {
	modal := `
          Log Out?

  Your favorites stay saved
  on this machine.

     [Y] Yes      [N] No
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(modal))
}
