package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/filter"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// RenderFilterBar renders the genre/year/rating selection on the left and
// the "Showing X of Y movies" count on the right, in one line of width.
func RenderFilterBar(sel domain.FilterSelection, shown, total, width int) string {
	genre := "All Genres"
	if sel.Genre != nil {
		if name := filter.GenreName(*sel.Genre); name != "" {
			genre = name
		} else {
			genre = fmt.Sprintf("Genre %d", *sel.Genre)
		}
	}
	year := "All Years"
	if sel.Year != nil {
		year = *sel.Year
	}
	rating := filter.RatingLabel(0)
	if sel.MinRating != nil {
		rating = filter.RatingLabel(*sel.MinRating)
	}

	chip := func(k, label string, set bool) string {
		style := styles.DimBadgeStyle
		if set {
			style = styles.BadgeStyle
		}
		return styles.HelpKeyStyle.Render(k) + " " + style.Render(label)
	}

	left := strings.Join([]string{
		chip("g", genre, sel.Genre != nil),
		chip("y", year, sel.Year != nil),
		chip("r", rating, sel.MinRating != nil && *sel.MinRating > 0),
	}, "  ")
	if sel.Active() {
		left += "  " + styles.HelpKeyStyle.Render("c") + styles.HelpDescStyle.Render(" clear")
	}

	right := styles.DimStyle.Render(fmt.Sprintf("Showing %d of %d movies", shown, total))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}
