package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for list columns
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// MovieList is a scrollable, quick-filterable column of movies
type MovieList struct {
	movies []domain.Movie

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width  int
	height int

	title     string
	emptyText string

	loading     bool
	spinnerView string

	// isFavorite marks rows with a star; nil marks nothing
	isFavorite func(id int) bool

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int         // indices into movies
	matched      map[int][]int // movie index -> matched byte offsets in its title
}

// NewMovieList creates an empty list with the given title
func NewMovieList(title string) *MovieList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "

	return &MovieList{
		title:       title,
		emptyText:   "No movies",
		filterInput: ti,
	}
}

// Update handles navigation and quick-filter typing
func (c *MovieList) Update(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyMsg)

	// Filter input active and focused: typing mode
	if c.IsFilterTyping() {
		if isKey {
			switch {
			case key.Matches(keyMsg, MovieListKeys.Escape):
				c.clearFilter()
				return nil
			case key.Matches(keyMsg, MovieListKeys.Enter):
				// Accept filter, blur input to allow navigation
				c.filterInput.Blur()
				return nil
			case keyMsg.Type == tea.KeyBackspace && c.filterInput.Value() == "":
				c.clearFilter()
				return nil
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return cmd
	}

	if !isKey {
		return nil
	}

	// Filter active but blurred: navigating the filtered results
	if c.filterActive {
		switch {
		case key.Matches(keyMsg, MovieListKeys.Escape):
			c.clearFilter()
			return nil
		case key.Matches(keyMsg, MovieListKeys.Filter):
			return c.filterInput.Focus()
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return nil
	}

	switch {
	case key.Matches(keyMsg, MovieListKeys.Down):
		if c.cursor < count-1 {
			c.cursor++
		}
	case key.Matches(keyMsg, MovieListKeys.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(keyMsg, MovieListKeys.Home):
		c.cursor = 0
		c.offset = 0
	case key.Matches(keyMsg, MovieListKeys.End):
		c.cursor = count - 1
	case key.Matches(keyMsg, MovieListKeys.HalfDown):
		c.cursor = min(c.cursor+c.maxVisible/2, count-1)
	case key.Matches(keyMsg, MovieListKeys.HalfUp):
		c.cursor = max(c.cursor-c.maxVisible/2, 0)
	case key.Matches(keyMsg, MovieListKeys.PageDown):
		c.cursor = min(c.cursor+c.maxVisible, count-1)
	case key.Matches(keyMsg, MovieListKeys.PageUp):
		c.cursor = max(c.cursor-c.maxVisible, 0)
	}
	c.ensureVisible()
	return nil
}

// View renders the bordered column
func (c *MovieList) View() string {
	style := styles.ActiveBorder
	content := c.renderContent()

	// Subtract frame (border) size so total rendered size equals c.width x c.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(c.width-frameW, 0)).
		Height(max(c.height-frameH, 0)).
		Render(content)
}

// SetSize updates the column dimensions
func (c *MovieList) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

// Title returns the column title
func (c *MovieList) Title() string {
	return c.title
}

// SetTitle replaces the column title
func (c *MovieList) SetTitle(title string) {
	c.title = title
}

// SetEmptyText sets the line shown when there are no movies
func (c *MovieList) SetEmptyText(text string) {
	c.emptyText = text
}

// SetFavoriteFunc sets the predicate used for the favorite marker
func (c *MovieList) SetFavoriteFunc(fn func(id int) bool) {
	c.isFavorite = fn
}

// SetMovies replaces the list contents. The cursor stays on the same movie
// when it is still present; an active quick filter is re-applied.
func (c *MovieList) SetMovies(movies []domain.Movie) {
	selectedID := -1
	if m, ok := c.SelectedMovie(); ok {
		selectedID = m.ID
	}

	c.movies = movies
	if c.filterActive {
		c.applyFilter()
	}

	c.cursor = 0
	if selectedID >= 0 {
		for i := 0; i < c.ItemCount(); i++ {
			if c.movies[c.mapIndex(i)].ID == selectedID {
				c.cursor = i
				break
			}
		}
	}
	if c.offset > c.cursor {
		c.offset = c.cursor
	}
	c.ensureVisible()
}

// Movies returns the unfiltered contents
func (c *MovieList) Movies() []domain.Movie {
	return c.movies
}

// SelectedMovie returns the movie under the cursor
func (c *MovieList) SelectedMovie() (domain.Movie, bool) {
	count := c.ItemCount()
	if count == 0 || c.cursor >= count {
		return domain.Movie{}, false
	}
	return c.movies[c.mapIndex(c.cursor)], true
}

// SelectedIndex returns the cursor position in the visible (filtered) list
func (c *MovieList) SelectedIndex() int {
	return c.cursor
}

// SetSelectedIndex moves the cursor, clamped to the visible list
func (c *MovieList) SetSelectedIndex(idx int) {
	count := c.ItemCount()
	if count == 0 {
		c.cursor = 0
		return
	}
	c.cursor = max(0, min(idx, count-1))
	c.ensureVisible()
}

// ItemCount returns the number of visible (filtered) movies
func (c *MovieList) ItemCount() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return len(c.movies)
}

// SetLoading toggles the loading placeholder
func (c *MovieList) SetLoading(loading bool) {
	c.loading = loading
}

// IsLoading reports whether the loading placeholder is shown
func (c *MovieList) IsLoading() bool {
	return c.loading
}

// SetSpinnerView sets the rendered spinner frame shown while loading
func (c *MovieList) SetSpinnerView(view string) {
	c.spinnerView = view
}

// ToggleFilter activates the filter input
func (c *MovieList) ToggleFilter() tea.Cmd {
	c.filterActive = true
	c.recalcMaxVisible()
	return c.filterInput.Focus()
}

// IsFiltering returns true if filter mode is active
func (c *MovieList) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c *MovieList) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// FilterQuery returns the current quick-filter text
func (c *MovieList) FilterQuery() string {
	return c.filterQuery
}

// ClearFilter deactivates the filter and shows all movies
func (c *MovieList) ClearFilter() {
	c.clearFilter()
}

// Internal methods

func (c *MovieList) recalcMaxVisible() {
	// Interior height less the title line and both scroll indicators
	c.maxVisible = c.height - BorderHeight - ScrollIndicatorLines - 1
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *MovieList) ensureVisible() {
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *MovieList) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.filteredIdx = nil
	c.matched = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

func (c *MovieList) applyFilter() {
	query := c.filterInput.Value()
	c.filterQuery = query

	if query == "" {
		c.filteredIdx = nil
		c.matched = nil
		return
	}

	lowerTitles := make([]string, len(c.movies))
	for i, m := range c.movies {
		lowerTitles[i] = strings.ToLower(m.Title)
	}

	matches := fuzzy.Find(strings.ToLower(query), lowerTitles)

	c.filteredIdx = make([]int, len(matches))
	c.matched = make(map[int][]int, len(matches))
	for i, match := range matches {
		c.filteredIdx[i] = match.Index
		c.matched[match.Index] = match.MatchedIndexes
	}

	// Reset cursor to first match
	c.cursor = 0
	c.offset = 0
}

func (c *MovieList) mapIndex(i int) int {
	if c.filteredIdx != nil && i < len(c.filteredIdx) {
		return c.filteredIdx[i]
	}
	return i
}

// Rendering

func (c *MovieList) renderContent() string {
	itemWidth := c.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))

	if c.loading {
		loadingLine := styles.DimStyle.Render(strings.TrimSpace(c.spinnerView + " Loading..."))
		return titleLine + "\n \n" + loadingLine + "\n "
	}

	count := c.ItemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render(c.emptyText)
		if c.filterActive && c.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := titleLine + "\n \n" + emptyMsg + "\n "
		if c.filterActive {
			content += "\n" + c.renderFilterBar()
		}
		return content
	}

	end := min(c.offset+c.maxVisible, count)
	lines := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		idx := c.mapIndex(i)
		lines = append(lines, c.renderMovieItem(c.movies[idx], c.matched[idx], i == c.cursor, itemWidth))
	}

	// Always reserve the indicator lines so the layout does not shift
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}
	return content
}

func (c *MovieList) renderMovieItem(m domain.Movie, matched []int, selected bool, width int) string {
	markerChar := styles.NotFavoriteChar
	markerFg := styles.Dim
	if c.isFavorite != nil && c.isFavorite(m.ID) {
		markerChar = styles.FavoriteChar
		markerFg = styles.Accent
	}

	rating := styles.FavoriteChar + " " + m.FormattedRating()
	ratingFg := styles.RatingColor(m.VoteAverage)

	title := m.Title
	if year := m.Year(); year != "" {
		title = fmt.Sprintf("%s (%s)", m.Title, year)
	}

	// width - marker(1) - space(1) - gap(2) - rating - margins(2)
	available := width - 6 - lipgloss.Width(rating)
	if available < 5 {
		available = 5
	}
	title = styles.Truncate(title, available)

	parts := []styles.RowPart{{Text: markerChar, Foreground: &markerFg}, {Text: " "}}
	parts = append(parts, highlightParts(title, matched)...)
	parts = append(parts, styles.RowPart{Text: strings.Repeat(" ", max(available-lipgloss.Width(title), 0)+2)})
	parts = append(parts, styles.RowPart{Text: rating, Foreground: &ratingFg})

	return styles.RenderListRow(parts, selected, width)
}

// highlightParts splits text into runs, coloring the matched byte offsets
func highlightParts(text string, matched []int) []styles.RowPart {
	if len(matched) == 0 {
		return []styles.RowPart{{Text: text}}
	}

	matchSet := make(map[int]bool, len(matched))
	for _, idx := range matched {
		matchSet[idx] = true
	}

	accent := styles.Accent
	var parts []styles.RowPart
	var run strings.Builder
	runMatched := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		part := styles.RowPart{Text: run.String()}
		if runMatched {
			part.Foreground = &accent
			part.Bold = true
		}
		parts = append(parts, part)
		run.Reset()
	}

	for i, r := range text {
		if matchSet[i] != runMatched {
			flush()
			runMatched = matchSet[i]
		}
		run.WriteRune(r)
	}
	flush()
	return parts
}

func (c *MovieList) renderFilterBar() string {
	c.filterInput.PromptStyle = styles.FilterPromptStyle
	c.filterInput.TextStyle = styles.FilterStyle

	countStr := ""
	if c.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", c.ItemCount(), len(c.movies)))
	}
	return c.filterInput.View() + countStr
}
