package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/catalog/tmdb"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/filter"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Layout constants for the detail view
const (
	DetailBorderHeight     = 2
	DetailScrollIndicators = 2

	// maxCast is how many billed actors are listed
	maxCast = 6

	posterSize = "w500"
)

// detailContent holds the three-zone layout content
type detailContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// DetailView shows the full record of one movie
type DetailView struct {
	detail     *domain.MovieDetail
	favorite   bool
	loading    bool
	width      int
	height     int
	offset     int // body scroll offset
	maxVisible int
	imageBase  string
}

// NewDetailView creates an empty detail view
func NewDetailView() DetailView {
	return DetailView{}
}

// SetDetail sets the movie to display and resets the scroll
func (d *DetailView) SetDetail(detail *domain.MovieDetail) {
	d.detail = detail
	d.loading = false
	d.offset = 0
}

// Detail returns the displayed record, nil while loading
func (d DetailView) Detail() *domain.MovieDetail {
	return d.detail
}

// SetLoading clears the record and shows a placeholder
func (d *DetailView) SetLoading() {
	d.detail = nil
	d.loading = true
	d.offset = 0
}

// SetImageBase sets the image host used for poster links; "" uses the TMDB default
func (d *DetailView) SetImageBase(base string) {
	d.imageBase = base
}

// SetFavorite updates the favorite badge
func (d *DetailView) SetFavorite(favorite bool) {
	d.favorite = favorite
}

// SetSize updates the component dimensions
func (d *DetailView) SetSize(width, height int) {
	d.width = width
	d.height = height
	// Reserve the border, both scroll indicators, the title and a blank line
	d.maxVisible = height - DetailBorderHeight - DetailScrollIndicators - 2
	if d.maxVisible < 1 {
		d.maxVisible = 1
	}
}

// Update scrolls the body
func (d DetailView) Update(msg tea.Msg) (DetailView, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch {
	case key.Matches(keyMsg, DetailKeys.Down):
		if d.offset < d.maxOffset() {
			d.offset++
		}
	case key.Matches(keyMsg, DetailKeys.Up):
		if d.offset > 0 {
			d.offset--
		}
	case key.Matches(keyMsg, DetailKeys.Top):
		d.offset = 0
	}
	return d, nil
}

// View renders the component
func (d DetailView) View() string {
	style := styles.ActiveBorder

	contentWidth := d.width - 3
	if contentWidth < 10 {
		contentWidth = 10
	}

	var content detailContent
	switch {
	case d.loading:
		content.body = styles.DimStyle.Render("Loading details...")
	case d.detail == nil:
		content.body = styles.DimStyle.Render("No movie selected")
	default:
		content = d.render(*d.detail, contentWidth)
	}

	titleLine := styles.AccentStyle.Render("Details")

	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := d.maxVisible - len(headerLines) - len(footerLines)
	if availableForBody < 1 {
		availableForBody = 1
	}

	// Clamp body scroll offset
	maxOffset := max(len(bodyLines)-availableForBody, 0)
	offset := min(d.offset, maxOffset)
	end := min(offset+availableForBody, len(bodyLines))
	visibleBody := bodyLines[offset:end]

	up := " "
	if offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ more")
	}

	parts := []string{titleLine, ""}
	if len(headerLines) > 0 {
		parts = append(parts, headerLines...)
	}
	parts = append(parts, up)
	parts = append(parts, visibleBody...)
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, down)
	if len(footerLines) > 0 {
		parts = append(parts, footerLines...)
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(d.width-frameW, 0)).
		Height(max(d.height-frameH, 0)).
		Render(strings.Join(parts, "\n"))
}

// maxOffset returns how far the body can scroll at the current size
func (d DetailView) maxOffset() int {
	if d.detail == nil {
		return 0
	}
	content := d.render(*d.detail, max(d.width-3, 10))
	available := max(d.maxVisible-len(splitLines(content.header))-len(splitLines(content.footer)), 1)
	return max(len(splitLines(content.body))-available, 0)
}

func (d DetailView) render(detail domain.MovieDetail, width int) detailContent {
	return detailContent{
		header: d.renderHeader(detail, width),
		body:   renderDetailBody(detail, width),
		footer: renderDetailFooter(detail, d.imageBase, width),
	}
}

func (d DetailView) renderHeader(detail domain.MovieDetail, width int) string {
	var b strings.Builder

	title := detail.Title
	if year := detail.Year(); year != "" {
		title = fmt.Sprintf("%s (%s)", detail.Title, year)
	}
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(title, width)))
	b.WriteString("\n")

	if detail.Tagline != "" {
		b.WriteString(styles.SubtitleStyle.Italic(true).Render(styles.Truncate(detail.Tagline, width)))
		b.WriteString("\n")
	}

	// Meta line: release date · runtime · genres
	var meta []string
	if detail.ReleaseDate != "" {
		meta = append(meta, detail.ReleaseDate)
	}
	if rt := detail.FormattedRuntime(); rt != "" {
		meta = append(meta, rt)
	}
	genres := detail.GenreNames()
	if len(genres) == 0 {
		genres = filter.GenreNames(detail.GenreIDs)
	}
	if len(genres) > 0 {
		meta = append(meta, strings.Join(genres, ", "))
	}
	if len(meta) > 0 {
		b.WriteString(styles.DimStyle.Render(styles.Truncate(strings.Join(meta, " · "), width)))
		b.WriteString("\n")
	}

	status := []string{
		lipgloss.NewStyle().Foreground(styles.RatingColor(detail.VoteAverage)).
			Render(fmt.Sprintf("%s %s", styles.FavoriteChar, detail.FormattedRating())),
	}
	if d.favorite {
		status = append(status, styles.BadgeStyle.Render("FAVORITE"))
	}
	b.WriteString(strings.Join(status, "   "))

	return b.String()
}

func renderDetailBody(detail domain.MovieDetail, width int) string {
	bodyWidth := min(width-2, 80)
	var sections []string

	if detail.Overview != "" {
		sections = append(sections, styles.SubtitleStyle.Render(wordWrap(detail.Overview, bodyWidth)))
	} else {
		sections = append(sections, styles.DimStyle.Render("No overview available."))
	}

	if directors := detail.Directors(); len(directors) > 0 {
		sections = append(sections,
			styles.AccentStyle.Render("Director")+"\n"+
				styles.SubtitleStyle.Render(strings.Join(directors, ", ")))
	}

	if len(detail.Cast) > 0 {
		var lines []string
		for i, c := range detail.Cast {
			if i == maxCast {
				break
			}
			line := styles.SubtitleStyle.Render(c.Name)
			if c.Character != "" {
				line += styles.DimStyle.Render(" as " + c.Character)
			}
			lines = append(lines, line)
		}
		sections = append(sections, styles.AccentStyle.Render("Cast")+"\n"+strings.Join(lines, "\n"))
	}

	return strings.Join(sections, "\n\n")
}

func renderDetailFooter(detail domain.MovieDetail, imageBase string, width int) string {
	var lines []string
	if poster := tmdb.ImageURL(imageBase, posterSize, detail.PosterPath); poster != "" {
		lines = append(lines, styles.DimStyle.Render("Poster   ")+styles.LinkStyle.Render(styles.Truncate(poster, width-9)))
	}
	if v, ok := detail.Trailer(); ok {
		lines = append(lines, styles.DimStyle.Render("Trailer  ")+styles.LinkStyle.Render(styles.Truncate(v.URL(), width-9)))
	}
	if detail.Homepage != "" {
		lines = append(lines, styles.DimStyle.Render("Website  ")+styles.LinkStyle.Render(styles.Truncate(detail.Homepage, width-9)))
	}
	if len(lines) == 0 {
		return ""
	}
	separator := styles.DimStyle.Render(strings.Repeat("─", width))
	return separator + "\n" + strings.Join(lines, "\n")
}

// splitLines splits s on newlines; "" yields no lines
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// wordWrap breaks text into lines of at most width runes on word boundaries
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len([]rune(line))+1+len([]rune(w)) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
