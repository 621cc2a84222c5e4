package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
)

// Palette is one color scheme
type Palette struct {
	Accent     lipgloss.Color
	Surface    lipgloss.Color // modal background
	SurfaceAlt lipgloss.Color // selected row background
	Dim        lipgloss.Color
	Muted      lipgloss.Color // unselected row text
	Text       lipgloss.Color
	Green      lipgloss.Color
	Red        lipgloss.Color
	Blue       lipgloss.Color
}

// DarkPalette is used for domain.ThemeDark
var DarkPalette = Palette{
	Accent:     lipgloss.Color("#E5A00D"),
	Surface:    lipgloss.Color("#1F2937"),
	SurfaceAlt: lipgloss.Color("#374151"),
	Dim:        lipgloss.Color("#6B7280"),
	Muted:      lipgloss.Color("#9CA3AF"),
	Text:       lipgloss.Color("#F9FAFB"),
	Green:      lipgloss.Color("#10B981"),
	Red:        lipgloss.Color("#EF4444"),
	Blue:       lipgloss.Color("#3B82F6"),
}

// LightPalette is used for domain.ThemeLight
var LightPalette = Palette{
	Accent:     lipgloss.Color("#B45309"),
	Surface:    lipgloss.Color("#F3F4F6"),
	SurfaceAlt: lipgloss.Color("#E5E7EB"),
	Dim:        lipgloss.Color("#9CA3AF"),
	Muted:      lipgloss.Color("#4B5563"),
	Text:       lipgloss.Color("#111827"),
	Green:      lipgloss.Color("#047857"),
	Red:        lipgloss.Color("#B91C1C"),
	Blue:       lipgloss.Color("#1D4ED8"),
}

// Active colors, set by Apply
var (
	Accent     lipgloss.Color
	Surface    lipgloss.Color
	SurfaceAlt lipgloss.Color
	Dim        lipgloss.Color
	Muted      lipgloss.Color
	Text       lipgloss.Color
	Green      lipgloss.Color
	Red        lipgloss.Color
	Blue       lipgloss.Color
)

// Styles, rebuilt by Apply
var (
	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style

	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	DimStyle      lipgloss.Style
	AccentStyle   lipgloss.Style
	ErrorStyle    lipgloss.Style
	SuccessStyle  lipgloss.Style
	LinkStyle     lipgloss.Style

	HighlightStyle    lipgloss.Style
	SelectedItemStyle lipgloss.Style
	NormalItemStyle   lipgloss.Style

	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style

	HelpKeyStyle  lipgloss.Style
	HelpDescStyle lipgloss.Style

	BadgeStyle    lipgloss.Style
	DimBadgeStyle lipgloss.Style

	SpinnerStyle lipgloss.Style

	FilterStyle       lipgloss.Style
	FilterPromptStyle lipgloss.Style
)

// Favorite marker characters (unstyled)
const (
	FavoriteChar    = "★"
	NotFavoriteChar = "·"
)

var current domain.Theme

func init() {
	Apply(domain.ThemeDark)
}

// Current returns the theme last passed to Apply
func Current() domain.Theme {
	return current
}

// Apply switches every package-level color and style to the theme's palette
func Apply(theme domain.Theme) {
	p := DarkPalette
	if theme == domain.ThemeLight {
		p = LightPalette
	}
	current = theme

	Accent, Surface, SurfaceAlt = p.Accent, p.Surface, p.SurfaceAlt
	Dim, Muted, Text = p.Dim, p.Muted, p.Text
	Green, Red, Blue = p.Green, p.Red, p.Blue

	ActiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent)
	InactiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Dim)

	TitleStyle = lipgloss.NewStyle().Foreground(Text).Bold(true)
	SubtitleStyle = lipgloss.NewStyle().Foreground(Muted)
	DimStyle = lipgloss.NewStyle().Foreground(Dim)
	AccentStyle = lipgloss.NewStyle().Foreground(Accent)
	ErrorStyle = lipgloss.NewStyle().Foreground(Red)
	SuccessStyle = lipgloss.NewStyle().Foreground(Green)
	LinkStyle = lipgloss.NewStyle().Foreground(Blue).Underline(true)

	HighlightStyle = lipgloss.NewStyle().
		Foreground(Surface).
		Background(Accent).
		Padding(0, 1)
	SelectedItemStyle = lipgloss.NewStyle().
		Foreground(Text).
		Background(SurfaceAlt).
		Padding(0, 1)
	NormalItemStyle = lipgloss.NewStyle().
		Foreground(Muted).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(1, 2).
		Background(Surface)
	ModalTitleStyle = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true).
		MarginBottom(1)

	HelpKeyStyle = lipgloss.NewStyle().Foreground(Accent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(Dim)

	BadgeStyle = lipgloss.NewStyle().
		Foreground(Surface).
		Background(Accent).
		Padding(0, 1)
	DimBadgeStyle = lipgloss.NewStyle().
		Foreground(Muted).
		Background(SurfaceAlt).
		Padding(0, 1)

	SpinnerStyle = lipgloss.NewStyle().Foreground(Accent)

	FilterStyle = lipgloss.NewStyle().Foreground(Accent)
	FilterPromptStyle = lipgloss.NewStyle().Foreground(Accent).Bold(true)
}

// RatingColor picks green, accent or red for a 0-10 vote average
func RatingColor(rating float64) lipgloss.Color {
	switch {
	case rating >= 7:
		return Green
	case rating >= 5:
		return Accent
	default:
		return Red
	}
}

// Helper functions

// Truncate shortens s to width runes, ending in "..." when cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// Pad pads or cuts s to exactly width runes
func Pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// RenderListRow renders a complete list row with uniform background when selected.
// Each part is styled separately so ANSI resets never break the background.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	var result strings.Builder
	visibleLen := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		switch {
		case part.Foreground != nil:
			style = style.Foreground(*part.Foreground)
		case selected:
			style = style.Foreground(Text)
		default:
			style = style.Foreground(Muted)
		}
		if part.Bold {
			style = style.Bold(true)
		}
		if selected {
			style = style.Background(SurfaceAlt)
		}
		result.WriteString(style.Render(part.Text))
		visibleLen += lipgloss.Width(part.Text)
	}

	// Fill the width, less one column of margin on each side
	if pad := width - visibleLen - 2; pad > 0 {
		padStyle := lipgloss.NewStyle()
		if selected {
			padStyle = padStyle.Background(SurfaceAlt)
		}
		result.WriteString(padStyle.Render(strings.Repeat(" ", pad)))
	}

	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(SurfaceAlt)
	}
	margin := marginStyle.Render(" ")

	return margin + result.String() + margin
}

// RowPart is a run of row text with an optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
	Bold       bool
}
