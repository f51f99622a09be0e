// Package tui holds terminal styling and interactive-terminal detection.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Width(14)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Symbols for visual feedback.
const (
	SymbolCheck      = "✓"
	SymbolCross      = "✗"
	SymbolArrowRight = "→"
	SymbolBullet     = "•"
)

// Styler applies the palette when color is enabled and passes text
// through unchanged otherwise, so piped output stays plain.
type Styler struct {
	color bool
}

func NewStyler(color bool) Styler {
	return Styler{color: color}
}

func (s Styler) render(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return style.Render(text)
}

func (s Styler) Title(text string) string   { return s.render(TitleStyle, text) }
func (s Styler) Success(text string) string { return s.render(SuccessStyle, text) }
func (s Styler) Warning(text string) string { return s.render(WarningStyle, text) }
func (s Styler) Error(text string) string   { return s.render(ErrorStyle, text) }
func (s Styler) Muted(text string) string   { return s.render(MutedStyle, text) }

// Label pads a field name to a fixed column.
func (s Styler) Label(text string) string {
	if !s.color {
		return lipgloss.NewStyle().Width(LabelStyle.GetWidth()).Render(text)
	}
	return LabelStyle.Render(text)
}

// Box frames a block of lines. Without color the lines are returned as-is.
func (s Styler) Box(text string) string {
	if !s.color {
		return text
	}
	return BoxStyle.Render(text)
}
