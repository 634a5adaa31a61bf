package formatter

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

var colorEnabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

func render(style lipgloss.Style, text string) string {
	if !colorEnabled {
		return text
	}
	return style.Render(text)
}

// PercentStyle colors a billable percentage against its target: green on
// target, yellow within five points of it, red below that.
func PercentStyle(percent, target float64) lipgloss.Style {
	switch {
	case percent >= target:
		return StyleGreen
	case percent >= target-0.05:
		return StyleYellow
	default:
		return StyleRed
	}
}

// RunningIndicator marks a slot with an open chunk.
func RunningIndicator(open bool) string {
	if open {
		return render(StyleGreen, "● running")
	}
	return render(StyleDim, "○ stopped")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", render(StyleHeader, upper), render(StyleDim, line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return render(StyleDim, text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return render(StyleBold, text)
}
