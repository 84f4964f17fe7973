package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/vocnav/internal/catalog"
	"github.com/alexanderramin/vocnav/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TrendBadge renders a labour-market trend as a colored marker.
func TrendBadge(t catalog.Trend) string {
	switch t {
	case catalog.TrendHot:
		return StyleRed.Render("▲ hot")
	case catalog.TrendGrowing:
		return StyleGreen.Render("↗ growing")
	case catalog.TrendStable:
		return StyleBlue.Render("→ stable")
	default:
		return StyleDim.Render("--")
	}
}

// EventBadge renders a calendar event type.
func EventBadge(t catalog.EventType) string {
	switch t {
	case catalog.EventOpenDay:
		return StyleGreen.Render("● open day")
	case catalog.EventDeadlineStart:
		return StyleBlue.Render("▶ applications open")
	case catalog.EventDeadlineEnd:
		return StyleRed.Render("■ applications close")
	case catalog.EventExam:
		return StyleYellow.Render("✎ exam")
	default:
		return StyleDim.Render(string(t))
	}
}

// ItemTypeBadge labels a plan item as a specialty or a college.
func ItemTypeBadge(t domain.ItemType) string {
	if t == domain.ItemCollege {
		return StylePurple.Render("college")
	}
	return StyleBlue.Render("specialty")
}

// Header renders an upper-cased section title with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(strings.Repeat("─", lipgloss.Width(upper))))
}

func Dim(text string) string { return StyleDim.Render(text) }

func Bold(text string) string { return StyleBold.Render(text) }

// Check renders a checkbox.
func Check(done bool) string {
	if done {
		return StyleGreen.Render("[x]")
	}
	return StyleDim.Render("[ ]")
}
