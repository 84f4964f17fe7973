package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded border with an optional title.
func RenderBox(title, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)
	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// RelativeDateFrom describes t relative to now in whole days.
func RelativeDateFrom(t, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// EventDate renders a YYYY-MM-DD catalog date with a relative hint.
// Unparseable dates are returned as-is.
func EventDate(date string, now time.Time) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	rel := RelativeDateFrom(t, now)
	days := t.Sub(now).Hours() / 24
	style := StyleFg
	switch {
	case days < -1:
		style = StyleDim
	case days <= 7:
		style = StyleYellow
	}
	return t.Format("Jan 2, 2006") + " " + style.Render("("+rel+")")
}

// Rubles groups thousands with a thin space: 45000 -> "45 000 ₽".
func Rubles(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := b.String() + " ₽"
	if neg {
		out = "-" + out
	}
	return out
}

// SalaryRange renders "from–to", collapsing an open upper bound.
func SalaryRange(from, to int) string {
	switch {
	case from == 0 && to == 0:
		return "--"
	case to == 0 || to == from:
		return Rubles(from)
	default:
		return strings.TrimSuffix(Rubles(from), " ₽") + "–" + Rubles(to)
	}
}

// Score renders a grade average with two decimals.
func Score(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Truncate shortens s to width visible runes, marking the cut with "…".
func Truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
