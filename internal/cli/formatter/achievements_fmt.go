package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/vocnav/internal/domain"
)

// FormatAchievements lists the catalog with unlock state and progress.
func FormatAchievements(list []domain.Achievement, c domain.Counters, unlocked func(string) bool) string {
	var b strings.Builder
	got := 0
	for _, a := range list {
		if unlocked(a.ID) {
			got++
		}
	}
	b.WriteString(Header(fmt.Sprintf("Achievements %d/%d", got, len(list))) + "\n")
	for _, a := range list {
		title := a.Title
		if unlocked(a.ID) {
			color := ColorYellow
			if a.Color != "" {
				color = lipgloss.Color(a.Color)
			}
			title = lipgloss.NewStyle().Foreground(color).Bold(true).Render(title)
			b.WriteString(fmt.Sprintf("%s %s  %s\n", a.Icon, title, Dim(a.Description)))
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s  %s  %s\n", Dim("🔒"), Dim(title), Dim(a.Description), ProgressBar(a.Progress(c), 10)))
	}
	return b.String()
}

// Toast renders the unlock notification.
func Toast(a domain.Achievement) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorYellow).
		Padding(0, 1).
		Render(fmt.Sprintf("%s %s %s", a.Icon, StyleYellow.Render("Achievement unlocked:"), Bold(a.Title)))
}
