package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/vocnav/internal/domain"
)

// TitleFunc resolves a plan item id to a display title.
type TitleFunc func(id string) string

// FormatPlan lists plan items with their checklist progress. Items in
// selected are marked as picked for comparison.
func FormatPlan(items []domain.PlanItem, title TitleFunc, selected []string) string {
	if len(items) == 0 {
		return Dim("Your plan is empty. Add a specialty or a college from the catalog.") + "\n"
	}
	picked := make(map[string]bool, len(selected))
	for _, id := range selected {
		picked[id] = true
	}

	rows := make([][]string, 0, len(items))
	for i, it := range items {
		done, total := it.Progress()
		mark := " "
		if picked[it.ID] {
			mark = StyleYellow.Render("⇄")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			mark,
			it.ID,
			title(it.ID),
			ItemTypeBadge(it.Type),
			Fraction(done, total),
		})
	}
	var b strings.Builder
	b.WriteString(RenderTable([]string{"#", "", "ID", "TITLE", "TYPE", "DONE"}, rows))
	b.WriteString("\n")
	b.WriteString("Overall " + ProgressBar(domain.PlanProgress(items), 20) + "\n")
	return b.String()
}

// FormatChecklist renders one item's checklist, numbered from 1 so the
// numbers can be used with "plan check".
func FormatChecklist(item domain.PlanItem, title string) string {
	var b strings.Builder
	b.WriteString(Header(title) + "\n")
	for i, c := range item.Checklist {
		line := fmt.Sprintf("%2d. %s %s", i+1, Check(c.IsCompleted), c.Text)
		if url, ok := c.LinkTarget(); ok {
			line += " " + StyleBlue.Render(url)
		}
		if name, ok := c.NavigationTarget(); ok {
			line += " " + Dim("→ "+string(name))
		}
		if c.IsCompleted {
			line = StyleDim.Render(line)
		}
		b.WriteString(line + "\n")
	}
	done, total := item.Progress()
	b.WriteString(Dim(fmt.Sprintf("%d of %d done", done, total)) + "\n")
	return b.String()
}
