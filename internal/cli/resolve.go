package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/vocnav/internal/app"
	"github.com/alexanderramin/vocnav/internal/domain"
)

// resolvePlanItem accepts an item id or its 1-based position in the plan.
func resolvePlanItem(shell *app.Shell, ref string) (domain.PlanItem, error) {
	if item, ok := shell.PlanItem(ref); ok {
		return item, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		items := shell.Plan()
		if n >= 1 && n <= len(items) {
			return items[n-1], nil
		}
		return domain.PlanItem{}, fmt.Errorf("plan has %d items, no item #%d", len(items), n)
	}
	return domain.PlanItem{}, fmt.Errorf("%q: %w", ref, app.ErrNotInPlan)
}

// resolveChecklistEntry accepts an entry id or its 1-based number.
func resolveChecklistEntry(item domain.PlanItem, ref string) (domain.ChecklistItem, error) {
	for _, c := range item.Checklist {
		if c.ID == ref {
			return c, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(item.Checklist) {
		return item.Checklist[n-1], nil
	}
	return domain.ChecklistItem{}, fmt.Errorf("no checklist entry %q in %s", ref, item.ID)
}
