package domain

import "encoding/json"

// ChecklistItem is one step of a plan item's checklist. Only IsCompleted
// changes after the item is generated.
type ChecklistItem struct {
	ID          string            `json:"id"`
	Text        string            `json:"text"`
	IsCompleted bool              `json:"isCompleted"`
	Type        ChecklistItemType `json:"type"`
	Payload     json.RawMessage   `json:"payload,omitempty"`
}

// PlanItem is a specialty or college the user added to their plan.
// Identity is ID alone; the type does not namespace it.
type PlanItem struct {
	ID        string          `json:"id"`
	Type      ItemType        `json:"type"`
	Checklist []ChecklistItem `json:"checklist"`
}

// Clone returns a deep copy so callers never share checklist storage
// with the plan owner.
func (p PlanItem) Clone() PlanItem {
	out := PlanItem{ID: p.ID, Type: p.Type}
	if p.Checklist != nil {
		out.Checklist = CloneChecklist(p.Checklist)
	}
	return out
}

// Progress returns the number of completed checklist entries and the total.
func (p PlanItem) Progress() (done, total int) {
	for _, c := range p.Checklist {
		if c.IsCompleted {
			done++
		}
	}
	return done, len(p.Checklist)
}

// CloneChecklist deep-copies a checklist, including raw payload bytes.
func CloneChecklist(items []ChecklistItem) []ChecklistItem {
	out := make([]ChecklistItem, len(items))
	for i, c := range items {
		out[i] = c
		if c.Payload != nil {
			out[i].Payload = append(json.RawMessage(nil), c.Payload...)
		}
	}
	return out
}

// ClonePlan deep-copies a plan. A nil plan yields an empty, non-nil slice.
func ClonePlan(items []PlanItem) []PlanItem {
	out := make([]PlanItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// CountByType returns how many plan items are specialties and how many are colleges.
func CountByType(items []PlanItem) (specialties, colleges int) {
	for _, it := range items {
		switch it.Type {
		case ItemSpecialty:
			specialties++
		case ItemCollege:
			colleges++
		}
	}
	return specialties, colleges
}

// PlanProgress returns the completion ratio across every checklist entry in
// the plan, in [0, 1]. An empty plan has zero progress.
func PlanProgress(items []PlanItem) float64 {
	var done, total int
	for _, it := range items {
		d, t := it.Progress()
		done += d
		total += t
	}
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}

// NavigationPayload is the payload shape of a navigation checklist entry.
type NavigationPayload struct {
	Name ViewName `json:"name"`
}

// NavigationTarget decodes the view a navigation checklist entry points to.
// It returns false for other entry types or undecodable payloads.
func (c ChecklistItem) NavigationTarget() (ViewName, bool) {
	if c.Type != ChecklistNavigation || len(c.Payload) == 0 {
		return "", false
	}
	var p NavigationPayload
	if err := json.Unmarshal(c.Payload, &p); err != nil || p.Name == "" {
		return "", false
	}
	return p.Name, true
}

// LinkTarget returns the URL of a link checklist entry.
func (c ChecklistItem) LinkTarget() (string, bool) {
	if c.Type != ChecklistLink || len(c.Payload) == 0 {
		return "", false
	}
	var url string
	if err := json.Unmarshal(c.Payload, &url); err != nil || url == "" {
		return "", false
	}
	return url, true
}
