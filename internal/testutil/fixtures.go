package testutil

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/alexanderramin/vocnav/internal/domain"
)

// PlanItem options
type PlanItemOption func(*domain.PlanItem)

// WithChecklist attaches entries with the given texts, all uncompleted.
func WithChecklist(texts ...string) PlanItemOption {
	return func(p *domain.PlanItem) {
		for i, text := range texts {
			p.Checklist = append(p.Checklist, domain.ChecklistItem{
				ID:   fmt.Sprintf("%s-%d", p.ID, i+1),
				Text: text,
				Type: domain.ChecklistAction,
			})
		}
	}
}

// WithCompleted marks the checklist entries at the given indexes done.
func WithCompleted(idx ...int) PlanItemOption {
	return func(p *domain.PlanItem) {
		for _, i := range idx {
			if i < len(p.Checklist) {
				p.Checklist[i].IsCompleted = true
			}
		}
	}
}

func NewTestPlanItem(id string, t domain.ItemType, opts ...PlanItemOption) domain.PlanItem {
	p := domain.PlanItem{ID: id, Type: t, Checklist: []domain.ChecklistItem{}}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// NewTestUserID returns a fresh random user id.
func NewTestUserID() string {
	return "user-" + uuid.NewString()
}

// StaticChecklist is a deterministic checklist generator: every item gets
// two entries with ids derived from the item id and a generation counter.
type StaticChecklist struct {
	calls int
}

func (s *StaticChecklist) Generate(t domain.ItemType, id string) []domain.ChecklistItem {
	s.calls++
	return []domain.ChecklistItem{
		{ID: fmt.Sprintf("%s-%d-a", id, s.calls), Text: "Learn about " + string(t), Type: domain.ChecklistInfo},
		{ID: fmt.Sprintf("%s-%d-b", id, s.calls), Text: "Act on it", Type: domain.ChecklistAction},
	}
}
