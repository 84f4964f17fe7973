package remote

import (
	"context"
	"sync"

	"github.com/alexanderramin/vocnav/internal/domain"
)

// Memory is an in-process PlanService.
type Memory struct {
	mu    sync.Mutex
	users map[string][]domain.PlanItem
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string][]domain.PlanItem)}
}

func (m *Memory) GetUserPlan(ctx context.Context, userID string) ([]domain.PlanItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.ClonePlan(m.users[userID]), nil
}

func (m *Memory) UpsertPlanItem(ctx context.Context, userID string, item domain.PlanItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.users[userID]
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item.Clone()
			return nil
		}
	}
	m.users[userID] = append(items, item.Clone())
	return nil
}

func (m *Memory) DeletePlanItem(ctx context.Context, userID, itemID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.users[userID]
	for i := range items {
		if items[i].ID == itemID {
			m.users[userID] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *Memory) UpdateChecklist(ctx context.Context, userID, itemID string, checklist []domain.ChecklistItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.users[userID] {
		if it.ID == itemID {
			m.users[userID][i].Checklist = domain.CloneChecklist(checklist)
			return nil
		}
	}
	return nil
}

// Seed replaces a user's stored plan.
func (m *Memory) Seed(userID string, items ...domain.PlanItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID] = domain.ClonePlan(items)
}
