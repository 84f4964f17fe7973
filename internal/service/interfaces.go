package service

import (
	"context"

	"github.com/alexanderramin/vocnav/internal/domain"
)

// PlanManager owns the user's plan. Local changes commit synchronously;
// remote mirroring happens in the background and never fails the caller.
type PlanManager interface {
	Items() []domain.PlanItem
	Item(id string) (domain.PlanItem, bool)
	Contains(id string) bool
	CurrentUser() string

	// AddItem reports whether the item was added. An id already in the plan
	// is ignored whatever its type.
	AddItem(id string, itemType domain.ItemType) bool
	RemoveItem(id string) bool
	UpdateChecklistItem(planItemID, checklistItemID string, completed bool) bool

	// OnAuthChange applies a session transition. An empty id means signed
	// out. The new user and any sign-out take effect before it returns; the
	// sync a sign-in starts runs in the background and is cancelled by the
	// next transition.
	OnAuthChange(ctx context.Context, userID string)
	// WaitSync blocks until the sync started by the latest sign-in is done.
	WaitSync(ctx context.Context) error

	// OnChange registers fn to receive the plan after every change.
	// Listeners must not call mutating PlanManager methods.
	OnChange(fn func(items []domain.PlanItem)) (unsubscribe func())

	// Reload re-reads the persisted plan and owner, e.g. after a data wipe.
	Reload()

	// Flush waits until every queued remote mirror has run.
	Flush(ctx context.Context) error
	// Close cancels a running sync, drains the mirror queue and stops the
	// worker. Mirrors still pending after the drain timeout are cancelled.
	Close() error
}

// AchievementService evaluates counters against the achievement catalog.
type AchievementService interface {
	Counters() domain.Counters
	Unlocked() []string
	IsUnlocked(id string) bool
	Catalog() []domain.Achievement

	// Update applies fn to a copy of the counters, persists the result and
	// returns achievements unlocked by it, in catalog order.
	Update(fn func(c *domain.Counters)) []domain.Achievement
	Merge(patch domain.CountersPatch) []domain.Achievement
	Evaluate() []domain.Achievement

	// OnUnlock registers fn to be called once per newly unlocked achievement.
	OnUnlock(fn func(a domain.Achievement)) (unsubscribe func())

	Reload()
}
