// Package remote defines the per-user remote plan store and its backends.
package remote

import (
	"context"
	"errors"

	"github.com/alexanderramin/vocnav/internal/domain"
)

// ErrUnavailable is returned by backends that cannot reach their store.
var ErrUnavailable = errors.New("remote plan store unavailable")

// PlanService is the remote plan table keyed by (user, item id).
type PlanService interface {
	// GetUserPlan returns the user's items in insertion order. An empty
	// result with a nil error means the user has no items.
	GetUserPlan(ctx context.Context, userID string) ([]domain.PlanItem, error)
	// UpsertPlanItem is idempotent on (userID, item.ID). An existing row
	// keeps its position.
	UpsertPlanItem(ctx context.Context, userID string, item domain.PlanItem) error
	// DeletePlanItem is a no-op when the row is absent.
	DeletePlanItem(ctx context.Context, userID, itemID string) error
	// UpdateChecklist replaces the checklist of an existing row.
	UpdateChecklist(ctx context.Context, userID, itemID string, checklist []domain.ChecklistItem) error
}

// Offline is used when no remote store is configured. Every call fails with
// ErrUnavailable, so sign-in keeps the local plan.
type Offline struct{}

func (Offline) GetUserPlan(context.Context, string) ([]domain.PlanItem, error) {
	return nil, ErrUnavailable
}

func (Offline) UpsertPlanItem(context.Context, string, domain.PlanItem) error {
	return ErrUnavailable
}

func (Offline) DeletePlanItem(context.Context, string, string) error {
	return ErrUnavailable
}

func (Offline) UpdateChecklist(context.Context, string, string, []domain.ChecklistItem) error {
	return ErrUnavailable
}
