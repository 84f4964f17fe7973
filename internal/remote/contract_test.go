package remote

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/vocnav/internal/domain"
)

func planItem(id string, typ domain.ItemType, texts ...string) domain.PlanItem {
	item := domain.PlanItem{ID: id, Type: typ, Checklist: []domain.ChecklistItem{}}
	for i, text := range texts {
		item.Checklist = append(item.Checklist, domain.ChecklistItem{
			ID: id + "-" + string(rune('a'+i)), Text: text, Type: domain.ChecklistAction,
		})
	}
	return item
}

func ids(items []domain.PlanItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// runPlanServiceContract checks the behavior every backend must share.
func runPlanServiceContract(t *testing.T, svc PlanService) {
	t.Helper()

	t.Run("EmptyUserHasEmptyPlan", func(t *testing.T) {
		items, err := svc.GetUserPlan(context.Background(), uuid.NewString())
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("UpsertIsIdempotentAndKeepsPosition", func(t *testing.T) {
		ctx := context.Background()
		user := uuid.NewString()

		require.NoError(t, svc.UpsertPlanItem(ctx, user, planItem("A", domain.ItemSpecialty, "one")))
		require.NoError(t, svc.UpsertPlanItem(ctx, user, planItem("B", domain.ItemCollege, "two")))
		require.NoError(t, svc.UpsertPlanItem(ctx, user, planItem("A", domain.ItemSpecialty, "one", "extra")))

		items, err := svc.GetUserPlan(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, ids(items))
		assert.Len(t, items[0].Checklist, 2)
	})

	t.Run("DeleteAbsentIsNoop", func(t *testing.T) {
		ctx := context.Background()
		user := uuid.NewString()
		require.NoError(t, svc.DeletePlanItem(ctx, user, "missing"))

		require.NoError(t, svc.UpsertPlanItem(ctx, user, planItem("A", domain.ItemCollege)))
		require.NoError(t, svc.DeletePlanItem(ctx, user, "A"))
		items, err := svc.GetUserPlan(ctx, user)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("UpdateChecklistReplacesWholeList", func(t *testing.T) {
		ctx := context.Background()
		user := uuid.NewString()
		item := planItem("S", domain.ItemSpecialty, "first", "second")
		require.NoError(t, svc.UpsertPlanItem(ctx, user, item))

		updated := domain.CloneChecklist(item.Checklist)
		updated[1].IsCompleted = true
		require.NoError(t, svc.UpdateChecklist(ctx, user, "S", updated))

		items, err := svc.GetUserPlan(ctx, user)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.False(t, items[0].Checklist[0].IsCompleted)
		assert.True(t, items[0].Checklist[1].IsCompleted)
	})

	t.Run("UpdateChecklistOfMissingItemIsNoop", func(t *testing.T) {
		ctx := context.Background()
		user := uuid.NewString()
		require.NoError(t, svc.UpdateChecklist(ctx, user, "ghost", []domain.ChecklistItem{{ID: "x"}}))
		items, err := svc.GetUserPlan(ctx, user)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("UsersAreIsolated", func(t *testing.T) {
		ctx := context.Background()
		alice, bob := uuid.NewString(), uuid.NewString()
		require.NoError(t, svc.UpsertPlanItem(ctx, alice, planItem("A", domain.ItemCollege)))

		items, err := svc.GetUserPlan(ctx, bob)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestMemory_Contract(t *testing.T) {
	runPlanServiceContract(t, NewMemory())
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m := NewMemory()
	m.Seed("u", planItem("A", domain.ItemSpecialty, "x"))

	items, err := m.GetUserPlan(context.Background(), "u")
	require.NoError(t, err)
	items[0].Checklist[0].IsCompleted = true

	again, err := m.GetUserPlan(context.Background(), "u")
	require.NoError(t, err)
	assert.False(t, again[0].Checklist[0].IsCompleted)
}

func TestMemory_HonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemory().GetUserPlan(ctx, "u")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOffline_AlwaysUnavailable(t *testing.T) {
	var svc PlanService = Offline{}
	_, err := svc.GetUserPlan(context.Background(), "u")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, svc.UpsertPlanItem(context.Background(), "u", domain.PlanItem{}), ErrUnavailable)
}
