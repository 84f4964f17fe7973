package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/vocnav/internal/domain"
	"github.com/alexanderramin/vocnav/internal/storage"
)

func achievementIDs(as []domain.Achievement) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.ID
	}
	return out
}

func TestDefaultAchievements_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range DefaultAchievements() {
		require.NotNil(t, a.Condition, a.ID)
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
		assert.False(t, a.Condition(domain.Counters{}), "%s must not unlock from zero counters", a.ID)
	}
	assert.Len(t, seen, 12)
}

func TestUpdate_UnlocksOncePerAchievement(t *testing.T) {
	svc := NewAchievementService(storage.NewMemory())
	var fired []string
	svc.OnUnlock(func(a domain.Achievement) { fired = append(fired, a.ID) })

	got := svc.Update(func(c *domain.Counters) { c.QuizzesPassed = 1 })
	assert.Equal(t, []string{"quiz_rookie"}, achievementIDs(got))

	svc.Update(func(c *domain.Counters) { c.QuizzesPassed++ })
	svc.Update(func(c *domain.Counters) { c.QuizzesPassed++ })
	svc.Update(func(c *domain.Counters) { c.QuizzesPassed++ })
	assert.Empty(t, svc.Evaluate())

	assert.Equal(t, []string{"quiz_rookie", "quiz_master"}, fired)
	assert.Equal(t, 4, svc.Counters().QuizzesPassed)
}

func TestUpdate_SeveralUnlocksFollowCatalogOrder(t *testing.T) {
	svc := NewAchievementService(storage.NewMemory())
	var fired []string
	svc.OnUnlock(func(a domain.Achievement) { fired = append(fired, a.ID) })

	got := svc.Merge(domain.PlanPatch([]domain.PlanItem{
		{ID: "1", Type: domain.ItemSpecialty},
		{ID: "2", Type: domain.ItemSpecialty},
		{ID: "3", Type: domain.ItemSpecialty},
		{ID: "4", Type: domain.ItemCollege},
		{ID: "5", Type: domain.ItemCollege},
	}))

	assert.Equal(t, []string{"first_step", "planner", "specialist"}, achievementIDs(got))
	assert.Equal(t, achievementIDs(got), fired)
}

func TestUnlocked_SurvivesCounterDecrease(t *testing.T) {
	svc := NewAchievementService(storage.NewMemory())
	svc.Merge(domain.PlanPatch([]domain.PlanItem{{ID: "a", Type: domain.ItemCollege}}))
	require.True(t, svc.IsUnlocked("first_step"))

	svc.Merge(domain.PlanPatch(nil))
	assert.True(t, svc.IsUnlocked("first_step"))
	assert.Zero(t, svc.Counters().PlanCount)
}

func TestAchievementState_Persists(t *testing.T) {
	store := storage.NewMemory()
	svc := NewAchievementService(store)
	svc.Update(func(c *domain.Counters) {
		c.HasUsedComparison = true
		c.VideosWatched = 3
	})

	again := NewAchievementService(store)
	assert.Equal(t, 3, again.Counters().VideosWatched)
	assert.True(t, again.IsUnlocked("analyst"))
	assert.True(t, again.IsUnlocked("viewer"))

	var fired int
	again.OnUnlock(func(domain.Achievement) { fired++ })
	assert.Empty(t, again.Evaluate())
	assert.Zero(t, fired, "persisted unlocks are not re-announced")
}

func TestNewAchievementService_MalformedStateStartsFromZero(t *testing.T) {
	store := storage.NewMemory()
	store.Set(storage.KeyAppState, "[broken")
	store.Set(storage.KeyUnlockedAchievements, `{"not":"a list"}`)

	svc := NewAchievementService(store)
	assert.Equal(t, domain.Counters{}, svc.Counters())
	assert.Empty(t, svc.Unlocked())
}

func TestReload_PicksUpWipe(t *testing.T) {
	store := storage.NewMemory()
	svc := NewAchievementService(store)
	svc.Update(func(c *domain.Counters) { c.HasCalculatedScore = true })
	require.True(t, svc.IsUnlocked("calculated"))

	store.Clear()
	svc.Reload()
	assert.False(t, svc.IsUnlocked("calculated"))
	assert.Equal(t, domain.Counters{}, svc.Counters())
}

func TestOnUnlock_Unsubscribe(t *testing.T) {
	svc := NewAchievementService(storage.NewMemory())
	var fired int
	unsubscribe := svc.OnUnlock(func(domain.Achievement) { fired++ })
	unsubscribe()

	svc.Update(func(c *domain.Counters) { c.VideosLiked = 5 })
	assert.Zero(t, fired)
	assert.True(t, svc.IsUnlocked("fan"))
}

func TestWithCatalog_CustomAchievements(t *testing.T) {
	rec := &recordingObserver{}
	custom := []domain.Achievement{{
		ID:        "two_colleges",
		Condition: func(c domain.Counters) bool { return c.CollegesViewed >= 2 },
	}}
	svc := NewAchievementService(storage.NewMemory(), WithCatalog(custom), WithAchievementObserver(rec))

	svc.Update(func(c *domain.Counters) { c.CollegesViewed = 1 })
	assert.Empty(t, svc.Unlocked())
	svc.Update(func(c *domain.Counters) { c.CollegesViewed = 2 })

	assert.Equal(t, []string{"two_colleges"}, svc.Unlocked())
	assert.Equal(t, 1, rec.count(EventAchievement))
	assert.Len(t, svc.Catalog(), 1)
}
