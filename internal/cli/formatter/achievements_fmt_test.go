package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/vocnav/internal/domain"
)

func TestFormatAchievements(t *testing.T) {
	list := []domain.Achievement{
		{ID: "first_step", Title: "First step", Icon: "🚀", Condition: func(c domain.Counters) bool { return c.PlanCount >= 1 }},
		{ID: "binge", Title: "Binge", Icon: "📺", Metric: func(c domain.Counters) int { return c.VideosWatched }, Goal: 10,
			Condition: func(c domain.Counters) bool { return c.VideosWatched >= 10 }},
	}
	out := FormatAchievements(list, domain.Counters{PlanCount: 1, VideosWatched: 4}, func(id string) bool { return id == "first_step" })

	assert.Contains(t, out, "ACHIEVEMENTS 1/2")
	assert.Contains(t, out, "🚀 First step")
	assert.Contains(t, out, " 40%")
}

func TestToast(t *testing.T) {
	out := Toast(domain.Achievement{Icon: "🎯", Title: "Quiz master"})
	assert.Contains(t, out, "Achievement unlocked:")
	assert.Contains(t, out, "Quiz master")
}
