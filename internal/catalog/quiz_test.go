package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/vocnav/internal/domain"
)

func TestScore_TalliesChosenCategories(t *testing.T) {
	c := loadDefault(t)
	q, ok := c.Quiz(domain.QuizSwipe)
	require.True(t, ok)

	// yes, no, yes, yes, yes, out of range
	scores := Score(q, []int{0, 1, 0, 0, 0, 9})
	assert.Equal(t, domain.QuizScores{"analytics": 2, "leadership": 1, "practice": 1}, scores)
}

func TestScore_IgnoresExtraAnswers(t *testing.T) {
	q := Quiz{Questions: []Question{{Options: []Option{{Text: "a", Category: "x"}, {Text: "b"}}}}}
	assert.Equal(t, domain.QuizScores{"x": 1}, Score(q, []int{0, 0, 0}))
	assert.Empty(t, Score(q, []int{-1}))
}

func TestRanked_BreaksTiesByName(t *testing.T) {
	got := Ranked(domain.QuizScores{"it": 2, "art": 2, "medicine": 3, "agriculture": 0})
	assert.Equal(t, []CategoryScore{{"medicine", 3}, {"art", 2}, {"it", 2}}, got)

	top, ok := TopCategory(domain.QuizScores{"it": 1})
	assert.True(t, ok)
	assert.Equal(t, "it", top)
	_, ok = TopCategory(domain.QuizScores{})
	assert.False(t, ok)
}

func TestRecommend(t *testing.T) {
	c := loadDefault(t)
	recs := c.Recommend(domain.QuizScores{"medicine": 3, "it": 1}, 1)
	require.NotEmpty(t, recs)
	for _, s := range recs {
		assert.Contains(t, s.Categories, "medicine")
	}

	both := c.Recommend(domain.QuizScores{"medicine": 3, "it": 1}, 0)
	assert.Greater(t, len(both), len(recs))
	assert.Equal(t, recs[0].ID, both[0].ID)
}
