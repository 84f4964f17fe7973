package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/vocnav/internal/domain"
)

func loadDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	return c
}

func TestDefault_IsValid(t *testing.T) {
	c := loadDefault(t)
	assert.NotEmpty(t, c.Specialties)
	assert.NotEmpty(t, c.Colleges)
	assert.NotEmpty(t, c.News)
	assert.NotEmpty(t, c.Shorts)
	assert.NotEmpty(t, c.Events)
	assert.NotEmpty(t, c.Professions)
	for _, qt := range []domain.QuizType{domain.QuizClassic, domain.QuizSwipe, domain.QuizBattle} {
		q, ok := c.Quiz(qt)
		require.True(t, ok, "quiz %s", qt)
		assert.NotEmpty(t, q.Questions)
	}
}

func TestLookups(t *testing.T) {
	c := loadDefault(t)

	s, ok := c.Specialty("09.02.07")
	require.True(t, ok)
	assert.Equal(t, KindSpecialty, s.Kind)

	typ, ok := c.ItemType("col-build")
	require.True(t, ok)
	assert.Equal(t, domain.ItemCollege, typ)
	typ, ok = c.ItemType("15.01.05")
	require.True(t, ok)
	assert.Equal(t, domain.ItemSpecialty, typ)
	_, ok = c.ItemType("nope")
	assert.False(t, ok)

	assert.Equal(t, "Welder", c.Title("15.01.05"))
	assert.Equal(t, "unknown-id", c.Title("unknown-id"))
	assert.Equal(t, "https://polytech.example.org", c.Website("col-polytech"))
	assert.Empty(t, c.Website("col-med"))

	n, ok := c.NewsByID("news-admission")
	require.True(t, ok)
	assert.Contains(t, n.Content, "## Admission campaign")
}

func TestCollegesFor(t *testing.T) {
	c := loadDefault(t)
	var ids []string
	for _, col := range c.CollegesFor("15.01.05") {
		ids = append(ids, col.ID)
	}
	assert.Equal(t, []string{"col-polytech", "col-agro"}, ids)
}

func TestEventsFor_SortedByDate(t *testing.T) {
	c := loadDefault(t)
	events := c.EventsFor("col-polytech", "col-build")
	require.Len(t, events, 4)
	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(t, events[i-1].Date, events[i].Date)
	}
	assert.Len(t, c.EventsFor(), len(c.Events))
}

func TestParse_ReportsEveryProblem(t *testing.T) {
	doc := `
specialties:
  - {id: s1, title: One, kind: specialty, passing_score: 4}
  - {id: s1, title: "", kind: course, passing_score: 7}
colleges:
  - {id: s1, name: Dup, passing_score: 4, specialty_ids: [missing]}
events:
  - {id: e1, college_id: nowhere, title: T, date: "2026-13-01", type: party}
quizzes:
  - type: speed
    questions: []
`
	_, err := Parse([]byte(doc))
	require.ErrorIs(t, err, ErrInvalidCatalog)
	msg := err.Error()
	for _, want := range []string{
		`specialties[1].id: duplicate id "s1"`,
		"specialties[1].title is required",
		`specialties[1].kind: invalid value "course"`,
		"specialties[1].passing_score 7.00 out of range",
		`colleges[0].id: duplicate id "s1"`,
		`colleges[0].specialty_ids: "missing" not found`,
		`events[0].college_id: "nowhere" not found`,
		`events[0].type: invalid value "party"`,
		"events[0].date: invalid date format",
		`quizzes[0].type: invalid value "speed"`,
		"quizzes[0].questions must not be empty",
	} {
		assert.True(t, strings.Contains(msg, want), "missing %q in:\n%s", want, msg)
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("specialties:\n  - {id: s1, title: One, kind: specialty, colour: red}\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCatalog)
}

func TestTopProfessions_Order(t *testing.T) {
	c := &Catalog{Professions: []Profession{
		{ID: 1, Name: "Stable high", Trend: TrendStable, SalaryTo: 500},
		{ID: 2, Name: "Hot low", Trend: TrendHot, SalaryTo: 100},
		{ID: 3, Name: "Hot high", Trend: TrendHot, SalaryTo: 300},
		{ID: 4, Name: "Unset", SalaryTo: 900},
		{ID: 5, Name: "Growing", Trend: TrendGrowing, SalaryTo: 100},
	}}
	var got []int
	for _, p := range c.TopProfessions() {
		got = append(got, p.ID)
	}
	assert.Equal(t, []int{3, 2, 5, 1, 4}, got)
	assert.Equal(t, 1, c.Professions[0].ID, "source order untouched")
}

func TestPassableColleges(t *testing.T) {
	c := loadDefault(t)

	assert.Empty(t, c.PassableColleges(3.0))

	got := c.PassableColleges(4.05)
	var ids []string
	for _, col := range got {
		assert.LessOrEqual(t, col.PassingScore, 4.05)
		ids = append(ids, col.ID)
	}
	assert.Equal(t, []string{"col-arts", "col-build", "col-agro"}, ids)
	assert.Len(t, c.PassableColleges(5), len(c.Colleges))
}
