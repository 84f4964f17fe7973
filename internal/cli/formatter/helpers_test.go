package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(day), "Tomorrow"},
		{"yesterday", now.Add(-day), "Yesterday"},
		{"3 days future", now.Add(3 * day), "In 3d"},
		{"3 days past", now.Add(-3 * day), "3d ago"},
		{"3 weeks future", now.Add(21 * day), "In 3w"},
		{"3 months future", now.Add(90 * day), "In 3mo"},
		{"2 weeks past", now.Add(-14 * day), "2w ago"},
		{"3 months past", now.Add(-90 * day), "3mo ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestEventDate(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Contains(t, EventDate("2026-06-04", now), "Jun 4, 2026")
	assert.Contains(t, EventDate("2026-06-04", now), "In 3d")
	assert.Equal(t, "soon", EventDate("soon", now))
}

func TestRubles(t *testing.T) {
	assert.Equal(t, "0 ₽", Rubles(0))
	assert.Equal(t, "950 ₽", Rubles(950))
	assert.Equal(t, "45 000 ₽", Rubles(45000))
	assert.Equal(t, "1 250 000 ₽", Rubles(1250000))
	assert.Equal(t, "-3 000 ₽", Rubles(-3000))
}

func TestSalaryRange(t *testing.T) {
	assert.Equal(t, "--", SalaryRange(0, 0))
	assert.Equal(t, "40 000 ₽", SalaryRange(40000, 0))
	assert.Equal(t, "40 000–60 000 ₽", SalaryRange(40000, 60000))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Сварщ…", Truncate("Сварщик", 6))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestScore(t *testing.T) {
	assert.Equal(t, "4.10", Score(4.1))
	assert.Equal(t, "0.00", Score(0))
}
