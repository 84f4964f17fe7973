package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name   string
		ratio  float64
		width  int
		filled int
		pct    string
	}{
		{"empty", 0, 10, 0, "  0%"},
		{"half", 0.5, 10, 5, " 50%"},
		{"full", 1, 10, 10, "100%"},
		{"over clamps", 1.7, 10, 10, "100%"},
		{"negative clamps", -0.2, 10, 0, "  0%"},
		{"tiny width", 0.5, 1, 1, " 50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressBar(tt.ratio, tt.width)
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.True(t, strings.HasSuffix(got, tt.pct), got)
		})
	}
}

func TestFraction(t *testing.T) {
	assert.Equal(t, "1/3", Fraction(1, 3))
	assert.Contains(t, Fraction(3, 3), "3/3")
	assert.Equal(t, "0/0", Fraction(0, 0))
}
