package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// ProgressBar renders [████░░░░] 45%. Green from two thirds, yellow from a
// third, red below.
func ProgressBar(ratio float64, width int) string {
	ratio = min(max(ratio, 0), 1)
	width = max(width, 2)
	filled := int(ratio * float64(width))

	style := StyleGreen
	switch {
	case ratio < 0.33:
		style = StyleRed
	case ratio < 0.66:
		style = StyleYellow
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), ratio*100)
}

// Fraction renders done/total, green when complete.
func Fraction(done, total int) string {
	s := fmt.Sprintf("%d/%d", done, total)
	if total > 0 && done == total {
		return StyleGreen.Render(s)
	}
	return s
}
