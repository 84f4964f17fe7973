package cli

import (
	"strings"

	"github.com/alexanderramin/vocnav/internal/cli/formatter"
)

// cursorList tracks a selection over n rows.
type cursorList struct {
	cursor int
	n      int
}

func newCursorList(n, start int) cursorList {
	l := cursorList{cursor: start}
	l.resize(n)
	return l
}

func (l *cursorList) resize(n int) {
	l.n = n
	l.cursor = min(max(l.cursor, 0), max(n-1, 0))
}

// move handles navigation keys and reports whether k was one.
func (l *cursorList) move(k string) bool {
	switch k {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < l.n-1 {
			l.cursor++
		}
	case "home", "g":
		l.cursor = 0
	case "end", "G":
		l.cursor = max(l.n-1, 0)
	default:
		return false
	}
	return true
}

func (l *cursorList) cursorPos() int { return l.cursor }

// render draws rows with the selected one marked, scrolled so the cursor
// stays within height lines.
func (l *cursorList) render(rows []string, height int) string {
	if len(rows) == 0 {
		return ""
	}
	height = max(height, 1)
	start := 0
	if l.cursor >= height {
		start = l.cursor - height + 1
	}
	end := min(start+height, len(rows))

	var b strings.Builder
	for i := start; i < end; i++ {
		if i == l.cursor {
			b.WriteString(formatter.StyleHeader.Render("› ") + rows[i] + "\n")
			continue
		}
		b.WriteString("  " + rows[i] + "\n")
	}
	return b.String()
}
