package cli

import (
	"sync"

	"github.com/alexanderramin/vocnav/internal/domain"
)

// SharedState holds context shared across all screens via pointer.
type SharedState struct {
	App *App

	// Terminal dimensions
	Width  int
	Height int

	// Cursor positions by screen, restored when a screen is rebuilt.
	cursors map[domain.ViewName]int

	inbox *unlockInbox

	// liked holds shorts liked in this session; each short counts once.
	liked map[string]bool
}

func newSharedState(app *App) *SharedState {
	return &SharedState{App: app, cursors: make(map[domain.ViewName]int), inbox: &unlockInbox{}, liked: make(map[string]bool)}
}

// ContentHeight is the height left for screen content after the header
// (2 lines), status bar (2 lines) and command bar (1 line). Before the
// first window size arrives a 24-line terminal is assumed.
func (s *SharedState) ContentHeight() int {
	h := s.Height
	if h <= 0 {
		h = 24
	}
	return max(h-5, 1)
}

func (s *SharedState) ContentWidth() int {
	if s.Width <= 0 {
		return 80
	}
	return s.Width
}

func (s *SharedState) cursor(name domain.ViewName) int { return s.cursors[name] }

func (s *SharedState) saveCursor(name domain.ViewName, c int) { s.cursors[name] = c }

// unlockInbox buffers achievements unlocked outside Update, e.g. by the
// shorts watch timer, until the model next runs.
type unlockInbox struct {
	mu      sync.Mutex
	pending []domain.Achievement
}

func (b *unlockInbox) push(a domain.Achievement) {
	b.mu.Lock()
	b.pending = append(b.pending, a)
	b.mu.Unlock()
}

func (b *unlockInbox) drain() []domain.Achievement {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.pending
	b.pending = nil
	return out
}
