// Package navigation keeps the ordered history of visited views.
package navigation

import (
	"sync"

	"github.com/alexanderramin/vocnav/internal/domain"
)

// Stack is the navigation history. It is never empty; the root entry is the
// dashboard until the first NavigateTo.
type Stack struct {
	mu      sync.Mutex
	history []domain.View
}

// New returns a stack holding only the dashboard.
func New() *Stack {
	return &Stack{history: []domain.View{domain.DashboardView{}}}
}

// NavigateTo appends v. The dashboard resets history to a single entry.
func (s *Stack) NavigateTo(v domain.View) {
	if v == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigateLocked(v)
}

func (s *Stack) navigateLocked(v domain.View) {
	if v.Name() == domain.ViewDashboard {
		s.history = []domain.View{v}
		return
	}
	s.history = append(s.history, v)
}

// NavigateBack leaves the current view. Leaving a quiz result skips the
// finished quiz and lands on the quiz selection screen, pushing a fresh one
// when history holds none. Otherwise the top entry is popped unless it is
// the root.
func (s *Stack) NavigateBack() {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.history)
	if s.history[n-1].Name() == domain.ViewQuizResult {
		for i := n - 2; i >= 0; i-- {
			if domain.IsQuizSelection(s.history[i]) {
				s.history = s.history[:i+1]
				return
			}
		}
		s.navigateLocked(domain.QuizView{})
		return
	}
	if n > 1 {
		s.history[n-1] = nil
		s.history = s.history[:n-1]
	}
}

// Current returns the top of the stack.
func (s *Stack) Current() domain.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history[len(s.history)-1]
}

// History returns a copy of the entries, oldest first.
func (s *Stack) History() []domain.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.View(nil), s.history...)
}

// Len is the number of entries; it is never below 1.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// Reset returns the stack to its initial state.
func (s *Stack) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = []domain.View{domain.DashboardView{}}
}

// ActiveTabFor maps a view to the bottom tab it belongs to.
func ActiveTabFor(v domain.View) domain.Tab {
	if v == nil {
		return domain.TabHome
	}
	switch v.Name() {
	case domain.ViewShorts:
		return domain.TabVideo
	case domain.ViewNews, domain.ViewNewsDetail:
		return domain.TabNews
	default:
		return domain.TabHome
	}
}
