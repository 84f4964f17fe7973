package app

import (
	"go.uber.org/zap"

	"github.com/alexanderramin/vocnav/internal/domain"
	"github.com/alexanderramin/vocnav/internal/navigation"
)

func (s *Shell) CurrentView() domain.View { return s.nav.Current() }

func (s *Shell) History() []domain.View { return s.nav.History() }

func (s *Shell) ActiveTab() domain.Tab { return navigation.ActiveTabFor(s.nav.Current()) }

// NavigateTo pushes v. Entering a quiz result counts a passed quiz and
// entering a college page counts a viewed college.
func (s *Shell) NavigateTo(v domain.View) {
	if v == nil {
		return
	}
	s.nav.NavigateTo(v)
	switch v.Name() {
	case domain.ViewQuizResult:
		s.IncrementQuizPass()
	case domain.ViewCollegeDetail:
		s.incrementCollegesViewed()
	}
	s.syncWatchTimer()
}

func (s *Shell) NavigateBack() {
	s.nav.NavigateBack()
	s.syncWatchTimer()
}

// syncWatchTimer starts the watch timer when shorts is on top and none is
// running, and cancels it once shorts is left.
func (s *Shell) syncWatchTimer() {
	onShorts := s.nav.Current().Name() == domain.ViewShorts

	s.mu.Lock()
	defer s.mu.Unlock()
	if !onShorts {
		s.stopWatchLocked()
		return
	}
	if s.watchStop != nil {
		return
	}
	s.watchGen++
	gen := s.watchGen
	s.watchStop = s.afterFunc(s.watchThreshold, func() { s.watchElapsed(gen) })
}

func (s *Shell) watchElapsed(gen uint64) {
	s.mu.Lock()
	if gen != s.watchGen || s.watchStop == nil {
		s.mu.Unlock()
		return
	}
	s.watchStop = nil
	s.mu.Unlock()

	s.logger.Debug("short watched", zap.Duration("threshold", s.watchThreshold))
	s.IncrementVideoWatch()
}

func (s *Shell) stopWatchLocked() {
	if s.watchStop == nil {
		return
	}
	s.watchStop()
	s.watchStop = nil
	s.watchGen++
}
