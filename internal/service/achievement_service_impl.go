package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/vocnav/internal/domain"
	"github.com/alexanderramin/vocnav/internal/logging"
	"github.com/alexanderramin/vocnav/internal/storage"
)

type achievementService struct {
	// evalMu serialises an update with the unlock notifications it causes.
	evalMu sync.Mutex
	mu     sync.Mutex

	counters domain.Counters
	unlocked []string
	catalog  []domain.Achievement

	store     storage.Store
	listeners map[int]func(domain.Achievement)
	nextID    int
	logger    *zap.Logger
	observer  UseCaseObserver
}

type AchievementOption func(*achievementService)

func WithAchievementLogger(l *zap.Logger) AchievementOption {
	return func(s *achievementService) { s.logger = logging.OrNop(l).Named("Achievements") }
}

func WithAchievementObserver(o UseCaseObserver) AchievementOption {
	return func(s *achievementService) { s.observer = useCaseObserverOrNoop(o) }
}

// WithCatalog replaces the default achievement list.
func WithCatalog(catalog []domain.Achievement) AchievementOption {
	return func(s *achievementService) { s.catalog = catalog }
}

// NewAchievementService loads counters and unlocked ids from the store.
// Missing or malformed entries start from zero.
func NewAchievementService(store storage.Store, opts ...AchievementOption) AchievementService {
	s := &achievementService{
		store:     store,
		catalog:   DefaultAchievements(),
		listeners: make(map[int]func(domain.Achievement)),
		logger:    zap.NewNop(),
		observer:  NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

func (s *achievementService) load() {
	var counters domain.Counters
	if !storage.GetJSON(s.store, s.logger, storage.KeyAppState, &counters) {
		counters = domain.Counters{}
	}
	var unlocked []string
	if !storage.GetJSON(s.store, s.logger, storage.KeyUnlockedAchievements, &unlocked) {
		unlocked = nil
	}
	s.counters = counters
	s.unlocked = unlocked
}

func (s *achievementService) Reload() {
	s.evalMu.Lock()
	defer s.evalMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
}

func (s *achievementService) Counters() domain.Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters
}

func (s *achievementService) Unlocked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.unlocked...)
}

func (s *achievementService) IsUnlocked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isUnlockedLocked(id)
}

func (s *achievementService) isUnlockedLocked(id string) bool {
	for _, u := range s.unlocked {
		if u == id {
			return true
		}
	}
	return false
}

func (s *achievementService) Catalog() []domain.Achievement {
	return append([]domain.Achievement(nil), s.catalog...)
}

func (s *achievementService) Update(fn func(c *domain.Counters)) []domain.Achievement {
	s.evalMu.Lock()
	defer s.evalMu.Unlock()

	s.mu.Lock()
	next := s.counters
	fn(&next)
	changed := next != s.counters
	s.counters = next
	if changed {
		storage.SetJSON(s.store, s.logger, storage.KeyAppState, s.counters)
	}
	unlocked := s.evaluateLocked()
	s.mu.Unlock()

	s.notify(unlocked)
	return unlocked
}

func (s *achievementService) Merge(patch domain.CountersPatch) []domain.Achievement {
	return s.Update(func(c *domain.Counters) { *c = c.Apply(patch) })
}

func (s *achievementService) Evaluate() []domain.Achievement {
	s.evalMu.Lock()
	defer s.evalMu.Unlock()

	s.mu.Lock()
	unlocked := s.evaluateLocked()
	s.mu.Unlock()

	s.notify(unlocked)
	return unlocked
}

// evaluateLocked unlocks every satisfied achievement not yet unlocked,
// persisting the id set after each one.
func (s *achievementService) evaluateLocked() []domain.Achievement {
	var out []domain.Achievement
	for _, a := range s.catalog {
		if s.isUnlockedLocked(a.ID) || a.Condition == nil || !a.Condition(s.counters) {
			continue
		}
		s.unlocked = append(s.unlocked, a.ID)
		storage.SetJSON(s.store, s.logger, storage.KeyUnlockedAchievements, s.unlocked)
		out = append(out, a)
	}
	return out
}

func (s *achievementService) notify(unlocked []domain.Achievement) {
	if len(unlocked) == 0 {
		return
	}
	s.mu.Lock()
	fns := make([]func(domain.Achievement), 0, len(s.listeners))
	for i := 0; i < s.nextID; i++ {
		if fn, ok := s.listeners[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, a := range unlocked {
		s.logger.Info("achievement unlocked", zap.String("achievement", a.ID))
		observe(context.Background(), s.observer, EventAchievement, time.Now(), nil, map[string]any{"achievement": a.ID})
		for _, fn := range fns {
			fn(a)
		}
	}
}

func (s *achievementService) OnUnlock(fn func(domain.Achievement)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}
