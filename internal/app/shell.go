// Package app is the shell controller: it wires the plan, navigation,
// achievements and preferences together and is the single entry point
// the CLI and TUI drive.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/vocnav/internal/auth"
	"github.com/alexanderramin/vocnav/internal/calculator"
	"github.com/alexanderramin/vocnav/internal/catalog"
	"github.com/alexanderramin/vocnav/internal/domain"
	"github.com/alexanderramin/vocnav/internal/logging"
	"github.com/alexanderramin/vocnav/internal/navigation"
	"github.com/alexanderramin/vocnav/internal/service"
)

// DefaultWatchThreshold is how long the shorts feed must stay open to
// count as a watched video.
const DefaultWatchThreshold = 5 * time.Second

// Deps are the components the shell composes.
type Deps struct {
	Plan         service.PlanManager
	Achievements service.AchievementService
	Navigation   *navigation.Stack
	Calculator   *calculator.Calculator
	Catalog      *catalog.Catalog
	Store        Store
}

type Shell struct {
	plan         service.PlanManager
	achievements service.AchievementService
	nav          *navigation.Stack
	calc         *calculator.Calculator
	catalog      *catalog.Catalog
	store        Store

	logger         *zap.Logger
	afterFunc      AfterFunc
	watchThreshold time.Duration

	mu              sync.Mutex
	compare         []string
	replay          bool
	watchStop       func() bool
	watchGen        uint64
	unsubscribePlan func()
}

type Option func(*Shell)

func WithLogger(l *zap.Logger) Option {
	return func(s *Shell) { s.logger = logging.OrNop(l).Named("Shell") }
}

// WithWatchThreshold sets how long shorts must stay open to count a view.
func WithWatchThreshold(d time.Duration) Option {
	return func(s *Shell) {
		if d > 0 {
			s.watchThreshold = d
		}
	}
}

// WithAfterFunc replaces the timer used for the watch threshold.
func WithAfterFunc(fn AfterFunc) Option {
	return func(s *Shell) { s.afterFunc = fn }
}

// New wires the components and brings the plan-derived counters in line
// with the loaded plan.
func New(d Deps, opts ...Option) (*Shell, error) {
	if d.Plan == nil || d.Achievements == nil || d.Store == nil || d.Catalog == nil || d.Calculator == nil {
		return nil, fmt.Errorf("app: incomplete dependencies")
	}
	s := &Shell{
		plan:           d.Plan,
		achievements:   d.Achievements,
		nav:            d.Navigation,
		calc:           d.Calculator,
		catalog:        d.Catalog,
		store:          d.Store,
		logger:         zap.NewNop(),
		afterFunc:      realAfterFunc,
		watchThreshold: DefaultWatchThreshold,
	}
	if s.nav == nil {
		s.nav = navigation.New()
	}
	for _, opt := range opts {
		opt(s)
	}

	s.unsubscribePlan = s.plan.OnChange(func(items []domain.PlanItem) {
		s.achievements.Merge(domain.PlanPatch(items))
	})
	s.achievements.Merge(domain.PlanPatch(s.plan.Items()))
	return s, nil
}

// Run forwards session changes from p to the plan until the stream ends.
// Each change takes effect at once; a sign-in's sync runs in the background
// so a later sign-out is never held up behind it.
func (s *Shell) Run(ctx context.Context, p auth.Provider) error {
	ch, err := p.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watching session: %w", err)
	}
	for userID := range ch {
		s.logger.Debug("session changed", zap.Bool("signed_in", userID != ""))
		s.plan.OnAuthChange(ctx, userID)
	}
	return nil
}

// SignIn applies a single session value and waits for the resulting sync,
// for one-shot commands.
func (s *Shell) SignIn(ctx context.Context, userID string) {
	s.plan.OnAuthChange(ctx, userID)
	if err := s.plan.WaitSync(ctx); err != nil {
		s.logger.Warn("sign-in sync did not finish", zap.Error(err))
	}
}

// Close stops the watch timer and drains pending remote mirrors.
func (s *Shell) Close() error {
	s.mu.Lock()
	s.stopWatchLocked()
	s.mu.Unlock()
	s.unsubscribePlan()
	return s.plan.Close()
}

// Flush waits for queued remote mirrors.
func (s *Shell) Flush(ctx context.Context) error {
	return s.plan.Flush(ctx)
}

func (s *Shell) Catalog() *catalog.Catalog { return s.catalog }

func (s *Shell) CurrentUser() string { return s.plan.CurrentUser() }

// Plan operations.

func (s *Shell) Plan() []domain.PlanItem { return s.plan.Items() }

func (s *Shell) PlanItem(id string) (domain.PlanItem, bool) { return s.plan.Item(id) }

func (s *Shell) InPlan(id string) bool { return s.plan.Contains(id) }

func (s *Shell) AddToPlan(id string, itemType domain.ItemType) bool {
	return s.plan.AddItem(id, itemType)
}

// AddCatalogItem adds a specialty or college by id, looking up its type.
func (s *Shell) AddCatalogItem(id string) (bool, error) {
	t, ok := s.catalog.ItemType(id)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	return s.plan.AddItem(id, t), nil
}

func (s *Shell) RemoveFromPlan(id string) bool {
	s.mu.Lock()
	s.dropFromCompareLocked(id)
	s.mu.Unlock()
	return s.plan.RemoveItem(id)
}

func (s *Shell) UpdateChecklistItem(planItemID, checklistItemID string, completed bool) bool {
	return s.plan.UpdateChecklistItem(planItemID, checklistItemID, completed)
}

// OnPlanChange subscribes to plan snapshots.
func (s *Shell) OnPlanChange(fn func([]domain.PlanItem)) func() {
	return s.plan.OnChange(fn)
}

// Counters and achievements.

func (s *Shell) Counters() domain.Counters { return s.achievements.Counters() }

func (s *Shell) Achievements() []domain.Achievement { return s.achievements.Catalog() }

func (s *Shell) IsUnlocked(id string) bool { return s.achievements.IsUnlocked(id) }

// OnUnlock subscribes to achievement unlocks.
func (s *Shell) OnUnlock(fn func(domain.Achievement)) func() {
	return s.achievements.OnUnlock(fn)
}

func (s *Shell) IncrementVideoWatch() {
	s.achievements.Update(func(c *domain.Counters) { c.VideosWatched++ })
}

func (s *Shell) IncrementVideoLike() {
	s.achievements.Update(func(c *domain.Counters) { c.VideosLiked++ })
}

func (s *Shell) IncrementQuizPass() {
	s.achievements.Update(func(c *domain.Counters) { c.QuizzesPassed++ })
}

func (s *Shell) MarkScoreCalculated() {
	s.achievements.Update(func(c *domain.Counters) { c.HasCalculatedScore = true })
}

func (s *Shell) MarkComparisonUsed() {
	s.achievements.Update(func(c *domain.Counters) { c.HasUsedComparison = true })
}

func (s *Shell) incrementCollegesViewed() {
	s.achievements.Update(func(c *domain.Counters) { c.CollegesViewed++ })
}
