package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/vocnav/internal/checklist"
	"github.com/alexanderramin/vocnav/internal/domain"
	"github.com/alexanderramin/vocnav/internal/logging"
	"github.com/alexanderramin/vocnav/internal/remote"
	"github.com/alexanderramin/vocnav/internal/storage"
)

// defaultDrainTimeout is how long Close lets pending mirrors run.
const defaultDrainTimeout = 5 * time.Second

type planManager struct {
	// emitMu serialises a mutation with the notification it produces, so
	// listeners observe plans in commit order.
	emitMu sync.Mutex
	mu     sync.Mutex

	// authMu orders session transitions.
	authMu sync.Mutex

	items       []domain.PlanItem
	currentUser string
	epoch       uint64

	syncCancel   context.CancelFunc
	syncDone     chan struct{}
	syncs        sync.WaitGroup
	closed       bool
	drainTimeout time.Duration

	store     storage.Store
	remote    remote.PlanService
	generator checklist.Generator
	queue     *mirrorQueue
	listeners map[int]func([]domain.PlanItem)
	nextID    int

	logger   *zap.Logger
	observer UseCaseObserver
}

// PlanOption configures a PlanManager.
type PlanOption func(*planManager)

func WithPlanLogger(l *zap.Logger) PlanOption {
	return func(m *planManager) { m.logger = logging.OrNop(l).Named("PlanManager") }
}

func WithPlanObserver(o UseCaseObserver) PlanOption {
	return func(m *planManager) { m.observer = useCaseObserverOrNoop(o) }
}

// WithDrainTimeout bounds how long Close waits for queued mirrors before
// cancelling them.
func WithDrainTimeout(d time.Duration) PlanOption {
	return func(m *planManager) {
		if d > 0 {
			m.drainTimeout = d
		}
	}
}

// NewPlanManager loads the persisted plan. A missing or malformed entry
// yields an empty plan. The manager starts signed out; deliver the session
// through OnAuthChange.
func NewPlanManager(store storage.Store, svc remote.PlanService, gen checklist.Generator, opts ...PlanOption) PlanManager {
	m := &planManager{
		store:     store,
		remote:    svc,
		generator: gen,
		listeners: make(map[int]func([]domain.PlanItem)),
		logger:    zap.NewNop(),
		observer:  NoopUseCaseObserver{},

		drainTimeout: defaultDrainTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.items = m.loadPersisted()
	m.queue = newMirrorQueue()
	return m
}

func (m *planManager) loadPersisted() []domain.PlanItem {
	var items []domain.PlanItem
	if !storage.GetJSON(m.store, m.logger, storage.KeyPlan, &items) {
		return []domain.PlanItem{}
	}
	// Drop entries that cannot be part of a plan; keep the first of any
	// duplicate id.
	seen := make(map[string]bool, len(items))
	out := make([]domain.PlanItem, 0, len(items))
	for _, it := range items {
		if it.ID == "" || seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		if it.Checklist == nil {
			it.Checklist = []domain.ChecklistItem{}
		}
		out = append(out, it)
	}
	return out
}

// persistLocked writes the plan. Callers hold m.mu.
func (m *planManager) persistLocked() {
	storage.SetJSON(m.store, m.logger, storage.KeyPlan, m.items)
}

func (m *planManager) indexLocked(id string) int {
	for i, it := range m.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (m *planManager) Items() []domain.PlanItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.ClonePlan(m.items)
}

func (m *planManager) Item(id string) (domain.PlanItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexLocked(id); i >= 0 {
		return m.items[i].Clone(), true
	}
	return domain.PlanItem{}, false
}

func (m *planManager) Contains(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.indexLocked(id) >= 0
}

func (m *planManager) CurrentUser() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentUser
}

func (m *planManager) AddItem(id string, itemType domain.ItemType) bool {
	if id == "" || !domain.ValidItemTypes[string(itemType)] {
		return false
	}
	started := time.Now()

	m.emitMu.Lock()
	defer m.emitMu.Unlock()

	m.mu.Lock()
	if m.indexLocked(id) >= 0 {
		m.mu.Unlock()
		return false
	}
	item := domain.PlanItem{ID: id, Type: itemType, Checklist: m.generator.Generate(itemType, id)}
	m.items = append(m.items, item)
	m.persistLocked()
	user := m.currentUser
	snap := domain.ClonePlan(m.items)
	m.mu.Unlock()

	observe(context.Background(), m.observer, EventPlanAdd, started, nil, map[string]any{"item_id": id, "type": string(itemType)})
	if user != "" {
		pushed := item.Clone()
		m.mirror(EventRemoteUpsert, user, id, func(ctx context.Context) error {
			return m.remote.UpsertPlanItem(ctx, user, pushed)
		})
	}
	m.emit(snap)
	return true
}

func (m *planManager) RemoveItem(id string) bool {
	started := time.Now()

	m.emitMu.Lock()
	defer m.emitMu.Unlock()

	m.mu.Lock()
	removed := false
	if i := m.indexLocked(id); i >= 0 {
		m.items = append(m.items[:i:i], m.items[i+1:]...)
		m.persistLocked()
		removed = true
	}
	user := m.currentUser
	snap := domain.ClonePlan(m.items)
	m.mu.Unlock()

	// The remote delete is requested even when nothing was removed locally,
	// so a row left behind by another device is still cleaned up.
	if user != "" {
		m.mirror(EventRemoteDelete, user, id, func(ctx context.Context) error {
			return m.remote.DeletePlanItem(ctx, user, id)
		})
	}
	if removed {
		observe(context.Background(), m.observer, EventPlanRemove, started, nil, map[string]any{"item_id": id})
		m.emit(snap)
	}
	return removed
}

func (m *planManager) UpdateChecklistItem(planItemID, checklistItemID string, completed bool) bool {
	started := time.Now()

	m.emitMu.Lock()
	defer m.emitMu.Unlock()

	m.mu.Lock()
	i := m.indexLocked(planItemID)
	if i < 0 {
		m.mu.Unlock()
		return false
	}
	found := false
	updated := domain.CloneChecklist(m.items[i].Checklist)
	for j := range updated {
		if updated[j].ID == checklistItemID {
			updated[j].IsCompleted = completed
			found = true
		}
	}
	m.items[i].Checklist = updated
	m.persistLocked()
	user := m.currentUser
	pushed := domain.CloneChecklist(updated)
	snap := domain.ClonePlan(m.items)
	m.mu.Unlock()

	observe(context.Background(), m.observer, EventPlanCheck, started, nil, map[string]any{
		"item_id": planItemID, "entry_id": checklistItemID, "completed": completed, "matched": found,
	})
	if user != "" && len(pushed) > 0 {
		m.mirror(EventRemoteChecklist, user, planItemID, func(ctx context.Context) error {
			return m.remote.UpdateChecklist(ctx, user, planItemID, pushed)
		})
	}
	m.emit(snap)
	return found
}

// mirror queues a remote call. Failures are reported and otherwise ignored.
func (m *planManager) mirror(name, user, itemID string, call func(ctx context.Context) error) {
	err := m.queue.submit(func(ctx context.Context) {
		started := time.Now()
		err := call(ctx)
		if err != nil {
			m.logger.Warn("remote mirror failed",
				zap.String("op", name), zap.String("user_id", user), zap.String("item_id", itemID), zap.Error(err))
		}
		observe(ctx, m.observer, name, started, err, map[string]any{"item_id": itemID})
	})
	if err != nil {
		m.logger.Warn("dropping remote mirror", zap.String("op", name), zap.String("item_id", itemID), zap.Error(err))
	}
}

func (m *planManager) OnChange(fn func([]domain.PlanItem)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// emit notifies listeners. Callers hold emitMu but not mu.
func (m *planManager) emit(snap []domain.PlanItem) {
	m.mu.Lock()
	fns := make([]func([]domain.PlanItem), 0, len(m.listeners))
	for i := 0; i < m.nextID; i++ {
		if fn, ok := m.listeners[i]; ok {
			fns = append(fns, fn)
		}
	}
	m.mu.Unlock()
	for _, fn := range fns {
		fn(domain.ClonePlan(snap))
	}
}

func (m *planManager) Reload() {
	m.emitMu.Lock()
	defer m.emitMu.Unlock()

	m.mu.Lock()
	m.epoch++
	m.items = m.loadPersisted()
	if m.currentUser != "" {
		m.store.Set(storage.KeyPlanOwner, m.currentUser)
	}
	snap := domain.ClonePlan(m.items)
	m.mu.Unlock()

	m.emit(snap)
}

func (m *planManager) Flush(ctx context.Context) error {
	return m.queue.flush(ctx)
}

func (m *planManager) Close() error {
	m.mu.Lock()
	m.closed = true
	m.cancelSyncLocked()
	m.mu.Unlock()
	m.syncs.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), m.drainTimeout)
	defer cancel()
	if err := m.queue.close(ctx); err != nil {
		m.logger.Warn("cancelled remote mirrors still pending at close", zap.Error(err))
		return fmt.Errorf("draining remote mirrors: %w", err)
	}
	return nil
}
