package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/vocnav/internal/domain"
	"github.com/alexanderramin/vocnav/internal/storage"
)

// syncUploadLimit bounds concurrent upserts during a sync.
const syncUploadLimit = 8

func (m *planManager) OnAuthChange(ctx context.Context, userID string) {
	// Transitions apply one at a time; only the sync they start runs in the
	// background.
	m.authMu.Lock()
	defer m.authMu.Unlock()

	m.mu.Lock()
	prev := m.currentUser
	owner, _ := m.store.Get(storage.KeyPlanOwner)

	if userID == "" {
		m.currentUser = ""
		if prev == "" && owner == "" {
			// Still anonymous: the local plan belongs to nobody else.
			m.mu.Unlock()
			return
		}
		m.epoch++
		m.cancelSyncLocked()
		m.mu.Unlock()
		m.signOut(ctx)
		return
	}

	if userID == prev {
		m.mu.Unlock()
		return
	}
	m.currentUser = userID
	m.epoch++
	epoch := m.epoch
	m.cancelSyncLocked()
	m.mu.Unlock()

	if owner != "" && owner != userID {
		m.discardForeignPlan(ctx, owner)
	}
	m.store.Set(storage.KeyPlanOwner, userID)
	m.startSync(ctx, userID, epoch)
}

// startSync runs the sync protocol for userID in the background. It is
// cancelled by the next transition or by Close.
func (m *planManager) startSync(ctx context.Context, userID string, epoch uint64) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		m.logger.Warn("plan manager closed; skipping sync", zap.String("user_id", userID))
		return
	}
	syncCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	m.syncCancel = cancel
	m.syncDone = done
	m.syncs.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.syncs.Done()
		defer close(done)
		defer cancel()
		m.sync(syncCtx, userID, epoch)
	}()
}

// cancelSyncLocked stops the running sync, if any. Callers hold m.mu.
func (m *planManager) cancelSyncLocked() {
	if m.syncCancel != nil {
		m.syncCancel()
		m.syncCancel = nil
	}
}

func (m *planManager) WaitSync(ctx context.Context) error {
	for {
		m.mu.Lock()
		done := m.syncDone
		m.mu.Unlock()
		if done == nil {
			return nil
		}
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
		m.mu.Lock()
		latest := m.syncDone == done
		m.mu.Unlock()
		if latest {
			return nil
		}
	}
}

func (m *planManager) isStale(epoch uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch != epoch
}

func (m *planManager) signOut(ctx context.Context) {
	started := time.Now()

	m.emitMu.Lock()
	defer m.emitMu.Unlock()

	m.mu.Lock()
	m.items = []domain.PlanItem{}
	m.store.Remove(storage.KeyPlan)
	m.store.Remove(storage.KeyPlanOwner)
	snap := domain.ClonePlan(m.items)
	m.mu.Unlock()

	observe(ctx, m.observer, EventPlanSignOut, started, nil, nil)
	m.emit(snap)
}

// discardForeignPlan drops a local plan recorded as owned by another
// account so it is not uploaded under the new one.
func (m *planManager) discardForeignPlan(ctx context.Context, owner string) {
	m.emitMu.Lock()
	defer m.emitMu.Unlock()

	m.mu.Lock()
	dropped := len(m.items)
	m.items = []domain.PlanItem{}
	m.store.Remove(storage.KeyPlan)
	snap := domain.ClonePlan(m.items)
	m.mu.Unlock()

	m.logger.Info("discarding plan of previous account", zap.String("owner", owner), zap.Int("items", dropped))
	m.emit(snap)
}

// sync uploads the persisted plan, then replaces local state with the
// remote plan. A failed fetch keeps the local plan; an empty successful
// fetch clears it.
func (m *planManager) sync(ctx context.Context, userID string, epoch uint64) {
	started := time.Now()
	log := m.logger.With(zap.String("user_id", userID))

	var local []domain.PlanItem
	if !storage.GetJSON(m.store, m.logger, storage.KeyPlan, &local) {
		local = nil
	}

	g := new(errgroup.Group)
	g.SetLimit(syncUploadLimit)
	for _, item := range local {
		if item.ID == "" {
			continue
		}
		g.Go(func() error {
			upStarted := time.Now()
			err := m.remote.UpsertPlanItem(ctx, userID, item)
			if err != nil {
				log.Warn("sync upload failed", zap.String("item_id", item.ID), zap.Error(err))
			}
			observe(ctx, m.observer, EventRemoteUpsert, upStarted, err, map[string]any{"item_id": item.ID, "sync": true})
			return nil
		})
	}
	_ = g.Wait()

	// Mirrors queued before the sign-in must land before the snapshot.
	if err := m.queue.flush(ctx); err != nil {
		log.Warn("waiting for pending mirrors", zap.Error(err))
	}

	fetchStarted := time.Now()
	fetched, err := m.remote.GetUserPlan(ctx, userID)
	observe(ctx, m.observer, EventRemoteFetch, fetchStarted, err, nil)
	if err != nil && m.isStale(epoch) {
		log.Info("sync superseded before the fetch finished", zap.Error(err))
		observe(ctx, m.observer, EventPlanSync, started, nil, map[string]any{"outcome": SyncStale})
		return
	}
	if err != nil {
		log.Warn("fetching remote plan failed; keeping local plan", zap.Error(err))
		observe(ctx, m.observer, EventPlanSync, started, err, map[string]any{"outcome": SyncFetchFailed, "uploaded": len(local)})
		return
	}
	if fetched == nil {
		fetched = []domain.PlanItem{}
	}

	m.emitMu.Lock()
	defer m.emitMu.Unlock()

	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		log.Info("discarding stale sync result")
		observe(ctx, m.observer, EventPlanSync, started, nil, map[string]any{"outcome": SyncStale})
		return
	}
	m.items = domain.ClonePlan(fetched)
	for i := range m.items {
		if m.items[i].Checklist == nil {
			m.items[i].Checklist = []domain.ChecklistItem{}
		}
	}
	m.persistLocked()
	snap := domain.ClonePlan(m.items)
	m.mu.Unlock()

	observe(ctx, m.observer, EventPlanSync, started, nil, map[string]any{
		"outcome": SyncApplied, "uploaded": len(local), "items": len(snap),
	})
	m.emit(snap)
}
