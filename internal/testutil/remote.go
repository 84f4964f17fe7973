package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/vocnav/internal/domain"
	"github.com/alexanderramin/vocnav/internal/remote"
)

// Remote operation names recorded by FakeRemote.
const (
	OpGet       = "get"
	OpUpsert    = "upsert"
	OpDelete    = "delete"
	OpChecklist = "checklist"
)

// RemoteCall is one recorded call.
type RemoteCall struct {
	Op     string
	UserID string
	ItemID string
}

// FakeRemote is an in-memory PlanService that records calls and can inject
// failures or hold fetches until released.
type FakeRemote struct {
	*remote.Memory

	mu        sync.Mutex
	calls     []RemoteCall
	failures  map[string]error
	fetchGate chan struct{}
}

func NewFakeRemote() *FakeRemote {
	return &FakeRemote{Memory: remote.NewMemory(), failures: make(map[string]error)}
}

// FailOn makes every call of op return err. A nil err clears the failure.
func (f *FakeRemote) FailOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failures, op)
		return
	}
	f.failures[op] = err
}

// HoldFetches blocks GetUserPlan until the returned release is called.
func (f *FakeRemote) HoldFetches() (release func()) {
	gate := make(chan struct{})
	f.mu.Lock()
	f.fetchGate = gate
	f.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			f.fetchGate = nil
			f.mu.Unlock()
			close(gate)
		})
	}
}

func (f *FakeRemote) Calls() []RemoteCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RemoteCall(nil), f.calls...)
}

// CallsOf returns the recorded calls of op.
func (f *FakeRemote) CallsOf(op string) []RemoteCall {
	var out []RemoteCall
	for _, c := range f.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeRemote) record(op, user, item string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, RemoteCall{Op: op, UserID: user, ItemID: item})
	return f.failures[op]
}

func (f *FakeRemote) GetUserPlan(ctx context.Context, userID string) ([]domain.PlanItem, error) {
	f.mu.Lock()
	gate := f.fetchGate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := f.record(OpGet, userID, ""); err != nil {
		return nil, err
	}
	return f.Memory.GetUserPlan(ctx, userID)
}

func (f *FakeRemote) UpsertPlanItem(ctx context.Context, userID string, item domain.PlanItem) error {
	if err := f.record(OpUpsert, userID, item.ID); err != nil {
		return err
	}
	return f.Memory.UpsertPlanItem(ctx, userID, item)
}

func (f *FakeRemote) DeletePlanItem(ctx context.Context, userID, itemID string) error {
	if err := f.record(OpDelete, userID, itemID); err != nil {
		return err
	}
	return f.Memory.DeletePlanItem(ctx, userID, itemID)
}

func (f *FakeRemote) UpdateChecklist(ctx context.Context, userID, itemID string, checklist []domain.ChecklistItem) error {
	if err := f.record(OpChecklist, userID, itemID); err != nil {
		return err
	}
	return f.Memory.UpdateChecklist(ctx, userID, itemID, checklist)
}

var _ remote.PlanService = (*FakeRemote)(nil)
