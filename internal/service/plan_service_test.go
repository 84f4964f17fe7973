package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alexanderramin/vocnav/internal/domain"
	"github.com/alexanderramin/vocnav/internal/storage"
	"github.com/alexanderramin/vocnav/internal/testutil"
)

type planFixture struct {
	store  *storage.Memory
	remote *testutil.FakeRemote
	mgr    PlanManager
}

func newPlanFixture(t *testing.T, opts ...PlanOption) *planFixture {
	t.Helper()
	f := &planFixture{store: storage.NewMemory(), remote: testutil.NewFakeRemote()}
	f.mgr = NewPlanManager(f.store, f.remote, &testutil.StaticChecklist{}, opts...)
	t.Cleanup(func() { _ = f.mgr.Close() })
	return f
}

func (f *planFixture) reopen(t *testing.T) PlanManager {
	t.Helper()
	_ = f.mgr.Close()
	f.mgr = NewPlanManager(f.store, f.remote, &testutil.StaticChecklist{})
	return f.mgr
}

func itemIDs(items []domain.PlanItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func persistedIDs(t *testing.T, s storage.Store) []string {
	t.Helper()
	var items []domain.PlanItem
	if !storage.GetJSON(s, nil, storage.KeyPlan, &items) {
		return nil
	}
	return itemIDs(items)
}

// signIn delivers a session and waits for the sync it starts.
func signIn(t *testing.T, m PlanManager, user string) {
	t.Helper()
	m.OnAuthChange(context.Background(), user)
	waitSync(t, m)
}

func waitSync(t *testing.T, m PlanManager) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, m.WaitSync(ctx))
}

func flush(t *testing.T, m PlanManager) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, m.Flush(ctx))
}

func TestNewPlanManager_MissingOrMalformedStorageIsEmpty(t *testing.T) {
	f := newPlanFixture(t)
	assert.Empty(t, f.mgr.Items())
	assert.NotNil(t, f.mgr.Items())

	f.store.Set(storage.KeyPlan, "{{ not json")
	assert.Empty(t, f.reopen(t).Items())
}

func TestNewPlanManager_LoadsPersistedPlan(t *testing.T) {
	f := newPlanFixture(t)
	storage.SetJSON(f.store, nil, storage.KeyPlan, []domain.PlanItem{
		testutil.NewTestPlanItem("a", domain.ItemSpecialty),
		testutil.NewTestPlanItem("a", domain.ItemCollege),
		testutil.NewTestPlanItem("b", domain.ItemCollege),
	})

	assert.Equal(t, []string{"a", "b"}, itemIDs(f.reopen(t).Items()))
}

func TestAddItem_Idempotent(t *testing.T) {
	f := newPlanFixture(t)

	assert.True(t, f.mgr.AddItem("s1", domain.ItemSpecialty))
	first, _ := f.mgr.Item("s1")
	assert.False(t, f.mgr.AddItem("s1", domain.ItemSpecialty))
	assert.False(t, f.mgr.AddItem("s1", domain.ItemCollege), "ids are not namespaced by type")

	items := f.mgr.Items()
	require.Len(t, items, 1)
	assert.Equal(t, domain.ItemSpecialty, items[0].Type)
	assert.Equal(t, first.Checklist, items[0].Checklist)
	assert.Equal(t, []string{"s1"}, persistedIDs(t, f.store))
}

func TestAddItem_RejectsInvalidInput(t *testing.T) {
	f := newPlanFixture(t)
	assert.False(t, f.mgr.AddItem("", domain.ItemCollege))
	assert.False(t, f.mgr.AddItem("x", "event"))
	assert.Empty(t, f.mgr.Items())
}

func TestRemoveThenAdd_GivesFreshChecklist(t *testing.T) {
	f := newPlanFixture(t)
	require.True(t, f.mgr.AddItem("c1", domain.ItemCollege))
	item, _ := f.mgr.Item("c1")
	require.True(t, f.mgr.UpdateChecklistItem("c1", item.Checklist[0].ID, true))

	require.True(t, f.mgr.RemoveItem("c1"))
	assert.Empty(t, persistedIDs(t, f.store))
	require.True(t, f.mgr.AddItem("c1", domain.ItemCollege))

	fresh, ok := f.mgr.Item("c1")
	require.True(t, ok)
	for _, c := range fresh.Checklist {
		assert.False(t, c.IsCompleted)
	}
	assert.NotEqual(t, item.Checklist[0].ID, fresh.Checklist[0].ID)
}

func TestUpdateChecklistItem(t *testing.T) {
	f := newPlanFixture(t)
	require.True(t, f.mgr.AddItem("s1", domain.ItemSpecialty))
	item, _ := f.mgr.Item("s1")

	assert.False(t, f.mgr.UpdateChecklistItem("missing", item.Checklist[0].ID, true))
	assert.True(t, f.mgr.UpdateChecklistItem("s1", item.Checklist[1].ID, true))

	got, _ := f.mgr.Item("s1")
	assert.False(t, got.Checklist[0].IsCompleted)
	assert.True(t, got.Checklist[1].IsCompleted)

	reloaded, _ := f.reopen(t).Item("s1")
	assert.True(t, reloaded.Checklist[1].IsCompleted, "completion is persisted")
}

func TestItems_ReturnsCopies(t *testing.T) {
	f := newPlanFixture(t)
	require.True(t, f.mgr.AddItem("s1", domain.ItemSpecialty))

	items := f.mgr.Items()
	items[0].Checklist[0].IsCompleted = true

	again, _ := f.mgr.Item("s1")
	assert.False(t, again.Checklist[0].IsCompleted)
}

func TestSignedOut_NoRemoteCalls(t *testing.T) {
	f := newPlanFixture(t)
	f.mgr.AddItem("a", domain.ItemCollege)
	f.mgr.RemoveItem("a")
	flush(t, f.mgr)
	assert.Empty(t, f.remote.Calls())
}

func TestSignedIn_MirrorsInIssueOrder(t *testing.T) {
	f := newPlanFixture(t)
	user := testutil.NewTestUserID()
	signIn(t, f.mgr, user)
	before := len(f.remote.Calls())

	require.True(t, f.mgr.AddItem("a", domain.ItemSpecialty))
	item, _ := f.mgr.Item("a")
	require.True(t, f.mgr.UpdateChecklistItem("a", item.Checklist[0].ID, true))
	require.True(t, f.mgr.RemoveItem("a"))
	flush(t, f.mgr)

	calls := f.remote.Calls()[before:]
	require.Len(t, calls, 3)
	assert.Equal(t, []string{testutil.OpUpsert, testutil.OpChecklist, testutil.OpDelete},
		[]string{calls[0].Op, calls[1].Op, calls[2].Op})
	for _, c := range calls {
		assert.Equal(t, user, c.UserID)
	}

	remoteItems, err := f.remote.GetUserPlan(context.Background(), user)
	require.NoError(t, err)
	assert.Empty(t, remoteItems)
}

func TestRemoveItem_AbsentStillRequestsRemoteDelete(t *testing.T) {
	f := newPlanFixture(t)
	signIn(t, f.mgr, "u1")

	assert.False(t, f.mgr.RemoveItem("ghost"))
	flush(t, f.mgr)
	require.Len(t, f.remote.CallsOf(testutil.OpDelete), 1)
	assert.Equal(t, "ghost", f.remote.CallsOf(testutil.OpDelete)[0].ItemID)
}

func TestRemoteFailure_DoesNotRollBack(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	f := newPlanFixture(t, WithPlanLogger(zap.New(core)))
	signIn(t, f.mgr, "u1")
	f.remote.FailOn(testutil.OpUpsert, errors.New("503"))

	require.True(t, f.mgr.AddItem("a", domain.ItemCollege))
	flush(t, f.mgr)

	assert.Equal(t, []string{"a"}, itemIDs(f.mgr.Items()))
	assert.Equal(t, []string{"a"}, persistedIDs(t, f.store))
	assert.Equal(t, 1, logs.FilterMessage("remote mirror failed").Len())
}

func TestSignOut_ClearsPlanAndPersistedEntry(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	signIn(t, f.mgr, "u1")
	f.mgr.AddItem("a", domain.ItemCollege)

	f.mgr.OnAuthChange(ctx, "")

	assert.Empty(t, f.mgr.Items())
	_, ok := f.store.Get(storage.KeyPlan)
	assert.False(t, ok)
	_, ok = f.store.Get(storage.KeyPlanOwner)
	assert.False(t, ok)
	assert.Equal(t, "", f.mgr.CurrentUser())
}

func TestStartupSignedOut_KeepsAnonymousPlan(t *testing.T) {
	f := newPlanFixture(t)
	f.mgr.AddItem("a", domain.ItemSpecialty)

	f.mgr.OnAuthChange(context.Background(), "")
	assert.Equal(t, []string{"a"}, itemIDs(f.mgr.Items()))
}

func TestStartupSignedOut_ClearsPlanOfRecordedOwner(t *testing.T) {
	f := newPlanFixture(t)
	signIn(t, f.mgr, "u1")
	f.mgr.AddItem("a", domain.ItemSpecialty)
	flush(t, f.mgr)

	m := f.reopen(t)
	require.Len(t, m.Items(), 1)
	m.OnAuthChange(context.Background(), "")
	assert.Empty(t, m.Items())
}

func TestSync_UploadsLocalThenAdoptsRemote(t *testing.T) {
	f := newPlanFixture(t)
	f.remote.Seed("u1",
		testutil.NewTestPlanItem("B", domain.ItemCollege),
		testutil.NewTestPlanItem("C", domain.ItemSpecialty),
	)
	f.mgr.AddItem("A", domain.ItemSpecialty)
	f.mgr.AddItem("B", domain.ItemCollege)

	signIn(t, f.mgr, "u1")

	got := itemIDs(f.mgr.Items())
	assert.Equal(t, []string{"B", "C", "A"}, got, "remote order wins, new local items are appended remotely")
	assert.Equal(t, got, persistedIDs(t, f.store))

	local, _ := f.mgr.Item("B")
	assert.Len(t, local.Checklist, 2, "the uploaded local checklist replaced the remote one")
}

func TestSync_ReplacesWithExactlyFetchedList(t *testing.T) {
	f := newPlanFixture(t)
	f.remote.Seed("u1",
		testutil.NewTestPlanItem("B", domain.ItemCollege),
		testutil.NewTestPlanItem("C", domain.ItemSpecialty),
	)
	f.mgr.AddItem("A", domain.ItemSpecialty)
	f.mgr.AddItem("B", domain.ItemCollege)
	// Uploads fail, so the remote plan stays [B, C].
	f.remote.FailOn(testutil.OpUpsert, errors.New("quota"))

	signIn(t, f.mgr, "u1")

	assert.Equal(t, []string{"B", "C"}, itemIDs(f.mgr.Items()))
	assert.Equal(t, []string{"B", "C"}, persistedIDs(t, f.store))
	assert.Len(t, f.remote.CallsOf(testutil.OpUpsert), 2, "every local item is uploaded")
}

func TestSync_FetchFailureKeepsLocalPlan(t *testing.T) {
	f := newPlanFixture(t)
	f.mgr.AddItem("A", domain.ItemSpecialty)
	f.remote.FailOn(testutil.OpGet, errors.New("timeout"))

	signIn(t, f.mgr, "u1")

	assert.Equal(t, []string{"A"}, itemIDs(f.mgr.Items()))
	assert.Equal(t, "u1", f.mgr.CurrentUser())
}

func TestSync_EmptyFetchClearsPlan(t *testing.T) {
	f := newPlanFixture(t)
	f.mgr.AddItem("A", domain.ItemSpecialty)
	// Uploads are lost, so the authoritative remote plan is empty.
	f.remote.FailOn(testutil.OpUpsert, errors.New("lost"))

	signIn(t, f.mgr, "u1")

	assert.Empty(t, f.mgr.Items())
	assert.Empty(t, persistedIDs(t, f.store))
}

func TestOnAuthChange_SameUserIsNoop(t *testing.T) {
	f := newPlanFixture(t)
	signIn(t, f.mgr, "u1")
	fetches := len(f.remote.CallsOf(testutil.OpGet))

	signIn(t, f.mgr, "u1")
	assert.Len(t, f.remote.CallsOf(testutil.OpGet), fetches)
}

func TestOnAuthChange_ForeignPlanIsNotUploaded(t *testing.T) {
	f := newPlanFixture(t)
	signIn(t, f.mgr, "alice")
	f.mgr.AddItem("mine", domain.ItemCollege)
	flush(t, f.mgr)

	// A restart that comes back as another account without a sign-out.
	m := f.reopen(t)
	signIn(t, m, "bob")

	assert.Empty(t, m.Items())
	for _, c := range f.remote.CallsOf(testutil.OpUpsert) {
		assert.NotEqual(t, "bob", c.UserID)
	}
	owner, _ := f.store.Get(storage.KeyPlanOwner)
	assert.Equal(t, "bob", owner)
}

func TestSignOut_AppliesWhileSyncFetchIsPending(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	f.remote.Seed("u1", testutil.NewTestPlanItem("R", domain.ItemCollege))
	f.mgr.AddItem("local", domain.ItemSpecialty)
	release := f.remote.HoldFetches()
	defer release()

	f.mgr.OnAuthChange(ctx, "u1")
	assert.Equal(t, "u1", f.mgr.CurrentUser())

	f.mgr.OnAuthChange(ctx, "")
	assert.Equal(t, "", f.mgr.CurrentUser())
	assert.Empty(t, f.mgr.Items())

	release()
	waitSync(t, f.mgr)
	assert.Empty(t, f.mgr.Items(), "a sync finishing after sign-out must not restore the plan")
	assert.Empty(t, persistedIDs(t, f.store))

	// Nothing added after the sign-out reaches the previous account.
	f.mgr.AddItem("after", domain.ItemCollege)
	flush(t, f.mgr)
	for _, c := range f.remote.CallsOf(testutil.OpUpsert) {
		assert.NotEqual(t, "after", c.ItemID)
	}
}

func TestSync_SupersededBySecondSignIn(t *testing.T) {
	rec := &recordingObserver{}
	f := newPlanFixture(t, WithPlanObserver(rec))
	ctx := context.Background()
	f.remote.Seed("u1", testutil.NewTestPlanItem("one", domain.ItemCollege))
	f.remote.Seed("u2", testutil.NewTestPlanItem("two", domain.ItemCollege))
	release := f.remote.HoldFetches()

	f.mgr.OnAuthChange(ctx, "u1")
	f.mgr.OnAuthChange(ctx, "u2")
	release()
	waitSync(t, f.mgr)

	assert.Equal(t, "u2", f.mgr.CurrentUser())
	assert.Equal(t, []string{"two"}, itemIDs(f.mgr.Items()))
	require.Eventually(t, func() bool {
		return rec.countOutcome(EventPlanSync, SyncStale) == 1
	}, 5*time.Second, 5*time.Millisecond)
}

func TestOnChange_ReceivesEveryChangeInOrder(t *testing.T) {
	f := newPlanFixture(t)
	var sizes []int
	unsubscribe := f.mgr.OnChange(func(items []domain.PlanItem) { sizes = append(sizes, len(items)) })

	f.mgr.AddItem("a", domain.ItemCollege)
	f.mgr.AddItem("b", domain.ItemSpecialty)
	f.mgr.AddItem("b", domain.ItemSpecialty)
	f.mgr.RemoveItem("a")
	unsubscribe()
	f.mgr.RemoveItem("b")

	assert.Equal(t, []int{1, 2, 1}, sizes)
}

func TestObserver_ReportsSyncOutcome(t *testing.T) {
	rec := &recordingObserver{}
	f := newPlanFixture(t, WithPlanObserver(rec))
	f.remote.FailOn(testutil.OpGet, errors.New("down"))
	signIn(t, f.mgr, "u1")

	ev, ok := rec.last(EventPlanSync)
	require.True(t, ok)
	assert.False(t, ev.Success)
	assert.Equal(t, SyncFetchFailed, ev.Fields["outcome"])
}

func TestClose_DrainsPendingMirrors(t *testing.T) {
	f := newPlanFixture(t)
	signIn(t, f.mgr, "u1")
	f.mgr.AddItem("a", domain.ItemCollege)
	f.mgr.AddItem("b", domain.ItemCollege)

	require.NoError(t, f.mgr.Close())
	assert.Len(t, f.remote.CallsOf(testutil.OpUpsert), 2)

	// Work after Close is dropped but local state still changes.
	assert.True(t, f.mgr.AddItem("c", domain.ItemCollege))
	assert.NoError(t, f.mgr.Flush(context.Background()))
	assert.Len(t, f.remote.CallsOf(testutil.OpUpsert), 2)
}

// hangingRemote answers upserts only once their context is cancelled.
type hangingRemote struct{ *testutil.FakeRemote }

func (hangingRemote) UpsertPlanItem(ctx context.Context, _ string, _ domain.PlanItem) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestClose_CancelsHungMirrorAfterDrainTimeout(t *testing.T) {
	m := NewPlanManager(storage.NewMemory(), hangingRemote{testutil.NewFakeRemote()}, &testutil.StaticChecklist{},
		WithDrainTimeout(50*time.Millisecond))
	signIn(t, m, "u1")
	require.True(t, m.AddItem("a", domain.ItemCollege))

	closed := make(chan error, 1)
	go func() { closed <- m.Close() }()

	select {
	case err := <-closed:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(2 * time.Second):
		t.Fatal("Close blocked on a mirror the remote never answered")
	}
	assert.Equal(t, []string{"a"}, itemIDs(m.Items()))
	assert.NoError(t, m.Close(), "a second Close has nothing left to drain")
}

func TestSignIn_HungMirrorDoesNotBlockNextTransition(t *testing.T) {
	m := NewPlanManager(storage.NewMemory(), hangingRemote{testutil.NewFakeRemote()}, &testutil.StaticChecklist{},
		WithDrainTimeout(50*time.Millisecond))
	t.Cleanup(func() { _ = m.Close() })
	signIn(t, m, "u1")
	require.True(t, m.AddItem("a", domain.ItemCollege))

	// The second sync waits behind the hung mirror; signing out must not.
	m.OnAuthChange(context.Background(), "u2")
	m.OnAuthChange(context.Background(), "")

	assert.Equal(t, "", m.CurrentUser())
	assert.Empty(t, m.Items())
}
