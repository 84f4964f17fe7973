package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/vocnav/internal/app"
	"github.com/alexanderramin/vocnav/internal/calculator"
	"github.com/alexanderramin/vocnav/internal/catalog"
	"github.com/alexanderramin/vocnav/internal/checklist"
	"github.com/alexanderramin/vocnav/internal/domain"
	"github.com/alexanderramin/vocnav/internal/navigation"
	"github.com/alexanderramin/vocnav/internal/service"
	"github.com/alexanderramin/vocnav/internal/storage"
	"github.com/alexanderramin/vocnav/internal/testutil"
)

type testEnv struct {
	app      *App
	store    *storage.Memory
	remote   *testutil.FakeRemote
	sessions *ManualSessions
	bell     *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		store:    storage.NewMemory(),
		remote:   testutil.NewFakeRemote(),
		sessions: NewManualSessions(""),
		bell:     &bytes.Buffer{},
	}

	cat, err := catalog.Default()
	require.NoError(t, err)
	shell, err := app.New(app.Deps{
		Plan:         service.NewPlanManager(env.store, env.remote, checklist.NewTemplates(checklist.WithSiteLookup(cat.Website))),
		Achievements: service.NewAchievementService(env.store),
		Navigation:   navigation.New(),
		Calculator:   calculator.New(env.store, nil),
		Catalog:      cat,
		Store:        env.store,
	}, app.WithWatchThreshold(time.Hour))
	require.NoError(t, err)
	t.Cleanup(func() { _ = shell.Close() })

	env.app = &App{
		Shell:    shell,
		Sessions: env.sessions,
		Bell:     env.bell,
		Now:      func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) },
	}
	return env
}

func testApp(t *testing.T) *App {
	t.Helper()
	return newTestEnv(t).app
}

// executeCmd runs a fresh root command with args and returns its output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	out, err := executeCmd(t, testApp(t))
	require.NoError(t, err)
	assert.Contains(t, out, "vocnav")
	assert.Contains(t, out, "plan")
}

// --- plan ---

func TestPlanAdd_InfersTypeAndShowsChecklist(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "plan", "add", "09.02.07")
	require.NoError(t, err)
	assert.Contains(t, out, "Added")
	assert.Contains(t, out, " 1. ")
	assert.Contains(t, out, "Achievement unlocked:")
	assert.Contains(t, out, "First step")

	item, ok := a.Shell.PlanItem("09.02.07")
	require.True(t, ok)
	assert.Equal(t, domain.ItemSpecialty, item.Type)
	assert.NotEmpty(t, item.Checklist)
}

func TestPlanAdd_Duplicate(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "plan", "add", "col-med")
	require.NoError(t, err)

	out, err := executeCmd(t, a, "plan", "add", "col-med")
	require.NoError(t, err)
	assert.Contains(t, out, "already in your plan")
	assert.NotContains(t, out, "Achievement unlocked:")
	assert.Len(t, a.Shell.Plan(), 1)
}

func TestPlanAdd_UnknownIDNeedsType(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "plan", "add", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrUnknownItem)

	_, err = executeCmd(t, a, "plan", "add", "nope", "--type", "robot")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --type")

	_, err = executeCmd(t, a, "plan", "add", "nope", "--type", "college")
	require.NoError(t, err)
	assert.True(t, a.Shell.InPlan("nope"))
}

func TestPlanCheck_ByNumber(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "plan", "add", "col-build")
	require.NoError(t, err)

	out, err := executeCmd(t, a, "plan", "check", "1", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "1 of")

	item, _ := a.Shell.PlanItem("col-build")
	assert.False(t, item.Checklist[0].IsCompleted)
	assert.True(t, item.Checklist[1].IsCompleted)

	_, err = executeCmd(t, a, "plan", "check", "col-build", "2", "--undo")
	require.NoError(t, err)
	item, _ = a.Shell.PlanItem("col-build")
	assert.False(t, item.Checklist[1].IsCompleted)
}

func TestPlanCheck_UnknownEntry(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "plan", "add", "col-build")
	require.NoError(t, err)

	_, err = executeCmd(t, a, "plan", "check", "col-build", "99")
	assert.Error(t, err)

	_, err = executeCmd(t, a, "plan", "check", "7", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no item #7")
}

func TestPlanRemove(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "plan", "add", "col-build")
	require.NoError(t, err)

	out, err := executeCmd(t, a, "plan", "rm", "col-build")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed")
	assert.Empty(t, a.Shell.Plan())

	_, err = executeCmd(t, a, "plan", "rm", "col-build")
	assert.ErrorIs(t, err, app.ErrNotInPlan)
}

func TestPlanListAndProgress(t *testing.T) {
	a := testApp(t)
	for _, id := range []string{"09.02.07", "col-polytech"} {
		_, err := executeCmd(t, a, "plan", "add", id)
		require.NoError(t, err)
	}

	out, err := executeCmd(t, a, "plan", "list")
	require.NoError(t, err)
	assert.Contains(t, out, a.Shell.Catalog().Title("09.02.07"))
	assert.Contains(t, out, a.Shell.Catalog().Title("col-polytech"))

	out, err = executeCmd(t, a, "plan", "progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Overall")
}

// --- compare ---

func TestCompare_SameTypeMarksAnalyst(t *testing.T) {
	a := testApp(t)
	for _, id := range []string{"col-polytech", "col-med"} {
		_, err := executeCmd(t, a, "plan", "add", id)
		require.NoError(t, err)
	}

	out, err := executeCmd(t, a, "compare", "1", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Analyst")
	assert.True(t, a.Shell.IsUnlocked("analyst"))
}

func TestCompare_MixedTypes(t *testing.T) {
	a := testApp(t)
	for _, id := range []string{"col-polytech", "09.02.07"} {
		_, err := executeCmd(t, a, "plan", "add", id)
		require.NoError(t, err)
	}

	_, err := executeCmd(t, a, "compare", "col-polytech", "09.02.07")
	assert.ErrorIs(t, err, app.ErrComparisonMixed)
	assert.False(t, a.Shell.IsUnlocked("analyst"))
}

// --- catalog ---

func TestCatalogSpecialties_KindFilter(t *testing.T) {
	a := testApp(t)
	out, err := executeCmd(t, a, "catalog", "specialties", "--kind", "profession")
	require.NoError(t, err)
	for _, s := range a.Shell.Catalog().Specialties {
		if s.Kind == catalog.KindProfession {
			assert.Contains(t, out, s.Title)
		} else {
			assert.NotContains(t, out, s.ID)
		}
	}
}

func TestCatalogShow_CollegeCountsView(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "catalog", "show", "col-med")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Equal(t, 1, a.Shell.Counters().CollegesViewed)

	_, err = executeCmd(t, a, "catalog", "show", "nothing")
	assert.Error(t, err)
}

func TestCatalogEvents_PlanOnly(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "catalog", "events", "--plan")
	require.NoError(t, err)
	assert.Contains(t, out, "No upcoming events")

	_, err = executeCmd(t, a, "plan", "add", "col-build")
	require.NoError(t, err)
	out, err = executeCmd(t, a, "catalog", "events", "--plan")
	require.NoError(t, err)
	for _, e := range a.Shell.Catalog().EventsFor("col-build") {
		assert.Contains(t, out, e.Title)
	}
}

func TestCatalogTop_Limit(t *testing.T) {
	a := testApp(t)
	top := a.Shell.Catalog().TopProfessions()
	require.NotEmpty(t, top)

	out, err := executeCmd(t, a, "catalog", "top", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, top[0].Name)
	if len(top) > 1 {
		assert.NotContains(t, out, top[len(top)-1].Name)
	}
}

func TestCatalogNews_Unknown(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "catalog", "news", "missing")
	assert.Error(t, err)
}

// --- preferences ---

func TestThemeCmd(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "theme")
	require.NoError(t, err)
	assert.Contains(t, out, "system")

	out, err = executeCmd(t, a, "theme", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "dark")
	assert.Equal(t, domain.ThemeDark, a.Shell.Theme())

	_, err = executeCmd(t, a, "theme", "--set", "sepia")
	assert.Error(t, err)
	assert.Equal(t, domain.ThemeDark, a.Shell.Theme())
}

func TestSettingsCmd(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "settings", "sound=false", "Incognito=true")
	require.NoError(t, err)
	assert.Contains(t, out, "incognito")
	assert.False(t, a.Shell.SoundEnabled())
	on, _ := a.Shell.Setting(app.SettingIncognito)
	assert.True(t, on)

	_, err = executeCmd(t, a, "settings", "volume=true")
	assert.ErrorIs(t, err, app.ErrUnknownSetting)

	_, err = executeCmd(t, a, "settings", "sound=loud")
	assert.Error(t, err)

	_, err = executeCmd(t, a, "settings", "sound")
	assert.Error(t, err)
}

func TestAchievementsCmd(t *testing.T) {
	a := testApp(t)
	out, err := executeCmd(t, a, "achievements")
	require.NoError(t, err)
	for _, ach := range a.Shell.Achievements() {
		assert.Contains(t, out, ach.Title)
	}
}

func TestResetCmd_RequiresYes(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "plan", "add", "col-med")
	require.NoError(t, err)

	_, err = executeCmd(t, a, "reset")
	assert.Error(t, err)
	assert.Len(t, a.Shell.Plan(), 1)

	out, err := executeCmd(t, a, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "erased")
	assert.Empty(t, a.Shell.Plan())
	assert.False(t, a.Shell.IsUnlocked("first_step"))
}

// --- calculator ---

func TestCalcCmd_Average(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "calc", "--average", "4.2")
	require.NoError(t, err)
	assert.Contains(t, out, "Average 4.20")
	assert.Contains(t, out, "4 of 5 colleges within reach")
	assert.Contains(t, out, "Know your score")

	_, err = executeCmd(t, a, "calc", "--average", "7")
	assert.Error(t, err)
}

func TestCalcCmd_Grades(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "calc", "--grade", "math=5,physics=4")
	require.NoError(t, err)
	assert.Contains(t, out, "SUBJECT")
	assert.Contains(t, out, "Average")
	assert.True(t, a.Shell.IsUnlocked("calculated"))

	_, err = executeCmd(t, a, "calc", "--grade", "math=9")
	assert.ErrorIs(t, err, calculator.ErrGradeRange)
	for _, s := range a.Shell.Subjects() {
		if s.ID == "math" {
			assert.Equal(t, 5, s.Grade, "a rejected grade leaves the stored one")
		}
	}
}

func TestCalcCmd_NoGradesShowsTable(t *testing.T) {
	a := testApp(t)
	out, err := executeCmd(t, a, "calc")
	require.NoError(t, err)
	assert.Contains(t, out, "Mathematics")
	assert.NotContains(t, out, "Average")
	assert.False(t, a.Shell.IsUnlocked("calculated"))
}

// --- sessions ---

func TestLogin_SyncsRemotePlan(t *testing.T) {
	env := newTestEnv(t)
	env.remote.Seed("u1", testutil.NewTestPlanItem("col-arts", domain.ItemCollege))

	_, err := executeCmd(t, env.app, "plan", "add", "09.02.07")
	require.NoError(t, err)

	out, err := executeCmd(t, env.app, "login", "--user", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as u1")
	assert.Equal(t, "u1", env.sessions.Current())
	assert.True(t, env.app.Shell.InPlan("col-arts"))
	assert.True(t, env.app.Shell.InPlan("09.02.07"))

	out, err = executeCmd(t, env.app, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "u1\n", out)

	out, err = executeCmd(t, env.app, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Plan for u1: 2 items")

	remotePlan, err := env.remote.GetUserPlan(t.Context(), "u1")
	require.NoError(t, err)
	assert.Len(t, remotePlan, 2)
}

func TestLogout_ClearsLocalPlan(t *testing.T) {
	env := newTestEnv(t)
	_, err := executeCmd(t, env.app, "login", "--user", "u1")
	require.NoError(t, err)
	_, err = executeCmd(t, env.app, "plan", "add", "col-med")
	require.NoError(t, err)

	out, err := executeCmd(t, env.app, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")
	assert.Empty(t, env.app.Shell.Plan())

	out, err = executeCmd(t, env.app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestLogin_RequiresUser(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "login")
	assert.Error(t, err)
}

func TestSync_SignedOut(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "sync")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not signed in")
}

func TestSessionCommands_WithoutSessions(t *testing.T) {
	a := testApp(t)
	a.Sessions = nil
	_, err := executeCmd(t, a, "login", "--user", "u1")
	assert.Error(t, err)
	_, err = executeCmd(t, a, "logout")
	assert.Error(t, err)
}
