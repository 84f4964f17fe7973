package navigation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/vocnav/internal/domain"
)

func assertHistory(t *testing.T, s *Stack, want ...domain.View) {
	t.Helper()
	if diff := cmp.Diff(want, s.History()); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_StartsAtDashboard(t *testing.T) {
	s := New()
	assertHistory(t, s, domain.DashboardView{})
	assert.Equal(t, domain.ViewDashboard, s.Current().Name())
}

func TestNavigateTo_AppendsDuplicates(t *testing.T) {
	s := New()
	s.NavigateTo(domain.CollegesView{})
	s.NavigateTo(domain.CollegeDetailView{ID: "c1"})
	s.NavigateTo(domain.CollegeDetailView{ID: "c1"})

	assertHistory(t, s,
		domain.DashboardView{},
		domain.CollegesView{},
		domain.CollegeDetailView{ID: "c1"},
		domain.CollegeDetailView{ID: "c1"},
	)
}

func TestNavigateTo_DashboardResetsHistory(t *testing.T) {
	s := New()
	s.NavigateTo(domain.SpecialtiesView{})
	s.NavigateTo(domain.ProfessionDetailView{ID: "p1"})
	s.NavigateTo(domain.DashboardView{})

	assertHistory(t, s, domain.DashboardView{})
}

func TestNavigateTo_IgnoresNil(t *testing.T) {
	s := New()
	s.NavigateTo(nil)
	assert.Equal(t, 1, s.Len())
}

func TestNavigateBack_NeverPopsRoot(t *testing.T) {
	s := New()
	s.NavigateBack()
	s.NavigateBack()
	assertHistory(t, s, domain.DashboardView{})

	s.NavigateTo(domain.NewsView{})
	assert.Equal(t, 2, s.Len())
	s.NavigateBack()
	s.NavigateBack()
	assertHistory(t, s, domain.DashboardView{})
	assert.Equal(t, 1, s.Len())
}

func TestNavigateBack_FromQuizResultReturnsToSelection(t *testing.T) {
	s := New()
	s.NavigateTo(domain.QuizView{})
	s.NavigateTo(domain.QuizView{Type: domain.QuizClassic})
	s.NavigateTo(domain.QuizResultView{Type: domain.QuizClassic, Scores: domain.QuizScores{"it": 4}})

	s.NavigateBack()
	assertHistory(t, s, domain.DashboardView{}, domain.QuizView{})
}

func TestNavigateBack_QuizResultPicksNearestSelection(t *testing.T) {
	s := New()
	s.NavigateTo(domain.QuizView{})
	s.NavigateTo(domain.ProfileView{})
	s.NavigateTo(domain.QuizView{})
	s.NavigateTo(domain.QuizView{Type: domain.QuizSwipe})
	s.NavigateTo(domain.QuizResultView{Type: domain.QuizSwipe})

	s.NavigateBack()
	assertHistory(t, s,
		domain.DashboardView{},
		domain.QuizView{},
		domain.ProfileView{},
		domain.QuizView{},
	)
}

func TestNavigateBack_QuizResultWithoutSelectionPushesOne(t *testing.T) {
	s := New()
	s.NavigateTo(domain.QuizView{Type: domain.QuizBattle})
	s.NavigateTo(domain.QuizResultView{Type: domain.QuizBattle})

	s.NavigateBack()
	assertHistory(t, s,
		domain.DashboardView{},
		domain.QuizView{Type: domain.QuizBattle},
		domain.QuizResultView{Type: domain.QuizBattle},
		domain.QuizView{},
	)
}

func TestReset(t *testing.T) {
	s := New()
	s.NavigateTo(domain.SettingsView{})
	s.Reset()
	assertHistory(t, s, domain.DashboardView{})
}

func TestHistory_IsACopy(t *testing.T) {
	s := New()
	h := s.History()
	h[0] = domain.NewsView{}
	assert.Equal(t, domain.ViewDashboard, s.Current().Name())
}

func TestActiveTabFor(t *testing.T) {
	cases := []struct {
		view domain.View
		want domain.Tab
	}{
		{domain.ShortsView{}, domain.TabVideo},
		{domain.NewsView{}, domain.TabNews},
		{domain.NewsDetailView{ID: "n1"}, domain.TabNews},
		{domain.DashboardView{}, domain.TabHome},
		{domain.QuizResultView{}, domain.TabHome},
		{nil, domain.TabHome},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ActiveTabFor(tc.view), "%v", tc.view)
	}
}
