package domain

// ViewName is the discriminant of a View.
type ViewName string

const (
	ViewAuth                   ViewName = "auth"
	ViewDashboard              ViewName = "dashboard"
	ViewSpecialties            ViewName = "specialties"
	ViewColleges               ViewName = "colleges"
	ViewProfile                ViewName = "profile"
	ViewProfessionDetail       ViewName = "professionDetail"
	ViewCollegeDetail          ViewName = "collegeDetail"
	ViewEducationTypeSelection ViewName = "educationTypeSelection"
	ViewQuiz                   ViewName = "quiz"
	ViewMyPlan                 ViewName = "myPlan"
	ViewTop50                  ViewName = "top50"
	ViewCalendar               ViewName = "calendar"
	ViewQuizResult             ViewName = "quizResult"
	ViewNews                   ViewName = "news"
	ViewNewsDetail             ViewName = "newsDetail"
	ViewShorts                 ViewName = "shorts"
	ViewSettings               ViewName = "settings"
)

// View is a navigation entry: a screen identifier plus the parameters that
// screen needs. The set of implementations is closed; switch on the concrete
// type to get at the parameters.
type View interface {
	Name() ViewName
	isView()
}

// QuizScores maps a scoring category to the points collected in a quiz.
type QuizScores map[string]int

type (
	AuthView                   struct{}
	DashboardView              struct{}
	SpecialtiesView            struct{}
	CollegesView               struct{}
	ProfileView                struct{}
	EducationTypeSelectionView struct{}
	MyPlanView                 struct{}
	Top50View                  struct{}
	CalendarView               struct{}
	NewsView                   struct{}
	ShortsView                 struct{}
	SettingsView               struct{}

	ProfessionDetailView struct{ ID string }
	CollegeDetailView    struct{ ID string }
	NewsDetailView       struct{ ID string }

	// QuizView with an empty Type is the quiz selection screen; with a Type
	// it is an active quiz.
	QuizView struct{ Type QuizType }

	QuizResultView struct {
		Scores QuizScores
		Type   QuizType
	}
)

func (AuthView) Name() ViewName                   { return ViewAuth }
func (DashboardView) Name() ViewName              { return ViewDashboard }
func (SpecialtiesView) Name() ViewName            { return ViewSpecialties }
func (CollegesView) Name() ViewName               { return ViewColleges }
func (ProfileView) Name() ViewName                { return ViewProfile }
func (EducationTypeSelectionView) Name() ViewName { return ViewEducationTypeSelection }
func (MyPlanView) Name() ViewName                 { return ViewMyPlan }
func (Top50View) Name() ViewName                  { return ViewTop50 }
func (CalendarView) Name() ViewName               { return ViewCalendar }
func (NewsView) Name() ViewName                   { return ViewNews }
func (ShortsView) Name() ViewName                 { return ViewShorts }
func (SettingsView) Name() ViewName               { return ViewSettings }
func (ProfessionDetailView) Name() ViewName       { return ViewProfessionDetail }
func (CollegeDetailView) Name() ViewName          { return ViewCollegeDetail }
func (NewsDetailView) Name() ViewName             { return ViewNewsDetail }
func (QuizView) Name() ViewName                   { return ViewQuiz }
func (QuizResultView) Name() ViewName             { return ViewQuizResult }

func (AuthView) isView()                   {}
func (DashboardView) isView()              {}
func (SpecialtiesView) isView()            {}
func (CollegesView) isView()               {}
func (ProfileView) isView()                {}
func (EducationTypeSelectionView) isView() {}
func (MyPlanView) isView()                 {}
func (Top50View) isView()                  {}
func (CalendarView) isView()               {}
func (NewsView) isView()                   {}
func (ShortsView) isView()                 {}
func (SettingsView) isView()               {}
func (ProfessionDetailView) isView()       {}
func (CollegeDetailView) isView()          {}
func (NewsDetailView) isView()             {}
func (QuizView) isView()                   {}
func (QuizResultView) isView()             {}

// IsQuizSelection reports whether v is the quiz selection screen, i.e. a
// quiz entry with no quiz type set.
func IsQuizSelection(v View) bool {
	q, ok := v.(QuizView)
	return ok && q.Type == ""
}

// SimpleView returns the parameterless view with the given name. It returns
// false for names whose view carries parameters.
func SimpleView(name ViewName) (View, bool) {
	switch name {
	case ViewAuth:
		return AuthView{}, true
	case ViewDashboard:
		return DashboardView{}, true
	case ViewSpecialties:
		return SpecialtiesView{}, true
	case ViewColleges:
		return CollegesView{}, true
	case ViewProfile:
		return ProfileView{}, true
	case ViewEducationTypeSelection:
		return EducationTypeSelectionView{}, true
	case ViewMyPlan:
		return MyPlanView{}, true
	case ViewTop50:
		return Top50View{}, true
	case ViewCalendar:
		return CalendarView{}, true
	case ViewNews:
		return NewsView{}, true
	case ViewShorts:
		return ShortsView{}, true
	case ViewSettings:
		return SettingsView{}, true
	case ViewQuiz:
		return QuizView{}, true
	}
	return nil, false
}
