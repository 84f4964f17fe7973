package catalog

import "github.com/alexanderramin/vocnav/internal/domain"

// Catalog is the read-only reference data the app browses.
type Catalog struct {
	Specialties []Specialty  `yaml:"specialties"`
	Colleges    []College    `yaml:"colleges"`
	News        []NewsItem   `yaml:"news"`
	Shorts      []Short      `yaml:"shorts"`
	Events      []Event      `yaml:"events"`
	Professions []Profession `yaml:"professions"`
	Quizzes     []Quiz       `yaml:"quizzes"`

	specialtyIdx map[string]int
	collegeIdx   map[string]int
	newsIdx      map[string]int
}

// SpecialtyKind distinguishes short worker programmes from full specialties.
type SpecialtyKind string

const (
	KindProfession SpecialtyKind = "profession"
	KindSpecialty  SpecialtyKind = "specialty"
)

type Salary struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

type Specialty struct {
	ID              string        `yaml:"id"`
	Title           string        `yaml:"title"`
	Kind            SpecialtyKind `yaml:"kind"`
	Description     string        `yaml:"description"`
	FullDescription string        `yaml:"full_description"`
	PassingScore    float64       `yaml:"passing_score"`
	Duration        string        `yaml:"duration"`
	DayInLife       string        `yaml:"day_in_life,omitempty"`
	Pros            []string      `yaml:"pros,omitempty"`
	Cons            []string      `yaml:"cons,omitempty"`
	Skills          []string      `yaml:"skills,omitempty"`
	SalaryNovice    Salary        `yaml:"salary_novice"`
	SalaryExpert    Salary        `yaml:"salary_experienced"`
	// Categories are the quiz categories this specialty suits.
	Categories []string `yaml:"categories,omitempty"`
}

type CollegeInfo struct {
	Dormitory  bool `yaml:"dormitory"`
	FreeMeals  bool `yaml:"free_meals"`
	Accessible bool `yaml:"accessible"`
	Library    bool `yaml:"library"`
	Sports     bool `yaml:"sports"`
}

type Contacts struct {
	Phone   string `yaml:"phone,omitempty"`
	Email   string `yaml:"email,omitempty"`
	Website string `yaml:"website,omitempty"`
	Address string `yaml:"address,omitempty"`
}

type College struct {
	ID             string      `yaml:"id"`
	Name           string      `yaml:"name"`
	City           string      `yaml:"city"`
	Description    string      `yaml:"description"`
	PassingScore   float64     `yaml:"passing_score"`
	SpecialtyIDs   []string    `yaml:"specialty_ids"`
	EducationForms []string    `yaml:"education_forms,omitempty"`
	Contacts       Contacts    `yaml:"contacts"`
	Info           CollegeInfo `yaml:"info"`
}

type NewsItem struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Summary string   `yaml:"summary"`
	Content string   `yaml:"content"` // markdown
	Tags    []string `yaml:"tags,omitempty"`
}

type Short struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	Likes       int    `yaml:"likes"`
	Views       string `yaml:"views"`
	CollegeID   string `yaml:"college_id,omitempty"`
	SpecialtyID string `yaml:"specialty_id,omitempty"`
}

type EventType string

const (
	EventOpenDay       EventType = "openDay"
	EventDeadlineStart EventType = "deadlineStart"
	EventDeadlineEnd   EventType = "deadlineEnd"
	EventExam          EventType = "exam"
)

var validEventTypes = map[EventType]bool{
	EventOpenDay: true, EventDeadlineStart: true, EventDeadlineEnd: true, EventExam: true,
}

type Event struct {
	ID        string    `yaml:"id"`
	CollegeID string    `yaml:"college_id"`
	Title     string    `yaml:"title"`
	Date      string    `yaml:"date"` // YYYY-MM-DD
	Type      EventType `yaml:"type"`
}

type Trend string

const (
	TrendGrowing Trend = "growing"
	TrendStable  Trend = "stable"
	TrendHot     Trend = "hot"
)

type Profession struct {
	ID                  int      `yaml:"id"`
	Name                string   `yaml:"name"`
	Sphere              string   `yaml:"sphere"`
	SalaryFrom          int      `yaml:"salary_from"`
	SalaryTo            int      `yaml:"salary_to"`
	CollegeIDs          []string `yaml:"college_ids,omitempty"`
	Description         string   `yaml:"description,omitempty"`
	Trend               Trend    `yaml:"trend,omitempty"`
	RelatedSpecialtyIDs []string `yaml:"related_specialty_ids,omitempty"`
}

// Quiz is one of the three quiz formats. Every question offers options;
// an option without a category scores nothing.
type Quiz struct {
	Type      domain.QuizType `yaml:"type"`
	Title     string          `yaml:"title"`
	Intro     string          `yaml:"intro"`
	Questions []Question      `yaml:"questions"`
}

type Question struct {
	ID      int      `yaml:"id"`
	Text    string   `yaml:"text"`
	Options []Option `yaml:"options"`
}

type Option struct {
	Text     string `yaml:"text"`
	Category string `yaml:"category,omitempty"`
}
