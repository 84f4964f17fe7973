package domain

// Counters is the flat record of behavioral counters that achievements are
// evaluated against. PlanCount, SpecialtiesInPlan and CollegesInPlan are
// derived from the plan and recomputed on every plan change.
type Counters struct {
	PlanCount          int  `json:"planCount"`
	HasCalculatedScore bool `json:"hasCalculatedScore"`
	QuizzesPassed      int  `json:"quizzesPassed"`
	CollegesViewed     int  `json:"collegesViewed"`
	VideosWatched      int  `json:"videosWatched"`
	SpecialtiesInPlan  int  `json:"specialtiesInPlan"`
	CollegesInPlan     int  `json:"collegesInPlan"`
	HasUsedComparison  bool `json:"hasUsedComparison"`
	VideosLiked        int  `json:"videosLiked"`
}

// CountersPatch is a partial update. Nil fields leave the current value.
type CountersPatch struct {
	PlanCount          *int
	HasCalculatedScore *bool
	QuizzesPassed      *int
	CollegesViewed     *int
	VideosWatched      *int
	SpecialtiesInPlan  *int
	CollegesInPlan     *int
	HasUsedComparison  *bool
	VideosLiked        *int
}

// Apply returns c with every non-nil field of p overwritten.
func (c Counters) Apply(p CountersPatch) Counters {
	return Counters{
		PlanCount:          patched(c.PlanCount, p.PlanCount),
		HasCalculatedScore: patched(c.HasCalculatedScore, p.HasCalculatedScore),
		QuizzesPassed:      patched(c.QuizzesPassed, p.QuizzesPassed),
		CollegesViewed:     patched(c.CollegesViewed, p.CollegesViewed),
		VideosWatched:      patched(c.VideosWatched, p.VideosWatched),
		SpecialtiesInPlan:  patched(c.SpecialtiesInPlan, p.SpecialtiesInPlan),
		CollegesInPlan:     patched(c.CollegesInPlan, p.CollegesInPlan),
		HasUsedComparison:  patched(c.HasUsedComparison, p.HasUsedComparison),
		VideosLiked:        patched(c.VideosLiked, p.VideosLiked),
	}
}

// PlanPatch builds the patch that brings the plan-derived counters in line
// with items.
func PlanPatch(items []PlanItem) CountersPatch {
	specialties, colleges := CountByType(items)
	total := len(items)
	return CountersPatch{
		PlanCount:         &total,
		SpecialtiesInPlan: &specialties,
		CollegesInPlan:    &colleges,
	}
}

// Achievement is a static, predicate-gated milestone. Condition must be a
// pure function of the counters.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Color       string
	Condition   func(Counters) bool

	// Metric and Goal describe partial progress; both are optional.
	Metric func(Counters) int
	Goal   int
}

// Progress returns how close c is to unlocking a, in [0, 1].
func (a Achievement) Progress(c Counters) float64 {
	if a.Condition != nil && a.Condition(c) {
		return 1
	}
	if a.Metric == nil || a.Goal <= 0 {
		return 0
	}
	p := float64(a.Metric(c)) / float64(a.Goal)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}
