package catalog

import (
	"fmt"
	"time"

	"github.com/alexanderramin/vocnav/internal/domain"
)

var validKinds = map[SpecialtyKind]bool{KindProfession: true, KindSpecialty: true}

// Validate checks the catalog and returns every problem found.
func Validate(c *Catalog) []error {
	var errs []error

	specRefs := make(map[string]bool)
	errs = append(errs, validateSpecialties(c.Specialties, specRefs)...)

	collegeRefs := make(map[string]bool)
	errs = append(errs, validateColleges(c.Colleges, specRefs, collegeRefs)...)

	errs = append(errs, validateNews(c.News)...)
	errs = append(errs, validateShorts(c.Shorts, specRefs, collegeRefs)...)
	errs = append(errs, validateEvents(c.Events, collegeRefs)...)
	errs = append(errs, validateProfessions(c.Professions, specRefs, collegeRefs)...)
	errs = append(errs, validateQuizzes(c.Quizzes)...)

	return errs
}

func validateScore(prefix string, score float64) []error {
	if score < 0 || score > 5 {
		return []error{fmt.Errorf("%s.passing_score %.2f out of range 0-5", prefix, score)}
	}
	return nil
}

// claimID records id in refs. Specialty and college ids share one namespace
// because plan items are keyed by id alone.
func claimID(prefix, id string, refs ...map[string]bool) []error {
	if id == "" {
		return []error{fmt.Errorf("%s.id is required", prefix)}
	}
	for _, r := range refs {
		if r[id] {
			return []error{fmt.Errorf("%s.id: duplicate id %q", prefix, id)}
		}
	}
	refs[0][id] = true
	return nil
}

func validateSpecialties(specs []Specialty, refs map[string]bool) []error {
	var errs []error
	for i, s := range specs {
		prefix := fmt.Sprintf("specialties[%d]", i)
		errs = append(errs, claimID(prefix, s.ID, refs)...)
		if s.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if !validKinds[s.Kind] {
			errs = append(errs, fmt.Errorf("%s.kind: invalid value %q", prefix, s.Kind))
		}
		errs = append(errs, validateScore(prefix, s.PassingScore)...)
	}
	return errs
}

func validateColleges(cols []College, specRefs, refs map[string]bool) []error {
	var errs []error
	for i, c := range cols {
		prefix := fmt.Sprintf("colleges[%d]", i)
		errs = append(errs, claimID(prefix, c.ID, refs, specRefs)...)
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		errs = append(errs, validateScore(prefix, c.PassingScore)...)
		for _, sid := range c.SpecialtyIDs {
			if !specRefs[sid] {
				errs = append(errs, fmt.Errorf("%s.specialty_ids: %q not found in specialties", prefix, sid))
			}
		}
	}
	return errs
}

func validateNews(items []NewsItem) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, n := range items {
		prefix := fmt.Sprintf("news[%d]", i)
		errs = append(errs, claimID(prefix, n.ID, seen)...)
		if n.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		errs = append(errs, validateDate(prefix+".date", n.Date)...)
	}
	return errs
}

func validateShorts(shorts []Short, specRefs, collegeRefs map[string]bool) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, s := range shorts {
		prefix := fmt.Sprintf("shorts[%d]", i)
		errs = append(errs, claimID(prefix, s.ID, seen)...)
		if s.CollegeID != "" && !collegeRefs[s.CollegeID] {
			errs = append(errs, fmt.Errorf("%s.college_id: %q not found in colleges", prefix, s.CollegeID))
		}
		if s.SpecialtyID != "" && !specRefs[s.SpecialtyID] {
			errs = append(errs, fmt.Errorf("%s.specialty_id: %q not found in specialties", prefix, s.SpecialtyID))
		}
	}
	return errs
}

func validateEvents(events []Event, collegeRefs map[string]bool) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, e := range events {
		prefix := fmt.Sprintf("events[%d]", i)
		errs = append(errs, claimID(prefix, e.ID, seen)...)
		if !collegeRefs[e.CollegeID] {
			errs = append(errs, fmt.Errorf("%s.college_id: %q not found in colleges", prefix, e.CollegeID))
		}
		if !validEventTypes[e.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, e.Type))
		}
		errs = append(errs, validateDate(prefix+".date", e.Date)...)
	}
	return errs
}

func validateProfessions(profs []Profession, specRefs, collegeRefs map[string]bool) []error {
	var errs []error
	seen := make(map[int]bool)
	for i, p := range profs {
		prefix := fmt.Sprintf("professions[%d]", i)
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %d", prefix, p.ID))
		}
		seen[p.ID] = true
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if p.SalaryFrom > p.SalaryTo {
			errs = append(errs, fmt.Errorf("%s: salary_from (%d) must be <= salary_to (%d)", prefix, p.SalaryFrom, p.SalaryTo))
		}
		for _, id := range p.CollegeIDs {
			if !collegeRefs[id] {
				errs = append(errs, fmt.Errorf("%s.college_ids: %q not found in colleges", prefix, id))
			}
		}
		for _, id := range p.RelatedSpecialtyIDs {
			if !specRefs[id] {
				errs = append(errs, fmt.Errorf("%s.related_specialty_ids: %q not found in specialties", prefix, id))
			}
		}
	}
	return errs
}

func validateQuizzes(quizzes []Quiz) []error {
	var errs []error
	seen := make(map[domain.QuizType]bool)
	for i, q := range quizzes {
		prefix := fmt.Sprintf("quizzes[%d]", i)
		if !domain.ValidQuizTypes[string(q.Type)] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, q.Type))
		} else if seen[q.Type] {
			errs = append(errs, fmt.Errorf("%s.type: duplicate quiz %q", prefix, q.Type))
		}
		seen[q.Type] = true
		if len(q.Questions) == 0 {
			errs = append(errs, fmt.Errorf("%s.questions must not be empty", prefix))
		}
		for j, question := range q.Questions {
			qp := fmt.Sprintf("%s.questions[%d]", prefix, j)
			if question.Text == "" {
				errs = append(errs, fmt.Errorf("%s.text is required", qp))
			}
			if len(question.Options) < 2 {
				errs = append(errs, fmt.Errorf("%s.options needs at least two entries", qp))
			}
		}
	}
	return errs
}

func validateDate(field, value string) []error {
	if value == "" {
		return []error{fmt.Errorf("%s is required", field)}
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value)}
	}
	return nil
}
