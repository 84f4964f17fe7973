package formatter

import (
	"strings"

	"github.com/alexanderramin/vocnav/internal/catalog"
)

// CompareSpecialties lays two specialties side by side.
func CompareSpecialties(a, b catalog.Specialty) string {
	rows := [][]string{
		{"Code", a.ID, b.ID},
		{"Kind", string(a.Kind), string(b.Kind)},
		{"Passing score", Score(a.PassingScore), Score(b.PassingScore)},
		{"Duration", a.Duration, b.Duration},
		{"Novice salary", SalaryRange(a.SalaryNovice.From, a.SalaryNovice.To), SalaryRange(b.SalaryNovice.From, b.SalaryNovice.To)},
		{"Experienced salary", SalaryRange(a.SalaryExpert.From, a.SalaryExpert.To), SalaryRange(b.SalaryExpert.From, b.SalaryExpert.To)},
		{"Skills", strings.Join(a.Skills, ", "), strings.Join(b.Skills, ", ")},
	}
	return RenderTable([]string{"", Truncate(a.Title, 30), Truncate(b.Title, 30)}, rows)
}

// CompareColleges lays two colleges side by side.
func CompareColleges(a, b catalog.College) string {
	yn := func(v bool) string {
		if v {
			return StyleGreen.Render("yes")
		}
		return Dim("no")
	}
	rows := [][]string{
		{"City", a.City, b.City},
		{"Passing score", Score(a.PassingScore), Score(b.PassingScore)},
		{"Programmes", strings.Join(a.SpecialtyIDs, ", "), strings.Join(b.SpecialtyIDs, ", ")},
		{"Dormitory", yn(a.Info.Dormitory), yn(b.Info.Dormitory)},
		{"Free meals", yn(a.Info.FreeMeals), yn(b.Info.FreeMeals)},
		{"Accessible", yn(a.Info.Accessible), yn(b.Info.Accessible)},
	}
	return RenderTable([]string{"", Truncate(a.Name, 30), Truncate(b.Name, 30)}, rows)
}
