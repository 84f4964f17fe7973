package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/vocnav/internal/catalog"
)

// InPlanFunc reports whether an id is already in the plan.
type InPlanFunc func(id string) bool

func planMark(in bool) string {
	if in {
		return StyleGreen.Render("★")
	}
	return " "
}

func FormatSpecialties(list []catalog.Specialty, inPlan InPlanFunc) string {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			planMark(inPlan(s.ID)), s.ID, s.Title, string(s.Kind), Score(s.PassingScore), s.Duration,
		})
	}
	return RenderTable([]string{"", "CODE", "TITLE", "KIND", "SCORE", "DURATION"}, rows)
}

func FormatColleges(list []catalog.College, inPlan InPlanFunc) string {
	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{
			planMark(inPlan(c.ID)), c.ID, c.Name, c.City, Score(c.PassingScore),
		})
	}
	return RenderTable([]string{"", "ID", "NAME", "CITY", "SCORE"}, rows)
}

// FormatEvents lists calendar events; collegeName resolves the host.
func FormatEvents(events []catalog.Event, collegeName func(string) string, now time.Time) string {
	if len(events) == 0 {
		return Dim("No upcoming events.") + "\n"
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{EventDate(e.Date, now), EventBadge(e.Type), e.Title, collegeName(e.CollegeID)})
	}
	return RenderTable([]string{"DATE", "TYPE", "EVENT", "COLLEGE"}, rows)
}

func FormatProfessions(list []catalog.Profession) string {
	rows := make([][]string, 0, len(list))
	for i, p := range list {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1), p.Name, p.Sphere, SalaryRange(p.SalaryFrom, p.SalaryTo), TrendBadge(p.Trend),
		})
	}
	return RenderTable([]string{"#", "PROFESSION", "SPHERE", "SALARY", "TREND"}, rows)
}

func FormatNewsList(list []catalog.NewsItem) string {
	var b strings.Builder
	for _, n := range list {
		b.WriteString(fmt.Sprintf("%s  %s\n", Dim(n.Date), Bold(n.Title)))
		b.WriteString("  " + n.Summary + "\n")
		b.WriteString("  " + Dim(n.ID) + "\n\n")
	}
	return b.String()
}
