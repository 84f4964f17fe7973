package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/alexanderramin/vocnav/internal/catalog"
)

// Markdown styles understood by RenderMarkdown.
const (
	MarkdownDark  = "dark"
	MarkdownLight = "light"
	MarkdownPlain = "notty"
)

// RenderMarkdown renders md with the given glamour standard style, wrapped
// at width. On renderer failure the source is returned unchanged.
func RenderMarkdown(md, style string, width int) string {
	if style == "" {
		style = MarkdownPlain
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func bulletList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n", title)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}

// SpecialtyMarkdown is the detail page source for a specialty.
func SpecialtyMarkdown(s catalog.Specialty, colleges []catalog.College) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n`%s` · %s · passing score **%s** · %s\n\n", s.Title, s.ID, s.Kind, Score(s.PassingScore), s.Duration)
	b.WriteString(strings.TrimSpace(s.FullDescription))
	if s.FullDescription == "" {
		b.WriteString(s.Description)
	}
	b.WriteString("\n")
	if s.DayInLife != "" {
		fmt.Fprintf(&b, "\n### A day at work\n\n%s\n", strings.TrimSpace(s.DayInLife))
	}
	fmt.Fprintf(&b, "\n### Salary\n\n- Novice: %s\n- Experienced: %s\n",
		SalaryRange(s.SalaryNovice.From, s.SalaryNovice.To), SalaryRange(s.SalaryExpert.From, s.SalaryExpert.To))
	bulletList(&b, "Skills", s.Skills)
	bulletList(&b, "Pros", s.Pros)
	bulletList(&b, "Cons", s.Cons)
	if len(colleges) > 0 {
		names := make([]string, len(colleges))
		for i, c := range colleges {
			names[i] = fmt.Sprintf("%s (%s)", c.Name, Score(c.PassingScore))
		}
		bulletList(&b, "Where to study", names)
	}
	return b.String()
}

// CollegeMarkdown is the detail page source for a college.
func CollegeMarkdown(c catalog.College, specialties []catalog.Specialty) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s · passing score **%s**\n\n%s\n", c.Name, c.City, Score(c.PassingScore), strings.TrimSpace(c.Description))

	var facts []string
	flag := func(ok bool, label string) {
		if ok {
			facts = append(facts, label)
		}
	}
	flag(c.Info.Dormitory, "Dormitory")
	flag(c.Info.FreeMeals, "Free meals")
	flag(c.Info.Accessible, "Accessible campus")
	flag(c.Info.Library, "Library")
	flag(c.Info.Sports, "Sports facilities")
	bulletList(&b, "Campus", facts)
	bulletList(&b, "Forms of study", c.EducationForms)

	titles := make([]string, len(specialties))
	for i, s := range specialties {
		titles[i] = fmt.Sprintf("%s `%s`", s.Title, s.ID)
	}
	bulletList(&b, "Programmes", titles)

	var contacts []string
	add := func(label, v string) {
		if v != "" {
			contacts = append(contacts, label+": "+v)
		}
	}
	add("Phone", c.Contacts.Phone)
	add("Email", c.Contacts.Email)
	add("Website", c.Contacts.Website)
	add("Address", c.Contacts.Address)
	bulletList(&b, "Contacts", contacts)
	return b.String()
}

// NewsMarkdown is the detail page source for a news item.
func NewsMarkdown(n catalog.NewsItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n*%s*", n.Title, n.Date)
	if len(n.Tags) > 0 {
		b.WriteString(" · " + strings.Join(n.Tags, ", "))
	}
	b.WriteString("\n\n" + strings.TrimSpace(n.Content) + "\n")
	return b.String()
}
