package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/vocnav/internal/catalog"
	"github.com/alexanderramin/vocnav/internal/cli/formatter"
	"github.com/alexanderramin/vocnav/internal/domain"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "catalog",
		Aliases: []string{"cat"},
		Short:   "Browse specialties, colleges, news and events",
	}
	cmd.AddCommand(
		newCatalogSpecialtiesCmd(app),
		newCatalogCollegesCmd(app),
		newCatalogShowCmd(app),
		newCatalogNewsCmd(app),
		newCatalogEventsCmd(app),
		newCatalogTopCmd(app),
	)
	return cmd
}

func newCatalogSpecialtiesCmd(app *App) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "specialties",
		Short: "List specialties and worker professions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []catalog.Specialty
			for _, s := range app.Shell.Catalog().Specialties {
				if kind == "" || string(s.Kind) == kind {
					list = append(list, s)
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSpecialties(list, app.Shell.InPlan))
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Only this kind (profession|specialty)")
	return cmd
}

func newCatalogCollegesCmd(app *App) *cobra.Command {
	var passable bool

	cmd := &cobra.Command{
		Use:   "colleges",
		Short: "List colleges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := app.Shell.Catalog()
			list := cat.Colleges
			if passable {
				score, ok := app.Shell.Score()
				if !ok {
					return fmt.Errorf("no average yet: run \"vocnav calc\" first")
				}
				list = cat.PassableColleges(score.Average)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatColleges(list, app.Shell.InPlan))
			return nil
		},
	}
	cmd.Flags().BoolVar(&passable, "passable", false, "Only colleges within reach of your average")
	return cmd
}

// newCatalogShowCmd opens a specialty or college page. Opening a college
// counts as viewing it.
func newCatalogShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a specialty or college in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := app.Shell.Catalog()
			id := args[0]
			var md string
			switch t, _ := cat.ItemType(id); t {
			case domain.ItemSpecialty:
				s, _ := cat.Specialty(id)
				md = formatter.SpecialtyMarkdown(s, cat.CollegesFor(id))
				app.Shell.NavigateTo(domain.ProfessionDetailView{ID: id})
			case domain.ItemCollege:
				c, _ := cat.College(id)
				md = formatter.CollegeMarkdown(c, specialtiesOf(cat, c))
				app.Shell.NavigateTo(domain.CollegeDetailView{ID: id})
			default:
				return fmt.Errorf("%s: not in the catalog", id)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderMarkdown(md, app.markdownStyle(), 80))
			return nil
		},
	}
}

func specialtiesOf(cat *catalog.Catalog, c catalog.College) []catalog.Specialty {
	out := make([]catalog.Specialty, 0, len(c.SpecialtyIDs))
	for _, id := range c.SpecialtyIDs {
		if s, ok := cat.Specialty(id); ok {
			out = append(out, s)
		}
	}
	return out
}

func newCatalogNewsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "news [ID]",
		Short: "List news or read one article",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := app.Shell.Catalog()
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprint(out, formatter.FormatNewsList(cat.News))
				return nil
			}
			n, ok := cat.NewsByID(args[0])
			if !ok {
				return fmt.Errorf("news %q not found", args[0])
			}
			fmt.Fprint(out, formatter.RenderMarkdown(formatter.NewsMarkdown(n), app.markdownStyle(), 80))
			return nil
		},
	}
}

func newCatalogEventsCmd(app *App) *cobra.Command {
	var planOnly bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the admission calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events := calendarEvents(app, planOnly)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEvents(events, collegeName(app.Shell.Catalog()), app.now()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&planOnly, "plan", false, "Only events of colleges in your plan")
	return cmd
}

// calendarEvents returns every event, or only those hosted by colleges in
// the plan.
func calendarEvents(app *App, planOnly bool) []catalog.Event {
	cat := app.Shell.Catalog()
	if !planOnly {
		return cat.EventsFor()
	}
	var ids []string
	for _, it := range app.Shell.Plan() {
		if it.Type == domain.ItemCollege {
			ids = append(ids, it.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return cat.EventsFor(ids...)
}

func collegeName(cat *catalog.Catalog) func(string) string {
	return func(id string) string {
		if c, ok := cat.College(id); ok {
			return c.Name
		}
		return id
	}
}

func newCatalogTopCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Most demanded professions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := app.Shell.Catalog().TopProfessions()
			if limit > 0 && len(list) > limit {
				list = list[:limit]
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfessions(list))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of professions")
	return cmd
}
