package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/vocnav/internal/cli/formatter"
	"github.com/alexanderramin/vocnav/internal/domain"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage your admission plan",
	}
	cmd.AddCommand(
		newPlanListCmd(app),
		newPlanAddCmd(app),
		newPlanRemoveCmd(app),
		newPlanCheckCmd(app),
		newPlanProgressCmd(app),
	)
	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List plan items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := app.Shell
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(sh.Plan(), sh.Catalog().Title, sh.CompareSelection()))
			return nil
		},
	}
}

func newPlanAddCmd(app *App) *cobra.Command {
	var itemType string

	cmd := &cobra.Command{
		Use:   "add ID",
		Short: "Add a specialty or college to the plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			var added bool
			if itemType != "" {
				if !domain.ValidItemTypes[itemType] {
					return fmt.Errorf("invalid --type %q (use specialty or college)", itemType)
				}
				added = app.Shell.AddToPlan(id, domain.ItemType(itemType))
			} else {
				var err error
				if added, err = app.Shell.AddCatalogItem(id); err != nil {
					return fmt.Errorf("%s: %w (pass --type to add an item outside the catalog)", id, err)
				}
			}

			out := cmd.OutOrStdout()
			if !added {
				fmt.Fprintf(out, "%s is already in your plan\n", id)
				return nil
			}
			item, _ := app.Shell.PlanItem(id)
			fmt.Fprintf(out, "Added %s %s\n\n", formatter.ItemTypeBadge(item.Type), app.Shell.Catalog().Title(id))
			fmt.Fprint(out, formatter.FormatChecklist(item, app.Shell.Catalog().Title(id)))
			return nil
		},
	}
	cmd.Flags().StringVar(&itemType, "type", "", "Item type (specialty|college); inferred from the catalog when omitted")
	return cmd
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID|#",
		Aliases: []string{"rm"},
		Short:   "Remove an item from the plan",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := resolvePlanItem(app.Shell, args[0])
			if err != nil {
				return err
			}
			app.Shell.RemoveFromPlan(item.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", app.Shell.Catalog().Title(item.ID))
			return nil
		},
	}
}

func newPlanCheckCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "check ITEM ENTRY",
		Short: "Mark a checklist entry done (by id or number)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := resolvePlanItem(app.Shell, args[0])
			if err != nil {
				return err
			}
			entry, err := resolveChecklistEntry(item, args[1])
			if err != nil {
				return err
			}
			app.Shell.UpdateChecklistItem(item.ID, entry.ID, !undo)

			updated, _ := app.Shell.PlanItem(item.ID)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatChecklist(updated, app.Shell.Catalog().Title(item.ID)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the entry as not done")
	return cmd
}

func newPlanProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress [ITEM]",
		Short: "Show checklist progress for one item or the whole plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cat := app.Shell.Catalog()
			if len(args) == 1 {
				item, err := resolvePlanItem(app.Shell, args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatChecklist(item, cat.Title(item.ID)))
				return nil
			}

			items := app.Shell.Plan()
			for _, it := range items {
				done, total := it.Progress()
				fmt.Fprintf(out, "%-40s %s\n", formatter.Truncate(cat.Title(it.ID), 40), formatter.Fraction(done, total))
			}
			fmt.Fprintln(out, "Overall "+formatter.ProgressBar(domain.PlanProgress(items), 20))
			return nil
		},
	}
}
