package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/vocnav/internal/cli/formatter"
	"github.com/alexanderramin/vocnav/internal/domain"
)

func newCompareCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "compare A B",
		Short: "Compare two plan items of the same type side by side",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := resolvePlanItem(app.Shell, args[0])
			if err != nil {
				return err
			}
			b, err := resolvePlanItem(app.Shell, args[1])
			if err != nil {
				return err
			}
			left, right, err := app.Shell.CompareItems(a.ID, b.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderComparison(app, left, right))
			return nil
		},
	}
}

// renderComparison lays out two plan items of the same type. Items that
// are not in the catalog fall back to their ids.
func renderComparison(app *App, left, right domain.PlanItem) string {
	cat := app.Shell.Catalog()
	switch left.Type {
	case domain.ItemSpecialty:
		a, okA := cat.Specialty(left.ID)
		b, okB := cat.Specialty(right.ID)
		if okA && okB {
			return formatter.CompareSpecialties(a, b)
		}
	case domain.ItemCollege:
		a, okA := cat.College(left.ID)
		b, okB := cat.College(right.ID)
		if okA && okB {
			return formatter.CompareColleges(a, b)
		}
	}
	return formatter.RenderTable([]string{"", left.ID, right.ID}, nil)
}
