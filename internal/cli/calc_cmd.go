package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/vocnav/internal/app"
	"github.com/alexanderramin/vocnav/internal/calculator"
	"github.com/alexanderramin/vocnav/internal/cli/formatter"
)

func newCalcCmd(app *App) *cobra.Command {
	var grades map[string]int
	var average float64

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate your grade average and see which colleges are within reach",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := app.Shell
			out := cmd.OutOrStdout()

			if cmd.Flags().Changed("average") {
				res, err := sh.SetAverage(average)
				if err != nil {
					return err
				}
				writeScore(out, app, res)
				return nil
			}

			ids := make([]string, 0, len(grades))
			for id := range grades {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			// The calculator clamps; typed input outside the scale is a mistake.
			for _, id := range ids {
				if g := grades[id]; g < calculator.MinGrade || g > calculator.MaxGrade {
					return fmt.Errorf("%s=%d: %w", id, g, calculator.ErrGradeRange)
				}
			}
			for _, id := range ids {
				if err := sh.SetGrade(id, grades[id]); err != nil {
					return fmt.Errorf("%s: %w", id, err)
				}
			}

			rows := make([][]string, 0)
			for _, s := range sh.Subjects() {
				g := formatter.Dim("-")
				if s.Grade > 0 {
					g = strconv.Itoa(s.Grade)
				}
				rows = append(rows, []string{s.ID, s.Name, g, strconv.FormatFloat(s.Weight, 'g', -1, 64)})
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"ID", "SUBJECT", "GRADE", "WEIGHT"}, rows))
			fmt.Fprintln(out)

			if len(grades) == 0 {
				if res, ok := sh.Score(); ok {
					writeScore(out, app, res)
				}
				return nil
			}
			writeScore(out, app, sh.Calculate())
			return nil
		},
	}
	cmd.Flags().StringToIntVar(&grades, "grade", nil, "Set grades, e.g. --grade math=5,physics=4 (0 clears)")
	cmd.Flags().Float64Var(&average, "average", 0, "Enter your average directly (0-5)")
	return cmd
}

func writeScore(w io.Writer, a *App, res app.ScoreResult) {
	fmt.Fprintf(w, "Average %s · %d of %d colleges within reach\n",
		formatter.Bold(formatter.Score(res.Average)), res.Passable, res.Total)
	for _, c := range a.Shell.Catalog().PassableColleges(res.Average) {
		fmt.Fprintf(w, "  %s %s %s\n", formatter.StyleGreen.Render("✔"), c.Name, formatter.Dim(formatter.Score(c.PassingScore)))
	}
}
