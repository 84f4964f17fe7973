package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderramin/vocnav/internal/app"
	"github.com/alexanderramin/vocnav/internal/auth"
	"github.com/alexanderramin/vocnav/internal/cli/formatter"
	"github.com/alexanderramin/vocnav/internal/domain"
	"github.com/alexanderramin/vocnav/internal/logging"
)

// flushTimeout bounds how long a one-shot command waits for remote mirrors.
const flushTimeout = 10 * time.Second

// App holds everything CLI commands and the TUI act on.
type App struct {
	Shell    *app.Shell
	Sessions SessionManager

	// Provider streams session changes to the TUI. Optional.
	Provider auth.Provider

	Logger *zap.Logger

	// IsInteractive reports whether stdin is a terminal. The bare command
	// opens the TUI only when it does.
	IsInteractive func() bool

	// Bell receives the terminal bell on unlocks. Defaults to stderr.
	Bell io.Writer
	Now  func() time.Time

	unlocked    []domain.Achievement
	stopUnlocks func()
}

func (a *App) logger() *zap.Logger { return logging.OrNop(a.Logger) }

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) bell() io.Writer {
	if a.Bell != nil {
		return a.Bell
	}
	return os.Stderr
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// markdownStyle picks the glamour style: plain when output is not a
// terminal, otherwise the stored theme.
func (a *App) markdownStyle() string {
	if !a.interactive() {
		return formatter.MarkdownPlain
	}
	return themeStyle(a.Shell.Theme())
}

// NewRootCmd creates the top-level "vocnav" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "vocnav",
		Short:         "Navigator for vocational education: specialties, colleges and your admission plan",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return RunTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := commandContext(cmd)
			if app.Sessions != nil {
				app.Shell.SignIn(ctx, app.Sessions.Current())
			}
			if cmd.HasParent() {
				app.collectUnlocks()
			}
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			defer app.releaseUnlocks()
			for _, a := range app.unlocked {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Toast(a))
			}
			ctx, cancel := context.WithTimeout(commandContext(cmd), flushTimeout)
			defer cancel()
			if err := app.Shell.Flush(ctx); err != nil {
				app.logger().Warn("remote mirrors still pending", zap.Error(err))
			}
			return nil
		},
	}

	root.AddCommand(
		newPlanCmd(app),
		newCompareCmd(app),
		newCatalogCmd(app),
		newAchievementsCmd(app),
		newThemeCmd(app),
		newSettingsCmd(app),
		newCalcCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newSyncCmd(app),
		newResetCmd(app),
	)
	return root
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// collectUnlocks records achievements unlocked while a command runs so
// they can be announced after its output.
func (a *App) collectUnlocks() {
	a.releaseUnlocks()
	a.unlocked = nil
	a.stopUnlocks = a.Shell.OnUnlock(func(ach domain.Achievement) {
		a.unlocked = append(a.unlocked, ach)
	})
}

func (a *App) releaseUnlocks() {
	if a.stopUnlocks != nil {
		a.stopUnlocks()
		a.stopUnlocks = nil
	}
}
