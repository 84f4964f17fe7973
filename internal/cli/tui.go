package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/alexanderramin/vocnav/internal/domain"
)

// RunTUI launches the full-screen interface. Session changes from the
// provider are applied in the background while it runs; plan changes and
// unlocks from those syncs wake the program so they render.
func RunTUI(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newAppModel(app)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	wake := func() { go p.Send(wakeMsg{}) }
	stopPlan := app.Shell.OnPlanChange(func([]domain.PlanItem) { wake() })
	stopUnlock := app.Shell.OnUnlock(func(domain.Achievement) { wake() })
	defer stopPlan()
	defer stopUnlock()

	done := make(chan struct{})
	if app.Provider != nil {
		go func() {
			defer close(done)
			if err := app.Shell.Run(ctx, app.Provider); err != nil && !errors.Is(err, context.Canceled) {
				app.logger().Warn("session listener stopped", zap.Error(err))
			}
		}()
	} else {
		close(done)
	}

	_, err := p.Run()
	cancel()
	<-done
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
