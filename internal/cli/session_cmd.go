package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and sync your plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Sessions == nil {
				return fmt.Errorf("sessions are not configured")
			}
			if err := app.Sessions.SignIn(user); err != nil {
				return err
			}
			app.Shell.SignIn(commandContext(cmd), user)
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s · %d items in your plan\n", user, len(app.Shell.Plan()))
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "User id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out; the local plan is cleared",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Sessions == nil {
				return fmt.Errorf("sessions are not configured")
			}
			if err := app.Sessions.SignOut(); err != nil {
				return err
			}
			app.Shell.SignIn(commandContext(cmd), "")
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if u := app.Shell.CurrentUser(); u != "" {
				fmt.Fprintln(cmd.OutOrStdout(), u)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
			return nil
		},
	}
}

// newSyncCmd reports the plan after the session has been delivered. The
// first session delivered in a process runs the full sync, and the
// post-run hook flushes queued mirrors.
func newSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Synchronise the plan with your account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user := app.Shell.CurrentUser()
			if user == "" {
				return fmt.Errorf("not signed in: run \"vocnav login --user ID\" first")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan for %s: %d items\n", user, len(app.Shell.Plan()))
			return nil
		},
	}
}
