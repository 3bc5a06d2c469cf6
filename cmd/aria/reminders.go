package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"aria/internal/bootstrap"
)

func newRemindersCmd(e *env) *cobra.Command {
	var dryRun, watch bool
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Evaluate and deliver due reminders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := bootstrap.Options{Alerts: cmd.OutOrStdout()}
			return e.withApp(cmd, opts, func(app *bootstrap.App) error {
				switch {
				case dryRun:
					alerts, err := app.ReminderCLI.Preview(cmd.Context())
					if err != nil {
						return err
					}
					for _, a := range alerts {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", a.Channel, a.Title)
					}
					return nil
				case watch:
					err := app.ReminderCLI.Watch(cmd.Context(), e.cfg.Reminders.Interval)
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				}
				report, err := app.ReminderCLI.RunOnce(cmd.Context())
				if err != nil {
					return err
				}
				for _, key := range report.Failed {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "failed: %s\n", key)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d delivered, %d failed, %d pruned\n", len(report.Delivered), len(report.Failed), report.Pruned)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list due alerts without sending or recording them")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep running on the configured interval")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "watch")
	return cmd
}
