package main

import (
	"github.com/spf13/cobra"

	"aria/internal/bootstrap"
	assistantoutadapter "aria/internal/modules/assistant/adapter/out"
)

func newTUICmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the full-screen chat",
		RunE: func(cmd *cobra.Command, _ []string) error {
			toasts := assistantoutadapter.NewChannelToasts(16)
			return e.withApp(cmd, bootstrap.Options{Toasts: toasts}, func(app *bootstrap.App) error {
				return bootstrap.RunTUI(cmd.Context(), app, toasts)
			})
		},
	}
}
