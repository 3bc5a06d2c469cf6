package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aria/internal/platform/config"
)

func newConfigCmd(e *env) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Inspect or create the configuration file"}

	var path string
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default config file",
		Annotations: map[string]string{annotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := path
			if target == "" {
				target = config.GlobalPath()
			}
			if err := config.Write(target, config.DefaultConfig()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", target)
			return nil
		},
	}
	initCmd.Flags().StringVar(&path, "path", "", "where to write (defaults to the user config dir)")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			shown := e.cfg
			if shown.Server.TokenSecret != "" {
				shown.Server.TokenSecret = "***"
			}
			return printJSON(cmd, shown)
		},
	}

	cfgCmd.AddCommand(initCmd, showCmd)
	return cfgCmd
}
