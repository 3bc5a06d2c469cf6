package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aria/internal/bootstrap"
	"aria/internal/platform/config"
	"aria/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// annotationNoConfig marks commands that run before a config exists.
const annotationNoConfig = "aria/no-config"

// env is filled by the root command before any subcommand runs.
type env struct {
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "aria",
		Short:         "Local-first personal assistant for deadlines, study, wellness and money",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Annotations[annotationNoConfig] != "" {
				return nil
			}
			cfg, err := config.Load(e.configPath)
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Verbose: e.verbose})
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if e.logger != nil {
				_ = e.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&e.configPath, "config", "", "config file (default ~/.aria/config.yaml then ./.aria/config.yaml)")
	root.PersistentFlags().BoolVar(&e.verbose, "verbose", false, "debug logging")

	root.AddCommand(
		newChatCmd(e),
		newApplyCmd(e),
		newContextCmd(e),
		newDeadlinesCmd(e),
		newStatsCmd(e),
		newPeriodCmd(e),
		newLeetcodeCmd(e),
		newRemindersCmd(e),
		newExportCmd(e),
		newOnboardCmd(e),
		newSettingsCmd(e),
		newClearCmd(e),
		newConfigCmd(e),
		newServeCmd(e),
		newTokenCmd(e),
		newTUICmd(e),
	)
	return root
}

func (e *env) open(ctx context.Context, opts bootstrap.Options) (*bootstrap.App, error) {
	return bootstrap.New(ctx, e.cfg, e.logger, opts)
}

// withApp opens the engine, runs fn and always releases the app, including
// background reminder runs started by fn.
func (e *env) withApp(cmd *cobra.Command, opts bootstrap.Options, fn func(*bootstrap.App) error) (err error) {
	app, err := e.open(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(app)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
