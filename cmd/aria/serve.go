package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"aria/internal/bootstrap"
	"aria/internal/httpapi"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(e *env) *cobra.Command {
	var addr string
	var noReminders bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run reminders in the background",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = e.cfg.Server.Addr
			}
			return e.withApp(cmd, bootstrap.Options{}, func(app *bootstrap.App) error {
				api := httpapi.New(app.Assistant, app.Planner, app.Reminders, e.logger.Named("http"))
				api.Origins = e.cfg.Server.Origins
				if e.cfg.Server.TokenSecret != "" {
					api.Tokens = httpapi.NewTokenManager(e.cfg.Server.TokenSecret)
				} else {
					e.logger.Warn("serving without authentication", zap.String("addr", addr))
				}
				srv := &http.Server{
					Addr:              addr,
					Handler:           api.Router(),
					ReadHeaderTimeout: 10 * time.Second,
				}
				return serve(cmd.Context(), e.logger, srv, func(ctx context.Context) error {
					if noReminders {
						return nil
					}
					return app.Reminders.RunEvery(ctx, e.cfg.Reminders.Interval)
				})
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to server.addr)")
	cmd.Flags().BoolVar(&noReminders, "no-reminders", false, "do not run the reminder loop")
	return cmd
}

// serve runs srv and background until ctx is cancelled or either fails.
func serve(ctx context.Context, logger *zap.Logger, srv *http.Server, background func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		err := background(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newTokenCmd(e *env) *cobra.Command {
	var subject string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if e.cfg.Server.TokenSecret == "" {
				return errors.New("server.token_secret is not set")
			}
			if subject == "" {
				subject = e.cfg.UserID
			}
			if subject == "" {
				subject = "aria"
			}
			token, err := httpapi.NewTokenManager(e.cfg.Server.TokenSecret).Issue(subject, ttl)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject (defaults to the user id)")
	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "token lifetime, 0 for no expiry")
	return cmd
}
