package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"aria/internal/bootstrap"
	assistantoutadapter "aria/internal/modules/assistant/adapter/out"
	assistantdto "aria/internal/modules/assistant/dto"
	apperrors "aria/internal/platform/errors"
)

func newChatCmd(e *env) *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to Aria (REPL when no --message is given)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := bootstrap.Options{
				Toasts: assistantoutadapter.NewWriterToasts(cmd.ErrOrStderr()),
				Alerts: cmd.ErrOrStderr(),
			}
			return e.withApp(cmd, opts, func(app *bootstrap.App) error {
				if message != "" {
					reply, err := app.AssistantCLI.Send(cmd.Context(), message)
					if err != nil {
						return err
					}
					printReply(cmd.OutOrStdout(), reply)
					return nil
				}
				return repl(cmd, app)
			})
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "send one message and exit")
	return cmd
}

func repl(cmd *cobra.Command, app *bootstrap.App) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	_, _ = fmt.Fprintln(out, "Chatting with Aria. /next shows the next quiz question, /quit leaves.")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		_, _ = fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/next":
			step, err := app.AssistantCLI.NextQuestion(ctx)
			switch {
			case errors.Is(err, apperrors.ErrNoActiveQuiz):
				_, _ = fmt.Fprintln(out, "No quiz running.")
			case err != nil:
				return err
			case step.Finished:
				_, _ = fmt.Fprintln(out, "That was the last question. Send your answers to get graded.")
			default:
				_, _ = fmt.Fprintf(out, "Aria: %s\n", step.Question)
			}
			continue
		}
		reply, err := app.AssistantCLI.Send(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), err)
			continue
		}
		printReply(out, reply)
	}
}

func printReply(w io.Writer, reply assistantdto.Reply) {
	_, _ = fmt.Fprintf(w, "Aria: %s\n", reply.Message)
	if reply.Followup != "" {
		_, _ = fmt.Fprintf(w, "Aria: %s\n", reply.Followup)
	}
}

func newApplyCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <action-json>",
		Short: "Apply an action document directly, e.g. '{\"type\":\"ADD_NOTE\",\"data\":{\"text\":\"hi\"}}'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := []byte(args[0])
			if args[0] == "-" {
				var err error
				if raw, err = io.ReadAll(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			opts := bootstrap.Options{Toasts: assistantoutadapter.NewWriterToasts(cmd.ErrOrStderr()), Alerts: cmd.ErrOrStderr()}
			return e.withApp(cmd, opts, func(app *bootstrap.App) error {
				outcome, err := app.AssistantCLI.ApplyJSON(cmd.Context(), raw)
				if err != nil {
					return err
				}
				return printJSON(cmd, outcome)
			})
		},
	}
}

func newContextCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "context",
		Short: "Print the context snapshot sent with every chat message",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withApp(cmd, bootstrap.Options{}, func(app *bootstrap.App) error {
				snapshot, err := app.AssistantCLI.Context(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, snapshot)
			})
		},
	}
}

func newClearCmd(e *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Erase every stored record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to erase data without --yes")
			}
			return e.withApp(cmd, bootstrap.Options{}, func(app *bootstrap.App) error {
				if err := app.AssistantCLI.Clear(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "all data cleared")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm")
	return cmd
}
