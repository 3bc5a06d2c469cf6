package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"aria/internal/bootstrap"
	plannerdto "aria/internal/modules/planner/dto"
)

func newDeadlinesCmd(e *env) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "deadlines",
		Short: "List deadlines sorted by due date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withApp(cmd, bootstrap.Options{}, func(app *bootstrap.App) error {
				deadlines, err := app.PlannerCLI.Deadlines(cmd.Context(), all)
				if err != nil {
					return err
				}
				if len(deadlines) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no deadlines")
					return nil
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				_, _ = fmt.Fprintln(tw, "ID\tTITLE\tSUBJECT\tDUE\tSTATUS\tURGENCY")
				for _, d := range deadlines {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", d.ID, d.Title, d.Subject, d.DueDate, d.Status, d.Urgency)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include completed deadlines")
	return cmd
}

func newStatsCmd(e *env) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Derived metrics"}
	stats.AddCommand(
		&cobra.Command{
			Use:   "gym",
			Short: "Gym streaks and this week's visits",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return e.withApp(cmd, bootstrap.Options{}, func(app *bootstrap.App) error {
					s, err := app.WellnessCLI.GymStats(cmd.Context())
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "current streak: %d\nbest streak:    %d\nthis week:      %d\n", s.CurrentStreak, s.BestStreak, s.ThisWeek)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "cycle",
			Short: "Cycle prediction",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return e.withApp(cmd, bootstrap.Options{}, func(app *bootstrap.App) error {
					c, err := app.WellnessCLI.Cycle(cmd.Context())
					if err != nil {
						return err
					}
					if !c.Known {
						_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no cycle data yet")
						return nil
					}
					return printJSON(cmd, c)
				})
			},
		},
		&cobra.Command{
			Use:   "finance",
			Short: "Balance, recent transactions and pending Splitwise items",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return e.withApp(cmd, bootstrap.Options{}, func(app *bootstrap.App) error {
					st, err := app.FinanceCLI.Summary(cmd.Context())
					if err != nil {
						return err
					}
					pending, err := app.FinanceCLI.Pending(cmd.Context())
					if err != nil {
						return err
					}
					out := cmd.OutOrStdout()
					_, _ = fmt.Fprintf(out, "balance: $%.2f\n", st.Balance)
					for i, tx := range st.Transactions {
						if i == 5 {
							break
						}
						sign := "-"
						if tx.Type == "income" {
							sign = "+"
						}
						_, _ = fmt.Fprintf(out, "  %s %s$%.2f %s\n", tx.Date, sign, tx.Amount, tx.Description)
					}
					for _, item := range pending {
						_, _ = fmt.Fprintf(out, "  splitwise: $%.2f %s\n", item.Amount, item.Description)
					}
					return nil
				})
			},
		},
	)
	return stats
}

func newPeriodCmd(e *env) *cobra.Command {
	period := &cobra.Command{Use: "period", Short: "Cycle history"}
	period.AddCommand(
		&cobra.Command{
			Use:   "log",
			Short: "List recorded cycles",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return e.withApp(cmd, bootstrap.Options{}, func(app *bootstrap.App) error {
					entries, err := app.WellnessCLI.PeriodLog(cmd.Context())
					if err != nil {
						return err
					}
					return printJSON(cmd, entries)
				})
			},
		},
		&cobra.Command{
			Use:   "add <YYYY-MM-DD>",
			Short: "Record a past cycle start",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return e.withApp(cmd, bootstrap.Options{}, func(app *bootstrap.App) error {
					out, err := app.WellnessCLI.AddHistoricalPeriod(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					if !out.Added {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is already recorded\n", out.Entry.StartDate)
						return nil
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recorded %s\n", out.Entry.StartDate)
					return nil
				})
			},
		},
	)
	return period
}

func newLeetcodeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "leetcode [username]",
		Short: "LeetCode solve counts and a short analysis",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := ""
			if len(args) == 1 {
				username = args[0]
			}
			return e.withApp(cmd, bootstrap.Options{}, func(app *bootstrap.App) error {
				s, err := app.LeetcodeCLI.Stats(cmd.Context(), username)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "%s: %d solved\n", s.Username, s.Solved)
				_, _ = fmt.Fprintf(out, "  easy   %d/%d (%d%%)\n", s.Easy.Solved, s.Easy.Total, s.Easy.Pct)
				_, _ = fmt.Fprintf(out, "  medium %d/%d (%d%%)\n", s.Medium.Solved, s.Medium.Total, s.Medium.Pct)
				_, _ = fmt.Fprintf(out, "  hard   %d/%d (%d%%)\n", s.Hard.Solved, s.Hard.Total, s.Hard.Pct)
				_, _ = fmt.Fprintln(out, s.Analysis)
				return nil
			})
		},
	}
}

func newExportCmd(e *env) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write deadlines, progress, topics and notes as markdown files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withApp(cmd, bootstrap.Options{}, func(app *bootstrap.App) error {
				out, err := app.PlannerCLI.Export(cmd.Context(), dir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d files to %s\n", len(out.Files), out.Dir)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "aria-export", "target directory")
	return cmd
}

func newOnboardCmd(e *env) *cobra.Command {
	var name, leetcode string
	var subjects []string
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Set up your profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withApp(cmd, bootstrap.Options{}, func(app *bootstrap.App) error {
				p, err := app.PlannerCLI.Onboard(cmd.Context(), name, leetcode, subjects)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "welcome, %s (%s)\n", p.Name, strings.Join(p.Subjects, ", "))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "your name (required)")
	cmd.Flags().StringVar(&leetcode, "leetcode", "", "LeetCode username")
	cmd.Flags().StringSliceVar(&subjects, "subjects", nil, "subjects you are studying")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newSettingsCmd(e *env) *cobra.Command {
	var in plannerdto.SettingsInput
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Update name, LeetCode username and email alert settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withApp(cmd, bootstrap.Options{}, func(app *bootstrap.App) error {
				p, err := app.PlannerCLI.SaveSettings(cmd.Context(), in)
				if err != nil {
					return err
				}
				return printJSON(cmd, p)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "display name (unchanged when empty)")
	f.StringVar(&in.LeetcodeUsername, "leetcode", "", "LeetCode username")
	f.StringVar(&in.Email.PubKey, "email-public-key", "", "EmailJS public key")
	f.StringVar(&in.Email.ServiceID, "email-service", "", "EmailJS service id")
	f.StringVar(&in.Email.TemplateID, "email-template", "", "EmailJS template id")
	f.StringVar(&in.Email.ToEmail, "email-to", "", "address for email alerts")
	return cmd
}
