package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bioq/internal/bootstrap"
	"bioq/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataPath string

	root := &cobra.Command{
		Use:           "bioq",
		Short:         "Biology quiz trainer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataPath, "data", ".", "data directory")

	root.AddCommand(newTUICmd(&dataPath))
	root.AddCommand(newBankCmd(&dataPath))
	root.AddCommand(newWeeklyCmd(&dataPath))
	root.AddCommand(newAttemptsCmd(&dataPath))
	root.AddCommand(newLeaderboardCmd(&dataPath))
	root.AddCommand(newProfileCmd(&dataPath))
	return root
}

func loadApp(dataPath string) (*bootstrap.App, error) {
	cfg, err := config.New(dataPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run bioq terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newBankCmd(dataPath *string) *cobra.Command {
	bank := &cobra.Command{Use: "bank", Short: "Question bank operations"}

	bank.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the local question pack",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			out, err := app.BankCLI.Validate(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "questions=%d categories=%d hard=%d medium=%d easy=%d\n",
				out.QuestionCount, out.Categories, out.Hard, out.Medium, out.Easy)
			return nil
		},
	})

	var category string
	list := &cobra.Command{
		Use:   "list",
		Short: "List questions in the local pack",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			questions, err := app.BankCLI.Questions(context.Background())
			if err != nil {
				return err
			}
			shown := 0
			for _, q := range questions {
				if category != "" && q.Category != category {
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", q.ID, q.Category, q.Difficulty, q.Prompt)
				shown++
			}
			if shown == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no questions")
			}
			return nil
		},
	}
	list.Flags().StringVar(&category, "category", "", "filter by category")
	bank.AddCommand(list)

	fetch := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download a question pack and replace the local one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			out, err := app.BankCLI.Fetch(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "fetched %d questions to %s\n", out.QuestionCount, out.Path)
			return nil
		},
	}
	bank.AddCommand(fetch)

	return bank
}

func newWeeklyCmd(dataPath *string) *cobra.Command {
	weekly := &cobra.Command{Use: "weekly", Short: "Weekly challenge commands"}

	weekly.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show today's weekly challenge progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			out, err := app.QuizCLI.Status(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "date=%s week=%s\n", out.Date, out.WeekID)
			switch {
			case out.Played:
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "already played today")
			case out.Exists:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "in progress: %d/%d answered, score=%d, at question %d\n",
					out.Answered, out.Total, out.Score, out.CurrentIndex+1)
			default:
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not started")
			}
			return nil
		},
	})

	return weekly
}

func newAttemptsCmd(dataPath *string) *cobra.Command {
	attempts := &cobra.Command{Use: "attempts", Short: "Recorded attempt commands"}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded attempts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			out, err := app.AttemptCLI.List(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(out) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no attempts recorded")
				return nil
			}
			for _, a := range out {
				sync := "synced"
				if !a.Synced {
					sync = "pending"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d/%d\t%.1fs\t%s\n",
					a.Date, a.WeekID, a.Score, a.QuestionCount, float64(a.TotalElapsedMs)/1000, sync)
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 30, "max attempts to show")
	attempts.AddCommand(list)

	attempts.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Submit attempts that have not reached the server yet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			out, err := app.AttemptCLI.Sync(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "submitted=%d duplicate=%d failed=%d\n",
				out.Submitted, out.Duplicate, out.Failed)
			return nil
		},
	})

	return attempts
}

func newLeaderboardCmd(dataPath *string) *cobra.Command {
	var weekID string
	leaderboard := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard for a week",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			week := weekID
			if week == "" {
				out, err := app.QuizCLI.Status(context.Background())
				if err != nil {
					return err
				}
				week = out.WeekID
			}
			standings, err := app.AttemptCLI.Standings(context.Background(), week)
			if err != nil {
				return err
			}
			if len(standings) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no attempts for week %s\n", week)
				return nil
			}
			for _, s := range standings {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d/%d\t%.1fs\n",
					s.Rank, s.Identity, s.Score, s.QuestionCount, float64(s.TotalElapsedMs)/1000)
			}
			return nil
		},
	}
	leaderboard.Flags().StringVar(&weekID, "week", "", "ISO week, e.g. 2026-W35 (defaults to current)")
	return leaderboard
}

func newProfileCmd(dataPath *string) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Player identity commands"}

	profile.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the local player identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			out, err := app.AttemptCLI.Profile(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "device=%s linked=%t", out.DeviceID, out.Linked)
			if out.UserID != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " user=%s", out.UserID)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	})

	var token string
	link := &cobra.Command{
		Use:   "link --token <token>",
		Short: "Link this device to a server account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(token) == "" {
				return fmt.Errorf("--token is required")
			}
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			out, err := app.AttemptCLI.Link(context.Background(), token)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "linked device %s to user %s\n", out.DeviceID, out.UserID)
			return nil
		},
	}
	link.Flags().StringVar(&token, "token", "", "account token")
	profile.AddCommand(link)

	return profile
}
