package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mathieuvidal/examplan/internal/contract"
	"github.com/mathieuvidal/examplan/internal/domain"
)

func newGenerateCmd(app *App) *cobra.Command {
	var (
		userID   string
		courseID string
		examDate string
		hours    int
		rating   string
		days     []int
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate (or regenerate) a study plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.GeneratePlanRequest{
				UserID:            userID,
				CourseID:          courseID,
				ExamDate:          examDate,
				StudyHoursPerWeek: hours,
				SelfRating:        strings.ToUpper(rating),
				PreferredDays:     days,
			}

			if dryRun {
				v, err := app.Plans.Validate(cmd.Context(), req)
				if err != nil {
					return err
				}
				printWarnings(cmd, v.Warnings)
				fmt.Fprintf(cmd.OutOrStdout(), "valid: %v, omit learn phase: %v, hours used: %d\n",
					v.Valid, v.OmitPhase1, v.AdjustedHours)
				return nil
			}

			res, err := app.Plans.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			printWarnings(cmd, res.Validation.Warnings)
			fmt.Fprintf(cmd.OutOrStdout(),
				"generated %d entries over %d week(s): %d learn, %d review, %d practice\n",
				res.EntryCount, res.TotalWeeks, res.LearnBlocks, res.ReviewBlocks, res.PracticeBlocks)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user ID")
	cmd.Flags().StringVar(&courseID, "course", "", "course ID")
	cmd.Flags().StringVar(&examDate, "exam-date", "", "exam date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&hours, "hours", 10, "study hours per week")
	cmd.Flags().StringVar(&rating, "rating", "NOVICE", "self rating: NOVICE, INTERMEDIATE or RETAKER")
	cmd.Flags().IntSliceVar(&days, "days", []int{1, 2, 3, 4, 5}, "preferred study days (0=Sunday..6=Saturday)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate only, do not generate or store anything")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("exam-date")
	return cmd
}

func newWeeklyCmd(app *App) *cobra.Command {
	var userID, courseID string

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Show the stored plan as weekly tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Weekly.WeeklyPlan(cmd.Context(), contract.WeeklyPlanRequest{
				UserID: userID, CourseID: courseID,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, w := range resp.Weeks {
				fmt.Fprintf(out, "Week %d (%s to %s) [%s] %d/%d done\n",
					w.Number,
					w.StartDate.Format("2006-01-02"),
					w.EndDate.Format("2006-01-02"),
					w.Phase, w.DoneCount, w.TaskCount)
				for _, task := range w.Tasks {
					fmt.Fprintf(out, "  %s %s (%d/%d)\n",
						statusMark(task.Status), task.Label, task.DoneCount, task.TotalCount)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user ID")
	cmd.Flags().StringVar(&courseID, "course", "", "course ID")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("course")
	return cmd
}

func newReviewCmd(app *App) *cobra.Command {
	var (
		userID   string
		courseID string
		kind     string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Resolve the next review items for a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NextItemsRequest{UserID: userID, CourseID: courseID, Limit: limit}
			var (
				resp *contract.NextItemsResponse
				err  error
			)
			if kind == "activities" {
				resp, err = app.Review.NextActivities(cmd.Context(), req)
			} else {
				resp, err = app.Review.NextFlashcards(cmd.Context(), req)
			}
			if err != nil {
				return err
			}
			for _, id := range resp.ItemIDs {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user ID")
	cmd.Flags().StringVar(&courseID, "course", "", "course ID")
	cmd.Flags().StringVar(&kind, "kind", "flashcards", "item kind: flashcards or activities")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of items to return")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("course")
	return cmd
}

func newEntryCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "entry <entry-id>",
		Short: "Update a plan entry's completion status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Entries.SetStatus(cmd.Context(), args[0], domain.EntryStatus(strings.ToUpper(status)))
		},
	}

	cmd.Flags().StringVar(&status, "status", "COMPLETED", "new status: PENDING, IN_PROGRESS or COMPLETED")
	return cmd
}

func newSeedDemoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-demo",
		Short: "Seed a small demo course into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.SeedFn == nil {
				return fmt.Errorf("seeding is not available")
			}
			if err := app.SeedFn(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seeded demo course 'demo'")
			return nil
		},
	}
}

func printWarnings(cmd *cobra.Command, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	errOut := cmd.ErrOrStderr()
	decorate := isatty.IsTerminal(os.Stderr.Fd())
	for _, w := range warnings {
		if decorate {
			fmt.Fprintf(errOut, "\033[33mwarning:\033[0m %s\n", w)
		} else {
			fmt.Fprintf(errOut, "warning: %s\n", w)
		}
	}
}

func statusMark(s domain.EntryStatus) string {
	switch s {
	case domain.StatusCompleted:
		return "[x]"
	case domain.StatusInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}
