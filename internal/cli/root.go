package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the examplan command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "examplan",
		Short:         "Adaptive study-plan scheduler",
		Long:          "examplan generates an adaptive Learn/Review/Practice study plan from a course's content inventory, an exam date and a weekly hour budget.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(app),
		newWeeklyCmd(app),
		newReviewCmd(app),
		newEntryCmd(app),
		newSeedDemoCmd(app),
	)
	return root
}
