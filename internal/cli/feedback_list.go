package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Flyrell/physiotrack/internal/clinic"
	"github.com/Flyrell/physiotrack/internal/feedback"
)

var feedbackListCmd = LeafCommand{
	Use:   "list",
	Short: "Show an athlete's recent feedback",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "athlete", Usage: "athlete profile ID (default: --as)"},
		{Name: "limit", Usage: "number of entries (default: 14)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		athleteID, err := athleteFlag(cmd)
		if err != nil {
			return err
		}
		limitFlag, _ := cmd.Flags().GetString("limit")

		return withApp(cmd, func(a *app) error {
			return runFeedbackList(cmd, a.clinic, athleteID, limitFlag)
		})
	},
}.Build()

func runFeedbackList(cmd *cobra.Command, svc *clinic.Service, athleteID, limitFlag string) error {
	ctx := commandContext(cmd)
	w := cmd.OutOrStdout()

	limit := clinic.RecentLimit
	if limitFlag != "" {
		n, err := strconv.Atoi(limitFlag)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid --limit value %q (expected a positive number)", limitFlag)
		}
		limit = n
	}

	list, err := svc.RecentFeedback(ctx, athleteID, limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		_, _ = fmt.Fprintln(w, "No feedback recorded yet.")
		return nil
	}

	summary, err := svc.FeedbackSummary(ctx, athleteID)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "%d sessions, média de dor %.1f/10, média de cansaço %.1f/10\n\n",
		summary.Sessions, summary.AvgPain, summary.AvgFatigue)

	_, _ = fmt.Fprintf(w, "%-10s  %-7s  %-7s  %s\n", "Data", "Dor", "Cansaço", "Observações")
	for _, f := range list {
		notes := f.Notes
		if notes == "" {
			notes = "-"
		}
		_, _ = fmt.Fprintf(w, "%-10s  %-7s  %-7s  %s\n", f.Date, feedback.FormatScore(f.PainLevel), feedback.FormatScore(f.FatigueLevel), notes)
	}
	return nil
}
