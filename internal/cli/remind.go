package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flyrell/physiotrack/internal/clinic"
)

var remindCmd = LeafCommand{
	Use:   "remind",
	Short: "Push today's exercise reminders (run from cron)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			return runRemind(cmd, a.clinic)
		})
	},
}.Build()

func runRemind(cmd *cobra.Command, svc *clinic.Service) error {
	res, err := svc.SendReminders(commandContext(cmd))
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reminders: %s sent, %s skipped, %s failed\n",
		Success(fmt.Sprint(res.Sent)), Silent(fmt.Sprint(res.Skipped)), Error(fmt.Sprint(res.Failed)))
	if res.Failed > 0 {
		return fmt.Errorf("%d reminder(s) could not be delivered", res.Failed)
	}
	return nil
}
