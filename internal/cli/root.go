package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "physiotrack",
	Short:        "Track physiotherapy protocols, daily feedback and adherence",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: $HOME/.physiotrack/physiotrack.yaml)")
	rootCmd.PersistentFlags().String("as", "", "profile ID to act as")

	rootCmd.AddCommand(athleteCmd)
	rootCmd.AddCommand(therapistCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(protocolCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
