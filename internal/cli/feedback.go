package cli

import "github.com/spf13/cobra"

var feedbackCmd = GroupCommand{
	Use:         "feedback",
	Short:       "Log and review daily feedback",
	Subcommands: []*cobra.Command{feedbackLogCmd, feedbackListCmd},
}.Build()
