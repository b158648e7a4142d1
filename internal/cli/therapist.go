package cli

import (
	"github.com/spf13/cobra"

	"github.com/Flyrell/physiotrack/internal/store"
)

var therapistAddCmd = LeafCommand{
	Use:   "add EMAIL [NAME]",
	Short: "Register a therapist",
	Args:  cobra.RangeArgs(1, 2),
	StrFlags: []StringFlag{
		{Name: "id", Usage: "profile ID from the identity provider (generated if omitted)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		return withApp(cmd, func(a *app) error {
			return runProfileAdd(cmd, a.clinic, store.RoleTherapist, id, args, terminalPromptKit().Prompt)
		})
	},
}.Build()

var therapistCmd = GroupCommand{
	Use:         "therapist",
	Short:       "Manage therapists",
	Subcommands: []*cobra.Command{therapistAddCmd},
}.Build()
