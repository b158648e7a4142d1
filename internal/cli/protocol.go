package cli

import "github.com/spf13/cobra"

var protocolCmd = GroupCommand{
	Use:         "protocol",
	Short:       "Manage exercise protocols",
	Subcommands: []*cobra.Command{protocolCreateCmd, protocolShowCmd, protocolFinishCmd},
}.Build()
