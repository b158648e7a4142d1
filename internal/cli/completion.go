package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = newCompletionCmd()

func newCompletionCmd() *cobra.Command {
	cmd := LeafCommand{
		Use:   "completion [SHELL]",
		Short: "Print the shell completion script for physiotrack",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := shellFromEnv(os.Getenv("SHELL"))
			if len(args) > 0 {
				shell = args[0]
			}
			if shell == "" {
				return fmt.Errorf("could not detect shell from $SHELL; pass one of: bash, zsh, fish, powershell")
			}
			return runCompletion(cmd, shell)
		},
	}.Build()
	cmd.ValidArgs = completionShells
	return cmd
}

func shellFromEnv(shell string) string {
	switch base := filepath.Base(shell); base {
	case "bash", "zsh", "fish":
		return base
	default:
		return ""
	}
}

func runCompletion(cmd *cobra.Command, shell string) error {
	root := cmd.Root()
	out := cmd.OutOrStdout()

	switch shell {
	case "bash":
		return root.GenBashCompletionV2(out, true)
	case "zsh":
		return root.GenZshCompletion(out)
	case "fish":
		return root.GenFishCompletion(out, true)
	case "powershell":
		return root.GenPowerShellCompletion(out)
	default:
		return fmt.Errorf("unsupported shell: %s (valid: bash, zsh, fish, powershell)", shell)
	}
}
