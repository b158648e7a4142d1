package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flyrell/physiotrack/internal/clinic"
)

var protocolFinishCmd = LeafCommand{
	Use:   "finish PROTOCOL_ID",
	Short: "Mark a protocol completed",
	Args:  cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		therapistID, err := currentUser(cmd)
		if err != nil {
			return err
		}
		yesFlag, _ := cmd.Flags().GetBool("yes")

		var confirm ConfirmFunc
		if yesFlag {
			confirm = AlwaysYes()
		} else {
			confirm = terminalPromptKit().Confirm
		}

		return withApp(cmd, func(a *app) error {
			return runProtocolFinish(cmd, a.clinic, therapistID, args[0], confirm)
		})
	},
}.Build()

// runProtocolFinish completes a protocol. Without a way to confirm the
// command refuses rather than finishing silently.
func runProtocolFinish(cmd *cobra.Command, svc *clinic.Service, therapistID, id string, confirm ConfirmFunc) error {
	ctx := commandContext(cmd)
	w := cmd.OutOrStdout()

	p, err := svc.Protocol(ctx, id)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "  protocol: %s\n", Primary(p.Title))
	_, _ = fmt.Fprintf(w, "  athlete:  %s\n", Primary(p.AthleteID))
	_, _ = fmt.Fprintf(w, "  status:   %s\n", p.Status)

	if confirm == nil {
		return fmt.Errorf("refusing to finish protocol '%s' without confirmation (use --yes)", id)
	}
	ok, err := confirm("Finalizar este protocolo?")
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(w, "cancelled")
		return nil
	}

	if err := svc.FinishProtocol(ctx, therapistID, id); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "protocol %s finished\n", Silent(id))
	return nil
}
