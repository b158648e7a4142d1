package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Flyrell/physiotrack/internal/clinic"
)

var profileShowCmd = LeafCommand{
	Use:   "show",
	Short: "Show your profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := currentUser(cmd)
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *app) error {
			return runProfileShow(cmd, a.clinic, userID)
		})
	},
}.Build()

var profileRenameCmd = LeafCommand{
	Use:   "rename [NAME]",
	Short: "Change your full name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := currentUser(cmd)
		if err != nil {
			return err
		}
		name := strings.Join(args, " ")
		return withApp(cmd, func(a *app) error {
			return runProfileRename(cmd, a.clinic, userID, name, terminalPromptKit().Prompt)
		})
	},
}.Build()

var profileCmd = GroupCommand{
	Use:         "profile",
	Short:       "View and edit your profile",
	Subcommands: []*cobra.Command{profileShowCmd, profileRenameCmd},
}.Build()

func runProfileShow(cmd *cobra.Command, svc *clinic.Service, userID string) error {
	p, err := svc.Profile(commandContext(cmd), userID)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "%s (%s)\n", Primary(p.FullName), p.Role)
	_, _ = fmt.Fprintf(w, "  email:   %s\n", p.Email)
	_, _ = fmt.Fprintf(w, "  id:      %s\n", Silent(p.ID))
	_, _ = fmt.Fprintf(w, "  updated: %s\n", p.UpdatedAt.Format("02/01/2006"))
	return nil
}

// runProfileRename asks for the new name when none is given and a prompt is
// available.
func runProfileRename(cmd *cobra.Command, svc *clinic.Service, userID, name string, prompt PromptFunc) error {
	if strings.TrimSpace(name) == "" && prompt != nil {
		answer, err := prompt("Nome completo")
		if err != nil {
			return err
		}
		name = answer
	}

	p, err := svc.UpdateProfile(commandContext(cmd), userID, clinic.ProfileUpdate{FullName: name})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "profile renamed to '%s'\n", Primary(p.FullName))
	return nil
}
