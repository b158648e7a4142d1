package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Flyrell/physiotrack/internal/clinic"
	"github.com/Flyrell/physiotrack/internal/store"
)

var athleteAddCmd = LeafCommand{
	Use:   "add EMAIL [NAME]",
	Short: "Register an athlete",
	Args:  cobra.RangeArgs(1, 2),
	StrFlags: []StringFlag{
		{Name: "id", Usage: "profile ID from the identity provider (generated if omitted)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		return withApp(cmd, func(a *app) error {
			return runProfileAdd(cmd, a.clinic, store.RoleAthlete, id, args, terminalPromptKit().Prompt)
		})
	},
}.Build()

var athleteListCmd = LeafCommand{
	Use:   "list",
	Short: "List athletes and their active protocol",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			return runAthleteList(cmd, a.clinic)
		})
	},
}.Build()

var athleteCmd = GroupCommand{
	Use:         "athlete",
	Short:       "Manage athletes",
	Subcommands: []*cobra.Command{athleteAddCmd, athleteListCmd},
}.Build()

// runProfileAdd registers a profile. The name is asked for when it is not
// given and a prompt is available.
func runProfileAdd(cmd *cobra.Command, svc *clinic.Service, role store.Role, id string, args []string, prompt PromptFunc) error {
	email := args[0]
	var name string
	if len(args) > 1 {
		name = args[1]
	}
	if strings.TrimSpace(name) == "" && prompt != nil {
		answer, err := prompt("Nome completo")
		if err != nil {
			return err
		}
		name = answer
	}

	p, err := svc.RegisterProfile(commandContext(cmd), clinic.NewProfile{
		ID:       id,
		Email:    email,
		FullName: name,
		Role:     string(role),
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s '%s' registered (%s)\n", role, Primary(p.FullName), Silent(p.ID))
	return nil
}

func runAthleteList(cmd *cobra.Command, svc *clinic.Service) error {
	ctx := commandContext(cmd)
	w := cmd.OutOrStdout()

	athletes, err := svc.Profiles(ctx, store.RoleAthlete)
	if err != nil {
		return err
	}
	if len(athletes) == 0 {
		_, _ = fmt.Fprintln(w, "No athletes registered.")
		return nil
	}

	for _, a := range athletes {
		current := Silent("no active protocol")
		p, err := svc.ActiveProtocol(ctx, a.ID)
		switch {
		case err == nil:
			current = fmt.Sprintf("%s since %s", Info(p.Title), p.StartDate)
		case !errors.Is(err, store.ErrNoActiveProtocol):
			return err
		}
		_, _ = fmt.Fprintf(w, "%s  %s <%s>  %s\n", Silent(a.ID), Primary(a.FullName), a.Email, current)
	}
	return nil
}
