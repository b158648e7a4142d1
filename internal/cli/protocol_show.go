package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Flyrell/physiotrack/internal/clinic"
	"github.com/Flyrell/physiotrack/internal/protocol"
	"github.com/Flyrell/physiotrack/internal/store"
)

// upcomingDays is how far ahead protocol show looks for sessions.
const upcomingDays = 14

var protocolShowCmd = LeafCommand{
	Use:   "show",
	Short: "Show an athlete's active protocol",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "athlete", Usage: "athlete profile ID (default: --as)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		athleteID, err := athleteFlag(cmd)
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *app) error {
			return runProtocolShow(cmd, a.clinic, athleteID)
		})
	},
}.Build()

func runProtocolShow(cmd *cobra.Command, svc *clinic.Service, athleteID string) error {
	w := cmd.OutOrStdout()

	p, err := svc.ActiveProtocol(commandContext(cmd), athleteID)
	if errors.Is(err, store.ErrNoActiveProtocol) {
		_, _ = fmt.Fprintln(w, Warning("Você não tem um treino ativo no momento."))
		return nil
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "%s (%s)\n", Primary(p.Title), Silent(p.ID))
	period := fmt.Sprintf("since %s", p.StartDate)
	if p.EndDate != nil {
		period = fmt.Sprintf("%s to %s", p.StartDate, *p.EndDate)
	}
	_, _ = fmt.Fprintf(w, "  %s, %s\n", period, p.Status)
	if p.Description != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", p.Description)
	}

	today := svc.Today()
	until := today.AddDays(upcomingDays - 1)

	for i, ex := range p.Exercises {
		_, _ = fmt.Fprintf(w, "  %d. %s", i+1, Info(ex.Name))
		if ex.Sets > 0 || ex.Reps > 0 {
			_, _ = fmt.Fprintf(w, "  %d x %d", ex.Sets, ex.Reps)
		}
		if ex.Frequency != "" {
			_, _ = fmt.Fprintf(w, "  %s", Silent(ex.Frequency))
			if f, err := protocol.ParseFrequency(ex.Frequency); err == nil {
				var next []string
				for _, d := range f.Between(p.StartDate, today, until) {
					next = append(next, d.String())
				}
				if len(next) > 0 {
					_, _ = fmt.Fprintf(w, "  next: %s", strings.Join(next, ", "))
				}
			}
		}
		_, _ = fmt.Fprintln(w)
	}

	if p.IsTrainingDay(today) {
		_, _ = fmt.Fprintln(w, Success("Hoje é dia de treino."))
	} else {
		_, _ = fmt.Fprintln(w, Silent("Hoje é dia de descanso."))
	}
	return nil
}
