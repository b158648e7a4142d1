package cli

import (
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Flyrell/physiotrack/internal/adherence"
	"github.com/Flyrell/physiotrack/internal/clinic"
)

var calendarCmd = LeafCommand{
	Use:   "calendar",
	Short: "Show an athlete's yearly adherence calendar",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "athlete", Usage: "athlete profile ID (default: --as)"},
		{Name: "year", Usage: "year to show (default: current year)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		athleteID, err := athleteFlag(cmd)
		if err != nil {
			return err
		}
		yearFlag, _ := cmd.Flags().GetString("year")

		return withApp(cmd, func(a *app) error {
			return runCalendar(cmd, a.clinic, athleteID, yearFlag)
		})
	},
}.Build()

func runCalendar(cmd *cobra.Command, svc *clinic.Service, athleteID, yearFlag string) error {
	ctx := commandContext(cmd)
	today := svc.Today()

	year := today.Year
	if yearFlag != "" {
		y, err := strconv.Atoi(yearFlag)
		if err != nil {
			return fmt.Errorf("invalid --year value %q (expected %d-%d)", yearFlag, adherence.MinYear, adherence.MaxYear)
		}
		year = y
	}

	athlete, err := svc.Profile(ctx, athleteID)
	if err != nil {
		return err
	}

	load := func(y int) (adherence.Calendar, error) {
		return svc.Calendar(ctx, athleteID, y)
	}
	cal, err := load(year)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	// Non-TTY fallback: print the static grid
	if f, ok := out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		_, err := fmt.Fprint(out, renderCalendar(athlete.FullName, cal, today))
		return err
	}

	m := calendarModel{
		name:  athlete.FullName,
		cal:   cal,
		today: today,
		load:  load,
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(out))
	_, err = p.Run()
	return err
}
