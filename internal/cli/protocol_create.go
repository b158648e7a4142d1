package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Flyrell/physiotrack/internal/adherence"
	"github.com/Flyrell/physiotrack/internal/clinic"
	"github.com/Flyrell/physiotrack/internal/protocol"
)

var protocolCreateCmd = LeafCommand{
	Use:   "create",
	Short: "Assign a new protocol to an athlete (archives the current one)",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "athlete", Usage: "athlete profile ID"},
		{Name: "title", Usage: "protocol title (prompted if omitted)"},
		{Name: "description", Usage: "protocol description (markdown)"},
		{Name: "end", Usage: "end date YYYY-MM-DD"},
	},
	StrArrayFlags: []StringArrayFlag{
		{Name: "exercise", Usage: "exercise as NAME[:SETSxREPS[:FREQUENCY]], repeatable"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		therapistID, err := currentUser(cmd)
		if err != nil {
			return err
		}
		athleteID, _ := cmd.Flags().GetString("athlete")
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		endFlag, _ := cmd.Flags().GetString("end")
		exerciseFlags, _ := cmd.Flags().GetStringArray("exercise")

		return withApp(cmd, func(a *app) error {
			return runProtocolCreate(cmd, a.clinic, therapistID, athleteID, title, description, endFlag, exerciseFlags, terminalPromptKit().Prompt)
		})
	},
}.Build()

func runProtocolCreate(
	cmd *cobra.Command,
	svc *clinic.Service,
	therapistID, athleteID, title, description, endFlag string,
	exerciseFlags []string,
	prompt PromptFunc,
) error {
	if athleteID == "" {
		return errors.New("--athlete is required")
	}

	if strings.TrimSpace(title) == "" && prompt != nil {
		answer, err := prompt("Título do protocolo")
		if err != nil {
			return err
		}
		title = answer
	}

	in := clinic.NewProtocol{
		AthleteID:   athleteID,
		Title:       title,
		Description: description,
	}
	if endFlag != "" {
		end, err := adherence.ParseDate(endFlag)
		if err != nil {
			return fmt.Errorf("invalid --end value %q (expected YYYY-MM-DD)", endFlag)
		}
		in.EndDate = &end
	}
	for _, raw := range exerciseFlags {
		ex, err := parseExercise(raw)
		if err != nil {
			return err
		}
		in.Exercises = append(in.Exercises, ex)
	}

	p, err := svc.CreateProtocol(commandContext(cmd), therapistID, in)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "protocol '%s' created for %s (%s)\n", Primary(p.Title), p.AthleteID, Silent(p.ID))
	_, _ = fmt.Fprintf(w, "  starts %s, %d exercise(s)\n", p.StartDate, len(p.Exercises))
	return nil
}

// parseExercise parses NAME[:SETSxREPS[:FREQUENCY]], e.g.
// "Ponte:3x12:every monday and thursday".
func parseExercise(s string) (protocol.Exercise, error) {
	parts := strings.SplitN(s, ":", 3)
	ex := protocol.Exercise{Name: strings.TrimSpace(parts[0])}
	if ex.Name == "" {
		return protocol.Exercise{}, fmt.Errorf("invalid exercise %q (name is empty)", s)
	}

	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		sets, reps, ok := strings.Cut(strings.ToLower(strings.TrimSpace(parts[1])), "x")
		if !ok {
			return protocol.Exercise{}, fmt.Errorf("invalid exercise %q (expected SETSxREPS, e.g. 3x12)", s)
		}
		var err error
		if ex.Sets, err = strconv.Atoi(strings.TrimSpace(sets)); err != nil || ex.Sets < 0 {
			return protocol.Exercise{}, fmt.Errorf("invalid exercise %q (sets must be a whole number)", s)
		}
		if ex.Reps, err = strconv.Atoi(strings.TrimSpace(reps)); err != nil || ex.Reps < 0 {
			return protocol.Exercise{}, fmt.Errorf("invalid exercise %q (reps must be a whole number)", s)
		}
	}

	if len(parts) > 2 {
		ex.Frequency = strings.TrimSpace(parts[2])
	}
	return ex, nil
}
