package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Flyrell/physiotrack/internal/adherence"
	"github.com/Flyrell/physiotrack/internal/clinic"
	"github.com/Flyrell/physiotrack/internal/feedback"
	"github.com/Flyrell/physiotrack/internal/store"
)

// feedbackInput holds the raw flag values of feedback log.
type feedbackInput struct {
	date     string
	pain     string
	fatigue  string
	mobility string
	notes    string
}

var feedbackLogCmd = LeafCommand{
	Use:   "log",
	Short: "Record how the athlete feels today",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "date", Usage: "date YYYY-MM-DD (default: today)"},
		{Name: "pain", Usage: "pain level 0-10"},
		{Name: "fatigue", Usage: "fatigue level 0-10"},
		{Name: "mobility", Usage: "range of motion in degrees"},
		{Name: "notes", Usage: "free-text observations"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		athleteID, err := currentUser(cmd)
		if err != nil {
			return err
		}

		var in feedbackInput
		in.date, _ = cmd.Flags().GetString("date")
		in.pain, _ = cmd.Flags().GetString("pain")
		in.fatigue, _ = cmd.Flags().GetString("fatigue")
		in.mobility, _ = cmd.Flags().GetString("mobility")
		in.notes, _ = cmd.Flags().GetString("notes")

		return withApp(cmd, func(a *app) error {
			return runFeedbackLog(cmd, a.clinic, athleteID, in, terminalPromptKit())
		})
	},
}.Build()

func runFeedbackLog(cmd *cobra.Command, svc *clinic.Service, athleteID string, in feedbackInput, kit PromptKit) error {
	ctx := commandContext(cmd)

	p, err := svc.ActiveProtocol(ctx, athleteID)
	if err != nil {
		if errors.Is(err, store.ErrNoActiveProtocol) {
			return fmt.Errorf("no active protocol for '%s': %w", athleteID, err)
		}
		return err
	}

	var nf clinic.NewFeedback
	if in.date != "" {
		d, err := adherence.ParseDate(in.date)
		if err != nil {
			return fmt.Errorf("invalid --date value %q (expected YYYY-MM-DD)", in.date)
		}
		nf.Date = &d
	}

	if nf.PainLevel, err = scoreFlag("pain", in.pain, "Nível de dor (0-10)", kit.Prompt); err != nil {
		return err
	}
	if nf.FatigueLevel, err = scoreFlag("fatigue", in.fatigue, "Nível de cansaço (0-10)", kit.Prompt); err != nil {
		return err
	}
	if in.mobility != "" {
		if nf.MobilityRange, err = strconv.Atoi(strings.TrimSpace(in.mobility)); err != nil {
			return fmt.Errorf("invalid --mobility value %q (expected degrees)", in.mobility)
		}
	}
	nf.Notes = in.notes

	if len(p.Exercises) > 0 && kit.MultiSelect != nil {
		names := make([]string, len(p.Exercises))
		for i, ex := range p.Exercises {
			names[i] = ex.Name
		}
		picked, err := kit.MultiSelect("Exercícios concluídos", names)
		if err != nil {
			return err
		}
		for _, i := range picked {
			nf.ExercisesCompleted = append(nf.ExercisesCompleted, names[i])
		}
	}

	fb, err := svc.SubmitFeedback(ctx, athleteID, nf)
	if errors.Is(err, store.ErrFeedbackExists) {
		return fmt.Errorf("feedback already recorded for %s", dateOrToday(nf.Date, svc))
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "feedback for %s recorded (%s)\n", Primary(fb.Date.String()), Silent(fb.ID))
	_, _ = fmt.Fprintf(w, "  dor %s, cansaço %s\n", feedback.FormatScore(fb.PainLevel), feedback.FormatScore(fb.FatigueLevel))
	if n := len(fb.ExercisesCompleted); n > 0 {
		_, _ = fmt.Fprintf(w, "  %d/%d exercises completed\n", n, len(p.Exercises))
	}
	return nil
}

// scoreFlag parses a 0-10 score flag, prompting when it is empty.
func scoreFlag(name, raw, question string, prompt PromptFunc) (int, error) {
	if raw == "" {
		if prompt == nil {
			return 0, fmt.Errorf("--%s is required", name)
		}
		answer, err := prompt(question)
		if err != nil {
			return 0, err
		}
		raw = answer
	}

	n, err := feedback.ParseScore(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s value: %w", name, err)
	}
	return n, nil
}

func dateOrToday(d *adherence.Date, svc *clinic.Service) adherence.Date {
	if d != nil {
		return *d
	}
	return svc.Today()
}
