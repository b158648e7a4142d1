package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Flyrell/physiotrack/internal/clinic"
	"github.com/Flyrell/physiotrack/internal/report"
)

var reportCmd = LeafCommand{
	Use:   "report",
	Short: "Export an athlete's evolution report as PDF",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "athlete", Usage: "athlete profile ID (default: --as)"},
		{Name: "output", Usage: "output file (default: relatorio-<name>.pdf)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		athleteID, err := athleteFlag(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")

		return withApp(cmd, func(a *app) error {
			return runReport(cmd, a.clinic, athleteID, output)
		})
	},
}.Build()

func runReport(cmd *cobra.Command, svc *clinic.Service, athleteID, outputPath string) error {
	data, err := svc.Report(commandContext(cmd), athleteID)
	if err != nil {
		return err
	}

	pdf, err := report.RenderPDF(data)
	if err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = report.FileName(data.PatientName)
	}
	if err := os.WriteFile(outputPath, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported report to %s (%d sessions)\n", Primary(outputPath), data.Summary.Sessions)
	return nil
}
