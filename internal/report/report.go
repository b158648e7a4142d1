// Package report renders an athlete's progress report as a PDF.
package report

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/Flyrell/physiotrack/internal/adherence"
	"github.com/Flyrell/physiotrack/internal/feedback"
	"github.com/Flyrell/physiotrack/internal/store"
	"github.com/Flyrell/physiotrack/internal/stringutil"
)

const (
	Title  = "PhysioTrack - Relatório de Evolução"
	Footer = "Gerado automaticamente por PhysioTrack"

	// dateLayout is the Brazilian dd/mm/yyyy format used throughout the report.
	dateLayout = "02/01/2006"
)

var (
	brandColor  = props.Color{Red: 37, Green: 99, Blue: 235}
	white       = props.Color{Red: 255, Green: 255, Blue: 255}
	mutedColor  = props.Color{Red: 100, Green: 100, Blue: 100}
	footerColor = props.Color{Red: 150, Green: 150, Blue: 150}
	stripeColor = props.Color{Red: 240, Green: 240, Blue: 240}
	lineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
)

// Row is one line of the feedback table, already formatted.
type Row struct {
	Date    string
	Pain    string
	Fatigue string
	Notes   string
}

// Data is everything the PDF shows.
type Data struct {
	PatientName  string
	PatientEmail string
	Issued       time.Time
	Summary      feedback.Summary
	Adherence    adherence.Summary
	Rows         []Row
}

// Build assembles report data for the athlete. Entries are listed in the
// order given.
func Build(athlete store.Profile, entries []feedback.Feedback, adh adherence.Summary, issued time.Time) Data {
	d := Data{
		PatientName:  athlete.FullName,
		PatientEmail: athlete.Email,
		Issued:       issued,
		Summary:      feedback.Summarize(entries),
		Adherence:    adh,
		Rows:         make([]Row, 0, len(entries)),
	}
	for _, f := range entries {
		notes := f.Notes
		if notes == "" {
			notes = "-"
		}
		d.Rows = append(d.Rows, Row{
			Date:    f.Date.Time().Format(dateLayout),
			Pain:    feedback.FormatScore(f.PainLevel),
			Fatigue: feedback.FormatScore(f.FatigueLevel),
			Notes:   notes,
		})
	}
	return d
}

// FileName is the download name for a patient's report.
func FileName(patientName string) string {
	slug := stringutil.Slugify(patientName)
	if slug == "" {
		slug = "paciente"
	}
	return "relatorio-" + slug + ".pdf"
}

// RenderPDF lays out d on A4 pages and returns the PDF bytes.
func RenderPDF(d Data) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(14).
		WithTopMargin(10).
		WithRightMargin(14).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterFooter(row.New(10).Add(
		text.NewCol(12, Footer, props.Text{Size: 8, Align: align.Center, Color: &footerColor}),
	)); err != nil {
		return nil, fmt.Errorf("registering footer: %w", err)
	}

	// Header bar
	m.AddRow(14,
		text.NewCol(12, Title, props.Text{
			Style: fontstyle.Bold,
			Size:  16,
			Top:   3,
			Left:  2,
			Color: &white,
		}),
	).WithStyle(&props.Cell{BackgroundColor: &brandColor})
	m.AddRow(6)

	// Patient
	m.AddRow(6, text.NewCol(12, "Paciente: "+d.PatientName, props.Text{Size: 12}))
	m.AddRow(6, text.NewCol(12, "Email: "+d.PatientEmail, props.Text{Size: 12}))
	m.AddRow(6, text.NewCol(12, "Data de Emissão: "+d.Issued.Format(dateLayout), props.Text{Size: 12}))
	m.AddRow(4)

	// Statistics
	muted := props.Text{Size: 10, Color: &mutedColor}
	m.AddRow(5, text.NewCol(12, fmt.Sprintf("Total de Sessões Registradas: %d", d.Summary.Sessions), muted))
	m.AddRow(5, text.NewCol(12, fmt.Sprintf("Média de Dor no Período: %.1f/10", d.Summary.AvgPain), muted))
	m.AddRow(5, text.NewCol(12, fmt.Sprintf("Adesão: %d dias realizados, %d dias perdidos (%.0f%%)",
		d.Adherence.Done, d.Adherence.Missed, d.Adherence.Rate*100), muted))
	m.AddRow(4)

	m.AddRows(tableRows(d.Rows)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func tableRows(rows []Row) []core.Row {
	head := props.Text{Style: fontstyle.Bold, Size: 10, Top: 1.5, Left: 1, Color: &white}
	out := []core.Row{
		row.New(8).Add(
			text.NewCol(3, "Data", head),
			text.NewCol(2, "Nível de Dor", head),
			text.NewCol(2, "Cansaço", head),
			text.NewCol(5, "Observações", head),
		).WithStyle(&props.Cell{BackgroundColor: &brandColor}),
	}

	cell := props.Text{Size: 10, Top: 1, Left: 1}
	for i, r := range rows {
		tr := row.New(7).Add(
			text.NewCol(3, r.Date, cell),
			text.NewCol(2, r.Pain, cell),
			text.NewCol(2, r.Fatigue, cell),
			text.NewCol(5, r.Notes, cell),
		)
		if i%2 == 1 {
			tr = tr.WithStyle(&props.Cell{BackgroundColor: &stripeColor})
		}
		out = append(out, tr)
	}

	out = append(out, row.New(4).Add(line.NewCol(12, props.Line{Color: &lineColor})))
	return out
}
