package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Flyrell/physiotrack/internal/adherence"
)

const (
	monthsPerRow = 3
	weeksPerGrid = 6
	cellWidth    = 3
)

var (
	monthTitleStyle = lipgloss.NewStyle().Bold(true).Width(7 * cellWidth).Align(lipgloss.Center)
	monthBlockStyle = lipgloss.NewStyle().PaddingRight(2)
	todayStyle      = lipgloss.NewStyle().Underline(true)
	hintStyle       = lipgloss.NewStyle().Faint(true)
)

// calendarModel browses an athlete's calendar year by year.
type calendarModel struct {
	name  string
	cal   adherence.Calendar
	today adherence.Date
	load  func(year int) (adherence.Calendar, error)
	err   error
}

func (m calendarModel) Init() tea.Cmd {
	return nil
}

func (m calendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		return m.showYear(m.cal.Year - 1), nil
	case "right", "l":
		return m.showYear(m.cal.Year + 1), nil
	case "t":
		return m.showYear(m.today.Year), nil
	}
	return m, nil
}

// showYear switches to year. Years outside the supported range are ignored.
func (m calendarModel) showYear(year int) calendarModel {
	if year < adherence.MinYear || year > adherence.MaxYear || year == m.cal.Year {
		return m
	}
	cal, err := m.load(year)
	if err != nil {
		m.err = err
		return m
	}
	m.cal = cal
	m.err = nil
	return m
}

func (m calendarModel) View() string {
	var b strings.Builder
	b.WriteString(renderCalendar(m.name, m.cal, m.today))
	if m.err != nil {
		b.WriteString(Error(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("←/→ ano · t hoje · q sair"))
	b.WriteString("\n")
	return b.String()
}

// renderCalendar draws the year as a grid of months, three per row, with a
// summary header and a legend.
func renderCalendar(name string, cal adherence.Calendar, today adherence.Date) string {
	var b strings.Builder

	s := cal.Counts()
	fmt.Fprintf(&b, "%s · %s\n", Primary(name), Primary(fmt.Sprint(cal.Year)))
	fmt.Fprintf(&b, "Concluídos: %d  Perdidos: %d  Adesão: %.0f%%\n\n", s.Done, s.Missed, s.Rate*100)

	for i := 0; i < len(cal.Months); i += monthsPerRow {
		end := min(i+monthsPerRow, len(cal.Months))
		blocks := make([]string, 0, monthsPerRow)
		for _, m := range cal.Months[i:end] {
			blocks = append(blocks, monthBlockStyle.Render(renderMonth(m, today)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "%s  %s  %s\n",
		StatusColor(adherence.Done, "■ concluído"),
		StatusColor(adherence.Missed, "■ perdido"),
		StatusColor(adherence.NotApplicable, "■ sem registro"),
	)
	return b.String()
}

// renderMonth draws one month: title, weekday initials and six week rows.
func renderMonth(m adherence.Month, today adherence.Date) string {
	lines := make([]string, 0, weeksPerGrid+2)
	lines = append(lines, monthTitleStyle.Render(m.Name))

	header := make([]string, len(adherence.WeekdayInitials))
	for i, w := range adherence.WeekdayInitials {
		header[i] = padLeft(w, cellWidth-1)
	}
	lines = append(lines, strings.Join(header, " "))

	cells := make([]string, 0, weeksPerGrid*7)
	for i := 0; i < m.Offset; i++ {
		cells = append(cells, strings.Repeat(" ", cellWidth-1))
	}
	for _, d := range m.Days {
		label := StatusColor(d.Status, padLeft(fmt.Sprint(d.Date.Day), cellWidth-1))
		if d.Date == today {
			label = todayStyle.Render(label)
		}
		cells = append(cells, label)
	}

	for week := 0; week < weeksPerGrid; week++ {
		start := week * 7
		if start >= len(cells) {
			lines = append(lines, "")
			continue
		}
		end := min(start+7, len(cells))
		lines = append(lines, strings.Join(cells[start:end], " "))
	}
	return strings.Join(lines, "\n")
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
