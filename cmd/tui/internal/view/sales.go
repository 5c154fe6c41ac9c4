package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/copycorner/internal/report"
)

type salesState int

const (
	salesStatePick salesState = iota
	salesStateReport
)

type SalesModel struct {
	CommonModel
	reportService *report.Service

	state   salesState
	picker  TimeframePicker
	report  *report.SalesReport
	loading bool
	err     error
}

func NewSalesModel(svc *report.Service) SalesModel {
	return SalesModel{
		reportService: svc,
		picker:        NewTimeframePicker(TimeframeToday),
	}
}

func (m SalesModel) Title() string { return "Sales Report" }

func (m SalesModel) ShortHelp() string {
	if m.state == salesStatePick {
		return "Esc: back | Enter: select"
	}

	return "Esc: pick another range"
}

func (m SalesModel) Init() tea.Cmd {
	return nil
}

func (m SalesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.state = salesStateReport
		m.loading = true

		return m, m.loadCmd(msg.Start, msg.End)

	case salesMsg:
		m.loading = false
		m.report, m.err = msg.report, msg.err

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			if m.state == salesStateReport {
				m.state = salesStatePick
				m.picker.Reset()

				return m, nil
			}

			if m.picker.IsSelecting() {
				return m, Back
			}
		}
	}

	if m.state != salesStatePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m SalesModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch {
	case m.state == salesStatePick:
		return style.Render(m.picker.View())
	case m.loading:
		return style.Render("Loading sales...")
	case m.err != nil:
		return style.Render(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)))
	}

	r := m.report

	var b strings.Builder

	fmt.Fprintf(&b, "Sales %s to %s\n\n", FormatDate(r.Start), FormatDate(r.End))
	fmt.Fprintf(&b, "Revenue: %s from %d transactions\n\n", FormatMoney(r.TotalRevenue), r.TransactionCount)

	b.WriteString("By service:\n")

	for _, s := range r.ByService {
		fmt.Fprintf(&b, "  %-20s %4d  %12s  %6s%%\n", s.ServiceType, s.TransactionCount, FormatMoney(s.Revenue), s.Share.StringFixed(2))
	}

	b.WriteString("\nDaily:\n")

	for _, d := range r.Daily {
		fmt.Fprintf(&b, "  %s %s  %4d  %12s\n", FormatDate(d.Date), d.DayName, d.Count, FormatMoney(d.Revenue))
	}

	return style.Render(b.String())
}

type salesMsg struct {
	report *report.SalesReport
	err    error
}

func (m SalesModel) loadCmd(start, end time.Time) tea.Cmd {
	svc := m.reportService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		r, err := svc.Sales(ctx, start, end)

		return salesMsg{report: r, err: err}
	}
}
