package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/copycorner/internal/product"
	"github.com/MrJamesThe3rd/copycorner/internal/report"
)

type InventoryModel struct {
	CommonModel
	reportService *report.Service

	table   table.Model
	report  *report.InventoryReport
	loading bool
	err     error
}

func NewInventoryModel(svc *report.Service) InventoryModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Code", Width: 10},
			{Title: "Name", Width: 24},
			{Title: "Category", Width: 14},
			{Title: "Stock", Width: 7},
			{Title: "Min", Width: 5},
			{Title: "Unit Price", Width: 11},
			{Title: "Value", Width: 12},
			{Title: "Status", Width: 13},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	return InventoryModel{reportService: svc, table: t, loading: true}
}

func (m InventoryModel) Title() string     { return "Inventory" }
func (m InventoryModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m InventoryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InventoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case inventoryMsg:
		m.loading = false
		m.report, m.err = msg.report, msg.err
		m.refreshTable()

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func stockStyle(s product.StockStatus) string {
	color := map[product.StockStatus]string{
		product.StatusInStock:    "46",
		product.StatusLowStock:   "214",
		product.StatusOutOfStock: "196",
	}[s]

	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(s))
}

func (m *InventoryModel) refreshTable() {
	if m.report == nil {
		m.table.SetRows(nil)
		return
	}

	rows := make([]table.Row, 0, len(m.report.Products))
	for _, p := range m.report.Products {
		rows = append(rows, table.Row{
			p.Code,
			p.Name,
			p.CategoryName,
			fmt.Sprint(p.StockQuantity),
			fmt.Sprint(p.MinimumStock),
			FormatMoney(p.UnitPrice),
			FormatMoney(p.StockValue),
			stockStyle(p.Status),
		})
	}

	m.table.SetRows(rows)
}

func (m InventoryModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	if m.loading {
		return style.Render("Loading inventory...")
	}

	if m.err != nil {
		return style.Render(fmt.Sprintf("Error: %v", m.err))
	}

	r := m.report
	summary := fmt.Sprintf(
		"Products: %d  |  Units: %d  |  Value: %s\nIn stock: %d  |  Low: %d  |  Out: %d",
		len(r.Products), r.TotalUnits, FormatMoney(r.TotalValue),
		r.Status.InStock, r.Status.LowStock, r.Status.OutOfStock,
	)

	categories := "By category:\n"
	for _, c := range r.Categories {
		categories += fmt.Sprintf("  %-16s %3d products  %6d units  %s\n", c.CategoryName, c.Products, c.Units, FormatMoney(c.Value))
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		summary,
		"",
		lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Render(m.table.View()),
		categories,
	))
}

type inventoryMsg struct {
	report *report.InventoryReport
	err    error
}

func (m InventoryModel) loadCmd() tea.Cmd {
	svc := m.reportService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		r, err := svc.Inventory(ctx)

		return inventoryMsg{report: r, err: err}
	}
}
