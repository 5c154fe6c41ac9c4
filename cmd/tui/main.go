package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/copycorner/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/copycorner/internal/category"
	categoryStore "github.com/MrJamesThe3rd/copycorner/internal/category/store"
	"github.com/MrJamesThe3rd/copycorner/internal/config"
	"github.com/MrJamesThe3rd/copycorner/internal/database"
	"github.com/MrJamesThe3rd/copycorner/internal/importer"
	"github.com/MrJamesThe3rd/copycorner/internal/product"
	productStore "github.com/MrJamesThe3rd/copycorner/internal/product/store"
	"github.com/MrJamesThe3rd/copycorner/internal/report"
	"github.com/MrJamesThe3rd/copycorner/internal/servicetype"
	serviceTypeStore "github.com/MrJamesThe3rd/copycorner/internal/servicetype/store"
	"github.com/MrJamesThe3rd/copycorner/internal/transaction"
	txStore "github.com/MrJamesThe3rd/copycorner/internal/transaction/store"
)

type model struct {
	appName            string
	txService          *transaction.Service
	serviceTypeService *servicetype.Service
	productService     *product.Service
	reportService      *report.Service
	importService      *importer.Service

	currentView View

	boardView     view.BoardModel
	inventoryView view.InventoryModel
	salesView     view.SalesModel
	importView    view.ImportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewBoard     View = 1
	ViewInventory View = 2
	ViewSales     View = 3
	ViewImport    View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	transactions := txStore.New(db)
	categorySvc := category.NewService(categoryStore.New(db))
	productSvc := product.NewService(productStore.New(db), categorySvc)
	serviceTypeSvc := servicetype.NewService(serviceTypeStore.New(db), productSvc, categorySvc)

	m := model{
		appName:            cfg.App.Name,
		txService:          transaction.NewService(transactions, productSvc, serviceTypeSvc),
		serviceTypeService: serviceTypeSvc,
		productService:     productSvc,
		reportService:      report.NewService(transactions, productSvc),
		importService:      importer.NewService(productSvc),
		currentView:        ViewMenu,
	}

	m.importView = view.NewImportModel(m.importService)

	return m
}

func (m model) productsByCategory(categoryName string) ([]*product.Product, error) {
	ctx, cancel := view.DbCtx()
	defer cancel()

	return m.productService.ListByCategory(ctx, categoryName)
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewBoard
				m.boardView = view.NewBoardModel(m.txService, m.serviceTypeService, m.productsByCategory)

				return m, m.boardView.Init()
			case "2":
				m.currentView = ViewInventory
				m.inventoryView = view.NewInventoryModel(m.reportService)

				return m, m.inventoryView.Init()
			case "3":
				m.currentView = ViewSales
				m.salesView = view.NewSalesModel(m.reportService)

				return m, m.salesView.Init()
			case "4":
				m.currentView = ViewImport
				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewBoard:
		var newModel tea.Model
		newModel, cmd = m.boardView.Update(msg)
		m.boardView = newModel.(view.BoardModel)
	case ViewInventory:
		var newModel tea.Model
		newModel, cmd = m.inventoryView.Update(msg)
		m.inventoryView = newModel.(view.InventoryModel)
	case ViewSales:
		var newModel tea.Model
		newModel, cmd = m.salesView.Update(msg)
		m.salesView = newModel.(view.SalesModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Transactions\n" +
				"2. Inventory\n" +
				"3. Sales Report\n" +
				"4. Import Products\n\n" +
				"q. Quit",
		)
	case ViewBoard:
		current = m.boardView
	case ViewInventory:
		current = m.inventoryView
	case ViewSales:
		current = m.salesView
	case ViewImport:
		current = m.importView
	default:
		return "Unknown View"
	}

	help := lipgloss.NewStyle().Faint(true).Render(current.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render(current.Title()),
		current.View(),
		lipgloss.NewStyle().PaddingLeft(1).Render(help),
	)
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
