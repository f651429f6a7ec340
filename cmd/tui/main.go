package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/till/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/till/internal/config"
	"github.com/MrJamesThe3rd/till/internal/database"
	"github.com/MrJamesThe3rd/till/internal/export"
	"github.com/MrJamesThe3rd/till/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/till/internal/ledger/store"
)

type model struct {
	cfg           *config.Config
	till          view.Till
	exportService *export.Service

	currentView View

	dashboardView view.DashboardModel
	openView      view.OpenModel
	closeView     view.CloseModel
	movementsView view.MovementsModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewOpen      View = 2
	ViewClose     View = 3
	ViewMovements View = 4
	ViewExport    View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to load time zone", "error", err)
		os.Exit(1)
	}

	restaurantID, err := cfg.Restaurant()
	if err != nil {
		slog.Error("failed to resolve restaurant", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	ledgerSvc := ledger.NewService(ledgerStore.New(db))

	return model{
		cfg: cfg,
		till: view.Till{
			Ledger:       ledgerSvc,
			RestaurantID: restaurantID,
			Location:     loc,
		},
		exportService: export.NewService(ledgerSvc),
		currentView:   ViewMenu,
	}
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
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.till, m.cfg.Till.PollInterval)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewOpen
				m.openView = view.NewOpenModel(m.till)

				return m, m.openView.Init()
			case "3":
				m.currentView = ViewClose
				m.closeView = view.NewCloseModel(m.till)

				return m, m.closeView.Init()
			case "4":
				m.currentView = ViewMovements
				m.movementsView = view.NewMovementsModel(m.till)

				return m, m.movementsView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.till, m.exportService)

				return m, m.exportView.Init()
			}
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewOpen:
		var newModel tea.Model
		newModel, cmd = m.openView.Update(msg)
		m.openView = newModel.(view.OpenModel)
	case ViewClose:
		var newModel tea.Model
		newModel, cmd = m.closeView.Update(msg)
		m.closeView = newModel.(view.CloseModel)
	case ViewMovements:
		var newModel tea.Model
		newModel, cmd = m.movementsView.Update(msg)
		m.movementsView = newModel.(view.MovementsModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.cfg.App.Name + " · " + m.till.RestaurantID.String() + " · " + m.till.Location.String() + "\n\n" +
				"1. Till Dashboard\n" +
				"2. Open Till\n" +
				"3. Close Till\n" +
				"4. Movements\n" +
				"5. Export Movements\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewOpen:
		return m.openView.View()
	case ViewClose:
		return m.closeView.View()
	case ViewMovements:
		return m.movementsView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
