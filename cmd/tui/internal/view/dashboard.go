package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/till/internal/ledger"
)

type dashboardState int

const (
	dashboardStateTimeframe dashboardState = iota
	dashboardStateView
)

const chartWidth = 30

type DashboardModel struct {
	CommonModel
	till     Till
	interval time.Duration

	state           dashboardState
	timeframePicker TimeframePicker
	timeframe       Timeframe
	rng             ledger.DateRange

	snapshot  ledger.Snapshot
	loaded    bool
	updatedAt time.Time
	// generation discards ticks scheduled for a previous range.
	generation int
	err        error
}

// NewDashboardModel creates the dashboard. The snapshot is reloaded every
// interval while it is on screen.
func NewDashboardModel(till Till, interval time.Duration) DashboardModel {
	return DashboardModel{
		till:            till,
		interval:        interval,
		state:           dashboardStateTimeframe,
		timeframePicker: NewTimeframePicker(TimeframeToday, till.Location),
	}
}

func (m DashboardModel) Title() string { return "Till Dashboard" }

func (m DashboardModel) ShortHelp() string {
	if m.state == dashboardStateView {
		return "Esc: back | r: refresh | t: timeframe"
	}

	return "Esc: back | Enter: select"
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.timeframe = msg.Timeframe
		m.rng = msg.Range
		m.state = dashboardStateView
		m.loaded = false
		m.generation++

		return m, tea.Batch(m.loadCmd(), m.tickCmd())

	case snapshotMsg:
		if msg.generation != m.generation {
			return m, nil
		}

		m.err = msg.err
		if msg.err == nil {
			m.snapshot = msg.snapshot
			m.loaded = true
			m.updatedAt = time.Now()
		}

		return m, nil

	case dashboardTickMsg:
		if msg.generation != m.generation || m.state != dashboardStateView {
			return m, nil
		}

		// Predefined timeframes follow the clock across midnight.
		if m.timeframe != TimeframeCustom {
			m.rng = TimeframeRange(m.timeframe, time.Now(), m.till.Location)
		}

		return m, tea.Batch(m.loadCmd(), m.tickCmd())
	}

	switch m.state {
	case dashboardStateTimeframe:
		return m.updateTimeframe(msg)
	case dashboardStateView:
		return m.updateView(msg)
	}

	return m, nil
}

func (m DashboardModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m DashboardModel) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.generation++
		return m, Back
	case "r":
		return m, m.loadCmd()
	case "t":
		m.generation++
		m.state = dashboardStateTimeframe
		m.timeframePicker.Reset()
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.state == dashboardStateTimeframe {
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())
	}

	header := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%s (%s)", m.timeframe, m.rng))

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			header + "\n\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	if !m.loaded {
		return lipgloss.NewStyle().Padding(1).Render(header + "\n\nLoading snapshot...")
	}

	s := m.snapshot

	cash := card("Drawer",
		row("Opening float", s.OpeningBalance),
		row("Cash sales", s.CashSales),
		row("Expected cash", s.TotalCashInDrawer),
	)

	sales := card(fmt.Sprintf("Sales (%d orders)", s.TotalOrders),
		row("Total", s.TotalRevenue),
		row("Counter", s.CounterSales),
		row("Online", s.OnlineSales),
		row("Cash delivery", s.CashDeliverySales),
		row("Digital", s.DigitalSales),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		labelStyle.Render("updated "+m.updatedAt.Format("15:04:05")),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cash, sales),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, dailyChart(s.DailySeries, m.rng), topProductsList(s.TopProducts)),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

var cardStyle = lipgloss.NewStyle().
	Padding(0, 2).
	MarginRight(2).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63"))

func card(title string, rows ...string) string {
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{lipgloss.NewStyle().Bold(true).Render(title), ""}, rows...)...,
	))
}

func row(label string, cents int64) string {
	return fmt.Sprintf("%-15s %14s", label, FormatAmount(cents))
}

func dailyChart(series []ledger.DailyTotal, r ledger.DateRange) string {
	title := fmt.Sprintf("Daily sales (%d of %d days)", len(series), r.Days())

	if len(series) == 0 {
		return card(title, labelStyle.Render("no sales"))
	}

	var peak int64
	for _, d := range series {
		peak = max(peak, d.Amount)
	}

	rows := make([]string, 0, len(series))
	for _, d := range series {
		width := 0
		if peak > 0 {
			width = int(d.Amount * chartWidth / peak)
		}

		rows = append(rows, fmt.Sprintf("%s %-*s %s",
			d.Day.Format("01-02"), chartWidth, strings.Repeat("█", width), FormatAmount(d.Amount)))
	}

	return card(title, rows...)
}

func topProductsList(products []ledger.ProductTotal) string {
	if len(products) == 0 {
		return card("Top products", labelStyle.Render("no items sold"))
	}

	rows := make([]string, 0, len(products))
	for i, p := range products {
		rows = append(rows, fmt.Sprintf("%2d. %-20s x%-4d %s", i+1, p.Name, p.Quantity, FormatAmount(p.Revenue)))
	}

	return card("Top products", rows...)
}

type snapshotMsg struct {
	generation int
	snapshot   ledger.Snapshot
	err        error
}

type dashboardTickMsg struct {
	generation int
}

func (m DashboardModel) loadCmd() tea.Cmd {
	gen, r := m.generation, m.rng

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		snap, err := m.till.Ledger.Snapshot(ctx, m.till.RestaurantID, r)
		return snapshotMsg{generation: gen, snapshot: snap, err: err}
	}
}

func (m DashboardModel) tickCmd() tea.Cmd {
	if m.interval <= 0 {
		return nil
	}

	gen := m.generation

	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return dashboardTickMsg{generation: gen}
	})
}
