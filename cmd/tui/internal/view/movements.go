package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/till/internal/export"
	"github.com/MrJamesThe3rd/till/internal/ledger"
)

var movementTimeframes = []Timeframe{TimeframeToday, TimeframeThisWeek, TimeframeThisMonth, TimeframeLastMonth}

type MovementsModel struct {
	CommonModel
	till Till

	table     table.Model
	movements []*ledger.Movement
	detail    bool

	// Timeframe cycling
	timeframeIdx int
	rng          ledger.DateRange

	loading bool
	err     error
}

func NewMovementsModel(till Till) MovementsModel {
	columns := []table.Column{
		{Title: "Time", Width: 12},
		{Title: "Type", Width: 10},
		{Title: "Customer", Width: 24},
		{Title: "Payment", Width: 10},
		{Title: "Total", Width: 14},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return MovementsModel{
		till:    till,
		table:   t,
		rng:     till.Today(),
		loading: true,
	}
}

func (m MovementsModel) Title() string { return "Movements" }

func (m MovementsModel) ShortHelp() string {
	return "Esc: back | Enter: items | d: timeframe | r: refresh"
}

func (m MovementsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m MovementsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadMovementsMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.movements = msg.movements
			m.refreshTable()
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if m.detail {
				m.detail = false
				return m, nil
			}

			return m, Back
		case "enter":
			m.detail = !m.detail
			return m, nil
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "d":
			m.timeframeIdx = (m.timeframeIdx + 1) % len(movementTimeframes)
			m.rng = TimeframeRange(movementTimeframes[m.timeframeIdx], m.till.Today().Start, m.till.Location)
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m MovementsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading movements...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	header := fmt.Sprintf(
		"[d] %s: %s | %d movements",
		activeStyle(movementTimeframes[m.timeframeIdx].String()),
		m.rng,
		len(m.movements),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if idx := m.table.Cursor(); m.detail && idx >= 0 && idx < len(m.movements) {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(itemsDetail(m.movements[idx]))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func itemsDetail(mv *ledger.Movement) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n\n", export.CustomerLabel(mv))

	if len(mv.Items) == 0 {
		sb.WriteString(labelStyle.Render("no items"))
		return sb.String()
	}

	for _, it := range mv.Items {
		fmt.Fprintf(&sb, "%3d x %-22s %s\n", it.Quantity, it.Name, FormatAmount(it.Price*int64(it.Quantity)))
	}

	fmt.Fprintf(&sb, "\n%-28s %s", "Total", FormatAmount(mv.Total))

	return sb.String()
}

func (m *MovementsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.movements))
	for _, mv := range m.movements {
		payment := string(mv.PaymentMethod)
		if payment == "" {
			payment = "-"
		}

		rows = append(rows, table.Row{
			FormatTime(mv.CreatedAt, m.till.Location),
			string(mv.Type),
			export.CustomerLabel(mv),
			payment,
			FormatAmount(mv.Total),
			string(mv.Status),
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// Messages

type loadMovementsMsg struct {
	movements []*ledger.Movement
	err       error
}

func (m MovementsModel) loadCmd() tea.Cmd {
	r := m.rng

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ms, err := m.till.Ledger.Movements(ctx, m.till.RestaurantID, r)
		return loadMovementsMsg{movements: ms, err: err}
	}
}
