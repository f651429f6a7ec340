package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/till/internal/ledger"
)

type closeState int

const (
	closeStateLoading closeState = iota
	closeStateForm
	closeStateSaving
	closeStateResult
)

// CloseModel counts the drawer at the end of the day and registers any surplus.
type CloseModel struct {
	CommonModel
	till Till
	rng  ledger.DateRange

	state    closeState
	snapshot ledger.Snapshot
	form     *huh.Form
	counted  *string
	confirm  *bool

	outcome *ledger.CloseOutcome
	err     error
}

func NewCloseModel(till Till) CloseModel {
	return CloseModel{
		till:    till,
		rng:     till.Today(),
		state:   closeStateLoading,
		counted: new(string),
		confirm: new(bool),
	}
}

func (m CloseModel) Title() string { return "Close Till" }

func (m CloseModel) ShortHelp() string {
	if m.state == closeStateResult {
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: confirm"
}

func (m CloseModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CloseModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("counted").
				Title("Counted cash").
				Description("Everything in the drawer, float included").
				Value(m.counted).
				Validate(amountInput),

			huh.NewConfirm().
				Key("confirm").
				Title("Close the till?").
				Affirmative("Yes").
				Negative("No").
				Value(m.confirm),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m CloseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case closeSnapshotMsg:
		if msg.err != nil {
			m.state = closeStateResult
			m.err = msg.err

			return m, nil
		}

		m.snapshot = msg.snapshot
		m.form = m.buildForm()
		m.state = closeStateForm

		return m, m.form.Init()

	case closeResultMsg:
		m.state = closeStateResult
		m.outcome = msg.outcome
		m.err = msg.err

		return m, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey && keyMsg.Type == tea.KeyEsc && m.state != closeStateSaving {
		return m, Back
	}

	if m.state != closeStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !*m.confirm {
		return m, Back
	}

	// Validated by the form.
	cents, _ := ledger.ParseAmount(*m.counted)

	m.state = closeStateSaving

	return m, m.closeCmd(cents)
}

func (m CloseModel) View() string {
	switch m.state {
	case closeStateLoading:
		return lipgloss.NewStyle().Padding(1).Render("Loading today's drawer...")

	case closeStateForm:
		expected := card("Today "+m.rng.String(),
			row("Opening float", m.snapshot.OpeningBalance),
			row("Cash sales", m.snapshot.CashSales),
			row("Expected cash", m.snapshot.TotalCashInDrawer),
		)

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinHorizontal(lipgloss.Top, expected, m.form.View()),
		)

	case closeStateSaving:
		return lipgloss.NewStyle().Padding(1).Render("Closing till...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	registered := labelStyle.Render("Drawer matches, nothing registered")
	if adj := m.outcome.Adjustment; adj != nil {
		registered = fmt.Sprintf("Registered counter sale %s (%s)", FormatAmount(adj.Total), adj.ID)
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		successStyle.Render("Till closed"),
		"",
		row("Expected cash", m.outcome.Snapshot.TotalCashInDrawer),
		row("Surplus", m.outcome.Result.AmountToRegister),
		row("Day revenue", m.outcome.Result.FinalDayRevenue),
		"",
		registered,
	))
}

type closeSnapshotMsg struct {
	snapshot ledger.Snapshot
	err      error
}

type closeResultMsg struct {
	outcome *ledger.CloseOutcome
	err     error
}

func (m CloseModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		snap, err := m.till.Ledger.Snapshot(ctx, m.till.RestaurantID, m.rng)
		return closeSnapshotMsg{snapshot: snap, err: err}
	}
}

func (m CloseModel) closeCmd(counted int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		out, err := m.till.Ledger.CloseTill(ctx, m.till.RestaurantID, counted, m.rng)
		return closeResultMsg{outcome: out, err: err}
	}
}
