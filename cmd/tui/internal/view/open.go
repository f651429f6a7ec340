package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/till/internal/ledger"
)

type openState int

const (
	openStateForm openState = iota
	openStateSaving
	openStateResult
)

// OpenModel registers the opening float of the drawer.
type OpenModel struct {
	CommonModel
	till Till

	state   openState
	form    *huh.Form
	amount  *string
	confirm *bool

	movement *ledger.Movement
	err      error
}

func NewOpenModel(till Till) OpenModel {
	m := OpenModel{
		till:    till,
		amount:  new(string),
		confirm: new(bool),
	}
	m.form = m.buildForm()

	return m
}

func (m OpenModel) Title() string { return "Open Till" }

func (m OpenModel) ShortHelp() string {
	if m.state == openStateResult {
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: confirm"
}

func (m OpenModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m OpenModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Opening float").
				Description("Cash placed in the drawer, e.g. 1.500 or 1500,50").
				Value(m.amount).
				Validate(amountInput),

			huh.NewConfirm().
				Key("confirm").
				Title("Register the opening?").
				Affirmative("Yes").
				Negative("No").
				Value(m.confirm),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m OpenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(openResultMsg); ok {
		m.state = openStateResult
		m.movement = res.movement
		m.err = res.err

		return m, nil
	}

	switch m.state {
	case openStateForm:
		return m.updateForm(msg)
	case openStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m OpenModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
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
	cents, _ := ledger.ParseAmount(*m.amount)

	m.state = openStateSaving

	return m, m.saveCmd(cents)
}

func (m OpenModel) View() string {
	switch m.state {
	case openStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case openStateSaving:
		return lipgloss.NewStyle().Padding(1).Render("Registering opening...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		successStyle.Render("Till opened"),
		"",
		fmt.Sprintf("Float:    %s", FormatAmount(m.movement.Total)),
		fmt.Sprintf("At:       %s", FormatTime(m.movement.CreatedAt, m.till.Location)),
		labelStyle.Render("Movement "+m.movement.ID.String()),
	))
}

type openResultMsg struct {
	movement *ledger.Movement
	err      error
}

func (m OpenModel) saveCmd(cents int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		mv, err := m.till.Ledger.OpenTill(ctx, m.till.RestaurantID, cents)
		return openResultMsg{movement: mv, err: err}
	}
}
