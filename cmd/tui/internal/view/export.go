package view

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/till/internal/export"
	"github.com/MrJamesThe3rd/till/internal/ledger"
)

type exportState int

const (
	exportStateTimeframe exportState = iota
	exportStatePath
	exportStateExporting
	exportStateResult
)

type exportForm struct {
	path    string
	charset export.Charset
	comma   string
}

type ExportModel struct {
	CommonModel
	till          Till
	exportService *export.Service

	state           exportState
	err             error
	timeframePicker TimeframePicker
	rng             ledger.DateRange

	form    *huh.Form
	values  *exportForm
	spinner spinner.Model
	file    string
	count   int
	summary string
}

func NewExportModel(till Till, svc *export.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		till:            till,
		exportService:   svc,
		state:           exportStateTimeframe,
		timeframePicker: NewTimeframePicker(TimeframeToday, till.Location),
		values:          &exportForm{path: "./exports", charset: export.CharsetUTF8, comma: ","},
		spinner:         s,
	}
}

func (m ExportModel) Title() string { return "Export Movements" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}
	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tfMsg, ok := msg.(TimeframeSelectedMsg); ok {
		m.rng = tfMsg.Range
		m.form = m.buildPathForm()
		m.state = exportStatePath
		return m, m.form.Init()
	}

	switch m.state {
	case exportStateTimeframe:
		return m.updateTimeframe(msg)
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)
	return m, cmd
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = exportStateTimeframe
			m.timeframePicker.Reset()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil
	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(m.rng, *m.values))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.file = result.path
		m.count = result.count
		m.summary = result.body
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}
	return m, nil
}

func (m ExportModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(&m.values.path),

			huh.NewSelect[export.Charset]().
				Key("charset").
				Title("Encoding").
				Options(
					huh.NewOption("UTF-8", export.CharsetUTF8),
					huh.NewOption("UTF-8 with BOM", export.CharsetUTF8BOM),
					huh.NewOption("Windows-1252 (Excel)", export.CharsetWindows1252),
				).
				Value(&m.values.charset),

			huh.NewSelect[string]().
				Key("comma").
				Title("Delimiter").
				Options(
					huh.NewOption("Comma", ","),
					huh.NewOption("Semicolon", ";"),
					huh.NewOption("Tab", "\t"),
				).
				Value(&m.values.comma),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case exportStatePath:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Exporting movements for %s...", m.spinner.View(), m.rng),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("%d movements written to %s", m.count, m.file),
			"",
			m.summary,
		),
	)
}

type exportResultMsg struct {
	path  string
	count int
	body  string
	err   error
}

const exportTimeout = 2 * time.Minute

func (m ExportModel) runExportCmd(r ledger.DateRange, values exportForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		comma, _ := utf8.DecodeRuneInString(values.comma)
		opts := export.Options{Comma: comma, Charset: values.charset}

		path, n, err := m.exportService.ExportToDir(ctx, m.till.RestaurantID, r, values.path, opts)
		if err != nil {
			return exportResultMsg{err: err}
		}

		snap, err := m.till.Ledger.Snapshot(ctx, m.till.RestaurantID, r)
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{path: path, count: n, body: export.Summary(r, snap)}
	}
}
