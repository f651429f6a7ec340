package view

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/till/internal/ledger"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

// Till identifies the drawer every screen works on.
type Till struct {
	Ledger       *ledger.Service
	RestaurantID uuid.UUID
	Location     *time.Location
}

// Today is the current day in the till's zone.
func (t Till) Today() ledger.DateRange {
	return ledger.Today(time.Now(), t.Location)
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
