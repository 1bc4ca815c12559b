package tuiapp

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/micutio/jettrack/internal"
)

// dashboardLoader builds a fresh dashboard from the flight log on disk.
type dashboardLoader func() (*internal.Dashboard, error)

// exporter writes the configured exports for the given records and returns the written paths.
type exporter func(db *internal.Dashboard, records []internal.FlightRecord) ([]string, error)

type DashboardLoadedMsg struct {
	dashboard *internal.Dashboard
	err       error
	at        time.Time
}

func loadDashboardCmd(load dashboardLoader) tea.Cmd {
	return func() tea.Msg {
		db, err := load()
		return DashboardLoadedMsg{dashboard: db, err: err, at: time.Now()}
	}
}

type ExportDoneMsg struct {
	paths []string
	err   error
}

func exportCmd(export exporter, db *internal.Dashboard, records []internal.FlightRecord) tea.Cmd {
	return func() tea.Msg {
		paths, err := export(db, records)
		return ExportDoneMsg{paths: paths, err: err}
	}
}
