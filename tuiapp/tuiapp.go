// Package tuiapp provides the TUI app which displays the flight dashboard and can be interacted
// with.
// Layout idea:
// +-------------------------------------------------------------+
// | jettrack · flights · loaded 12:00:00                        |
// | until 2021-05-03 (3/41)                                     |
// | 2021-01-02 ├──────●──────────────────────────┤ 2022-12-30   |
// |  _________   _________   _________   _____   ____________   |
// | | flights | | total   | | mean    | | CO2 | | reference  |  |
// |  ---------   ---------   ---------   -----   ------------   |
// | flights page:                 | routes page:                |
// |   route map                   |   route table    legend     |
// |   flight table                |                             |
// | help · status                                               |
// +-------------------------------------------------------------+
// .
package tuiapp

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/micutio/jettrack/internal"
	"github.com/micutio/jettrack/internal/export"
	"github.com/micutio/jettrack/pkg/logger"
)

type Theme struct {
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
}

var Color = Theme{ //nolint: gochecknoglobals // shared theme
	Primary:   lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"},
	Secondary: lipgloss.AdaptiveColor{Light: "#969B86", Dark: "#696969"},
	Highlight: lipgloss.AdaptiveColor{Light: "#8b2def", Dark: "#8b2def"},
	Border:    lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"},
}

// newLoader returns a loader which runs the whole pipeline on every call, so a reload picks up
// changes to the flight log.
func newLoader(cfg *internal.Config, log *logger.Logger) dashboardLoader {
	return func() (*internal.Dashboard, error) {
		pipeline, err := internal.NewPipeline(cfg, log)
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}

		table, err := pipeline.LoadFile(cfg.Input, cfg.CleanedOutput)
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}

		return internal.NewDashboard(table, internal.EmissionSettingsFrom(cfg), cfg.LineStyle()), nil
	}
}

func newExporter(appName string, cfg *internal.Config, log *logger.Logger) exporter {
	return func(db *internal.Dashboard, records []internal.FlightRecord) ([]string, error) {
		return export.WriteConfigured(cfg.Export, db, records, appName+" flights", log)
	}
}

// Run starts the TUI. Logs go to logParams.ErrorOut since the terminal belongs to the UI.
func Run(appName string, cfg *internal.Config, logParams internal.LogParams) error {
	log, err := internal.NewLogger(logParams, cfg.Log)
	if err != nil {
		return fmt.Errorf("tuiapp.Run: %w", err)
	}
	defer func() { _ = log.Sync() }()

	m := newModel(appName, newLoader(cfg, log), newExporter(appName, cfg, log), log)

	// Create a new Bubble Tea program with the model and enable alternate screen
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Run the program and handle any errors
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tuiapp.Run: %w", err)
	}

	return nil
}
