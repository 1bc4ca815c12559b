// Package reportapp launches the report application which loads the flight log once and writes
// summary, legend, route ranking and flight list to stdout, where it can be piped into other
// programs. This is in contrast to the TUI app, which works more like htop.
package reportapp

import (
	"errors"
	"fmt"
	"time"

	"github.com/micutio/jettrack/internal"
	"github.com/micutio/jettrack/internal/export"
	"github.com/micutio/jettrack/pkg/logger"
)

var errNoFlights = errors.New("no flight could be built from the log")

// Options are the report settings that only come from the command line.
type Options struct {
	Until  time.Time // zero shows every flight
	Notify bool      // raise a desktop notification if lines were dropped
}

// ReportTitle names a report over the given records.
func ReportTitle(appName string, records []internal.FlightRecord) string {
	if len(records) == 0 {
		return appName + ": no flights"
	}

	first, last := records[0].Date, records[0].Date
	for i := range records {
		if records[i].Date.Before(first) {
			first = records[i].Date
		}

		if records[i].Date.After(last) {
			last = records[i].Date
		}
	}

	return fmt.Sprintf("%s: flights %s to %s", appName, first.Format("2006-01-02"), last.Format("2006-01-02"))
}

func Run(appName string, cfg *internal.Config, options Options, logParams internal.LogParams) error {
	log, err := internal.NewLogger(logParams, cfg.Log)
	if err != nil {
		return fmt.Errorf("reportapp.Run: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("loading flight log", logger.String("app", appName), logger.String("input", cfg.Input))

	notify := internal.NewNotify(appName, logParams.ConsoleOut)

	pipeline, err := internal.NewPipeline(cfg, log)
	if err != nil {
		return fmt.Errorf("reportapp.Run: %w", err)
	}

	table, err := pipeline.LoadFile(cfg.Input, cfg.CleanedOutput)
	if err != nil {
		return fmt.Errorf("reportapp.Run: %w", err)
	}

	if len(table.Records) == 0 {
		notify.PrintStats(table.Stats)
		return fmt.Errorf("reportapp.Run: %w", errNoFlights)
	}

	db := internal.NewDashboard(table, internal.EmissionSettingsFrom(cfg), cfg.LineStyle())

	records := db.Records
	if !options.Until.IsZero() {
		records = db.FilterUntil(options.Until)
		log.Info("showing flights up to date",
			logger.String("until", options.Until.Format("2006-01-02")),
			logger.Int("flights", len(records)))
	}

	notify.PrintSummary(db, records)
	notify.PrintLegend(db)
	notify.PrintRoutes(db, records)
	notify.PrintFlights(db, records)
	notify.PrintStats(db.Stats)

	if _, err := export.WriteConfigured(cfg.Export, db, records, ReportTitle(appName, records), log); err != nil {
		return fmt.Errorf("reportapp.Run: %w", err)
	}

	if options.Notify {
		// a missing notification daemon does not fail the report
		if _, err := notify.NotifyDataQuality(db.Stats); err != nil {
			log.Warn("desktop notification failed", logger.Error(err))
		}
	}

	return nil
}
