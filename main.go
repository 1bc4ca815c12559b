// Package main provides the private jet flight log application
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/micutio/jettrack/internal"
	"github.com/micutio/jettrack/reportapp"
	"github.com/micutio/jettrack/tuiapp"
	"github.com/spf13/pflag"
)

const (
	// thisAppName is the name of this application as shown on notifications.
	thisAppName = "jettrack"
)

type arguments struct {
	configPath string
	input      string
	cleaned    string
	geoJSON    string
	pdf        string
	until      string
	logLevel   string
	isReport   bool
	isNotify   bool
}

func main() {
	var args arguments

	setupCommandLineFlags(&args)

	// Parse all arguments provided to the program on launch.
	pflag.Parse()

	if err := run(&args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", thisAppName, err)
		os.Exit(1)
	}
}

func run(args *arguments) error {
	cfg, err := internal.LoadConfig(args.configPath)
	if err != nil {
		return err
	}

	applyFlags(cfg, args)

	if err := cfg.Validate(); err != nil {
		return err
	}

	if args.isReport {
		until, err := parseUntil(args.until)
		if err != nil {
			return err
		}

		logParams := internal.LogParams{
			ConsoleOut: os.Stdout,
			ErrorOut:   os.Stderr,
		}

		return reportapp.Run(thisAppName, cfg, reportapp.Options{Until: until, Notify: args.isNotify}, logParams)
	}

	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint: gosec // log file
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logParams := internal.LogParams{
		ConsoleOut: io.Discard,
		ErrorOut:   logFile,
	}

	return tuiapp.Run(thisAppName, cfg, logParams)
}

// applyFlags overrides configuration values with the flags given on the command line.
func applyFlags(cfg *internal.Config, args *arguments) {
	overrides := map[string]*string{
		"input":     &cfg.Input,
		"cleaned":   &cfg.CleanedOutput,
		"geojson":   &cfg.Export.GeoJSON,
		"pdf":       &cfg.Export.PDF,
		"log-level": &cfg.Log.Level,
	}

	values := map[string]string{
		"input":     args.input,
		"cleaned":   args.cleaned,
		"geojson":   args.geoJSON,
		"pdf":       args.pdf,
		"log-level": args.logLevel,
	}

	for name, target := range overrides {
		if pflag.CommandLine.Changed(name) {
			*target = values[name]
		}
	}
}

func parseUntil(text string) (time.Time, error) {
	if text == "" {
		return time.Time{}, nil
	}

	until, ok := internal.ParseFlightDate(text)
	if !ok {
		return time.Time{}, fmt.Errorf("unable to parse --until date %q", text)
	}

	return until, nil
}

func setupCommandLineFlags(args *arguments) {
	pflag.StringVarP(&args.configPath, "config", "c", "", "TOML configuration file")
	pflag.StringVarP(&args.input, "input", "i", "", "flight log CSV, optionally zstd compressed (.zst)")
	pflag.StringVarP(&args.cleaned, "cleaned", "o", "", "write the normalized flight log to this file")
	pflag.StringVar(&args.geoJSON, "geojson", "", "export the route map as GeoJSON to this file")
	pflag.StringVar(&args.pdf, "pdf", "", "export the route map report as PDF to this file")
	pflag.StringVarP(&args.until, "until", "u", "", "report mode: only show flights up to this date")
	pflag.StringVar(&args.logLevel, "log-level", "", "log level: debug, info, warn or error")

	// Whether to launch the report or TUI app.
	pflag.BoolVarP(
		&args.isReport,
		"report",
		"r",
		false,
		"print the flight report on the command line without TUI")
	pflag.Lookup("report").NoOptDefVal = "true"

	pflag.BoolVarP(
		&args.isNotify,
		"notify",
		"n",
		false,
		"report mode: raise a desktop notification if flight log lines were dropped")
	pflag.Lookup("notify").NoOptDefVal = "true"
}
