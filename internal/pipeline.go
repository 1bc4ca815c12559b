package internal

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/micutio/jettrack/pkg/logger"
)

// PipelineStats combines the drop counters of normalization and table building.
type PipelineStats struct {
	Normalize NormalizeStats
	Build     BuildStats
}

// Dropped is the number of data lines that did not end up in the flight table.
func (s PipelineStats) Dropped() int {
	return s.Normalize.Malformed + s.Build.Dropped()
}

// FlightTable is the output of one pipeline run.
type FlightTable struct {
	Records     []FlightRecord
	RouteCounts map[RouteKey]int
	Stats       PipelineStats
}

// Pipeline runs raw text through normalizer, builder and aggregator.
type Pipeline struct {
	normalizer *Normalizer
	builder    *TableBuilder
	log        *logger.Logger
}

// NewPipeline assembles the pipeline from the configuration, loading extra airports if set.
func NewPipeline(cfg *Config, log *logger.Logger) (*Pipeline, error) {
	if log == nil {
		log = logger.Nop()
	}

	if err := ValidateTypos(cfg.Typos); err != nil {
		return nil, fmt.Errorf("NewPipeline: %w", err)
	}

	var extra map[AirportCode]Coordinates
	if cfg.AirportsCSV != "" {
		airports, err := LoadAirportsCSV(cfg.AirportsCSV)
		if err != nil {
			return nil, fmt.Errorf("NewPipeline: %w", err)
		}

		extra = airports
	}

	directory := NewAirportDirectory(extra)
	log.Debug("airport directory ready", logger.Int("airports", directory.Len()))

	return &Pipeline{
		normalizer: NewNormalizer(cfg.Typos),
		builder:    NewTableBuilder(directory, log),
		log:        log.Named("pipeline"),
	}, nil
}

// Run processes one flight log. If cleaned is not nil, the normalized rows are written to it.
func (p *Pipeline) Run(r io.Reader, cleaned io.Writer) (*FlightTable, error) {
	rows, normStats, err := p.normalizer.NormalizeAll(r)
	if err != nil {
		return nil, fmt.Errorf("Pipeline.Run: %w", err)
	}

	if cleaned != nil {
		if err := WriteCleaned(cleaned, rows); err != nil {
			return nil, fmt.Errorf("Pipeline.Run: %w", err)
		}
	}

	records, buildStats := p.builder.Build(rows)
	counts := Aggregate(records)

	table := &FlightTable{
		Records:     records,
		RouteCounts: counts,
		Stats:       PipelineStats{Normalize: normStats, Build: buildStats},
	}

	p.log.Info("flight table built",
		logger.Int("lines", normStats.Lines),
		logger.Int("malformed", normStats.Malformed),
		logger.Int("merged", normStats.Merged),
		logger.Int("bad_date", buildStats.BadDate),
		logger.Int("bad_distance", buildStats.BadDistance),
		logger.Int("unresolved_from", buildStats.UnresolvedOrigin),
		logger.Int("unresolved_to", buildStats.UnresolvedDestination),
		logger.Int("unresolved_rows", buildStats.Unresolved),
		logger.Int("kept", buildStats.Kept),
		logger.Int("routes", len(counts)))

	return table, nil
}

// LoadFile runs the pipeline on a flight log on disk. The cleaned artifact is written only
// after the log was read completely.
func (p *Pipeline) LoadFile(inputPath, cleanedPath string) (*FlightTable, error) {
	source, err := OpenFlightLog(inputPath)
	if err != nil {
		return nil, fmt.Errorf("Pipeline.LoadFile: %w", err)
	}
	defer func() {
		if closeErr := source.Close(); closeErr != nil {
			p.log.Warn("failed to close flight log", logger.String("path", inputPath), logger.Error(closeErr))
		}
	}()

	var cleaned *bytes.Buffer
	if cleanedPath != "" {
		cleaned = &bytes.Buffer{}
	}

	var table *FlightTable
	if cleaned != nil {
		table, err = p.Run(source, cleaned)
	} else {
		table, err = p.Run(source, nil)
	}

	if err != nil {
		return nil, fmt.Errorf("Pipeline.LoadFile: %w", err)
	}

	if cleaned != nil {
		if err := os.WriteFile(cleanedPath, cleaned.Bytes(), 0o644); err != nil { //nolint: gosec // plain data file
			return nil, fmt.Errorf("Pipeline.LoadFile: failed to write cleaned file: %w", err)
		}

		p.log.Info("cleaned flight log written", logger.String("path", cleanedPath))
	}

	return table, nil
}
