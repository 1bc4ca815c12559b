package export

import (
	"fmt"

	"github.com/micutio/jettrack/internal"
	"github.com/micutio/jettrack/pkg/logger"
)

// WriteConfigured writes every export whose path is set in cfg. It returns the paths written.
func WriteConfigured(
	cfg internal.ExportConfig,
	db *internal.Dashboard,
	records []internal.FlightRecord,
	title string,
	log *logger.Logger,
) ([]string, error) {
	if log == nil {
		log = logger.Nop()
	}

	log = log.Named("export")

	var written []string

	if cfg.GeoJSON != "" {
		if err := SaveGeoJSON(cfg.GeoJSON, db, records); err != nil {
			return written, fmt.Errorf("WriteConfigured: %w", err)
		}

		log.Info("geojson written", logger.String("path", cfg.GeoJSON), logger.Int("flights", len(records)))
		written = append(written, cfg.GeoJSON)
	}

	if cfg.PDF != "" {
		if err := SavePDF(cfg.PDF, db, records, title); err != nil {
			return written, fmt.Errorf("WriteConfigured: %w", err)
		}

		log.Info("pdf written", logger.String("path", cfg.PDF), logger.Int("flights", len(records)))
		written = append(written, cfg.PDF)
	}

	return written, nil
}
