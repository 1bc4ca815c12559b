package export

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/micutio/jettrack/internal"
)

// Page layout of the report, in millimeters on landscape A4.
const (
	pageMargin   = 10.0
	mapOffsetX   = pageMargin
	mapOffsetY   = 28.0
	mapWidth     = 200.0
	mapHeight    = 165.0
	legendX      = mapOffsetX + mapWidth + 8
	legendBox    = 6.0
	mapPadDeg    = 4.0
	widthToMm    = 0.2
	airportDotMm = 0.8
	routeRows    = 30
)

// projection maps coordinates onto the map box with a plain equirectangular projection.
type projection struct {
	minLon, maxLat float64
	scale          float64
	offX, offY     float64
}

func newProjection(segments []internal.Segment) projection {
	minLon, maxLon, minLat, maxLat := -180.0, 180.0, -70.0, 80.0

	if len(segments) > 0 {
		minLon, maxLon = math.Inf(1), math.Inf(-1)
		minLat, maxLat = math.Inf(1), math.Inf(-1)

		for _, segment := range segments {
			for _, pos := range []internal.Coordinates{segment.From, segment.To} {
				minLon = math.Min(minLon, pos.Longitude)
				maxLon = math.Max(maxLon, pos.Longitude)
				minLat = math.Min(minLat, pos.Latitude)
				maxLat = math.Max(maxLat, pos.Latitude)
			}
		}

		minLon, maxLon = minLon-mapPadDeg, maxLon+mapPadDeg
		minLat, maxLat = minLat-mapPadDeg, maxLat+mapPadDeg
	}

	scale := math.Min(mapWidth/(maxLon-minLon), mapHeight/(maxLat-minLat))

	return projection{
		minLon: minLon,
		maxLat: maxLat,
		scale:  scale,
		offX:   mapOffsetX + (mapWidth-(maxLon-minLon)*scale)/2,
		offY:   mapOffsetY + (mapHeight-(maxLat-minLat)*scale)/2,
	}
}

func (p projection) point(pos internal.Coordinates) (float64, float64) {
	return p.offX + (pos.Longitude-p.minLon)*p.scale, p.offY + (p.maxLat-pos.Latitude)*p.scale
}

// hexToRGB parses "#RRGGBB". Unparseable colors come out black.
func hexToRGB(hex string) (int, int, int) {
	color, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0
	}

	r, g, b := color.RGB255()

	return int(r), int(g), int(b)
}

// pdfText replaces characters the core fonts cannot show.
func pdfText(text string) string {
	return strings.ReplaceAll(text, "→", "->")
}

// NewReportPdf renders the route map, metrics, legend and route ranking of records.
func NewReportPdf(db *internal.Dashboard, records []internal.FlightRecord, title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	drawHeader(pdf, db, records, title)

	segments := db.Segments(records)
	proj := newProjection(segments)
	drawFrame(pdf)
	drawSegments(pdf, proj, segments)
	drawAirports(pdf, proj, segments)
	drawLegend(pdf, db)

	pdf.AddPage()
	drawRouteTable(pdf, db.RankRoutes(records))

	return pdf
}

func drawHeader(pdf *gofpdf.Fpdf, db *internal.Dashboard, records []internal.FlightRecord, title string) {
	summary := db.Summarize(records)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(pageMargin, pageMargin)
	pdf.Cell(0, 8, pdfText(title))

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(pageMargin, pageMargin+9)
	pdf.Cell(0, 6, fmt.Sprintf(
		"%d flights   %.0f km total   %.0f km mean   %.2f t CO2 (%.2f%% of %s)",
		summary.Flights, summary.TotalKm, summary.MeanKm, summary.CO2Tonnes,
		summary.ReferencePercent, db.Emissions.ReferenceName))
}

func drawFrame(pdf *gofpdf.Fpdf) {
	pdf.SetDrawColor(0x00, 0x00, 0x00)
	pdf.SetLineWidth(0.3)
	pdf.Rect(mapOffsetX, mapOffsetY, mapWidth, mapHeight, "D")
}

// drawSegments draws the most flown routes last so they stay visible.
func drawSegments(pdf *gofpdf.Fpdf, proj projection, segments []internal.Segment) {
	ordered := make([]internal.Segment, len(segments))
	copy(ordered, segments)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Count < ordered[j].Count })

	for _, segment := range ordered {
		r, g, b := hexToRGB(segment.Color)
		pdf.SetDrawColor(r, g, b)
		pdf.SetLineWidth(segment.Width * widthToMm)

		x1, y1 := proj.point(segment.From)
		x2, y2 := proj.point(segment.To)
		pdf.Line(x1, y1, x2, y2)
	}
}

func drawAirports(pdf *gofpdf.Fpdf, proj projection, segments []internal.Segment) {
	seen := make(map[internal.AirportCode]bool)

	pdf.SetFillColor(0x21, 0x21, 0x21)
	pdf.SetTextColor(0x21, 0x21, 0x21)
	pdf.SetFont("Helvetica", "", 6)

	for _, segment := range segments {
		ends := []struct {
			code internal.AirportCode
			pos  internal.Coordinates
		}{
			{segment.Route.Origin, segment.From},
			{segment.Route.Destination, segment.To},
		}

		for _, end := range ends {
			if seen[end.code] {
				continue
			}

			seen[end.code] = true
			x, y := proj.point(end.pos)
			pdf.Circle(x, y, airportDotMm, "F")
			pdf.Text(x+1.2, y-1.2, string(end.code))
		}
	}
}

func drawLegend(pdf *gofpdf.Fpdf, db *internal.Dashboard) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(legendX, mapOffsetY)
	pdf.Cell(0, 6, "Times flown")

	pdf.SetFont("Helvetica", "", 9)

	for i, tier := range internal.Tiers {
		y := mapOffsetY + 8 + float64(i)*(legendBox+2)
		r, g, b := hexToRGB(tier.Color())
		pdf.SetFillColor(r, g, b)
		pdf.Rect(legendX, y, legendBox, legendBox, "F")
		pdf.SetXY(legendX+legendBox+2, y)
		pdf.Cell(40, legendBox, fmt.Sprintf("%s (%s)", tier, tier.CountLabel()))
	}

	pdf.SetXY(legendX, mapOffsetY+8+float64(len(internal.Tiers))*(legendBox+2)+2)
	pdf.Cell(40, legendBox, "line width: "+string(db.Style.Policy))
}

func drawRouteTable(pdf *gofpdf.Fpdf, routes []internal.RouteCountTuple) {
	pdf.SetTextColor(0x00, 0x00, 0x00)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(pageMargin, pageMargin)
	pdf.Cell(0, 8, "Routes from most to least flown")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 9)

	for i, route := range routes {
		if i == routeRows {
			pdf.Cell(0, 5, fmt.Sprintf("... and %d more", len(routes)-routeRows))
			break
		}

		pdf.CellFormat(15, 5, fmt.Sprintf("%d", route.Count), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 5, fmt.Sprintf("%s -> %s", route.Route.Origin, route.Route.Destination), "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, internal.TierForCount(route.Count).String(), "", 1, "L", false, 0, "")
	}
}

// WritePDF renders the report of records and writes it to w.
func WritePDF(w io.Writer, db *internal.Dashboard, records []internal.FlightRecord, title string) error {
	if err := NewReportPdf(db, records, title).Output(w); err != nil {
		return fmt.Errorf("WritePDF: %w", err)
	}

	return nil
}

// SavePDF renders the report of records to filePath.
func SavePDF(filePath string, db *internal.Dashboard, records []internal.FlightRecord, title string) error {
	if err := NewReportPdf(db, records, title).OutputFileAndClose(filePath); err != nil {
		return fmt.Errorf("SavePDF: %w", err)
	}

	return nil
}
