package tuiapp

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/micutio/jettrack/internal"
)

const (
	mapPadDeg     = 2.0
	airportGlyph  = '●'
	emptyGlyph    = ' '
	minMapExtents = 1.0
)

// mapCell is one character of the route map. tier is zero for empty and airport cells.
type mapCell struct {
	glyph   rune
	tier    internal.Tier
	airport bool
}

// routeMap is an equirectangular route map drawn into a character grid.
type routeMap struct {
	width  int
	height int
	cells  [][]mapCell

	minLon, maxLat float64
	scaleX, scaleY float64
}

// newRouteMap sizes the projection to bounds, so the map does not move while the set of
// drawn segments changes.
func newRouteMap(width, height int, bounds []internal.Segment) *routeMap {
	width = max(width, 2)
	height = max(height, 2)

	minLon, maxLon, minLat, maxLat := -180.0, 180.0, -60.0, 75.0
	if len(bounds) > 0 {
		minLon, maxLon = math.Inf(1), math.Inf(-1)
		minLat, maxLat = math.Inf(1), math.Inf(-1)

		for _, segment := range bounds {
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

	cells := make([][]mapCell, height)
	for y := range cells {
		cells[y] = make([]mapCell, width)
		for x := range cells[y] {
			cells[y][x] = mapCell{glyph: emptyGlyph, tier: 0, airport: false}
		}
	}

	return &routeMap{
		width:  width,
		height: height,
		cells:  cells,
		minLon: minLon,
		maxLat: maxLat,
		scaleX: float64(width-1) / math.Max(maxLon-minLon, minMapExtents),
		scaleY: float64(height-1) / math.Max(maxLat-minLat, minMapExtents),
	}
}

func (rm *routeMap) project(pos internal.Coordinates) (int, int) {
	x := int(math.Round((pos.Longitude - rm.minLon) * rm.scaleX))
	y := int(math.Round((rm.maxLat - pos.Latitude) * rm.scaleY))

	return x, y
}

func (rm *routeMap) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < rm.width && y < rm.height
}

// lineGlyph picks the box drawing character closest to the slope of a line. y grows downwards.
func lineGlyph(dx, dy int) rune {
	adx, ady := abs(dx), abs(dy)

	switch {
	case ady*2 < adx:
		return '─'
	case adx*2 < ady:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// drawLine rasterizes a segment with Bresenham's algorithm. A cell keeps the highest tier
// drawn through it.
func (rm *routeMap) drawLine(x0, y0, x1, y1 int, tier internal.Tier) {
	glyph := lineGlyph(x1-x0, y1-y0)
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1

	if x0 > x1 {
		sx = -1
	}

	if y0 > y1 {
		sy = -1
	}

	err := dx + dy

	for {
		if rm.inside(x0, y0) {
			cell := &rm.cells[y0][x0]
			if !cell.airport && tier >= cell.tier {
				cell.glyph = glyph
				cell.tier = tier
			}
		}

		if x0 == x1 && y0 == y1 {
			return
		}

		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}

		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (rm *routeMap) drawAirport(code internal.AirportCode, pos internal.Coordinates) {
	x, y := rm.project(pos)
	if !rm.inside(x, y) {
		return
	}

	rm.cells[y][x] = mapCell{glyph: airportGlyph, tier: 0, airport: true}

	for i, r := range string(code) {
		lx := x + 1 + i
		if !rm.inside(lx, y) || rm.cells[y][lx].airport {
			return
		}

		rm.cells[y][lx] = mapCell{glyph: r, tier: 0, airport: true}
	}
}

// draw puts all segments on the map, airports last so they stay readable.
func (rm *routeMap) draw(segments []internal.Segment) {
	for _, segment := range segments {
		x0, y0 := rm.project(segment.From)
		x1, y1 := rm.project(segment.To)
		rm.drawLine(x0, y0, x1, y1, segment.Tier)
	}

	for _, segment := range segments {
		rm.drawAirport(segment.Route.Origin, segment.From)
		rm.drawAirport(segment.Route.Destination, segment.To)
	}
}

// render writes the map row by row, coloring runs of equal cells in one go.
func (rm *routeMap) render(theme Theme) string {
	airportStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	lines := make([]string, rm.height)

	for y, row := range rm.cells {
		var line strings.Builder

		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && row[end].tier == row[start].tier && row[end].airport == row[start].airport {
				end++
			}

			run := make([]rune, 0, end-start)
			for _, cell := range row[start:end] {
				run = append(run, cell.glyph)
			}

			switch {
			case row[start].airport:
				line.WriteString(airportStyle.Render(string(run)))
			case row[start].tier > 0:
				style := lipgloss.NewStyle().Foreground(lipgloss.Color(row[start].tier.Color()))
				line.WriteString(style.Render(string(run)))
			default:
				line.WriteString(string(run))
			}

			start = end
		}

		lines[y] = line.String()
	}

	return strings.Join(lines, "\n")
}
