package tuiapp

import (
	"strings"
	"testing"

	"github.com/micutio/jettrack/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineGlyph(t *testing.T) {
	assert.Equal(t, '─', lineGlyph(10, 1))
	assert.Equal(t, '│', lineGlyph(1, -10))
	assert.Equal(t, '╲', lineGlyph(5, 4))
	assert.Equal(t, '╲', lineGlyph(-5, -4))
	assert.Equal(t, '╱', lineGlyph(5, -4))
}

func testSegment(origin, destination internal.AirportCode, from, to internal.Coordinates, tier internal.Tier) internal.Segment {
	return internal.Segment{
		From:  from,
		To:    to,
		Route: internal.RouteKey{Origin: origin, Destination: destination},
		Tier:  tier,
	}
}

func TestRouteMapProjection(t *testing.T) {
	segments := []internal.Segment{
		testSegment("AAA", "BBB", internal.NewCoordinates(10, 0), internal.NewCoordinates(30, 40), internal.TierSingle),
	}

	rm := newRouteMap(45, 25, segments)

	x, y := rm.project(internal.NewCoordinates(32, -2))
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	x, y = rm.project(internal.NewCoordinates(8, 42))
	assert.Equal(t, 44, x)
	assert.Equal(t, 24, y)
}

func TestRouteMapDraw(t *testing.T) {
	from, to := internal.NewCoordinates(20, 0), internal.NewCoordinates(20, 40)
	segments := []internal.Segment{
		testSegment("AAA", "BBB", from, to, internal.TierSingle),
		testSegment("AAA", "BBB", from, to, internal.TierHigh),
	}

	rm := newRouteMap(45, 9, segments)
	rm.draw(segments)

	lines := strings.Split(rm.render(Color), "\n")
	require.Len(t, lines, 9)

	// horizontal route on the middle row
	middle := lines[4]
	assert.Contains(t, middle, "●AAA")
	assert.Contains(t, middle, "●BB")
	assert.Contains(t, middle, "─")

	_, y := rm.project(from)
	for x := range rm.cells[y] {
		cell := rm.cells[y][x]
		if !cell.airport && cell.glyph == '─' {
			assert.Equal(t, internal.TierHigh, cell.tier, "the most flown tier wins a shared cell")
		}
	}
}

func TestRouteMapWithoutSegments(t *testing.T) {
	rm := newRouteMap(0, 0, nil)
	rm.draw(nil)

	assert.Equal(t, 2, rm.width)
	assert.Equal(t, 2, rm.height)
	assert.Len(t, strings.Split(rm.render(Color), "\n"), 2)
}
