package tuiapp

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/micutio/jettrack/internal"
)

// Error types

var errColumnMismatch = errors.New("number of columns does not match number of format columns")

// Automated Table Formatting

type tableColumnSizingOption int

const (
	// fixed column width, regardless of table width.
	fixed tableColumnSizingOption = iota
	// relative column with, given as percentage of the total table width.
	relative
	// fill columns receive any remaining table space, evenly distributed.
	fill
)

type columnFormat struct {
	option tableColumnSizingOption
	value  float32
}

type tableFormat struct {
	columnSizes        []columnFormat
	fixedWidth         int     // fixedWidth is the total space taken up by all fixed-width columns.
	fillWidthCount     int     // fillWidthCount indicates how many columns have fill width.
	totalRelativeWidth float32 // how much width is taken by relative columns.
}

func newTableFormat(items ...columnFormat) tableFormat {
	var totalRelativeWidth float32
	fixedWidth := 0
	fillWidthCount := 0

	for _, item := range items {
		switch item.option {
		case relative:
			totalRelativeWidth += item.value
			continue
		case fixed:
			fixedWidth += int(item.value)
			continue
		case fill:
			fillWidthCount++
			continue
		}
	}

	return tableFormat{
		columnSizes:        items,
		fixedWidth:         fixedWidth,
		fillWidthCount:     fillWidthCount,
		totalRelativeWidth: totalRelativeWidth,
	}
}

// Integrated Formatted Table Type

type autoFormatTable struct {
	table  table.Model
	format tableFormat
}

// resize distributes newWidth over the columns. Every column gives up one cell for the
// separator.
func (aft *autoFormatTable) resize(newWidth int) error {
	columnCount := len(aft.table.Columns())
	if columnCount != len(aft.format.columnSizes) {
		return fmt.Errorf(
			"table.resize: %w -> %d in table, %d in tableFormat",
			errColumnMismatch,
			columnCount,
			len(aft.format.columnSizes))
	}

	adjustedWidth := max(newWidth-1-columnCount, 0)
	aft.table.SetWidth(adjustedWidth)
	totalRelativeWidth := int(float32(adjustedWidth) * aft.format.totalRelativeWidth)
	totalFillWidth := adjustedWidth - totalRelativeWidth - aft.format.fixedWidth

	fillPerColumn := 0
	if aft.format.fillWidthCount > 0 {
		fillPerColumn = totalFillWidth / aft.format.fillWidthCount
	}

	columns := make([]table.Column, columnCount)
	copy(columns, aft.table.Columns())

	for idx := 0; idx < columnCount; idx++ {
		format := aft.format.columnSizes[idx]
		width := 0

		switch format.option {
		case fixed:
			width = int(format.value)
		case relative:
			width = int(format.value * float32(adjustedWidth))
		case fill:
			width = fillPerColumn
		}

		columns[idx].Width = max(width-1, 0)
	}

	aft.table.SetColumns(columns)

	return nil
}

func (aft *autoFormatTable) SetHeight(height int) {
	aft.table.SetHeight(height)
}

func newFlightTable(tableStyle table.Styles) autoFormatTable {
	dateLen := 11
	kmLen := 8
	headingLen := 19
	countLen := 6
	tierLen := 12
	initialTableHeight := 5
	format := newTableFormat(
		columnFormat{fixed, float32(dateLen)},
		columnFormat{fill, 0.0},
		columnFormat{fill, 0.0},
		columnFormat{fixed, float32(kmLen)},
		columnFormat{fixed, float32(headingLen)},
		columnFormat{fixed, float32(countLen)},
		columnFormat{fixed, float32(tierLen)},
	)

	flightTbl := table.New(
		// table header
		table.WithColumns(
			[]table.Column{
				{Title: "Date", Width: dateLen},
				{Title: "From", Width: 0},
				{Title: "To", Width: 0},
				{Title: "km", Width: kmLen},
				{Title: "Heading", Width: headingLen},
				{Title: "Flown", Width: countLen},
				{Title: "Tier", Width: tierLen},
			},
		),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(initialTableHeight),
		table.WithStyles(tableStyle),
	)

	return autoFormatTable{
		table:  flightTbl,
		format: format,
	}
}

func newRouteTable(tableStyle table.Styles) autoFormatTable {
	countLen := 7
	tierLen := 12
	widthLen := 7
	initialTableHeight := 5
	format := newTableFormat(
		columnFormat{fixed, float32(countLen)},
		columnFormat{fill, 0.0},
		columnFormat{fixed, float32(tierLen)},
		columnFormat{fixed, float32(widthLen)},
	)

	// Create a new table with specified columns and initial empty rows.
	routeTbl := table.New(
		// table header
		table.WithColumns(
			[]table.Column{
				{Title: "Count", Width: countLen},
				{Title: "Route", Width: 0},
				{Title: "Tier", Width: tierLen},
				{Title: "Width", Width: widthLen},
			},
		),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(initialTableHeight),
		table.WithStyles(tableStyle),
	)

	return autoFormatTable{
		table:  routeTbl,
		format: format,
	}
}

func flightToRow(flight *internal.FlightRecord) table.Row {
	return table.Row{
		flight.Date.Format("2006-01-02"),
		flight.Origin,
		flight.Destination,
		fmt.Sprintf("%6.0f", flight.DistanceKm),
		flight.Direction,
		fmt.Sprintf("%4dx", flight.RouteCount),
		flight.Tier.String(),
	}
}

func routeCountToRow(routeCount internal.RouteCountTuple, style internal.LineStyle) table.Row {
	return table.Row{
		fmt.Sprintf("%5d", routeCount.Count),
		routeCount.Route.String(),
		internal.TierForCount(routeCount.Count).String(),
		fmt.Sprintf("%3.0f", style.Width(routeCount.Count)),
	}
}
