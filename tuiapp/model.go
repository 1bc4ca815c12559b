package tuiapp

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/micutio/jettrack/internal"
	"github.com/micutio/jettrack/pkg/logger"
)

// Rows taken by everything except the page body: header, slider, metric cards and footer.
const (
	chromeHeight = 10
	legendWidth  = 30
	minMapHeight = 5
)

// Model implements the bubbletea.Model interface, which requires three methods:
// - Init() Cmd
// - Update(Msg) (Model, Cmd)
// - View() string
// This forms the base for the TUI app.
type model struct {
	appName    string
	width      int
	height     int
	baseStyle  lipgloss.Style
	viewStyle  lipgloss.Style
	theme      Theme
	page       uiState
	flightTbl  autoFormatTable
	routeTbl   autoFormatTable
	tableStyle table.Styles
	dashboard  *internal.Dashboard
	dateIdx    int
	visible    []internal.FlightRecord
	load       dashboardLoader
	export     exporter
	lastLoad   time.Time
	status     string
	log        *logger.Logger
}

func newModel(appName string, load dashboardLoader, export exporter, log *logger.Logger) *model {
	if log == nil {
		log = logger.Nop()
	}

	tableStyle := table.DefaultStyles()
	tableStyle.Selected = lipgloss.NewStyle().Background(Color.Highlight)

	return &model{
		appName:    appName,
		width:      0,
		height:     0,
		baseStyle:  lipgloss.NewStyle(),
		viewStyle:  lipgloss.NewStyle(),
		theme:      Color,
		page:       flightsPage,
		flightTbl:  newFlightTable(tableStyle),
		routeTbl:   newRouteTable(tableStyle),
		tableStyle: tableStyle,
		dashboard:  nil,
		dateIdx:    0,
		visible:    nil,
		load:       load,
		export:     export,
		lastLoad:   time.Time{},
		status:     "loading flight log",
		log:        log.Named("tui"),
	}
}

// Init loads the flight log for the first time.
func (m *model) Init() tea.Cmd {
	return loadDashboardCmd(m.load)
}

// Update takes a tea.Msg as input and uses a type switch to handle different types of messages.
// Each case in the switch statement corresponds to a specific message type.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { //nolint:ireturn // required by interface
	switch thisMsg := msg.(type) {
	// message is sent when the window size changes
	// save to reflect the new dimensions of the terminal window.
	case tea.WindowSizeMsg:
		m.height = thisMsg.Height
		m.width = thisMsg.Width
		m.layout()

	// message is sent when a key is pressed.
	case tea.KeyMsg:
		return m.handleKey(thisMsg)

	case DashboardLoadedMsg:
		if thisMsg.err != nil {
			m.log.Error("failed to load flight log", logger.Error(thisMsg.err))
			m.status = "load failed: " + thisMsg.err.Error()

			return m, nil
		}

		m.dashboard = thisMsg.dashboard
		m.lastLoad = thisMsg.at
		m.dateIdx = len(m.dashboard.Dates()) - 1
		m.status = fmt.Sprintf("loaded %d flights", len(m.dashboard.Records))
		m.log.Info("dashboard loaded", logger.Int("flights", len(m.dashboard.Records)))
		m.refresh()

	case ExportDoneMsg:
		if thisMsg.err != nil {
			m.log.Error("export failed", logger.Error(thisMsg.err))
			m.status = "export failed: " + thisMsg.err.Error()

			return m, nil
		}

		if len(thisMsg.paths) == 0 {
			m.status = "no export configured"
		} else {
			m.status = "exported " + strings.Join(thisMsg.paths, ", ")
		}
	}

	// If the message type does not match any of the handled cases, the model is returned unchanged,
	// and no new command is issued.
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) { //nolint:ireturn // bubbletea model
	switch msg.String() {
	// Quits the program by returning the tea.Quit command.
	case "q", "ctrl+c":
		return m, tea.Quit
	// Moves the date slider.
	case "left", "h":
		m.setDate(m.dateIdx - 1)
	case "right", "l":
		m.setDate(m.dateIdx + 1)
	case "home", "g":
		m.setDate(0)
	case "end", "G":
		m.setDate(len(m.dates()) - 1)
	case "tab":
		m.page = m.page.next()
	case "r":
		m.status = "reloading flight log"
		return m, loadDashboardCmd(m.load)
	case "e":
		if m.dashboard == nil || m.export == nil {
			return m, nil
		}

		m.status = "exporting"

		return m, exportCmd(m.export, m.dashboard, m.visible)
	// Toggles the focus state of the active table
	case "esc":
		active := m.activeTable()
		if active.table.Focused() {
			m.tableStyle.Selected = m.baseStyle
			active.table.SetStyles(m.tableStyle)
			active.table.Blur()
		} else {
			m.tableStyle.Selected = m.tableStyle.Selected.Background(m.theme.Highlight)
			active.table.SetStyles(m.tableStyle)
			active.table.Focus()
		}
	// Moves the focus up in the active table if the table is focused.
	case "up", "k":
		if active := m.activeTable(); active.table.Focused() {
			active.table.MoveUp(1)
		}
	// Moves the focus down in the active table if the table is focused.
	case "down", "j":
		if active := m.activeTable(); active.table.Focused() {
			active.table.MoveDown(1)
		}
	}

	return m, nil
}

func (m *model) activeTable() *autoFormatTable {
	if m.page == routesPage {
		return &m.routeTbl
	}

	return &m.flightTbl
}

func (m *model) dates() []time.Time {
	if m.dashboard == nil {
		return nil
	}

	return m.dashboard.Dates()
}

// setDate moves the slider to idx, clamped to the known dates.
func (m *model) setDate(idx int) {
	dates := m.dates()
	if len(dates) == 0 {
		return
	}

	m.dateIdx = min(max(idx, 0), len(dates)-1)
	m.refresh()
}

// refresh recomputes the visible flights and both tables from the dashboard.
func (m *model) refresh() {
	dates := m.dates()
	if len(dates) == 0 {
		m.visible = nil
	} else {
		m.visible = m.dashboard.FilterUntil(dates[m.dateIdx])
	}

	flightRows := make([]table.Row, len(m.visible))
	for i := range m.visible {
		flightRows[i] = flightToRow(&m.visible[i])
	}

	m.flightTbl.table.SetRows(flightRows)

	var routeRows []table.Row
	if m.dashboard != nil {
		for _, route := range m.dashboard.RankRoutes(m.visible) {
			routeRows = append(routeRows, routeCountToRow(route, m.dashboard.Style))
		}
	}

	m.routeTbl.table.SetRows(routeRows)
}

func (m *model) bodyHeight() int {
	return max(m.height-chromeHeight, 2*minMapHeight)
}

func (m *model) mapHeight() int {
	return max(m.bodyHeight()/2, minMapHeight)
}

// layout resizes the tables to the terminal.
func (m *model) layout() {
	if err := m.flightTbl.resize(m.width); err != nil {
		m.log.Warn("failed to resize flight table", logger.Error(err))
	}

	if err := m.routeTbl.resize(m.width - legendWidth); err != nil {
		m.log.Warn("failed to resize route table", logger.Error(err))
	}

	m.flightTbl.SetHeight(m.bodyHeight() - m.mapHeight())
	m.routeTbl.SetHeight(m.bodyHeight())
}

func (m *model) View() string {
	if m.dashboard == nil {
		return m.viewStyle.Render(fmt.Sprintf("%s\n\n%s ...\n\nq: quit", m.appName, m.status))
	}

	var body string
	if m.page == routesPage {
		body = m.viewRoutes()
	} else {
		body = m.viewFlights()
	}

	// Sets the width of the column to the width of the terminal (m.width).
	column := m.baseStyle.Width(m.width).Render

	return lipgloss.JoinVertical(lipgloss.Left,
		column(m.viewHeader()),
		column(m.viewSlider()),
		column(m.viewMetrics()),
		column(body),
		column(m.viewFooter()),
	)
}

func (m *model) viewHeader() string {
	title := m.baseStyle.Bold(true).Foreground(m.theme.Highlight).Render(m.appName)
	page := m.baseStyle.Foreground(m.theme.Secondary).Render(" · " + m.page.String())

	return title + page + m.baseStyle.Foreground(m.theme.Secondary).Render(
		fmt.Sprintf(" · loaded %s", m.lastLoad.Format("15:04:05")))
}

// viewSlider draws the date slider: one stop per distinct flight date.
func (m *model) viewSlider() string {
	dates := m.dates()
	if len(dates) == 0 {
		return "no flights"
	}

	track := max(m.width-30, 10) //nolint: mnd // room for the date labels
	pos := 0

	if len(dates) > 1 {
		pos = m.dateIdx * (track - 1) / (len(dates) - 1)
	}

	bar := strings.Repeat("─", pos) + "●" + strings.Repeat("─", track-1-pos)
	label := fmt.Sprintf("until %s (%d/%d)", dates[m.dateIdx].Format("2006-01-02"), m.dateIdx+1, len(dates))

	return lipgloss.JoinVertical(lipgloss.Left,
		m.baseStyle.Bold(true).Render(label),
		fmt.Sprintf("%s ├%s┤ %s",
			dates[0].Format("2006-01-02"),
			m.baseStyle.Foreground(m.theme.Highlight).Render(bar),
			dates[len(dates)-1].Format("2006-01-02")),
	)
}

func (m *model) viewMetrics() string {
	summary := m.dashboard.Summarize(m.visible)

	card := m.baseStyle.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)

	metric := func(name, value string) string {
		return card.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.baseStyle.Foreground(m.theme.Secondary).Render(name),
			m.baseStyle.Bold(true).Render(value)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		metric("Flights", fmt.Sprintf("%d", summary.Flights)),
		metric("Total distance", fmt.Sprintf("%.0f km", summary.TotalKm)),
		metric("Mean distance", fmt.Sprintf("%.0f km", summary.MeanKm)),
		metric("CO2", fmt.Sprintf("%.1f t", summary.CO2Tonnes)),
		metric("Yearly CO2 of "+m.dashboard.Emissions.ReferenceName,
			fmt.Sprintf("%.2f %%", summary.ReferencePercent)),
	)
}

func (m *model) viewFlights() string {
	rm := newRouteMap(m.width, m.mapHeight(), m.dashboard.Segments(m.dashboard.Records))
	rm.draw(m.dashboard.Segments(m.visible))

	return lipgloss.JoinVertical(lipgloss.Left,
		rm.render(m.theme),
		m.viewStyle.Render(m.flightTbl.table.View()),
	)
}

func (m *model) viewRoutes() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewStyle.Render(m.routeTbl.table.View()),
		m.viewLegend(),
	)
}

func (m *model) viewLegend() string {
	lines := []string{m.baseStyle.Bold(true).Render("Times flown")}
	for _, tier := range internal.Tiers {
		swatch := m.baseStyle.Foreground(lipgloss.Color(tier.Color())).Render("━━━")
		lines = append(lines, fmt.Sprintf("%s %s", swatch, tier.CountLabel()))
	}

	lines = append(lines, "", "line width: "+string(m.dashboard.Style.Policy))

	return m.baseStyle.Width(legendWidth).Padding(0, 2).Render(strings.Join(lines, "\n"))
}

func (m *model) viewFooter() string {
	help := "←/→ date · home/end jump · tab page · r reload · e export · q quit"

	return m.baseStyle.Foreground(m.theme.Secondary).Render(help + " · " + m.status)
}
