package tuiapp

type uiState int

const (
	flightsPage uiState = iota // first page on startup, showing the route map and flown flights
	routesPage                 // second page, showing route frequencies and the legend
)

func (s uiState) next() uiState {
	if s == flightsPage {
		return routesPage
	}

	return flightsPage
}

func (s uiState) String() string {
	if s == routesPage {
		return "routes"
	}

	return "flights"
}
