package internal

import "sort"

// RouteCountTuple pairs a route with how often it was flown.
type RouteCountTuple struct {
	Route RouteKey
	Count int
}

// ByCount sorts routes from most to least flown, ties by route key.
type ByCount []RouteCountTuple

func (a ByCount) Len() int { return len(a) }
func (a ByCount) Less(i, j int) bool {
	if a[i].Count != a[j].Count {
		return a[i].Count > a[j].Count
	}

	if a[i].Route.Origin != a[j].Route.Origin {
		return a[i].Route.Origin < a[j].Route.Origin
	}

	return a[i].Route.Destination < a[j].Route.Destination
}
func (a ByCount) Swap(i, j int) { a[i], a[j] = a[j], a[i] }

// GetSortedRouteCounts flattens the route counts and sorts them with ByCount.
func GetSortedRouteCounts(routeCountMap map[RouteKey]int) []RouteCountTuple {
	routeCounts := make([]RouteCountTuple, 0, len(routeCountMap))
	for key, value := range routeCountMap {
		routeCounts = append(routeCounts, RouteCountTuple{Route: key, Count: value})
	}

	sort.Sort(ByCount(routeCounts))

	return routeCounts
}
