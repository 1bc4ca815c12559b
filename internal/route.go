package internal

import (
	"errors"
	"fmt"
)

var errUnknownWidthPolicy = errors.New("unknown width policy")

// RouteKey is an ordered (origin, destination) pair. A->B and B->A are different routes.
type RouteKey struct {
	Origin      AirportCode
	Destination AirportCode
}

func (k RouteKey) String() string {
	return fmt.Sprintf("%s→%s", k.Origin, k.Destination)
}

// Tier buckets how often a route was flown.
type Tier int

const (
	TierSingle Tier = iota + 1
	TierLowMedium
	TierMedium
	TierMediumHigh
	TierHigh
)

// Tiers lists all tiers from least to most flown, for legends.
var Tiers = []Tier{TierSingle, TierLowMedium, TierMedium, TierMediumHigh, TierHigh} //nolint: gochecknoglobals // read-only

// TierForCount maps a route occurrence count to its tier.
func TierForCount(count int) Tier {
	switch {
	case count >= 5: //nolint: mnd // tier threshold
		return TierHigh
	case count == 4: //nolint: mnd // tier threshold
		return TierMediumHigh
	case count == 3: //nolint: mnd // tier threshold
		return TierMedium
	case count == 2: //nolint: mnd // tier threshold
		return TierLowMedium
	default:
		return TierSingle
	}
}

func (t Tier) String() string {
	switch t {
	case TierLowMedium:
		return "low-medium"
	case TierMedium:
		return "medium"
	case TierMediumHigh:
		return "medium-high"
	case TierHigh:
		return "high"
	case TierSingle:
		return "single"
	default:
		return "single"
	}
}

// Color is the map color of the tier as a hex RGB string.
func (t Tier) Color() string {
	switch t {
	case TierLowMedium:
		return "#FFC107"
	case TierMedium:
		return "#FF9800"
	case TierMediumHigh:
		return "#F4511E"
	case TierHigh:
		return "#B71C1C"
	case TierSingle:
		return "#9E9E9E"
	default:
		return "#9E9E9E"
	}
}

// CountLabel describes which counts fall into the tier.
func (t Tier) CountLabel() string {
	if t == TierHigh {
		return "5+ flights"
	}

	if t == TierSingle {
		return "1 flight"
	}

	return fmt.Sprintf("%d flights", int(t))
}

// WidthPolicy decides how thick a route line is drawn.
type WidthPolicy string

const (
	// WidthFixed draws every route with the same width; frequency shows only in the color.
	WidthFixed WidthPolicy = "fixed"
	// WidthScaled grows the width with the route count: 2 + (count-1)*2.
	WidthScaled WidthPolicy = "scaled"
)

// LineStyle is the chosen route line policy.
type LineStyle struct {
	Policy     WidthPolicy
	FixedWidth float64
}

func (s LineStyle) Validate() error {
	switch s.Policy {
	case WidthFixed, WidthScaled:
		return nil
	default:
		return fmt.Errorf("LineStyle.Validate: %w: %q", errUnknownWidthPolicy, s.Policy)
	}
}

// Width returns the line width for a route flown count times.
func (s LineStyle) Width(count int) float64 {
	if s.Policy == WidthScaled {
		return 2 + float64(count-1)*2 //nolint: mnd // width formula
	}

	return s.FixedWidth
}

// Aggregate counts the records per route and writes the count and tier back to every record
// of that route. Every record sharing a route ends up with the same count.
func Aggregate(records []FlightRecord) map[RouteKey]int {
	counts := make(map[RouteKey]int)
	for i := range records {
		counts[records[i].Route()]++
	}

	for i := range records {
		count := counts[records[i].Route()]
		records[i].RouteCount = count
		records[i].Tier = TierForCount(count)
	}

	return counts
}
