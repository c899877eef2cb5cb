package geo

import (
	"fmt"

	"github.com/wayfare-travel/service-trip/internal/common/domain"
)

// RouteStop is one place in an itinerary. Point is nil until the stop is resolved.
type RouteStop struct {
	Name          string    `json:"name"`
	Point         *GeoPoint `json:"point,omitempty"`
	Position      int       `json:"position"`
	DestinationID string    `json:"destination_id,omitempty"`
	PlaceQuery    string    `json:"place_query,omitempty"`
	VisitMinutes  int       `json:"visit_minutes,omitempty"`
}

// Resolved reports whether the stop has coordinates.
func (s RouteStop) Resolved() bool {
	return s.Point != nil
}

// Leg is the hop between two consecutive stops.
type Leg struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Km   float64 `json:"km"`
	// Estimated is set when an endpoint had no coordinates and Km is the fallback distance.
	Estimated bool `json:"estimated"`
}

// Itinerary is an ordered list of stops. Order is the traveller's and is never optimized.
type Itinerary struct {
	stops []RouteStop
}

// NewItinerary builds an itinerary from stops in the given order.
func NewItinerary(stops []RouteStop) *Itinerary {
	it := &Itinerary{stops: make([]RouteStop, len(stops))}
	copy(it.stops, stops)
	it.renumber()
	return it
}

// Stops returns a copy of the stops in itinerary order.
func (it *Itinerary) Stops() []RouteStop {
	out := make([]RouteStop, len(it.stops))
	copy(out, it.stops)
	return out
}

// Len returns the number of stops.
func (it *Itinerary) Len() int { return len(it.stops) }

// Add appends a stop at the end of the itinerary.
func (it *Itinerary) Add(stop RouteStop) {
	it.stops = append(it.stops, stop)
	it.renumber()
}

// Remove deletes the stop at position.
func (it *Itinerary) Remove(position int) error {
	if err := it.checkPosition(position); err != nil {
		return err
	}
	it.stops = append(it.stops[:position], it.stops[position+1:]...)
	it.renumber()
	return nil
}

// Move relocates the stop at from so it ends up at position to.
func (it *Itinerary) Move(from, to int) error {
	if err := it.checkPosition(from); err != nil {
		return err
	}
	if err := it.checkPosition(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	stop := it.stops[from]
	it.stops = append(it.stops[:from], it.stops[from+1:]...)
	it.stops = append(it.stops[:to], append([]RouteStop{stop}, it.stops[to:]...)...)
	it.renumber()
	return nil
}

// Legs returns consecutive legs. A leg with an unresolved endpoint gets fallbackKm.
func (it *Itinerary) Legs(fallbackKm float64) []Leg {
	if len(it.stops) < 2 {
		return nil
	}
	legs := make([]Leg, 0, len(it.stops)-1)
	for i := 1; i < len(it.stops); i++ {
		from, to := it.stops[i-1], it.stops[i]
		leg := Leg{From: from.Name, To: to.Name}
		if from.Resolved() && to.Resolved() {
			leg.Km = DistanceKm(*from.Point, *to.Point)
		} else {
			leg.Km = fallbackKm
			leg.Estimated = true
		}
		legs = append(legs, leg)
	}
	return legs
}

// RoadKm totals the legs, inflating measured legs by roadFactor. Fallback legs are already road estimates.
func RoadKm(legs []Leg, roadFactor float64) float64 {
	var total float64
	for _, leg := range legs {
		if leg.Estimated {
			total += leg.Km
			continue
		}
		total += RoadDistanceKm(leg.Km, roadFactor)
	}
	return total
}

// VisitMinutes sums the suggested visit time of all stops.
func (it *Itinerary) VisitMinutes() int {
	var total int
	for _, s := range it.stops {
		total += s.VisitMinutes
	}
	return total
}

func (it *Itinerary) checkPosition(position int) error {
	if position < 0 || position >= len(it.stops) {
		return domain.NewValidationError(fmt.Sprintf("stop position %d out of range", position))
	}
	return nil
}

func (it *Itinerary) renumber() {
	for i := range it.stops {
		it.stops[i].Position = i
	}
}
