package catalog

import (
	"sort"
	"strings"

	"github.com/wayfare-travel/service-trip/internal/domain/geo"
)

// Destination is a bookable stop with a suggested visit time.
type Destination struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Region       string       `json:"region"`
	Point        geo.GeoPoint `json:"point"`
	VisitMinutes int          `json:"visit_minutes"`
}

// Airport is a transfer pickup or dropoff point.
type Airport struct {
	Code  string       `json:"code"`
	Name  string       `json:"name"`
	City  string       `json:"city"`
	Point geo.GeoPoint `json:"point"`
}

var destinations = map[string]Destination{
	"marrakech":   {ID: "marrakech", Name: "Marrakech", Region: "Marrakech-Safi", Point: geo.GeoPoint{Lat: 31.6295, Lng: -7.9811}, VisitMinutes: 480},
	"casablanca":  {ID: "casablanca", Name: "Casablanca", Region: "Casablanca-Settat", Point: geo.GeoPoint{Lat: 33.5731, Lng: -7.5898}, VisitMinutes: 240},
	"rabat":       {ID: "rabat", Name: "Rabat", Region: "Rabat-Sale-Kenitra", Point: geo.GeoPoint{Lat: 34.0209, Lng: -6.8416}, VisitMinutes: 240},
	"fes":         {ID: "fes", Name: "Fes", Region: "Fes-Meknes", Point: geo.GeoPoint{Lat: 34.0181, Lng: -5.0078}, VisitMinutes: 480},
	"chefchaouen": {ID: "chefchaouen", Name: "Chefchaouen", Region: "Tanger-Tetouan-Al Hoceima", Point: geo.GeoPoint{Lat: 35.1688, Lng: -5.2636}, VisitMinutes: 240},
	"essaouira":   {ID: "essaouira", Name: "Essaouira", Region: "Marrakech-Safi", Point: geo.GeoPoint{Lat: 31.5085, Lng: -9.7595}, VisitMinutes: 300},
	"ouarzazate":  {ID: "ouarzazate", Name: "Ouarzazate", Region: "Draa-Tafilalet", Point: geo.GeoPoint{Lat: 30.9189, Lng: -6.8934}, VisitMinutes: 180},
	"merzouga":    {ID: "merzouga", Name: "Merzouga", Region: "Draa-Tafilalet", Point: geo.GeoPoint{Lat: 31.0802, Lng: -4.0133}, VisitMinutes: 600},
	"agadir":      {ID: "agadir", Name: "Agadir", Region: "Souss-Massa", Point: geo.GeoPoint{Lat: 30.4278, Lng: -9.5981}, VisitMinutes: 240},
}

var airports = map[string]Airport{
	"RAK": {Code: "RAK", Name: "Marrakech Menara Airport", City: "Marrakech", Point: geo.GeoPoint{Lat: 31.6069, Lng: -8.0363}},
	"CMN": {Code: "CMN", Name: "Mohammed V International Airport", City: "Casablanca", Point: geo.GeoPoint{Lat: 33.3675, Lng: -7.5899}},
	"FEZ": {Code: "FEZ", Name: "Fes-Saiss Airport", City: "Fes", Point: geo.GeoPoint{Lat: 33.9273, Lng: -4.9780}},
	"AGA": {Code: "AGA", Name: "Agadir Al Massira Airport", City: "Agadir", Point: geo.GeoPoint{Lat: 30.3250, Lng: -9.4131}},
	"ESU": {Code: "ESU", Name: "Essaouira Mogador Airport", City: "Essaouira", Point: geo.GeoPoint{Lat: 31.3975, Lng: -9.6817}},
}

// Destinations returns all destinations ordered by name.
func Destinations() []Destination {
	out := make([]Destination, 0, len(destinations))
	for _, d := range destinations {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FindDestination looks up a destination by id, ignoring case.
func FindDestination(id string) (Destination, bool) {
	d, ok := destinations[strings.ToLower(strings.TrimSpace(id))]
	return d, ok
}

// Airports returns all airports ordered by IATA code.
func Airports() []Airport {
	out := make([]Airport, 0, len(airports))
	for _, a := range airports {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// FindAirport looks up an airport by IATA code, ignoring case.
func FindAirport(code string) (Airport, bool) {
	a, ok := airports[strings.ToUpper(strings.TrimSpace(code))]
	return a, ok
}
