package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"github.com/wayfare-travel/service-trip/internal/domain/geo"
)

// ErrNoResults is returned when a query matches no place.
var ErrNoResults = errors.New("no place matched the query")

// Resolver turns a free-text place query into coordinates.
type Resolver interface {
	Resolve(ctx context.Context, query string) (geo.GeoPoint, error)
}

// Geocoder resolves places through the Google Geocoding API.
type Geocoder struct {
	client *maps.Client
	region string
}

// NewGeocoder creates a Geocoder with the given API key. region biases results (ccTLD, e.g. "ma").
func NewGeocoder(apiKey, region string) (*Geocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Geocoder{client: client, region: region}, nil
}

// Resolve returns the location of the best match for query.
func (g *Geocoder) Resolve(ctx context.Context, query string) (geo.GeoPoint, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: query,
		Region:  g.region,
	})
	if err != nil {
		return geo.GeoPoint{}, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return geo.GeoPoint{}, ErrNoResults
	}

	loc := results[0].Geometry.Location
	return geo.GeoPoint{Lat: loc.Lat, Lng: loc.Lng}, nil
}
