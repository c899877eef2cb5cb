package application

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wayfare-travel/service-trip/internal/common/domain"
	"github.com/wayfare-travel/service-trip/internal/domain/catalog"
	"github.com/wayfare-travel/service-trip/internal/domain/geo"
	"github.com/wayfare-travel/service-trip/internal/domain/pricing"
)

// PlaceResolver turns a free-text place into coordinates.
type PlaceResolver interface {
	Resolve(ctx context.Context, query string) (geo.GeoPoint, error)
}

// EstimateSettings tunes distance estimation.
type EstimateSettings struct {
	RoadFactor         float64
	FallbackTransferKm float64
	FallbackLegKm      float64
	Nights             pricing.NightsPolicy
}

// DefaultEstimateSettings returns the 1.2 road factor and the 50/100 km fallbacks.
func DefaultEstimateSettings() EstimateSettings {
	return EstimateSettings{
		RoadFactor:         geo.DefaultRoadFactor,
		FallbackTransferKm: 50,
		FallbackLegKm:      100,
		Nights:             pricing.DefaultNightsPolicy(),
	}
}

// StopInput describes a stop by coordinates, catalog id, airport code or free text.
type StopInput struct {
	Name          string   `json:"name" binding:"max=200"`
	Lat           *float64 `json:"lat" binding:"omitempty,latitude"`
	Lng           *float64 `json:"lng" binding:"omitempty,longitude"`
	DestinationID string   `json:"destination_id"`
	AirportCode   string   `json:"airport_code"`
	PlaceQuery    string   `json:"place_query" binding:"max=300"`
	VisitMinutes  *int     `json:"visit_minutes" binding:"omitempty,gte=0"`
}

// DistanceRequest asks for the distance along an ordered list of stops.
type DistanceRequest struct {
	Stops []StopInput `json:"stops" binding:"required,min=2,max=20,dive"`
}

// TripEstimateRequest asks for a multi-stop trip price. Nights defaults to the suggestion.
type TripEstimateRequest struct {
	Stops       []StopInput `json:"stops" binding:"required,min=1,max=20,dive"`
	VehicleTier string      `json:"vehicle_tier"`
	HotelTier   string      `json:"hotel_tier"`
	Nights      *int        `json:"nights" binding:"omitempty,gte=0,max=365"`
	Extras      []string    `json:"extras" binding:"max=20"`
	RoundTrip   bool        `json:"round_trip"`
}

// TransferEstimateRequest asks for a point-to-point transfer price.
type TransferEstimateRequest struct {
	Pickup      StopInput `json:"pickup"`
	Dropoff     StopInput `json:"dropoff"`
	VehicleTier string    `json:"vehicle_tier"`
	Extras      []string  `json:"extras" binding:"max=20"`
	RoundTrip   bool      `json:"round_trip"`
}

// DistanceDTO is the distance along a route.
type DistanceDTO struct {
	Stops         []geo.RouteStop `json:"stops"`
	Legs          []geo.Leg       `json:"legs"`
	StraightKm    float64         `json:"straight_km"`
	RoadKm        float64         `json:"road_km"`
	RoadFactor    float64         `json:"road_factor"`
	EstimatedLegs int             `json:"estimated_legs"`
}

// TripEstimateDTO is a priced trip.
type TripEstimateDTO struct {
	Stops           []geo.RouteStop        `json:"stops"`
	Legs            []geo.Leg              `json:"legs"`
	RoadKm          float64                `json:"road_km"`
	ActivityMinutes int                    `json:"activity_minutes"`
	SuggestedNights int                    `json:"suggested_nights"`
	Breakdown       pricing.PriceBreakdown `json:"breakdown"`
}

// TransferEstimateDTO is a priced transfer.
type TransferEstimateDTO struct {
	Stops     []geo.RouteStop        `json:"stops"`
	Legs      []geo.Leg              `json:"legs"`
	RoadKm    float64                `json:"road_km"`
	Breakdown pricing.PriceBreakdown `json:"breakdown"`
}

// EstimateService prices trips and transfers. It holds no state between calls.
type EstimateService struct {
	strategy pricing.Strategy
	resolver PlaceResolver
	settings EstimateSettings
	logger   *zap.Logger
}

// NewEstimateService creates an EstimateService. resolver may be nil, in which case
// free-text stops stay unresolved and are charged the fallback distance.
func NewEstimateService(
	strategy pricing.Strategy,
	resolver PlaceResolver,
	settings EstimateSettings,
	logger *zap.Logger,
) *EstimateService {
	return &EstimateService{
		strategy: strategy,
		resolver: resolver,
		settings: settings,
		logger:   logger,
	}
}

// EstimateDistance measures the route through stops in the given order.
func (s *EstimateService) EstimateDistance(ctx context.Context, req DistanceRequest) (*DistanceDTO, error) {
	it, err := s.buildItinerary(ctx, req.Stops)
	if err != nil {
		return nil, err
	}

	legs := it.Legs(s.settings.FallbackLegKm)
	result := &DistanceDTO{
		Stops:      it.Stops(),
		Legs:       legs,
		RoadKm:     geo.RoadKm(legs, s.settings.RoadFactor),
		RoadFactor: s.roadFactor(),
	}
	for _, leg := range legs {
		if leg.Estimated {
			result.EstimatedLegs++
			continue
		}
		result.StraightKm += leg.Km
	}
	return result, nil
}

// EstimateTrip prices a multi-stop trip. When req.Nights is nil the suggested nights are charged.
func (s *EstimateService) EstimateTrip(ctx context.Context, req TripEstimateRequest) (*TripEstimateDTO, error) {
	it, err := s.buildItinerary(ctx, req.Stops)
	if err != nil {
		return nil, err
	}

	legs := it.Legs(s.settings.FallbackLegKm)
	roadKm := geo.RoadKm(legs, s.settings.RoadFactor)
	activity := it.VisitMinutes()
	suggested := pricing.SuggestedNights(roadKm, activity, it.Len(), s.settings.Nights)

	nights := suggested
	if req.Nights != nil {
		nights = *req.Nights
	}

	breakdown, err := s.strategy.Estimate(pricing.Params{
		DistanceKm:  roadKm,
		VehicleTier: req.VehicleTier,
		HotelTier:   req.HotelTier,
		Nights:      nights,
		Extras:      req.Extras,
		RoundTrip:   req.RoundTrip,
	})
	if err != nil {
		return nil, err
	}

	return &TripEstimateDTO{
		Stops:           it.Stops(),
		Legs:            legs,
		RoadKm:          roadKm,
		ActivityMinutes: activity,
		SuggestedNights: suggested,
		Breakdown:       breakdown,
	}, nil
}

// EstimateTransfer prices a transfer from pickup to dropoff. Transfers carry no lodging.
func (s *EstimateService) EstimateTransfer(ctx context.Context, req TransferEstimateRequest) (*TransferEstimateDTO, error) {
	pickup, err := s.resolveStop(ctx, req.Pickup)
	if err != nil {
		return nil, err
	}
	dropoff, err := s.resolveStop(ctx, req.Dropoff)
	if err != nil {
		return nil, err
	}

	it := geo.NewItinerary([]geo.RouteStop{pickup, dropoff})
	legs := it.Legs(s.settings.FallbackTransferKm)
	roadKm := geo.RoadKm(legs, s.settings.RoadFactor)

	breakdown, err := s.strategy.Estimate(pricing.Params{
		DistanceKm:  roadKm,
		VehicleTier: req.VehicleTier,
		Extras:      req.Extras,
		RoundTrip:   req.RoundTrip,
	})
	if err != nil {
		return nil, err
	}

	return &TransferEstimateDTO{
		Stops:     it.Stops(),
		Legs:      legs,
		RoadKm:    roadKm,
		Breakdown: breakdown,
	}, nil
}

func (s *EstimateService) buildItinerary(ctx context.Context, inputs []StopInput) (*geo.Itinerary, error) {
	stops := make([]geo.RouteStop, 0, len(inputs))
	for _, in := range inputs {
		stop, err := s.resolveStop(ctx, in)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}
	return geo.NewItinerary(stops), nil
}

// resolveStop tries explicit coordinates, then the catalog, then the place resolver.
// A stop nothing can locate is returned unresolved and priced with the fallback distance.
func (s *EstimateService) resolveStop(ctx context.Context, in StopInput) (geo.RouteStop, error) {
	stop := geo.RouteStop{
		Name:          strings.TrimSpace(in.Name),
		DestinationID: strings.TrimSpace(in.DestinationID),
		PlaceQuery:    strings.TrimSpace(in.PlaceQuery),
	}

	switch {
	case in.Lat != nil && in.Lng != nil:
		stop.Point = &geo.GeoPoint{Lat: *in.Lat, Lng: *in.Lng}

	case stop.DestinationID != "":
		d, ok := catalog.FindDestination(stop.DestinationID)
		if !ok {
			return geo.RouteStop{}, domain.NewValidationError(fmt.Sprintf("unknown destination: %s", stop.DestinationID))
		}
		p := d.Point
		stop.Point = &p
		stop.DestinationID = d.ID
		stop.VisitMinutes = d.VisitMinutes
		if stop.Name == "" {
			stop.Name = d.Name
		}

	case strings.TrimSpace(in.AirportCode) != "":
		a, ok := catalog.FindAirport(in.AirportCode)
		if !ok {
			return geo.RouteStop{}, domain.NewValidationError(fmt.Sprintf("unknown airport: %s", in.AirportCode))
		}
		p := a.Point
		stop.Point = &p
		if stop.Name == "" {
			stop.Name = a.Name
		}

	default:
		if stop.PlaceQuery == "" {
			stop.PlaceQuery = stop.Name
		}
		if stop.PlaceQuery != "" && s.resolver != nil {
			p, err := s.resolver.Resolve(ctx, stop.PlaceQuery)
			if err != nil {
				s.logger.Warn("place lookup failed, using fallback distance",
					zap.String("query", stop.PlaceQuery),
					zap.Error(err),
				)
			} else {
				stop.Point = &p
			}
		}
	}

	if stop.Name == "" {
		stop.Name = stop.PlaceQuery
	}
	if stop.Name == "" {
		return geo.RouteStop{}, domain.NewValidationError("each stop needs a name, coordinates or a catalog reference")
	}
	if in.VisitMinutes != nil {
		stop.VisitMinutes = *in.VisitMinutes
	}
	return stop, nil
}

func (s *EstimateService) roadFactor() float64 {
	if s.settings.RoadFactor <= 0 {
		return geo.DefaultRoadFactor
	}
	return s.settings.RoadFactor
}
