package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wayfare-travel/service-trip/internal/common/domain"
	"github.com/wayfare-travel/service-trip/internal/domain/catalog"
	"github.com/wayfare-travel/service-trip/internal/domain/geo"
	"github.com/wayfare-travel/service-trip/internal/domain/pricing"
)

func newEstimateService(resolver PlaceResolver) *EstimateService {
	return NewEstimateService(
		pricing.NewStandardStrategy(pricing.NewDefaultRateCard()),
		resolver,
		DefaultEstimateSettings(),
		zap.NewNop(),
	)
}

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }

func TestEstimateDistance_CatalogStops(t *testing.T) {
	svc := newEstimateService(nil)
	res, err := svc.EstimateDistance(context.Background(), DistanceRequest{Stops: []StopInput{
		{DestinationID: "marrakech"},
		{DestinationID: "casablanca"},
		{DestinationID: "fes"},
	}})
	require.NoError(t, err)

	mk, _ := catalog.FindDestination("marrakech")
	ca, _ := catalog.FindDestination("casablanca")
	fe, _ := catalog.FindDestination("fes")
	straight := geo.RouteDistanceKm([]geo.GeoPoint{mk.Point, ca.Point, fe.Point})

	assert.Len(t, res.Legs, 2)
	assert.Zero(t, res.EstimatedLegs)
	assert.InDelta(t, straight, res.StraightKm, 1e-9)
	assert.InDelta(t, straight*1.2, res.RoadKm, 1e-9)
	assert.Equal(t, "Marrakech", res.Stops[0].Name)
}

func TestEstimateDistance_UnresolvedStopUsesFallback(t *testing.T) {
	svc := newEstimateService(nil)
	res, err := svc.EstimateDistance(context.Background(), DistanceRequest{Stops: []StopInput{
		{DestinationID: "marrakech"},
		{Name: "Imlil village"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.EstimatedLegs)
	assert.Equal(t, 100.0, res.RoadKm)
	assert.Zero(t, res.StraightKm)
}

func TestEstimateDistance_ResolverFillsFreeText(t *testing.T) {
	resolver := &stubResolver{points: map[string]geo.GeoPoint{"Imlil": {Lat: 31.1364, Lng: -7.9196}}}
	svc := newEstimateService(resolver)

	res, err := svc.EstimateDistance(context.Background(), DistanceRequest{Stops: []StopInput{
		{DestinationID: "marrakech"},
		{PlaceQuery: "Imlil"},
	}})
	require.NoError(t, err)
	assert.Zero(t, res.EstimatedLegs)
	assert.Equal(t, "Imlil", res.Stops[1].Name)
	require.NotNil(t, res.Stops[1].Point)
	assert.Equal(t, 1, resolver.calls)
}

func TestEstimateDistance_ResolverFailureDegrades(t *testing.T) {
	svc := newEstimateService(&stubResolver{points: map[string]geo.GeoPoint{}})
	res, err := svc.EstimateDistance(context.Background(), DistanceRequest{Stops: []StopInput{
		{DestinationID: "fes"},
		{Name: "Unknown kasbah"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.EstimatedLegs)
}

func TestEstimateDistance_Errors(t *testing.T) {
	svc := newEstimateService(nil)

	_, err := svc.EstimateDistance(context.Background(), DistanceRequest{Stops: []StopInput{
		{DestinationID: "atlantis"}, {DestinationID: "fes"},
	}})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.EstimateDistance(context.Background(), DistanceRequest{Stops: []StopInput{
		{}, {DestinationID: "fes"},
	}})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestEstimateTrip_PricesRoadDistance(t *testing.T) {
	svc := newEstimateService(nil)
	res, err := svc.EstimateTrip(context.Background(), TripEstimateRequest{
		Stops: []StopInput{
			{Name: "A", Lat: f64(0), Lng: f64(0)},
			{Name: "B", Lat: f64(1), Lng: f64(0)},
		},
		VehicleTier: pricing.VehicleSedan,
		Nights:      intp(0),
	})
	require.NoError(t, err)

	straight := geo.DistanceKm(geo.GeoPoint{Lat: 0, Lng: 0}, geo.GeoPoint{Lat: 1, Lng: 0})
	road := straight * 1.2
	assert.InDelta(t, road, res.RoadKm, 1e-9)
	assert.Equal(t, int64(5000)+int64(road*60+0.5), res.Breakdown.BasePriceCents)
	assert.Equal(t, res.Breakdown.BasePriceCents, res.Breakdown.TotalPriceCents)
}

func TestEstimateTrip_SuggestsNightsWhenOmitted(t *testing.T) {
	svc := newEstimateService(nil)
	res, err := svc.EstimateTrip(context.Background(), TripEstimateRequest{
		Stops: []StopInput{
			{DestinationID: "marrakech"},
			{DestinationID: "ouarzazate"},
			{DestinationID: "merzouga"},
			{DestinationID: "fes"},
		},
		VehicleTier: pricing.VehicleVan,
		HotelTier:   pricing.HotelSuperior,
	})
	require.NoError(t, err)

	wantActivity := 480 + 180 + 600 + 480
	assert.Equal(t, wantActivity, res.ActivityMinutes)
	want := pricing.SuggestedNights(res.RoadKm, wantActivity, 4, pricing.DefaultNightsPolicy())
	assert.Equal(t, want, res.SuggestedNights)
	assert.Equal(t, want, res.Breakdown.Nights)
	assert.GreaterOrEqual(t, res.SuggestedNights, 1)
	assert.Positive(t, res.Breakdown.LodgingPriceCents)
}

func TestEstimateTrip_ExplicitNightsAndVisitOverride(t *testing.T) {
	svc := newEstimateService(nil)
	res, err := svc.EstimateTrip(context.Background(), TripEstimateRequest{
		Stops: []StopInput{
			{DestinationID: "marrakech", VisitMinutes: intp(0)},
			{DestinationID: "essaouira", VisitMinutes: intp(60)},
		},
		Nights: intp(5),
	})
	require.NoError(t, err)
	assert.Equal(t, 60, res.ActivityMinutes)
	assert.Equal(t, 5, res.Breakdown.Nights)
}

func TestEstimateTransfer_AirportToDestination(t *testing.T) {
	svc := newEstimateService(nil)
	res, err := svc.EstimateTransfer(context.Background(), TransferEstimateRequest{
		Pickup:      StopInput{AirportCode: "rak"},
		Dropoff:     StopInput{DestinationID: "essaouira"},
		VehicleTier: pricing.VehicleVan,
		Extras:      []string{"meet_greet"},
		RoundTrip:   true,
	})
	require.NoError(t, err)

	require.Len(t, res.Legs, 1)
	assert.False(t, res.Legs[0].Estimated)
	assert.Equal(t, "Marrakech Menara Airport", res.Stops[0].Name)
	assert.Zero(t, res.Breakdown.Nights)
	assert.Zero(t, res.Breakdown.LodgingPriceCents)
	assert.Positive(t, res.Breakdown.RoundTripDiscountCents)
	assert.Equal(t, int64(1500), res.Breakdown.ExtrasTotalCents)
}

func TestEstimateTransfer_FallbackDistance(t *testing.T) {
	svc := newEstimateService(nil)
	res, err := svc.EstimateTransfer(context.Background(), TransferEstimateRequest{
		Pickup:  StopInput{AirportCode: "CMN"},
		Dropoff: StopInput{Name: "Hotel Le Doge"},
	})
	require.NoError(t, err)
	assert.True(t, res.Legs[0].Estimated)
	assert.Equal(t, 50.0, res.RoadKm)
	assert.Equal(t, int64(5000+50*60), res.Breakdown.BasePriceCents)
}
