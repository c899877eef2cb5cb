package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(p GeoPoint) *GeoPoint { return &p }

func names(stops []RouteStop) []string {
	out := make([]string, len(stops))
	for i, s := range stops {
		out[i] = s.Name
	}
	return out
}

func TestItinerary_AddRemoveMove(t *testing.T) {
	it := NewItinerary(nil)
	it.Add(RouteStop{Name: "Marrakech", Point: pt(marrakech)})
	it.Add(RouteStop{Name: "Casablanca", Point: pt(casablanca)})
	it.Add(RouteStop{Name: "Fes", Point: pt(fes)})
	assert.Equal(t, []string{"Marrakech", "Casablanca", "Fes"}, names(it.Stops()))

	require.NoError(t, it.Move(2, 0))
	assert.Equal(t, []string{"Fes", "Marrakech", "Casablanca"}, names(it.Stops()))

	require.NoError(t, it.Move(0, 2))
	assert.Equal(t, []string{"Marrakech", "Casablanca", "Fes"}, names(it.Stops()))

	require.NoError(t, it.Remove(1))
	stops := it.Stops()
	assert.Equal(t, []string{"Marrakech", "Fes"}, names(stops))
	for i, s := range stops {
		assert.Equal(t, i, s.Position)
	}
}

func TestItinerary_OutOfRange(t *testing.T) {
	it := NewItinerary([]RouteStop{{Name: "A"}})
	assert.Error(t, it.Remove(1))
	assert.Error(t, it.Move(0, 3))
	assert.Error(t, it.Move(-1, 0))
}

func TestItinerary_StopsIsACopy(t *testing.T) {
	it := NewItinerary([]RouteStop{{Name: "A"}, {Name: "B"}})
	stops := it.Stops()
	stops[0].Name = "changed"
	assert.Equal(t, "A", it.Stops()[0].Name)
}

func TestItinerary_LegsWithFallback(t *testing.T) {
	it := NewItinerary([]RouteStop{
		{Name: "Marrakech", Point: pt(marrakech)},
		{Name: "Casablanca", Point: pt(casablanca)},
		{Name: "Somewhere"},
	})

	legs := it.Legs(100)
	require.Len(t, legs, 2)
	assert.False(t, legs[0].Estimated)
	assert.InDelta(t, DistanceKm(marrakech, casablanca), legs[0].Km, 1e-9)
	assert.True(t, legs[1].Estimated)
	assert.Equal(t, 100.0, legs[1].Km)

	// Fallback legs are not inflated again.
	want := DistanceKm(marrakech, casablanca)*1.2 + 100
	assert.InDelta(t, want, RoadKm(legs, 1.2), 1e-9)
}

func TestItinerary_LegsNeedTwoStops(t *testing.T) {
	assert.Empty(t, NewItinerary([]RouteStop{{Name: "A"}}).Legs(50))
}

func TestItinerary_VisitMinutes(t *testing.T) {
	it := NewItinerary([]RouteStop{{Name: "A", VisitMinutes: 120}, {Name: "B", VisitMinutes: 90}})
	assert.Equal(t, 210, it.VisitMinutes())
}
